package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"shelterpulse/internal/config"
	"shelterpulse/internal/dataprocessing"
	"shelterpulse/internal/errors"
	"shelterpulse/pkg/contracts/domain"
)

// DataService owns the cleaned dataset. The dataset is replaced atomically
// on load; readers always see either the previous complete table or the new
// one, never a partial state.
type DataService struct {
	config   *config.Config
	paths    *config.Paths
	pipeline *dataprocessing.Pipeline
	logger   *slog.Logger

	mu      sync.RWMutex
	dataset *domain.Dataset
}

// RecordFilter narrows the record listing. Empty fields match everything.
type RecordFilter struct {
	AnimalType   string
	OutcomeGroup string
	Limit        int
	Offset       int
}

// RecordPage is one page of records plus the total matching count.
type RecordPage struct {
	Records []domain.AnimalRecord `json:"records"`
	Total   int                   `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

// ValueCount is one row of a top-N value count.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// MonthlyCount is the number of intakes in one calendar month.
type MonthlyCount struct {
	Month   string `json:"month"` // YYYY-MM
	Intakes int    `json:"intakes"`
}

// AdoptionRate summarizes adoptions over concluded outcomes for one value
// of the chosen group-by dimension.
type AdoptionRate struct {
	Group     string  `json:"group"`
	Outcomes  int     `json:"outcomes"`
	Adoptions int     `json:"adoptions"`
	Rate      float64 `json:"rate"`
}

// OutcomeByReason is the outcome-group breakdown for one intake reason.
type OutcomeByReason struct {
	Reason string         `json:"reason"`
	Total  int            `json:"total"`
	Groups map[string]int `json:"groups"`
}

// StayDurationSummary holds distribution statistics for stay durations
// in days.
type StayDurationSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// StayDurationStats pairs the overall stay-duration distribution with a
// per-outcome-group breakdown.
type StayDurationStats struct {
	Overall StayDurationSummary            `json:"overall"`
	Groups  map[string]StayDurationSummary `json:"groups"`
}

// NewDataService creates the data service. The dataset is not loaded yet;
// call Load before serving queries.
func NewDataService(cfg *config.Config, paths *config.Paths, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("DataService initialized",
		slog.String("dataset_file", paths.DatasetFile),
		slog.Int("top_n", cfg.Data.TopN))

	return &DataService{
		config:   cfg,
		paths:    paths,
		pipeline: dataprocessing.NewPipeline(logger),
		logger:   logger,
	}
}

// Load runs the cleaning pipeline against the configured source file and
// swaps the result in. Safe to call concurrently with readers.
func (ds *DataService) Load(ctx context.Context) error {
	dataset, err := ds.pipeline.Run(ctx, ds.paths.DatasetFile)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	ds.mu.Lock()
	ds.dataset = dataset
	ds.mu.Unlock()

	ds.logger.InfoContext(ctx, "dataset loaded",
		slog.String("source_file", dataset.SourceFile),
		slog.Int("raw_rows", dataset.RawRows),
		slog.Int("clean_rows", dataset.Len()))
	return nil
}

// Reload re-runs the pipeline and returns the summary of the fresh dataset.
func (ds *DataService) Reload(ctx context.Context) (*domain.DatasetSummary, error) {
	if err := ds.Load(ctx); err != nil {
		return nil, err
	}
	return ds.Summary(ctx)
}

// current returns the loaded dataset or ErrDatasetNotLoaded.
func (ds *DataService) current() (*domain.Dataset, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	if ds.dataset == nil {
		return nil, errors.ErrDatasetNotLoaded
	}
	return ds.dataset, nil
}

func matches(r *domain.AnimalRecord, filter RecordFilter) bool {
	if filter.AnimalType != "" && !strings.EqualFold(r.AnimalType, filter.AnimalType) {
		return false
	}
	if filter.OutcomeGroup != "" && !strings.EqualFold(string(r.OutcomeGroup), filter.OutcomeGroup) {
		return false
	}
	return true
}

// Records returns one page of cleaned records matching the filter.
func (ds *DataService) Records(ctx context.Context, filter RecordFilter) (*RecordPage, error) {
	dataset, err := ds.current()
	if err != nil {
		return nil, err
	}

	if filter.Limit <= 0 || filter.Limit > 1000 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	matched := make([]domain.AnimalRecord, 0, filter.Limit)
	total := 0
	for i := range dataset.Records {
		if !matches(&dataset.Records[i], filter) {
			continue
		}
		if total >= filter.Offset && len(matched) < filter.Limit {
			matched = append(matched, dataset.Records[i])
		}
		total++
	}

	return &RecordPage{
		Records: matched,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

// FilteredRecords returns every record matching the filter, without paging.
// Used by the export endpoints.
func (ds *DataService) FilteredRecords(ctx context.Context, filter RecordFilter) ([]domain.AnimalRecord, error) {
	dataset, err := ds.current()
	if err != nil {
		return nil, err
	}

	out := make([]domain.AnimalRecord, 0, len(dataset.Records))
	for i := range dataset.Records {
		if matches(&dataset.Records[i], filter) {
			out = append(out, dataset.Records[i])
		}
	}
	return out, nil
}

// Summary returns load metadata, missing-value counts and the distinct
// values the dashboard filters offer.
func (ds *DataService) Summary(ctx context.Context) (*domain.DatasetSummary, error) {
	dataset, err := ds.current()
	if err != nil {
		return nil, err
	}

	missing := map[string]int{
		"dob":                 0,
		"intake_date":         0,
		"outcome_date":        0,
		"age_at_intake_years": 0,
		"stay_duration_days":  0,
		"is_sterilized":       0,
		"intake_is_dead":      0,
		"outcome_is_dead":     0,
	}
	typeSet := make(map[string]struct{})
	groupSet := make(map[string]struct{})

	for i := range dataset.Records {
		r := &dataset.Records[i]
		if r.DOB == nil {
			missing["dob"]++
		}
		if r.IntakeDate == nil {
			missing["intake_date"]++
		}
		if r.OutcomeDate == nil {
			missing["outcome_date"]++
		}
		if r.AgeAtIntakeYears == nil {
			missing["age_at_intake_years"]++
		}
		if r.StayDurationDays == nil {
			missing["stay_duration_days"]++
		}
		if r.IsSterilized == domain.TriUnknown {
			missing["is_sterilized"]++
		}
		if r.IntakeIsDead == domain.TriUnknown {
			missing["intake_is_dead"]++
		}
		if r.OutcomeIsDead == domain.TriUnknown {
			missing["outcome_is_dead"]++
		}
		typeSet[r.AnimalType] = struct{}{}
		groupSet[string(r.OutcomeGroup)] = struct{}{}
	}

	return &domain.DatasetSummary{
		SourceFile:    dataset.SourceFile,
		LoadedAt:      dataset.LoadedAt,
		RawRows:       dataset.RawRows,
		CleanRows:     dataset.Len(),
		MissingCounts: missing,
		AnimalTypes:   sortedKeys(typeSet),
		OutcomeGroups: sortedKeys(groupSet),
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// topN returns the configured top-N cutoff.
func (ds *DataService) topN() int {
	if n := ds.config.Data.TopN; n > 0 {
		return n
	}
	return 10
}

// valueCounts tallies extract(record) across the dataset and returns the
// top-N values by count. Ties break alphabetically so output is stable.
func (ds *DataService) valueCounts(extract func(*domain.AnimalRecord) string) ([]ValueCount, error) {
	dataset, err := ds.current()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range dataset.Records {
		if v := extract(&dataset.Records[i]); v != "" {
			counts[v]++
		}
	}

	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})

	if n := ds.topN(); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// IntakeTypeCounts returns the top-N intake types by record count.
func (ds *DataService) IntakeTypeCounts(ctx context.Context) ([]ValueCount, error) {
	return ds.valueCounts(func(r *domain.AnimalRecord) string { return r.IntakeType })
}

// OutcomeTypeCounts returns the top-N outcome types by record count.
func (ds *DataService) OutcomeTypeCounts(ctx context.Context) ([]ValueCount, error) {
	return ds.valueCounts(func(r *domain.AnimalRecord) string { return r.OutcomeType })
}

// IntakeReasonCounts returns the top-N intake reasons by record count.
func (ds *DataService) IntakeReasonCounts(ctx context.Context) ([]ValueCount, error) {
	return ds.valueCounts(func(r *domain.AnimalRecord) string { return r.IntakeReason })
}

// MonthlyIntakes counts intakes per calendar month, oldest first. Records
// without a parseable intake date are left out.
func (ds *DataService) MonthlyIntakes(ctx context.Context) ([]MonthlyCount, error) {
	dataset, err := ds.current()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range dataset.Records {
		if d := dataset.Records[i].IntakeDate; d != nil {
			counts[d.Format("2006-01")]++
		}
	}

	out := make([]MonthlyCount, 0, len(counts))
	for month, c := range counts {
		out = append(out, MonthlyCount{Month: month, Intakes: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// Group-by dimensions accepted by AdoptionRates.
const (
	ByAnimalType  = "animal_type"
	ByAgeCategory = "age_category"
	BySexBase     = "sex_base"
)

// AdoptionRates computes, per value of the chosen dimension, the share of
// concluded outcomes that were adoptions. Groups without any concluded
// outcome are omitted. An unknown dimension falls back to animal type.
func (ds *DataService) AdoptionRates(ctx context.Context, by string) ([]AdoptionRate, error) {
	dataset, err := ds.current()
	if err != nil {
		return nil, err
	}

	var key func(*domain.AnimalRecord) string
	switch by {
	case ByAgeCategory:
		key = func(r *domain.AnimalRecord) string { return string(r.AgeCategory) }
	case BySexBase:
		key = func(r *domain.AnimalRecord) string { return string(r.SexBase) }
	default:
		key = func(r *domain.AnimalRecord) string { return r.AnimalType }
	}

	type tally struct{ outcomes, adoptions int }
	tallies := make(map[string]*tally)
	for i := range dataset.Records {
		r := &dataset.Records[i]
		if !r.HasOutcome() {
			continue
		}
		t, ok := tallies[key(r)]
		if !ok {
			t = &tally{}
			tallies[key(r)] = t
		}
		t.outcomes++
		if r.OutcomeType == "Adoption" {
			t.adoptions++
		}
	}

	out := make([]AdoptionRate, 0, len(tallies))
	for group, t := range tallies {
		out = append(out, AdoptionRate{
			Group:     group,
			Outcomes:  t.outcomes,
			Adoptions: t.adoptions,
			Rate:      float64(t.adoptions) / float64(t.outcomes),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Outcomes != out[j].Outcomes {
			return out[i].Outcomes > out[j].Outcomes
		}
		return out[i].Group < out[j].Group
	})
	return out, nil
}

// OutcomesByReason breaks down outcome groups for the top-N intake reasons.
func (ds *DataService) OutcomesByReason(ctx context.Context) ([]OutcomeByReason, error) {
	topReasons, err := ds.IntakeReasonCounts(ctx)
	if err != nil {
		return nil, err
	}
	dataset, err := ds.current()
	if err != nil {
		return nil, err
	}

	rows := make([]OutcomeByReason, 0, len(topReasons))
	index := make(map[string]int, len(topReasons))
	for i, vc := range topReasons {
		rows = append(rows, OutcomeByReason{Reason: vc.Value, Groups: make(map[string]int)})
		index[vc.Value] = i
	}

	for i := range dataset.Records {
		r := &dataset.Records[i]
		ri, ok := index[r.IntakeReason]
		if !ok {
			continue
		}
		rows[ri].Total++
		rows[ri].Groups[string(r.OutcomeGroup)]++
	}
	return rows, nil
}

// StayDurations summarizes the stay-duration distribution over records
// where a stay could be computed, overall and per outcome group.
func (ds *DataService) StayDurations(ctx context.Context) (*StayDurationStats, error) {
	dataset, err := ds.current()
	if err != nil {
		return nil, err
	}

	all := make([]int, 0, len(dataset.Records))
	byGroup := make(map[string][]int)
	for i := range dataset.Records {
		r := &dataset.Records[i]
		if r.StayDurationDays == nil {
			continue
		}
		all = append(all, *r.StayDurationDays)
		group := string(r.OutcomeGroup)
		byGroup[group] = append(byGroup[group], *r.StayDurationDays)
	}

	stats := &StayDurationStats{Groups: make(map[string]StayDurationSummary, len(byGroup))}
	if len(all) == 0 {
		return stats, nil
	}

	stats.Overall = summarizeDays(all)
	for group, days := range byGroup {
		stats.Groups[group] = summarizeDays(days)
	}
	return stats, nil
}

// summarizeDays computes distribution statistics. It sorts days in place.
func summarizeDays(days []int) StayDurationSummary {
	sort.Ints(days)
	sum := 0
	for _, d := range days {
		sum += d
	}
	return StayDurationSummary{
		Count:  len(days),
		Mean:   float64(sum) / float64(len(days)),
		Median: quantile(days, 0.5),
		P25:    quantile(days, 0.25),
		P75:    quantile(days, 0.75),
		Min:    days[0],
		Max:    days[len(days)-1],
	}
}

// quantile interpolates the q-th quantile of sorted ints.
func quantile(sorted []int, q float64) float64 {
	if len(sorted) == 1 {
		return float64(sorted[0])
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return float64(sorted[lo])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo])*(1-frac) + float64(sorted[hi])*frac
}

// LoadedAt returns when the current dataset was loaded, or the zero time.
func (ds *DataService) LoadedAt() time.Time {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	if ds.dataset == nil {
		return time.Time{}
	}
	return ds.dataset.LoadedAt
}
