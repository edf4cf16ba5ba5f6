package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shelterpulse/pkg/contracts/domain"
)

// Stage identifiers, in execution order.
const (
	StageLoad      = "load"
	StageNormalize = "normalize"
	StageCoerce    = "coerce"
	StageDerive    = "derive"
	StageValidate  = "validate"
)

// Pipeline runs the full cleaning sequence over one source file. It holds
// no per-run state; the same Pipeline can be reused across reloads.
type Pipeline struct {
	logger *slog.Logger
}

// NewPipeline creates a cleaning pipeline.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger: logger.With(slog.String("component", "pipeline")),
	}
}

// Run loads the CSV at path and runs every cleaning stage over it.
// Schema errors are fatal; everything else degrades to missing values.
func (p *Pipeline) Run(ctx context.Context, path string) (*domain.Dataset, error) {
	start := time.Now()

	var timings []domain.StageTiming
	timed := func(stage string, fn func() error) error {
		stageStart := time.Now()
		err := fn()
		elapsed := time.Since(stageStart)
		timings = append(timings, domain.StageTiming{Stage: stage, Duration: elapsed})
		observeStageDuration(stage, elapsed)
		return err
	}

	var raw *RawTable
	if err := timed(StageLoad, func() error {
		var err error
		raw, err = LoadCSV(path)
		return err
	}); err != nil {
		return nil, err
	}

	var normalized *RawTable
	if err := timed(StageNormalize, func() error {
		normalized = NormalizeHeaders(raw)
		if err := CheckSchema(normalized); err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		normalized = NormalizeValues(normalized)
		return nil
	}); err != nil {
		return nil, err
	}

	var records []domain.AnimalRecord
	timed(StageCoerce, func() error {
		records = CoerceRecords(normalized)
		return nil
	})
	timed(StageDerive, func() error {
		records = DeriveFeatures(records)
		return nil
	})
	timed(StageValidate, func() error {
		records = SanitizeRecords(records)
		return nil
	})

	ds := &domain.Dataset{
		Records:    records,
		SourceFile: path,
		LoadedAt:   time.Now().UTC(),
		RawRows:    len(raw.Rows),
		Timings:    timings,
	}

	observeDatasetLoaded(ds)

	p.logger.InfoContext(ctx, "pipeline completed",
		slog.String("source", path),
		slog.Int("raw_rows", ds.RawRows),
		slog.Int("clean_rows", len(records)),
		slog.Duration("duration", time.Since(start)))

	return ds, nil
}
