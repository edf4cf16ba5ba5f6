package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelterpulse/internal/config"
	"shelterpulse/internal/errors"
)

const fixtureCSV = `Animal ID,Animal Name,Animal Type,Primary Color,Secondary Color,Sex,DOB,Intake Date,Intake Condition,Intake Type,Intake Subtype,Reason For Intake,Jurisdiction,Crossing,Intake Is Dead,Outcome Date,Outcome Type,Outcome Subtype,Was Outcome Alive,Outcome Is Current
A001,Rex,Dog,Brown,,Neutered,2019-06-01,2023-01-05,Healthy,Stray,,,San Jose,1st St,Alive on Intake,2023-01-25,Adoption,Walk In,1,0
A002,Milo,Cat,Black,White,Male,2022-03-01,2023-02-10,Healthy,Owner Surrender,,Moving,San Jose,2nd St,Alive on Intake,2023-02-20,Adoption,,1,0
A003,,Cat,Grey,,Female,2021-01-01,2023-03-01,Ill Mild,Stray,,,Campbell,,Alive on Intake,2023-03-15,Transfer,Rescue Group,1,0
A004,Buddy,Dog,White,,Spayed,2015-05-01,2023-03-20,Injured,Stray,,,San Jose,,Alive on Intake,2023-04-02,Euthanasia,Medical,0,0
A005,Luna,Dog,Black,,Female,2023-01-15,2023-04-01,Healthy,Stray,,,San Jose,,Alive on Intake,,,,,1
`

func newLoadedDataService(t *testing.T) *DataService {
	t.Helper()

	dir := t.TempDir()
	datasetFile := filepath.Join(dir, "intakes.csv")
	require.NoError(t, os.WriteFile(datasetFile, []byte(fixtureCSV), 0644))

	cfg := config.Default()
	cfg.Data.TopN = 3

	ds := NewDataService(&cfg, &config.Paths{DatasetFile: datasetFile}, nil)
	require.NoError(t, ds.Load(context.Background()))
	return ds
}

func TestDataService_NotLoaded(t *testing.T) {
	cfg := config.Default()
	ds := NewDataService(&cfg, &config.Paths{DatasetFile: "missing.csv"}, nil)

	_, err := ds.Records(context.Background(), RecordFilter{})
	assert.ErrorIs(t, err, errors.ErrDatasetNotLoaded)

	_, err = ds.Summary(context.Background())
	assert.ErrorIs(t, err, errors.ErrDatasetNotLoaded)
}

func TestDataService_Records_FilterAndPaging(t *testing.T) {
	ds := newLoadedDataService(t)
	ctx := context.Background()

	all, err := ds.Records(ctx, RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, 5, all.Total)
	assert.Len(t, all.Records, 5)

	dogs, err := ds.Records(ctx, RecordFilter{AnimalType: "dog"})
	require.NoError(t, err)
	assert.Equal(t, 3, dogs.Total)
	for _, r := range dogs.Records {
		assert.Equal(t, "Dog", r.AnimalType)
	}

	page, err := ds.Records(ctx, RecordFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "A002", page.Records[0].AnimalID)
	assert.Equal(t, "A003", page.Records[1].AnimalID)

	positive, err := ds.Records(ctx, RecordFilter{OutcomeGroup: "positive"})
	require.NoError(t, err)
	assert.Equal(t, 2, positive.Total)
}

func TestDataService_Summary(t *testing.T) {
	ds := newLoadedDataService(t)

	summary, err := ds.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.RawRows)
	assert.Equal(t, 5, summary.CleanRows)
	assert.Equal(t, []string{"Cat", "Dog"}, summary.AnimalTypes)
	// A005 has no outcome date and a current-outcome flag.
	assert.Equal(t, 1, summary.MissingCounts["outcome_date"])
	assert.Equal(t, 1, summary.MissingCounts["stay_duration_days"])
	assert.Contains(t, summary.OutcomeGroups, "No_Outcome_Yet")
}

func TestDataService_ValueCounts(t *testing.T) {
	ds := newLoadedDataService(t)
	ctx := context.Background()

	intakes, err := ds.IntakeTypeCounts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, intakes)
	assert.Equal(t, ValueCount{Value: "Stray", Count: 4}, intakes[0])

	outcomes, err := ds.OutcomeTypeCounts(ctx)
	require.NoError(t, err)
	// Adoption x2 tops the list; empty outcome types are not counted.
	assert.Equal(t, ValueCount{Value: "Adoption", Count: 2}, outcomes[0])
	for _, vc := range outcomes {
		assert.NotEmpty(t, vc.Value)
	}
}

func TestDataService_ValueCounts_TopNCutoff(t *testing.T) {
	ds := newLoadedDataService(t)

	// TopN is 3 in the fixture config.
	reasons, err := ds.IntakeReasonCounts(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(reasons), 3)
}

func TestDataService_MonthlyIntakes(t *testing.T) {
	ds := newLoadedDataService(t)

	months, err := ds.MonthlyIntakes(context.Background())
	require.NoError(t, err)
	require.Len(t, months, 4)

	// Sorted oldest first.
	assert.Equal(t, MonthlyCount{Month: "2023-01", Intakes: 1}, months[0])
	assert.Equal(t, MonthlyCount{Month: "2023-03", Intakes: 2}, months[2])
	assert.Equal(t, MonthlyCount{Month: "2023-04", Intakes: 1}, months[3])
}

func TestDataService_AdoptionRates(t *testing.T) {
	ds := newLoadedDataService(t)

	t.Run("by animal type", func(t *testing.T) {
		rates, err := ds.AdoptionRates(context.Background(), ByAnimalType)
		require.NoError(t, err)
		require.Len(t, rates, 2)

		byGroup := make(map[string]AdoptionRate)
		for _, r := range rates {
			byGroup[r.Group] = r
		}

		// Dogs: A001 adopted, A004 euthanized; A005 has no outcome yet.
		assert.Equal(t, 2, byGroup["Dog"].Outcomes)
		assert.Equal(t, 1, byGroup["Dog"].Adoptions)
		assert.InDelta(t, 0.5, byGroup["Dog"].Rate, 1e-9)

		// Cats: A002 adopted, A003 transferred.
		assert.Equal(t, 2, byGroup["Cat"].Outcomes)
		assert.InDelta(t, 0.5, byGroup["Cat"].Rate, 1e-9)
	})

	t.Run("empty dimension defaults to animal type", func(t *testing.T) {
		rates, err := ds.AdoptionRates(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, rates, 2)
		assert.Equal(t, "Cat", rates[0].Group)
	})

	t.Run("by sex base", func(t *testing.T) {
		rates, err := ds.AdoptionRates(context.Background(), BySexBase)
		require.NoError(t, err)

		byGroup := make(map[string]AdoptionRate)
		for _, r := range rates {
			byGroup[r.Group] = r
		}

		// Males with a concluded outcome: A001 (Neutered) and A002, both
		// adopted.
		assert.Equal(t, 2, byGroup["Male"].Outcomes)
		assert.Equal(t, 2, byGroup["Male"].Adoptions)
		assert.InDelta(t, 1.0, byGroup["Male"].Rate, 1e-9)

		// Females: A003 transferred, A004 (Spayed) euthanized.
		assert.Equal(t, 2, byGroup["Female"].Outcomes)
		assert.Equal(t, 0, byGroup["Female"].Adoptions)
	})
}

func TestDataService_OutcomesByReason(t *testing.T) {
	ds := newLoadedDataService(t)

	rows, err := ds.OutcomesByReason(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	byReason := make(map[string]OutcomeByReason)
	for _, row := range rows {
		byReason[row.Reason] = row
	}

	moving, ok := byReason["Moving"]
	require.True(t, ok)
	assert.Equal(t, 1, moving.Total)
	assert.Equal(t, 1, moving.Groups["Positive"])
}

func TestDataService_StayDurations(t *testing.T) {
	ds := newLoadedDataService(t)

	stats, err := ds.StayDurations(context.Background())
	require.NoError(t, err)

	// Stays: A001=20, A002=10, A003=14, A004=13; A005 has none.
	assert.Equal(t, 4, stats.Overall.Count)
	assert.Equal(t, 10, stats.Overall.Min)
	assert.Equal(t, 20, stats.Overall.Max)
	assert.InDelta(t, 14.25, stats.Overall.Mean, 1e-9)
	assert.InDelta(t, 13.5, stats.Overall.Median, 1e-9)

	// A001 and A002 were adopted, A003 transferred, A004 euthanized.
	require.Len(t, stats.Groups, 3)
	positive := stats.Groups["Positive"]
	assert.Equal(t, 2, positive.Count)
	assert.InDelta(t, 15.0, positive.Mean, 1e-9)
	assert.InDelta(t, 15.0, positive.Median, 1e-9)

	negative := stats.Groups["Negative"]
	assert.Equal(t, 1, negative.Count)
	assert.Equal(t, 13, negative.Min)
	assert.Equal(t, 13, negative.Max)

	assert.Equal(t, 1, stats.Groups["Other_or_Partner"].Count)
}

func TestDataService_Reload(t *testing.T) {
	ds := newLoadedDataService(t)

	summary, err := ds.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, summary.CleanRows)
}

func TestQuantile(t *testing.T) {
	sorted := []int{10, 13, 14, 20}

	assert.InDelta(t, 13.5, quantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 10.0, quantile(sorted, 0), 1e-9)
	assert.InDelta(t, 20.0, quantile(sorted, 1), 1e-9)
	assert.InDelta(t, 5.0, quantile([]int{5}, 0.5), 1e-9)
}
