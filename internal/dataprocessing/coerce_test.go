package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelterpulse/pkg/contracts/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *time.Time
	}{
		{"iso date", "2023-04-15", timePtr(2023, 4, 15)},
		{"iso datetime", "2023-04-15 10:30:00", timePtr(2023, 4, 15)},
		{"us slash date", "4/15/2023", timePtr(2023, 4, 15)},
		{"padded us date", "04/15/2023", timePtr(2023, 4, 15)},
		{"empty is missing", "", nil},
		{"whitespace is missing", "  ", nil},
		{"garbage is missing", "not-a-date", nil},
		{"partial date is missing", "2023-04", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.expected.Year(), got.Year())
			assert.Equal(t, tt.expected.Month(), got.Month())
			assert.Equal(t, tt.expected.Day(), got.Day())
		})
	}
}

func TestParseIntakeIsDead(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.TriState
	}{
		{"Alive on Intake", domain.TriFalse},
		{"alive on intake", domain.TriFalse},
		{"Dead on Intake", domain.TriTrue},
		{"", domain.TriUnknown},
		{"Unknown Encoding", domain.TriUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseIntakeIsDead(tt.input), "input %q", tt.input)
	}
}

func TestParseOutcomeIsDead(t *testing.T) {
	// The source encodes a was-alive flag; the parsed field is inverted.
	assert.Equal(t, domain.TriFalse, parseOutcomeIsDead("1"))
	assert.Equal(t, domain.TriFalse, parseOutcomeIsDead("true"))
	assert.Equal(t, domain.TriTrue, parseOutcomeIsDead("0"))
	assert.Equal(t, domain.TriTrue, parseOutcomeIsDead("false"))
	assert.Equal(t, domain.TriUnknown, parseOutcomeIsDead(""))
	assert.Equal(t, domain.TriUnknown, parseOutcomeIsDead("maybe"))
}

func TestCoerceRecords(t *testing.T) {
	table := &RawTable{
		Headers: []string{
			"animal_id", "animal_name", "animal_type", "sex", "dob",
			"intake_date", "intake_type", "outcome_date", "outcome_type",
			"intake_is_dead", "was_outcome_alive",
		},
		Rows: [][]string{
			{"A1", "Rex", "Dog", "Neutered", "2020-01-01", "2023-01-01", "Stray", "2023-02-01", "Adoption", "Alive on Intake", "1"},
			{"A2", "Unknown", "Cat", "Unknown", "bad-date", "2023-03-05", "Stray", "", "", "", ""},
		},
	}

	records := CoerceRecords(table)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "A1", first.AnimalID)
	require.NotNil(t, first.DOB)
	require.NotNil(t, first.IntakeDate)
	require.NotNil(t, first.OutcomeDate)
	assert.Equal(t, domain.TriFalse, first.IntakeIsDead)
	assert.Equal(t, domain.TriFalse, first.OutcomeIsDead)

	second := records[1]
	assert.Nil(t, second.DOB, "unparseable dob becomes missing, row is kept")
	assert.Nil(t, second.OutcomeDate)
	assert.Equal(t, domain.TriUnknown, second.IntakeIsDead)
	assert.Equal(t, domain.TriUnknown, second.OutcomeIsDead)
}

func timePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
