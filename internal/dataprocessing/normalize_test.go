package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple lowercase", "dob", "dob"},
		{"spaces to underscore", "Intake Date", "intake_date"},
		{"surrounding whitespace", "  Animal ID  ", "animal_id"},
		{"punctuation run", "Reason for Intake?!", "reason_for_intake"},
		{"mixed separators", "Outcome - Subtype", "outcome_subtype"},
		{"already snake", "intake_is_dead", "intake_is_dead"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeHeader(tt.input))
		})
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims and titles", "  stray ", "Stray"},
		{"collapses whitespace", "owner   surrender", "Owner Surrender"},
		{"uppercase input", "EUTHANASIA", "Euthanasia"},
		{"empty stays empty", "", ""},
		{"whitespace only", "   ", ""},
		{"multi word", "return to owner", "Return To Owner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestNormalizeValues_TypoCorrection(t *testing.T) {
	table := &RawTable{
		Headers: []string{"intake_condition"},
		Rows: [][]string{
			{"ill moderatete"},
			{"ill moderate"},
			{"healthy"},
		},
	}

	out := NormalizeValues(table)

	assert.Equal(t, "Ill Moderate", out.Cell(0, "intake_condition"))
	assert.Equal(t, "Ill Moderate", out.Cell(1, "intake_condition"))
	assert.Equal(t, "Healthy", out.Cell(2, "intake_condition"))

	// Input table is untouched.
	assert.Equal(t, "ill moderatete", table.Cell(0, "intake_condition"))
}

func TestNormalizeValues_DefaultFill(t *testing.T) {
	table := &RawTable{
		Headers: []string{"animal_name", "jurisdiction", "crossing", "animal_type"},
		Rows: [][]string{
			{"", "", "  ", "dog"},
			{"Rex", "long beach", "7th & Pine", "cat"},
		},
	}

	out := NormalizeValues(table)

	for _, col := range []string{"animal_name", "jurisdiction", "crossing"} {
		assert.Equal(t, "Unknown", out.Cell(0, col), "column %s should be default-filled", col)
	}
	assert.Equal(t, "Rex", out.Cell(1, "animal_name"))
	assert.Equal(t, "Long Beach", out.Cell(1, "jurisdiction"))
	// crossing is fill-only, not a normalized text column
	assert.Equal(t, "7th & Pine", out.Cell(1, "crossing"))
}

func TestCheckSchema(t *testing.T) {
	t.Run("complete schema passes", func(t *testing.T) {
		table := &RawTable{Headers: []string{
			"animal_id", "animal_type", "sex", "dob",
			"intake_date", "intake_type", "outcome_date", "outcome_type",
		}}
		require.NoError(t, CheckSchema(table))
	})

	t.Run("missing columns are fatal and all reported", func(t *testing.T) {
		table := &RawTable{Headers: []string{"animal_id", "sex", "dob"}}
		err := CheckSchema(table)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "intake_date")
		assert.Contains(t, err.Error(), "outcome_type")
		assert.Contains(t, err.Error(), "animal_type")
	})
}
