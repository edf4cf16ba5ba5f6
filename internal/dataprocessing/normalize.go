package dataprocessing

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Expected column names after header normalization. A required column
// missing from the source is a fatal schema error; optional columns are
// tolerated and their fields default to missing/"Unknown".
var (
	requiredColumns = []string{
		"animal_id",
		"animal_type",
		"sex",
		"dob",
		"intake_date",
		"intake_type",
		"outcome_date",
		"outcome_type",
	}

	// Text columns that get trim/collapse/title-case treatment.
	textColumns = []string{
		"animal_type",
		"sex",
		"intake_condition",
		"intake_type",
		"intake_subtype",
		"reason_for_intake",
		"outcome_type",
		"outcome_subtype",
		"jurisdiction",
	}

	// Columns whose missing values are replaced with the literal "Unknown".
	defaultFillColumns = []string{
		"animal_name",
		"secondary_color",
		"reason_for_intake",
		"intake_subtype",
		"outcome_subtype",
		"jurisdiction",
		"crossing",
	}
)

var (
	headerSeparators = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	titleCaser       = cases.Title(language.English)
)

// NormalizeHeader converts a raw column name to lowercase snake_case:
// trimmed, with internal whitespace/punctuation runs collapsed to a single
// underscore.
func NormalizeHeader(name string) string {
	h := strings.ToLower(strings.TrimSpace(name))
	h = headerSeparators.ReplaceAllString(h, "_")
	return strings.Trim(h, "_")
}

// NormalizeText trims a raw text value, collapses internal whitespace runs
// to a single space and title-cases the words. Empty input stays empty.
func NormalizeText(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	v = whitespaceRuns.ReplaceAllString(v, " ")
	return titleCaser.String(strings.ToLower(v))
}

// NormalizeHeaders returns a copy of the table with snake_case column names.
func NormalizeHeaders(table *RawTable) *RawTable {
	out := table.Clone()
	for i, h := range out.Headers {
		out.Headers[i] = NormalizeHeader(h)
	}
	return out
}

// CheckSchema verifies every required column survived header normalization.
// This is the only fatal condition past loading; the pipeline refuses to
// run on a malformed schema rather than producing partial output.
func CheckSchema(table *RawTable) error {
	var missing []string
	for _, col := range requiredColumns {
		if table.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("source CSV is missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// NormalizeValues returns a copy of the table with default-filled and
// normalized text fields and known typos corrected. Fill runs before
// normalization so the literal "Unknown" passes through title-casing
// unchanged.
func NormalizeValues(table *RawTable) *RawTable {
	out := table.Clone()

	for _, col := range defaultFillColumns {
		idx := out.ColumnIndex(col)
		if idx < 0 {
			continue
		}
		for _, row := range out.Rows {
			if strings.TrimSpace(row[idx]) == "" {
				row[idx] = defaultFillValue
			}
		}
	}

	for _, col := range textColumns {
		idx := out.ColumnIndex(col)
		if idx < 0 {
			continue
		}
		for _, row := range out.Rows {
			row[idx] = NormalizeText(row[idx])
		}
	}

	// Typo corrections apply after casing so the lookup table only needs
	// canonical-cased keys.
	for col, fixes := range typoCorrections {
		idx := out.ColumnIndex(col)
		if idx < 0 {
			continue
		}
		for _, row := range out.Rows {
			if fixed, ok := fixes[row[idx]]; ok {
				row[idx] = fixed
			}
		}
	}

	return out
}
