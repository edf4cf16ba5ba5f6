package exporter

import (
	"strconv"
	"time"

	"shelterpulse/pkg/contracts/domain"
)

const dateLayout = "2006-01-02"

// recordColumns is the canonical export column order. CSV and XLSX share it.
var recordColumns = []string{
	"animal_id",
	"animal_name",
	"animal_type",
	"primary_color",
	"secondary_color",
	"sex",
	"sex_base",
	"is_sterilized",
	"dob",
	"intake_date",
	"intake_condition",
	"intake_type",
	"intake_subtype",
	"reason_for_intake",
	"jurisdiction",
	"crossing",
	"intake_is_dead",
	"outcome_date",
	"outcome_type",
	"outcome_subtype",
	"outcome_is_dead",
	"outcome_is_current",
	"outcome_group",
	"age_at_intake_years",
	"age_category",
	"stay_duration_days",
}

// Columns returns the export header row.
func Columns() []string {
	out := make([]string, len(recordColumns))
	copy(out, recordColumns)
	return out
}

// Row formats one record in canonical column order. Missing values render
// as empty cells.
func Row(r *domain.AnimalRecord) []string {
	return []string{
		r.AnimalID,
		r.Name,
		r.AnimalType,
		r.PrimaryColor,
		r.SecondaryColor,
		r.SexRaw,
		string(r.SexBase),
		formatTriState(r.IsSterilized),
		formatDate(r.DOB),
		formatDate(r.IntakeDate),
		r.IntakeCondition,
		r.IntakeType,
		r.IntakeSubtype,
		r.IntakeReason,
		r.Jurisdiction,
		r.Crossing,
		formatTriState(r.IntakeIsDead),
		formatDate(r.OutcomeDate),
		r.OutcomeType,
		r.OutcomeSubtype,
		formatTriState(r.OutcomeIsDead),
		strconv.FormatBool(r.OutcomeIsCurrent),
		string(r.OutcomeGroup),
		formatFloat(r.AgeAtIntakeYears),
		string(r.AgeCategory),
		formatInt(r.StayDurationDays),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTriState(t domain.TriState) string {
	if t == domain.TriUnknown {
		return ""
	}
	return string(t)
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

func formatInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
