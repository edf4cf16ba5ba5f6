package dataprocessing

import (
	"strings"
	"time"

	"shelterpulse/pkg/contracts/domain"
)

// Date layouts accepted by the coercer, tried in order. The shelter export
// has shifted format between publications, so all observed layouts stay
// accepted.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006",
	"01/02/2006",
	"1/2/2006 15:04",
	time.RFC3339,
}

// ParseDate parses a raw date cell. A value that matches no accepted layout
// is a missing value, never an error: bad dates degrade the row, they do
// not fail the pipeline.
func ParseDate(value string) *time.Time {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

// parseIntakeIsDead coerces the intake liveness indicator. Unrecognized
// encodings become TriUnknown rather than false, so a corrupt flag never
// reads as "alive on intake".
func parseIntakeIsDead(value string) domain.TriState {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "alive on intake":
		return domain.TriFalse
	case "dead on intake":
		return domain.TriTrue
	default:
		return domain.TriUnknown
	}
}

// parseOutcomeIsDead coerces the outcome liveness flag, which the source
// encodes as a was-alive integer. The sense is inverted here so the field
// reads the same way as the intake flag. Unrecognized encodings become
// TriUnknown.
func parseOutcomeIsDead(value string) domain.TriState {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "t", "yes":
		return domain.TriFalse // was alive at outcome
	case "0", "false", "f", "no":
		return domain.TriTrue
	default:
		return domain.TriUnknown
	}
}

// parseFlag coerces a plain boolean cell; anything unrecognized is false.
func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "t", "yes":
		return true
	default:
		return false
	}
}

// CoerceRecords converts the normalized table into typed AnimalRecords.
// Every parse failure is recovered locally as a missing value; the number
// of output records always equals the number of input rows.
func CoerceRecords(table *RawTable) []domain.AnimalRecord {
	records := make([]domain.AnimalRecord, len(table.Rows))

	for i := range table.Rows {
		records[i] = domain.AnimalRecord{
			AnimalID:       table.Cell(i, "animal_id"),
			Name:           table.Cell(i, "animal_name"),
			AnimalType:     table.Cell(i, "animal_type"),
			PrimaryColor:   table.Cell(i, "primary_color"),
			SecondaryColor: table.Cell(i, "secondary_color"),
			SexRaw:         table.Cell(i, "sex"),

			DOB:         ParseDate(table.Cell(i, "dob")),
			IntakeDate:  ParseDate(table.Cell(i, "intake_date")),
			OutcomeDate: ParseDate(table.Cell(i, "outcome_date")),

			IntakeCondition: table.Cell(i, "intake_condition"),
			IntakeType:      table.Cell(i, "intake_type"),
			IntakeSubtype:   table.Cell(i, "intake_subtype"),
			IntakeReason:    table.Cell(i, "reason_for_intake"),
			Jurisdiction:    table.Cell(i, "jurisdiction"),
			Crossing:        table.Cell(i, "crossing"),

			IntakeIsDead:     parseIntakeIsDead(table.Cell(i, "intake_is_dead")),
			OutcomeIsDead:    parseOutcomeIsDead(table.Cell(i, "was_outcome_alive")),
			OutcomeIsCurrent: parseFlag(table.Cell(i, "outcome_is_current")),

			OutcomeType:    table.Cell(i, "outcome_type"),
			OutcomeSubtype: table.Cell(i, "outcome_subtype"),

			// Derived fields are filled by the deriver stage.
			SexBase:      domain.SexUnknown,
			IsSterilized: domain.TriUnknown,
			AgeCategory:  domain.AgeCategoryUnknown,
			OutcomeGroup: domain.OutcomeAdminUnknown,
		}
	}

	return records
}
