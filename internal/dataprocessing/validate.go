package dataprocessing

import (
	"log/slog"

	"shelterpulse/pkg/contracts/domain"
)

// SanitizeRecords nulls derived values that are out of range or logically
// invalid. It runs strictly after derivation so a corrupted source date
// cannot leave a plausible-looking age bucket behind. Rows are never
// dropped and nothing here can fail.
func SanitizeRecords(records []domain.AnimalRecord) []domain.AnimalRecord {
	out := make([]domain.AnimalRecord, len(records))
	copy(out, records)

	var nulledAges, nulledStays int

	for i := range out {
		r := &out[i]

		if r.AgeAtIntakeYears != nil {
			if a := *r.AgeAtIntakeYears; a < 0 || a > maxPlausibleAge {
				r.AgeAtIntakeYears = nil
				r.AgeCategory = domain.AgeCategoryUnknown
				nulledAges++
			}
		}

		if r.StayDurationDays != nil && *r.StayDurationDays < 0 {
			r.StayDurationDays = nil
			nulledStays++
		}
	}

	if nulledAges > 0 || nulledStays > 0 {
		slog.Debug("sanitized derived fields",
			slog.Int("nulled_ages", nulledAges),
			slog.Int("nulled_stay_durations", nulledStays))
	}

	return out
}
