package dataprocessing

import (
	"shelterpulse/pkg/contracts/domain"
)

// daysPerYear converts a day span to years, Julian-calendar style.
const daysPerYear = 365.25

// Validator bounds for derived values. Ages outside [0, maxPlausibleAge]
// and negative stay durations are nulled, never clamped.
const maxPlausibleAge = 40.0

// DeriveFeatures computes every derived field on a copy of the input
// records: age at intake, age category, sex split, stay duration and
// outcome group. Inputs that are missing propagate as missing outputs.
func DeriveFeatures(records []domain.AnimalRecord) []domain.AnimalRecord {
	out := make([]domain.AnimalRecord, len(records))
	copy(out, records)

	for i := range out {
		r := &out[i]

		// Age at intake, only when both dates are known.
		if r.DOB != nil && r.IntakeDate != nil {
			age := r.IntakeDate.Sub(*r.DOB).Hours() / 24 / daysPerYear
			r.AgeAtIntakeYears = &age
		} else {
			r.AgeAtIntakeYears = nil
		}
		r.AgeCategory = BucketAge(r.AgeAtIntakeYears)

		// Sex split.
		r.SexBase = domain.SexUnknown
		if base, ok := sexBase[r.SexRaw]; ok {
			r.SexBase = base
		}
		r.IsSterilized = domain.TriUnknown
		if ster, ok := sexSterilized[r.SexRaw]; ok {
			r.IsSterilized = ster
		}

		// Stay duration in whole days.
		if r.IntakeDate != nil && r.OutcomeDate != nil {
			days := int(r.OutcomeDate.Sub(*r.IntakeDate).Hours() / 24)
			r.StayDurationDays = &days
		} else {
			r.StayDurationDays = nil
		}

		r.OutcomeGroup = GroupOutcome(r.OutcomeType, r.OutcomeIsCurrent)
	}

	return out
}

// BucketAge maps an age in years onto its life-stage category using
// half-open intervals: [0,1) Baby, [1,3) Young, [3,8) Adult, 8+ Senior.
// A missing age is Unknown. The upper bound of Senior is enforced by the
// validator, not here.
func BucketAge(age *float64) domain.AgeCategory {
	if age == nil {
		return domain.AgeCategoryUnknown
	}
	switch a := *age; {
	case a < 1:
		return domain.AgeCategoryBaby
	case a < 3:
		return domain.AgeCategoryYoung
	case a < 8:
		return domain.AgeCategoryAdult
	default:
		return domain.AgeCategorySenior
	}
}

// GroupOutcome buckets an outcome type. A type present in the mapping
// table always wins; otherwise an in-progress outcome or a missing type is
// No_Outcome_Yet and anything left over is Admin_or_Unknown.
func GroupOutcome(outcomeType string, isCurrent bool) domain.OutcomeGroup {
	if group, ok := outcomeGroups[outcomeType]; ok {
		return group
	}
	if isCurrent || outcomeType == "" {
		return domain.OutcomeNoOutcomeYet
	}
	return domain.OutcomeAdminUnknown
}
