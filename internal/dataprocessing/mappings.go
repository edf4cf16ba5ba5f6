package dataprocessing

import (
	"shelterpulse/pkg/contracts/domain"
)

// defaultFillValue replaces missing values in the nominated text columns.
const defaultFillValue = "Unknown"

// typoCorrections maps known typos in the source export to their canonical
// spelling, per column. Keys are the values as they appear after
// normalization. Kept as an explicit table so corrections stay auditable.
var typoCorrections = map[string]map[string]string{
	"intake_condition": {
		"Ill Moderatete": "Ill Moderate",
		"Ill Severee":    "Ill Severe",
	},
	"intake_type": {
		"Owner Surender": "Owner Surrender",
	},
}

// outcomeGroups maps every observed outcome_type value to its coarse bucket.
// Values absent from the table fall into Admin_or_Unknown; a missing
// outcome_type with no recorded outcome becomes No_Outcome_Yet upstream.
var outcomeGroups = map[string]domain.OutcomeGroup{
	// Positive: the animal left alive to a home or habitat.
	"Adoption":               domain.OutcomePositive,
	"Return To Owner":        domain.OutcomePositive,
	"Community Cat":          domain.OutcomePositive,
	"Return To Wild Habitat": domain.OutcomePositive,
	"Homefirst":              domain.OutcomePositive,
	"Foster To Adopt":        domain.OutcomePositive,

	// Negative: the animal died in care.
	"Euthanasia": domain.OutcomeNegative,
	"Died":       domain.OutcomeNegative,
	"Disposal":   domain.OutcomeNegative,

	// Other/Partner: handed to another organization.
	"Transfer":                domain.OutcomeOtherPartner,
	"Rescue":                  domain.OutcomeOtherPartner,
	"Transport":               domain.OutcomeOtherPartner,
	"Shelter, Neuter, Return": domain.OutcomeOtherPartner,

	// Admin/Unknown: bookkeeping rather than a real outcome.
	"Missing":   domain.OutcomeAdminUnknown,
	"Duplicate": domain.OutcomeAdminUnknown,
}

// sexBase maps recognized raw sex values to the base sex. Anything not in
// the table reads as Unknown.
var sexBase = map[string]domain.SexBase{
	"Male":     domain.SexMale,
	"Female":   domain.SexFemale,
	"Neutered": domain.SexMale,
	"Spayed":   domain.SexFemale,
	"Unknown":  domain.SexUnknown,
}

// sexSterilized maps raw sex values that carry a sterilization signal.
// "Male"/"Female" assume intact per the source convention; values with no
// signal stay unknown.
var sexSterilized = map[string]domain.TriState{
	"Neutered": domain.TriTrue,
	"Spayed":   domain.TriTrue,
	"Male":     domain.TriFalse,
	"Female":   domain.TriFalse,
}
