package domain

import (
	"time"
)

// SexBase represents the base sex of an animal after the raw sex string
// has been split into sex and sterilization status.
type SexBase string

const (
	SexMale    SexBase = "Male"
	SexFemale  SexBase = "Female"
	SexUnknown SexBase = "Unknown"
)

// AgeCategory represents the life-stage bucket derived from age at intake.
type AgeCategory string

const (
	AgeCategoryBaby    AgeCategory = "Baby"
	AgeCategoryYoung   AgeCategory = "Young"
	AgeCategoryAdult   AgeCategory = "Adult"
	AgeCategorySenior  AgeCategory = "Senior"
	AgeCategoryUnknown AgeCategory = "Unknown"
)

// OutcomeGroup represents the coarse bucket summarizing many specific
// outcome types.
type OutcomeGroup string

const (
	OutcomePositive       OutcomeGroup = "Positive"
	OutcomeNegative       OutcomeGroup = "Negative"
	OutcomeOtherPartner   OutcomeGroup = "Other_or_Partner"
	OutcomeAdminUnknown   OutcomeGroup = "Admin_or_Unknown"
	OutcomeNoOutcomeYet   OutcomeGroup = "No_Outcome_Yet"
)

// TriState is a three-valued boolean for fields whose source encoding may
// carry no signal at all. The zero value is TriUnknown so an unparsed field
// never silently reads as false.
type TriState string

const (
	TriUnknown TriState = "unknown"
	TriTrue    TriState = "true"
	TriFalse   TriState = "false"
)

// Bool returns the underlying boolean and whether the value is known.
func (t TriState) Bool() (value, known bool) {
	switch t {
	case TriTrue:
		return true, true
	case TriFalse:
		return false, true
	default:
		return false, false
	}
}

// TriFromBool converts a known boolean into a TriState.
func TriFromBool(v bool) TriState {
	if v {
		return TriTrue
	}
	return TriFalse
}

// AnimalRecord is one cleaned intake/outcome row. Pointer fields are nullable:
// nil means the source value was missing or failed to parse.
type AnimalRecord struct {
	// Identifiers
	AnimalID string `json:"animal_id" csv:"animal_id"`
	Name     string `json:"animal_name" csv:"animal_name"`

	// Biographic
	AnimalType     string     `json:"animal_type" csv:"animal_type"`
	PrimaryColor   string     `json:"primary_color" csv:"primary_color"`
	SecondaryColor string     `json:"secondary_color" csv:"secondary_color"`
	DOB            *time.Time `json:"dob" csv:"dob"`
	SexRaw         string     `json:"sex" csv:"sex"`

	// Derived biographic
	SexBase      SexBase  `json:"sex_base" csv:"sex_base"`
	IsSterilized TriState `json:"is_sterilized" csv:"is_sterilized"`

	// Intake
	IntakeDate      *time.Time `json:"intake_date" csv:"intake_date"`
	IntakeCondition string     `json:"intake_condition" csv:"intake_condition"`
	IntakeType      string     `json:"intake_type" csv:"intake_type"`
	IntakeSubtype   string     `json:"intake_subtype" csv:"intake_subtype"`
	IntakeReason    string     `json:"reason_for_intake" csv:"reason_for_intake"`
	Jurisdiction    string     `json:"jurisdiction" csv:"jurisdiction"`
	Crossing        string     `json:"crossing" csv:"crossing"`
	IntakeIsDead    TriState   `json:"intake_is_dead" csv:"intake_is_dead"`

	// Outcome
	OutcomeDate      *time.Time `json:"outcome_date" csv:"outcome_date"`
	OutcomeType      string     `json:"outcome_type" csv:"outcome_type"`
	OutcomeSubtype   string     `json:"outcome_subtype" csv:"outcome_subtype"`
	OutcomeIsDead    TriState   `json:"outcome_is_dead" csv:"outcome_is_dead"`
	OutcomeIsCurrent bool       `json:"outcome_is_current" csv:"outcome_is_current"`

	// Derived
	OutcomeGroup     OutcomeGroup `json:"outcome_group" csv:"outcome_group"`
	AgeAtIntakeYears *float64     `json:"age_at_intake_years" csv:"age_at_intake_years"`
	AgeCategory      AgeCategory  `json:"age_category" csv:"age_category"`
	StayDurationDays *int         `json:"stay_duration_days" csv:"stay_duration_days"`
}

// HasOutcome reports whether the record has a concluded outcome.
func (r *AnimalRecord) HasOutcome() bool {
	return r.OutcomeGroup != OutcomeNoOutcomeYet
}

// UserAction is one row of the append-only user-interaction log.
type UserAction struct {
	ID       int64     `json:"id" db:"id"`
	Time     time.Time `json:"ts" db:"ts"`
	Username string    `json:"username" db:"username" validate:"required,min=1,max=64"`
	Action   string    `json:"action" db:"action" validate:"required,min=1,max=128"`
	Details  string    `json:"details,omitempty" db:"details" validate:"max=1024"`
}

// User is a dashboard account. Only the bcrypt hash of the password is stored.
type User struct {
	Username     string    `json:"username" db:"username" validate:"required,min=3,max=64"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
