package model

import "time"

// Age brackets accepted by the mileage planner. The wire values come from
// the frontend's dropdown and are stored verbatim.
const (
	AgeUnderTwenty = "twentyless"  // under 20
	AgeTwentyForty = "twentyforty" // the middle (default) bracket
	AgeFiftyPlus   = "fiftymore"   // 50 and older
)

// Injury flag values (a boolean-as-enum on the wire).
const (
	InjuryYes = "yes"
	InjuryNo  = "no"
)

// ValidAgeBracket reports whether age is one of the three known brackets.
func ValidAgeBracket(age string) bool {
	return age == AgeUnderTwenty || age == AgeTwentyForty || age == AgeFiftyPlus
}

// ValidInjury reports whether injury is "yes" or "no".
func ValidInjury(injury string) bool {
	return injury == InjuryYes || injury == InjuryNo
}

// MileageResult is one computed training progression. The derived fields
// (StartMileage, Jump, Weeks, and the possibly-clamped DesiredMileage) are
// produced by the planner formula and stored immutably; repeated requests
// form a per-user history.
//
// UserID may be empty; the original schema allows anonymous results.
type MileageResult struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user,omitempty"`
	Age            string    `json:"age"`
	Injury         string    `json:"injury"`
	DesiredMileage int       `json:"desired_mileage"`
	StartMileage   int       `json:"start_mileage"`
	Jump           int       `json:"jump"`
	Weeks          int       `json:"weeks"`
	CreatedAt      time.Time `json:"created_at"`
}
