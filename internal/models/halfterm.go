package models

// HalfTermID identifies one of the six fixed half-term windows of a UK
// academic year.
type HalfTermID string

const (
	HalfTermA1  HalfTermID = "A1"  // Autumn 1: September-October
	HalfTermA2  HalfTermID = "A2"  // Autumn 2: November-December
	HalfTermSP1 HalfTermID = "SP1" // Spring 1: January-February
	HalfTermSP2 HalfTermID = "SP2" // Spring 2: March-mid April
	HalfTermSM1 HalfTermID = "SM1" // Summer 1: mid April-May
	HalfTermSM2 HalfTermID = "SM2" // Summer 2: June-August
)

// HalfTerm is a static catalogue entry. The identities never change;
// only the assignment state attached to them does.
type HalfTerm struct {
	ID     HalfTermID `json:"id"`
	Name   string     `json:"name"`
	Months string     `json:"months"`
}

// HalfTermAssignment is the mutable curriculum state for one half-term:
// the ordered lesson numbers planned for it and whether the teacher has
// marked the window's planning as complete.
type HalfTermAssignment struct {
	ID         HalfTermID `json:"id"`
	Lessons    []string   `json:"lessons"`
	IsComplete bool       `json:"is_complete"`
}

// Catalogue lists the six half-terms in academic-year order.
func Catalogue() []HalfTerm {
	return []HalfTerm{
		{ID: HalfTermA1, Name: "Autumn 1", Months: "Sep-Oct"},
		{ID: HalfTermA2, Name: "Autumn 2", Months: "Nov-Dec"},
		{ID: HalfTermSP1, Name: "Spring 1", Months: "Jan-Feb"},
		{ID: HalfTermSP2, Name: "Spring 2", Months: "Mar-Apr"},
		{ID: HalfTermSM1, Name: "Summer 1", Months: "Apr-May"},
		{ID: HalfTermSM2, Name: "Summer 2", Months: "Jun-Aug"},
	}
}

// ValidHalfTermID reports whether id names one of the six windows.
func ValidHalfTermID(id HalfTermID) bool {
	switch id {
	case HalfTermA1, HalfTermA2, HalfTermSP1, HalfTermSP2, HalfTermSM1, HalfTermSM2:
		return true
	}
	return false
}
