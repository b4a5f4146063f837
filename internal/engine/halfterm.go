package engine

import (
	"fmt"
	"time"

	"github.com/termhq/termplan/internal/constants"
	"github.com/termhq/termplan/internal/models"
	"github.com/termhq/termplan/internal/storage"
)

// HalfTermFor maps any date to exactly one of the six fixed half-term
// windows. The mapping is month-based except the SP2/SM1 boundary,
// which falls mid-April: April 1-14 belong to SP2, April 15 onward to
// SM1. August is folded into SM2 so the partition of the year is total,
// with no gaps and no overlaps.
func HalfTermFor(date time.Time) models.HalfTermID {
	switch date.Month() {
	case time.September, time.October:
		return models.HalfTermA1
	case time.November, time.December:
		return models.HalfTermA2
	case time.January, time.February:
		return models.HalfTermSP1
	case time.March:
		return models.HalfTermSP2
	case time.April:
		if date.Day() < constants.SummerCutoffDay {
			return models.HalfTermSP2
		}
		return models.HalfTermSM1
	case time.May:
		return models.HalfTermSM1
	default: // June, July, August
		return models.HalfTermSM2
	}
}

// Registry tracks which curriculum lessons are assigned to which
// half-term, and the per-window planning-complete flag. Assignment is
// deliberately decoupled from calendar placement: a lesson can sit in a
// half-term's ordered list long before any dated plan exists for it,
// and deleting a plan never removes the lesson from its half-term.
type Registry struct {
	store storage.Provider
	group string
}

func NewRegistry(store storage.Provider, group string) *Registry {
	return &Registry{
		store: store,
		group: group,
	}
}

// Assign replaces the ordered lesson list and completion flag for a
// half-term. This is a full replace, not a merge; callers read, modify
// and write back. An empty lesson list always forces the completion
// flag off regardless of what the caller asked for.
func (r *Registry) Assign(id models.HalfTermID, lessons []string, isComplete bool) error {
	if !models.ValidHalfTermID(id) {
		return fmt.Errorf("unknown half-term: %s", id)
	}
	if lessons == nil {
		lessons = []string{}
	}
	if len(lessons) == 0 {
		isComplete = false
	}
	return r.store.SaveHalfTerm(r.group, models.HalfTermAssignment{
		ID:         id,
		Lessons:    lessons,
		IsComplete: isComplete,
	})
}

// Get returns the assignment state for a half-term. A window with no
// stored state comes back as an empty assignment.
func (r *Registry) Get(id models.HalfTermID) (models.HalfTermAssignment, error) {
	if !models.ValidHalfTermID(id) {
		return models.HalfTermAssignment{}, fmt.Errorf("unknown half-term: %s", id)
	}
	return r.store.GetHalfTerm(r.group, id)
}

// LessonsFor returns the ordered lesson numbers assigned to a
// half-term. Unknown ids and store failures degrade to an empty list.
func (r *Registry) LessonsFor(id models.HalfTermID) []string {
	assignment, err := r.Get(id)
	if err != nil {
		return []string{}
	}
	return assignment.Lessons
}

// All returns assignment state for all six half-terms in academic-year
// order.
func (r *Registry) All() ([]models.HalfTermAssignment, error) {
	return r.store.GetAllHalfTerms(r.group)
}

// RemoveLesson filters a lesson number out of a half-term's list. It
// never touches lesson plans: a dated plan for the removed lesson stays
// on the calendar until the caller deletes it explicitly.
func (r *Registry) RemoveLesson(id models.HalfTermID, lessonNumber string) error {
	assignment, err := r.Get(id)
	if err != nil {
		return err
	}
	filtered := make([]string, 0, len(assignment.Lessons))
	for _, n := range assignment.Lessons {
		if n != lessonNumber {
			filtered = append(filtered, n)
		}
	}
	return r.Assign(id, filtered, assignment.IsComplete)
}

// Reorder moves the lesson at index from to index to within a
// half-term's ordered list. Dates of existing lesson plans are not
// affected; order is curriculum sequence, not schedule.
func (r *Registry) Reorder(id models.HalfTermID, from, to int) error {
	assignment, err := r.Get(id)
	if err != nil {
		return err
	}
	reordered, err := spliceReorder(assignment.Lessons, from, to)
	if err != nil {
		return err
	}
	return r.Assign(id, reordered, assignment.IsComplete)
}

func spliceReorder(lessons []string, from, to int) ([]string, error) {
	if from < 0 || from >= len(lessons) {
		return nil, fmt.Errorf("reorder source index out of range: %d", from)
	}
	if to < 0 || to >= len(lessons) {
		return nil, fmt.Errorf("reorder target index out of range: %d", to)
	}

	out := make([]string, 0, len(lessons))
	out = append(out, lessons[:from]...)
	out = append(out, lessons[from+1:]...)

	moved := lessons[from]
	out = append(out[:to], append([]string{moved}, out[to:]...)...)
	return out, nil
}
