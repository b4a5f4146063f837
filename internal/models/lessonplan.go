package models

import "time"

type PlanStatus string

const (
	PlanStatusPlanned   PlanStatus = "planned"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusCancelled PlanStatus = "cancelled"
)

// Activity is a single component of a lesson as provided by the content
// library: a named block of work with an expected duration. Durations are
// free text ("10 mins") supplied by the library; the engine carries them
// through without interpreting them.
type Activity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Time     string `json:"time,omitempty"`
	Category string `json:"category,omitempty"`
}

// LessonPlan is the materialized, dated occurrence of a lesson. Date is
// the sole key used for grid placement; several plans may share a date,
// each under its own ID.
type LessonPlan struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"` // YYYY-MM-DD
	Week       int        `json:"week"` // ISO week number of Date
	ClassName  string     `json:"class_name,omitempty"`
	Activities []Activity `json:"activities"`
	Duration   string     `json:"duration,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Status     PlanStatus `json:"status"`
	Time       string     `json:"time,omitempty"` // HH:MM, set for week/day view drops

	// Optional references back into the content library. A plan survives
	// deletion of what it references; lookups degrade to empty results.
	LessonNumber string `json:"lesson_number,omitempty"`
	UnitID       string `json:"unit_id,omitempty"`
	UnitName     string `json:"unit_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lesson is the content library's view of a numbered lesson: activities
// grouped by category, in the category order the library prescribes.
type Lesson struct {
	Number        string                `json:"number"`
	Title         string                `json:"title"`
	TotalTime     string                `json:"total_time,omitempty"`
	CategoryOrder []string              `json:"category_order"`
	Grouped       map[string][]Activity `json:"grouped"`
}

// FlatActivities returns the lesson's activities in category order.
func (l *Lesson) FlatActivities() []Activity {
	var out []Activity
	for _, cat := range l.CategoryOrder {
		out = append(out, l.Grouped[cat]...)
	}
	return out
}
