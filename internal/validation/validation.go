package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingClasses  ConflictType = "overlapping_classes"
	ConflictOverlappingHolidays ConflictType = "overlapping_holidays"
	ConflictInvalidDateRange    ConflictType = "invalid_date_range"
	ConflictInvalidTime         ConflictType = "invalid_time"
	ConflictDuplicateLesson     ConflictType = "duplicate_lesson"
	ConflictUnknownLessonInUnit ConflictType = "unknown_lesson_in_unit"
)

// Conflict represents a detected conflict in the timetable or calendar
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Event/class/lesson names involved
	TimeRange   string   // Human-readable time range (if applicable)
	IDs         []string // IDs of the records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates timetable classes, calendar events and units for
// conflicts that individual model Validate methods cannot see because
// they need the whole collection.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateClasses checks a timetable for overlapping slots on the same
// weekday and duplicate class names in the same slot.
func (v *Validator) ValidateClasses(classes []models.TimetableClass) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	type slot struct {
		class models.TimetableClass
		start int
		end   int
	}
	byDay := make(map[time.Weekday][]slot)
	for _, class := range classes {
		start, err1 := dateutil.ParseTimeToMinutes(class.StartTime)
		end, err2 := dateutil.ParseTimeToMinutes(class.EndTime)
		if err1 != nil || err2 != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Class \"%s\" has an invalid time range: %s-%s", class.ClassName, class.StartTime, class.EndTime),
				Items:       []string{class.ClassName},
				IDs:         []string{class.ID},
			})
			continue
		}
		byDay[class.Day] = append(byDay[class.Day], slot{class: class, start: start, end: end})
	}

	for day, slots := range byDay {
		sort.Slice(slots, func(i, j int) bool {
			if slots[i].start != slots[j].start {
				return slots[i].start < slots[j].start
			}
			return slots[i].class.ID < slots[j].class.ID
		})
		for i := 0; i < len(slots); i++ {
			for j := i + 1; j < len(slots); j++ {
				if slots[j].start >= slots[i].end {
					break
				}
				a, b := slots[i].class, slots[j].class
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictOverlappingClasses,
					Description: fmt.Sprintf("Classes \"%s\" and \"%s\" overlap on %s (%s-%s and %s-%s)",
						a.ClassName, b.ClassName, day, a.StartTime, a.EndTime, b.StartTime, b.EndTime),
					Items:     []string{a.ClassName, b.ClassName},
					TimeRange: fmt.Sprintf("%s-%s", b.StartTime, a.EndTime),
					IDs:       []string{a.ID, b.ID},
				})
			}
		}
	}

	return result
}

// ValidateEvents checks calendar events for inverted date ranges and
// overlapping holiday periods.
func (v *Validator) ValidateEvents(events []models.CalendarEvent) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	type window struct {
		event models.CalendarEvent
		start time.Time
		end   time.Time
	}
	var holidays []window
	for _, event := range events {
		start, err1 := dateutil.ParseDate(event.StartDate)
		end, err2 := dateutil.ParseDate(event.EndDate)
		if err1 != nil || err2 != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateRange,
				Description: fmt.Sprintf("Event \"%s\" has invalid dates: %s to %s", event.Title, event.StartDate, event.EndDate),
				Items:       []string{event.Title},
				IDs:         []string{event.ID},
			})
			continue
		}
		if end.Before(start) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateRange,
				Description: fmt.Sprintf("Event \"%s\" ends before it starts: %s to %s", event.Title, event.StartDate, event.EndDate),
				Date:        event.StartDate,
				Items:       []string{event.Title},
				IDs:         []string{event.ID},
			})
			continue
		}
		if event.Type == models.EventHoliday {
			holidays = append(holidays, window{event: event, start: start, end: end})
		}
	}

	sort.Slice(holidays, func(i, j int) bool {
		if !holidays[i].start.Equal(holidays[j].start) {
			return holidays[i].start.Before(holidays[j].start)
		}
		return holidays[i].event.ID < holidays[j].event.ID
	})
	for i := 0; i < len(holidays); i++ {
		for j := i + 1; j < len(holidays); j++ {
			if holidays[j].start.After(holidays[i].end) {
				break
			}
			a, b := holidays[i].event, holidays[j].event
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOverlappingHolidays,
				Description: fmt.Sprintf("Holidays \"%s\" and \"%s\" overlap (%s-%s and %s-%s)",
					a.Title, b.Title, a.StartDate, a.EndDate, b.StartDate, b.EndDate),
				Date:  b.StartDate,
				Items: []string{a.Title, b.Title},
				IDs:   []string{a.ID, b.ID},
			})
		}
	}

	return result
}

// ValidateUnits checks units against the lesson library: every lesson
// number a unit references should exist, and no number should appear in
// more than one unit.
func (v *Validator) ValidateUnits(units []models.Unit, lessons []models.Lesson) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(lessons))
	for _, lesson := range lessons {
		known[lesson.Number] = true
	}

	owner := make(map[string]string)
	for _, unit := range units {
		for _, number := range unit.LessonNumbers {
			if !known[number] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictUnknownLessonInUnit,
					Description: fmt.Sprintf("Unit \"%s\" references unknown lesson %s", unit.Name, number),
					Items:       []string{unit.Name, number},
					IDs:         []string{unit.ID},
				})
			}
			if prev, ok := owner[number]; ok && prev != unit.Name {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateLesson,
					Description: fmt.Sprintf("Lesson %s appears in both \"%s\" and \"%s\"", number, prev, unit.Name),
					Items:       []string{prev, unit.Name},
					IDs:         []string{unit.ID},
				})
				continue
			}
			owner[number] = unit.Name
		}
	}

	return result
}
