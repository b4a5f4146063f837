package engine

import (
	"time"

	"github.com/termhq/termplan/internal/models"
)

// Projector projects the fixed weekly timetable onto concrete dates.
// Classes repeat forever in both directions, so any query date is valid.
type Projector struct {
	classes []models.TimetableClass
}

func NewProjector(classes []models.TimetableClass) *Projector {
	return &Projector{classes: classes}
}

// OccurrencesOn returns every class that occurs on the given date's
// weekday. An empty result is an ordinary outcome.
func (p *Projector) OccurrencesOn(date time.Time) []models.TimetableClass {
	var out []models.TimetableClass
	for _, class := range p.classes {
		if class.Day == date.Weekday() {
			out = append(out, class)
		}
	}
	return out
}

// OccurrencesInHour filters OccurrencesOn to classes whose hour range
// contains hour. The range is half-open: a class running 9:00-10:00
// occupies hour 9 but not hour 10.
func (p *Projector) OccurrencesInHour(date time.Time, hour int) []models.TimetableClass {
	var out []models.TimetableClass
	for _, class := range p.OccurrencesOn(date) {
		start := class.StartHour()
		end := class.EndHour()
		if start < 0 || end < 0 {
			continue
		}
		if hour >= start && hour < end {
			out = append(out, class)
		}
	}
	return out
}
