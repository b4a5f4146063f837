package engine

import (
	"time"

	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/models"
)

// Overlay resolves ad-hoc calendar events (holidays, inset days, one-off
// events) against individual dates. Event intervals are inclusive at
// both ends and compared at day granularity.
type Overlay struct {
	events []models.CalendarEvent
}

// NewOverlay builds an overlay over the given events. Slice order is
// the insertion order used to break ties between events of equal type.
func NewOverlay(events []models.CalendarEvent) *Overlay {
	return &Overlay{events: events}
}

// EventsOn returns all events whose interval covers the given date, in
// insertion order.
func (o *Overlay) EventsOn(date time.Time) []models.CalendarEvent {
	var out []models.CalendarEvent
	for _, event := range o.events {
		start, err := dateutil.ParseDate(event.StartDate)
		if err != nil {
			continue
		}
		end, err := dateutil.ParseDate(event.EndDate)
		if err != nil {
			continue
		}
		if dateutil.ContainsDay(date, start, end) {
			out = append(out, event)
		}
	}
	return out
}

// ClassificationOn returns the dominant classification of the date:
// holiday beats inset beats event. Among events of the same type the
// first by insertion order wins, which only matters for which event's
// type is reported, not for the result.
func (o *Overlay) ClassificationOn(date time.Time) models.Classification {
	best := models.ClassificationNone
	bestPrecedence := int(^uint(0) >> 1)
	for _, event := range o.EventsOn(date) {
		if p := event.Type.Precedence(); p < bestPrecedence {
			bestPrecedence = p
			best = event.Type.Classification()
		}
	}
	return best
}

// Blocks reports whether ordinary scheduling is suppressed on the date.
// Holidays and inset days block lesson placement; plain events do not.
func (o *Overlay) Blocks(date time.Time) bool {
	switch o.ClassificationOn(date) {
	case models.ClassificationHoliday, models.ClassificationInset:
		return true
	}
	return false
}
