package models

import (
	"fmt"
	"time"
)

type EventType string

const (
	EventHoliday EventType = "holiday"
	EventInset   EventType = "inset"
	EventGeneral EventType = "event"
)

// Classification is the dominant event type covering a date, used to
// decide whether ordinary scheduling is suppressed on that day.
type Classification string

const (
	ClassificationHoliday Classification = "holiday"
	ClassificationInset   Classification = "inset"
	ClassificationEvent   Classification = "event"
	ClassificationNone    Classification = "none"
)

// CalendarEvent is an ad-hoc closed date interval (inclusive both ends,
// compared at day granularity).
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	StartDate   string    `json:"start_date"` // YYYY-MM-DD
	EndDate     string    `json:"end_date"`   // YYYY-MM-DD
	Type        EventType `json:"type"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *CalendarEvent) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("event title cannot be empty")
	}

	start, err := time.Parse("2006-01-02", e.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date (expected YYYY-MM-DD): %w", err)
	}
	end, err := time.Parse("2006-01-02", e.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date (expected YYYY-MM-DD): %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", e.EndDate, e.StartDate)
	}

	switch e.Type {
	case EventHoliday, EventInset, EventGeneral:
	default:
		return fmt.Errorf("unknown event type: %q", e.Type)
	}

	return nil
}

// Precedence orders event types for classification: holiday beats inset
// beats general events. Lower is more dominant.
func (t EventType) Precedence() int {
	switch t {
	case EventHoliday:
		return 0
	case EventInset:
		return 1
	default:
		return 2
	}
}

// Classification maps the event type to the classification it produces
// when it dominates a date.
func (t EventType) Classification() Classification {
	switch t {
	case EventHoliday:
		return ClassificationHoliday
	case EventInset:
		return ClassificationInset
	default:
		return ClassificationEvent
	}
}
