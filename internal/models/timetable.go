package models

import (
	"fmt"
	"time"
)

// TimetableClass is a fixed weekly recurring time slot. It is not tied
// to any specific date; occurrences repeat indefinitely in both
// directions.
type TimetableClass struct {
	ID        string       `json:"id"`
	Day       time.Weekday `json:"day"`        // 0=Sunday .. 6=Saturday
	StartTime string       `json:"start_time"` // HH:MM
	EndTime   string       `json:"end_time"`   // HH:MM
	ClassName string       `json:"class_name"`
	Location  string       `json:"location,omitempty"`
	Color     string       `json:"color,omitempty"`

	// RecurringUnitID is advisory metadata linking this slot to a unit
	// whose lessons it is expected to host. It never schedules anything
	// by itself; materialization is always an explicit action.
	RecurringUnitID string `json:"recurring_unit_id,omitempty"`
}

func (c *TimetableClass) Validate() error {
	if c.ClassName == "" {
		return fmt.Errorf("class name cannot be empty")
	}
	if c.Day < time.Sunday || c.Day > time.Saturday {
		return fmt.Errorf("invalid weekday: %d", c.Day)
	}

	start, err := time.Parse("15:04", c.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time (expected HH:MM): %w", err)
	}
	end, err := time.Parse("15:04", c.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time (expected HH:MM): %w", err)
	}

	// Validated at hour granularity: the grid places classes in hour rows.
	if end.Hour() <= start.Hour() {
		return fmt.Errorf("end time %s must be at least an hour after start time %s", c.EndTime, c.StartTime)
	}

	return nil
}

// StartHour returns the hour component of the start time. Returns -1 if
// the time cannot be parsed; Validate catches that case at the boundary.
func (c *TimetableClass) StartHour() int {
	t, err := time.Parse("15:04", c.StartTime)
	if err != nil {
		return -1
	}
	return t.Hour()
}

// EndHour returns the hour component of the end time, the exclusive
// bound of the slot's hour range.
func (c *TimetableClass) EndHour() int {
	t, err := time.Parse("15:04", c.EndTime)
	if err != nil {
		return -1
	}
	return t.Hour()
}
