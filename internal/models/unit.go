package models

import (
	"fmt"
	"time"
)

// Unit is an ordered grouping of lesson references. The order of
// LessonNumbers is the intended teaching sequence and drives sequential
// date assignment when the unit is dropped on the calendar.
type Unit struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	LessonNumbers []string  `json:"lesson_numbers"`
	Color         string    `json:"color,omitempty"`
	Term          string    `json:"term,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *Unit) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("unit name cannot be empty")
	}
	seen := make(map[string]bool, len(u.LessonNumbers))
	for _, n := range u.LessonNumbers {
		if n == "" {
			return fmt.Errorf("unit %q contains an empty lesson number", u.Name)
		}
		if seen[n] {
			return fmt.Errorf("unit %q lists lesson %s twice", u.Name, n)
		}
		seen[n] = true
	}
	return nil
}
