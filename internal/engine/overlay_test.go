package engine

import (
	"testing"
	"time"

	"github.com/termhq/termplan/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEventsOnInclusiveBoundaries(t *testing.T) {
	o := NewOverlay([]models.CalendarEvent{
		{ID: "hol", Title: "Half Term Break", StartDate: "2025-10-27", EndDate: "2025-10-31", Type: models.EventHoliday},
	})

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"day before start", day(2025, 10, 26), 0},
		{"start date", day(2025, 10, 27), 1},
		{"mid range", day(2025, 10, 29), 1},
		{"end date", day(2025, 10, 31), 1},
		{"day after end", day(2025, 11, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(o.EventsOn(tt.date)); got != tt.want {
				t.Errorf("EventsOn(%s) = %d events, want %d", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestClassificationPrecedence(t *testing.T) {
	// All three overlap on 2025-12-19. The holiday wins regardless of
	// insertion order.
	o := NewOverlay([]models.CalendarEvent{
		{ID: "ev", Title: "Carol Concert", StartDate: "2025-12-19", EndDate: "2025-12-19", Type: models.EventGeneral},
		{ID: "ins", Title: "INSET", StartDate: "2025-12-19", EndDate: "2025-12-19", Type: models.EventInset},
		{ID: "hol", Title: "Christmas Break", StartDate: "2025-12-19", EndDate: "2026-01-02", Type: models.EventHoliday},
	})

	if got := o.ClassificationOn(day(2025, 12, 19)); got != models.ClassificationHoliday {
		t.Errorf("expected holiday classification, got %s", got)
	}
}

func TestClassificationOn(t *testing.T) {
	o := NewOverlay([]models.CalendarEvent{
		{ID: "ins", Title: "INSET", StartDate: "2025-09-01", EndDate: "2025-09-01", Type: models.EventInset},
		{ID: "ev", Title: "Open Evening", StartDate: "2025-09-18", EndDate: "2025-09-18", Type: models.EventGeneral},
	})

	tests := []struct {
		name string
		date time.Time
		want models.Classification
	}{
		{"inset day", day(2025, 9, 1), models.ClassificationInset},
		{"general event", day(2025, 9, 18), models.ClassificationEvent},
		{"plain day", day(2025, 9, 2), models.ClassificationNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.ClassificationOn(tt.date); got != tt.want {
				t.Errorf("ClassificationOn(%s) = %s, want %s", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestBlocks(t *testing.T) {
	o := NewOverlay([]models.CalendarEvent{
		{ID: "hol", Title: "Break", StartDate: "2025-10-27", EndDate: "2025-10-31", Type: models.EventHoliday},
		{ID: "ins", Title: "INSET", StartDate: "2025-11-03", EndDate: "2025-11-03", Type: models.EventInset},
		{ID: "ev", Title: "Sports Day", StartDate: "2025-11-04", EndDate: "2025-11-04", Type: models.EventGeneral},
	})

	if !o.Blocks(day(2025, 10, 28)) {
		t.Error("holiday should block scheduling")
	}
	if !o.Blocks(day(2025, 11, 3)) {
		t.Error("inset day should block scheduling")
	}
	if o.Blocks(day(2025, 11, 4)) {
		t.Error("general event should not block scheduling")
	}
	if o.Blocks(day(2025, 11, 5)) {
		t.Error("plain day should not block scheduling")
	}
}
