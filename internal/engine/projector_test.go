package engine

import (
	"testing"
	"time"

	"github.com/termhq/termplan/internal/models"
)

func mondayClass() models.TimetableClass {
	return models.TimetableClass{
		ID:        "cls-1",
		Day:       time.Monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		ClassName: "7B Science",
	}
}

func TestOccurrencesOn(t *testing.T) {
	p := NewProjector([]models.TimetableClass{
		mondayClass(),
		{ID: "cls-2", Day: time.Wednesday, StartTime: "11:00", EndTime: "12:00", ClassName: "8A Science"},
	})

	monday := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	got := p.OccurrencesOn(monday)
	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence on Monday, got %d", len(got))
	}
	if got[0].ClassName != "7B Science" {
		t.Errorf("expected 7B Science, got %s", got[0].ClassName)
	}

	tuesday := monday.AddDate(0, 0, 1)
	if got := p.OccurrencesOn(tuesday); len(got) != 0 {
		t.Errorf("expected no occurrences on Tuesday, got %d", len(got))
	}
}

func TestOccurrencesInHour(t *testing.T) {
	p := NewProjector([]models.TimetableClass{mondayClass()})
	monday := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		hour int
		want int
	}{
		{"hour before start", 8, 0},
		{"start hour included", 9, 1},
		{"end hour excluded", 10, 0},
		{"hour after end", 11, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.OccurrencesInHour(monday, tt.hour)
			if len(got) != tt.want {
				t.Errorf("OccurrencesInHour(Monday, %d) = %d occurrences, want %d", tt.hour, len(got), tt.want)
			}
		})
	}
}

func TestOccurrencesInHourSpanningClass(t *testing.T) {
	p := NewProjector([]models.TimetableClass{
		{ID: "dbl", Day: time.Monday, StartTime: "13:00", EndTime: "15:00", ClassName: "Double Period"},
	})
	monday := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	for hour, want := range map[int]int{12: 0, 13: 1, 14: 1, 15: 0} {
		if got := len(p.OccurrencesInHour(monday, hour)); got != want {
			t.Errorf("hour %d: got %d occurrences, want %d", hour, got, want)
		}
	}
}

func TestOccurrencesSkipsUnparseableTimes(t *testing.T) {
	p := NewProjector([]models.TimetableClass{
		{ID: "bad", Day: time.Monday, StartTime: "not-a-time", EndTime: "10:00", ClassName: "Broken"},
	})
	monday := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	if got := p.OccurrencesInHour(monday, 9); len(got) != 0 {
		t.Errorf("expected unparseable class to be skipped, got %d occurrences", len(got))
	}
}
