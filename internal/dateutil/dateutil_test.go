package dateutil

import (
	"testing"
	"time"
)

func TestContainsDay(t *testing.T) {
	start := time.Date(2025, 10, 27, 9, 30, 0, 0, time.UTC)
	end := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{
			name: "start boundary is inclusive",
			d:    time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "end boundary is inclusive",
			d:    time.Date(2025, 10, 31, 23, 59, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "inside the range",
			d:    time.Date(2025, 10, 29, 12, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "day before start",
			d:    time.Date(2025, 10, 26, 23, 59, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "day after end",
			d:    time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsDay(tt.d, start, end); got != tt.want {
				t.Errorf("ContainsDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainsDayIgnoresTimeOfDay(t *testing.T) {
	// An event created late in the evening of its own start day must
	// still cover a query at midnight of that day.
	start := time.Date(2025, 9, 1, 22, 15, 0, 0, time.UTC)
	end := time.Date(2025, 9, 1, 22, 15, 0, 0, time.UTC)
	d := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	if !ContainsDay(d, start, end) {
		t.Errorf("expected single-day range to cover its own day regardless of clock time")
	}
}

func TestWeekNumber(t *testing.T) {
	tests := []struct {
		name string
		date string
		want int
	}{
		{"first week of 2025", "2025-01-01", 1},
		{"mid September 2025", "2025-09-15", 38},
		{"last ISO week spills into January", "2024-12-30", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.date)
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.date, err)
			}
			if got := WeekNumber(d); got != tt.want {
				t.Errorf("WeekNumber(%s) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"monday maps to itself", "2025-09-15", "2025-09-15"},
		{"wednesday maps back to monday", "2025-09-17", "2025-09-15"},
		{"sunday maps back six days", "2025-09-21", "2025-09-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.date)
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.date, err)
			}
			if got := FormatDate(StartOfWeek(d)); got != tt.want {
				t.Errorf("StartOfWeek(%s) = %s, want %s", tt.date, got, tt.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2025-02-10", 28},
		{"2024-02-10", 29},
		{"2025-09-01", 30},
		{"2025-10-31", 31},
	}

	for _, tt := range tests {
		d, err := ParseDate(tt.date)
		if err != nil {
			t.Fatalf("ParseDate(%q) failed: %v", tt.date, err)
		}
		if got := DaysInMonth(d); got != tt.want {
			t.Errorf("DaysInMonth(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		timeStr string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.timeStr)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.timeStr, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.timeStr, got, tt.want)
		}
	}
}
