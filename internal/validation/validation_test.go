package validation

import (
	"testing"
	"time"

	"github.com/termhq/termplan/internal/models"
)

func TestValidateClassesOverlap(t *testing.T) {
	v := New()

	classes := []models.TimetableClass{
		{ID: "a", Day: time.Monday, StartTime: "09:00", EndTime: "10:00", ClassName: "7B Science"},
		{ID: "b", Day: time.Monday, StartTime: "09:30", EndTime: "10:30", ClassName: "8A Science"},
	}

	result := v.ValidateClasses(classes)
	if !result.HasConflicts() {
		t.Fatal("expected overlap conflict")
	}
	if result.Conflicts[0].Type != ConflictOverlappingClasses {
		t.Errorf("expected overlapping_classes, got %s", result.Conflicts[0].Type)
	}
}

func TestValidateClassesNoOverlap(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		classes []models.TimetableClass
	}{
		{
			name: "back to back",
			classes: []models.TimetableClass{
				{ID: "a", Day: time.Monday, StartTime: "09:00", EndTime: "10:00", ClassName: "7B"},
				{ID: "b", Day: time.Monday, StartTime: "10:00", EndTime: "11:00", ClassName: "8A"},
			},
		},
		{
			name: "same time different days",
			classes: []models.TimetableClass{
				{ID: "a", Day: time.Monday, StartTime: "09:00", EndTime: "10:00", ClassName: "7B"},
				{ID: "b", Day: time.Tuesday, StartTime: "09:00", EndTime: "10:00", ClassName: "8A"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateClasses(tt.classes)
			if result.HasConflicts() {
				t.Errorf("unexpected conflicts: %s", result.FormatReport())
			}
		})
	}
}

func TestValidateClassesInvalidTime(t *testing.T) {
	v := New()

	result := v.ValidateClasses([]models.TimetableClass{
		{ID: "a", Day: time.Monday, StartTime: "nonsense", EndTime: "10:00", ClassName: "7B"},
	})
	if !result.HasConflicts() {
		t.Fatal("expected invalid time conflict")
	}
	if result.Conflicts[0].Type != ConflictInvalidTime {
		t.Errorf("expected invalid_time, got %s", result.Conflicts[0].Type)
	}
}

func TestValidateEvents(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		events []models.CalendarEvent
		want   ConflictType
	}{
		{
			name: "inverted range",
			events: []models.CalendarEvent{
				{ID: "a", Title: "Backwards", StartDate: "2025-10-31", EndDate: "2025-10-27", Type: models.EventHoliday},
			},
			want: ConflictInvalidDateRange,
		},
		{
			name: "unparseable date",
			events: []models.CalendarEvent{
				{ID: "a", Title: "Broken", StartDate: "soon", EndDate: "2025-10-27", Type: models.EventGeneral},
			},
			want: ConflictInvalidDateRange,
		},
		{
			name: "overlapping holidays",
			events: []models.CalendarEvent{
				{ID: "a", Title: "October Break", StartDate: "2025-10-27", EndDate: "2025-10-31", Type: models.EventHoliday},
				{ID: "b", Title: "Extra Day", StartDate: "2025-10-31", EndDate: "2025-10-31", Type: models.EventHoliday},
			},
			want: ConflictOverlappingHolidays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateEvents(tt.events)
			if !result.HasConflicts() {
				t.Fatal("expected a conflict")
			}
			if result.Conflicts[0].Type != tt.want {
				t.Errorf("expected %s, got %s", tt.want, result.Conflicts[0].Type)
			}
		})
	}
}

func TestValidateEventsAllowsGeneralOverlap(t *testing.T) {
	v := New()

	result := v.ValidateEvents([]models.CalendarEvent{
		{ID: "a", Title: "Science Week", StartDate: "2025-09-15", EndDate: "2025-09-19", Type: models.EventGeneral},
		{ID: "b", Title: "Open Evening", StartDate: "2025-09-18", EndDate: "2025-09-18", Type: models.EventGeneral},
	})
	if result.HasConflicts() {
		t.Errorf("general events may overlap: %s", result.FormatReport())
	}
}

func TestValidateUnits(t *testing.T) {
	v := New()

	lessons := []models.Lesson{
		{Number: "L1", Title: "Forces"},
		{Number: "L2", Title: "Motion"},
	}

	units := []models.Unit{
		{ID: "u1", Name: "Physics A", LessonNumbers: []string{"L1", "L2"}},
		{ID: "u2", Name: "Physics B", LessonNumbers: []string{"L2", "L9"}},
	}

	result := v.ValidateUnits(units, lessons)
	if len(result.Conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d: %s", len(result.Conflicts), result.FormatReport())
	}

	types := map[ConflictType]bool{}
	for _, c := range result.Conflicts {
		types[c.Type] = true
	}
	if !types[ConflictUnknownLessonInUnit] {
		t.Error("expected unknown_lesson_in_unit conflict")
	}
	if !types[ConflictDuplicateLesson] {
		t.Error("expected duplicate_lesson conflict")
	}
}

func TestFormatReport(t *testing.T) {
	clean := ValidationResult{}
	if clean.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected clean report: %q", clean.FormatReport())
	}

	dirty := ValidationResult{Conflicts: []Conflict{{Description: "something overlaps"}}}
	if dirty.FormatReport() != "Conflicts detected:\n- something overlaps\n" {
		t.Errorf("unexpected report: %q", dirty.FormatReport())
	}
}
