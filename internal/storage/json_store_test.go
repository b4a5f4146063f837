package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/termhq/termplan/internal/models"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "termplan.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store
}

func TestInitAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termplan.json")
	store := NewJSONStore(path)

	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("store file was not created")
	}

	// Init must refuse to clobber existing data.
	if err := store.Init(); err == nil {
		t.Error("expected error on double init")
	}

	fresh := NewJSONStore(path)
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	settings, err := fresh.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.ActiveGroup == "" {
		t.Error("expected default active group after init")
	}
}

func TestLoadWithoutInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("expected error when loading uninitialized storage")
	}
}

func TestOperationsWithoutLoad(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "termplan.json"))

	if _, err := store.GetAllEvents("default"); err == nil {
		t.Error("expected 'storage not loaded' error")
	}
	if err := store.AddEvent("default", models.CalendarEvent{ID: "x"}); err == nil {
		t.Error("expected 'storage not loaded' error")
	}
}

func TestEventRoundTrip(t *testing.T) {
	store := setupJSONStore(t)

	event := models.CalendarEvent{
		ID:        "ev1",
		Title:     "Half Term",
		StartDate: "2025-10-27",
		EndDate:   "2025-10-31",
		Type:      models.EventHoliday,
		CreatedAt: time.Now(),
	}
	if err := store.AddEvent("default", event); err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}

	got, err := store.GetEvent("default", "ev1")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.Title != "Half Term" || got.Type != models.EventHoliday {
		t.Errorf("unexpected event: %+v", got)
	}

	got.Title = "October Break"
	if err := store.UpdateEvent("default", got); err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	updated, _ := store.GetEvent("default", "ev1")
	if updated.Title != "October Break" {
		t.Errorf("update did not persist: %s", updated.Title)
	}

	if err := store.DeleteEvent("default", "ev1"); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if _, err := store.GetEvent("default", "ev1"); err == nil {
		t.Error("expected error for deleted event")
	}
}

func TestClassOrdering(t *testing.T) {
	store := setupJSONStore(t)

	for _, class := range []models.TimetableClass{
		{ID: "b", Day: time.Wednesday, StartTime: "09:00", EndTime: "10:00", ClassName: "Wed"},
		{ID: "a", Day: time.Monday, StartTime: "11:00", EndTime: "12:00", ClassName: "Mon late"},
		{ID: "c", Day: time.Monday, StartTime: "09:00", EndTime: "10:00", ClassName: "Mon early"},
	} {
		if err := store.AddClass("default", class); err != nil {
			t.Fatalf("AddClass failed: %v", err)
		}
	}

	classes, err := store.GetAllClasses("default")
	if err != nil {
		t.Fatalf("GetAllClasses failed: %v", err)
	}
	want := []string{"Mon early", "Mon late", "Wed"}
	for i, name := range want {
		if classes[i].ClassName != name {
			t.Fatalf("unexpected order: got %s at %d, want %s", classes[i].ClassName, i, name)
		}
	}
}

func TestPlanUpsertAndDateQuery(t *testing.T) {
	store := setupJSONStore(t)

	plan := models.LessonPlan{ID: "p1", Date: "2025-09-15", Time: "09:00", Status: models.PlanStatusPlanned}
	if err := store.SavePlan("default", plan); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	// SavePlan upserts by ID.
	plan.Status = models.PlanStatusCompleted
	if err := store.SavePlan("default", plan); err != nil {
		t.Fatalf("SavePlan upsert failed: %v", err)
	}
	all, _ := store.GetAllPlans("default")
	if len(all) != 1 {
		t.Fatalf("expected 1 plan after upsert, got %d", len(all))
	}
	if all[0].Status != models.PlanStatusCompleted {
		t.Errorf("upsert did not replace: %s", all[0].Status)
	}

	if err := store.SavePlan("default", models.LessonPlan{ID: "p2", Date: "2025-09-16", Status: models.PlanStatusPlanned}); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	byDate, err := store.GetPlansForDate("default", "2025-09-15")
	if err != nil {
		t.Fatalf("GetPlansForDate failed: %v", err)
	}
	if len(byDate) != 1 || byDate[0].ID != "p1" {
		t.Errorf("unexpected plans for date: %+v", byDate)
	}
}

func TestHalfTermDefaults(t *testing.T) {
	store := setupJSONStore(t)

	got, err := store.GetHalfTerm("default", models.HalfTermSP1)
	if err != nil {
		t.Fatalf("GetHalfTerm failed: %v", err)
	}
	if got.ID != models.HalfTermSP1 {
		t.Errorf("expected SP1, got %s", got.ID)
	}
	if len(got.Lessons) != 0 || got.IsComplete {
		t.Errorf("expected empty assignment, got %+v", got)
	}

	if err := store.SaveHalfTerm("default", models.HalfTermAssignment{
		ID: models.HalfTermA1, Lessons: []string{"L1"}, IsComplete: false,
	}); err != nil {
		t.Fatalf("SaveHalfTerm failed: %v", err)
	}

	all, err := store.GetAllHalfTerms("default")
	if err != nil {
		t.Fatalf("GetAllHalfTerms failed: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected assignments for all six half-terms, got %d", len(all))
	}
	if all[0].ID != models.HalfTermA1 || len(all[0].Lessons) != 1 {
		t.Errorf("unexpected first assignment: %+v", all[0])
	}
}

func TestGroupIsolation(t *testing.T) {
	store := setupJSONStore(t)

	if err := store.AddUnit("year7", models.Unit{ID: "u1", Name: "Forces", LessonNumbers: []string{"L1"}}); err != nil {
		t.Fatalf("AddUnit failed: %v", err)
	}

	if _, err := store.GetUnit("year8", "u1"); err == nil {
		t.Error("unit should not be visible from another class group")
	}
	units, err := store.GetAllUnits("year7")
	if err != nil {
		t.Fatalf("GetAllUnits failed: %v", err)
	}
	if len(units) != 1 {
		t.Errorf("expected 1 unit in year7, got %d", len(units))
	}
}

func TestPersistenceAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termplan.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	lesson := models.Lesson{
		Number: "L1", Title: "Forces", TotalTime: "50 mins",
		CategoryOrder: []string{"Starter"},
		Grouped: map[string][]models.Activity{
			"Starter": {{ID: "a1", Name: "Quiz", Time: "10 mins", Category: "Starter"}},
		},
	}
	if err := store.AddLesson("default", lesson); err != nil {
		t.Fatalf("AddLesson failed: %v", err)
	}

	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reloaded.GetLesson("default", "L1")
	if err != nil {
		t.Fatalf("GetLesson failed: %v", err)
	}
	if got.Title != "Forces" || len(got.FlatActivities()) != 1 {
		t.Errorf("lesson did not survive reload: %+v", got)
	}
}

func TestNewStoreDispatch(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   string
	}{
		{"json path", "/tmp/store.json", "*storage.JSONStore"},
		{"sqlite path", "/tmp/store.db", "*storage.SQLiteStore"},
		{"postgres url", "postgres://localhost/termplan", "*storage.PostgresStore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(tt.config)
			if got := typeName(store); got != tt.want {
				t.Errorf("NewStore(%q) = %s, want %s", tt.config, got, tt.want)
			}
		})
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *JSONStore:
		return "*storage.JSONStore"
	case *SQLiteStore:
		return "*storage.SQLiteStore"
	case *PostgresStore:
		return "*storage.PostgresStore"
	default:
		return "unknown"
	}
}
