package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termhq/termplan/internal/constants"
	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/engine"
	"github.com/termhq/termplan/internal/models"
	"github.com/termhq/termplan/internal/storage"
)

func newTestModel(t *testing.T) (Model, storage.Provider) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "termplan.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	eng := engine.New(store, constants.DefaultClassGroup)
	return NewModel(store, eng), store
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func updateModel(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned unexpected model type %T", updated)
	}
	return next
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)

	if m.state != constants.StateCalendar {
		t.Errorf("expected calendar state, got %v", m.state)
	}
	if m.viewMode != constants.ViewMonth {
		t.Errorf("expected month view, got %v", m.viewMode)
	}

	today := dateutil.Day(time.Now())
	if !dateutil.SameDay(m.cursor, today) {
		t.Errorf("expected cursor on today, got %s", m.cursor)
	}
	if !dateutil.SameDay(m.dayCursor, today) {
		t.Errorf("expected day cursor on today, got %s", m.dayCursor)
	}
}

func TestViewModeSwitchPreservesCursors(t *testing.T) {
	m, _ := newTestModel(t)

	// Move the month cursor a week forward, then the day cursor is
	// still independent of it.
	m = updateModel(t, m, keyPress('j'))
	movedCursor := m.cursor

	m = updateModel(t, m, keyPress('d'))
	if m.viewMode != constants.ViewDay {
		t.Fatalf("expected day view, got %v", m.viewMode)
	}
	if !dateutil.SameDay(m.dayCursor, dateutil.Day(time.Now())) {
		t.Error("day cursor moved on mode switch")
	}

	m = updateModel(t, m, keyPress('m'))
	if !dateutil.SameDay(m.cursor, movedCursor) {
		t.Error("month cursor moved on mode switch")
	}
}

func TestTodayResetsBothCursors(t *testing.T) {
	m, _ := newTestModel(t)

	m = updateModel(t, m, keyPress(']')) // next month
	m = updateModel(t, m, keyPress('d'))
	m = updateModel(t, m, keyPress(']')) // next day
	m = updateModel(t, m, keyPress('t'))

	today := dateutil.Day(time.Now())
	if !dateutil.SameDay(m.cursor, today) {
		t.Errorf("month cursor not reset: %s", m.cursor)
	}
	if !dateutil.SameDay(m.dayCursor, today) {
		t.Errorf("day cursor not reset: %s", m.dayCursor)
	}
}

func TestPeriodNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	start := m.cursor

	m = updateModel(t, m, keyPress(']'))
	if !dateutil.SameDay(m.cursor, start.AddDate(0, 1, 0)) {
		t.Errorf("expected next month, got %s", m.cursor)
	}
	m = updateModel(t, m, keyPress('['))
	if !dateutil.SameDay(m.cursor, start) {
		t.Errorf("expected cursor back at start, got %s", m.cursor)
	}

	m = updateModel(t, m, keyPress('w'))
	m = updateModel(t, m, keyPress(']'))
	if !dateutil.SameDay(m.cursor, dateutil.AddDays(start, 7)) {
		t.Errorf("expected next week, got %s", m.cursor)
	}

	m = updateModel(t, m, keyPress('d'))
	dayStart := m.dayCursor
	m = updateModel(t, m, keyPress(']'))
	if !dateutil.SameDay(m.dayCursor, dateutil.AddDays(dayStart, 1)) {
		t.Errorf("expected next day, got %s", m.dayCursor)
	}
}

func TestEnterOnEmptyDayOpensLessonForm(t *testing.T) {
	m, _ := newTestModel(t)

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != constants.StateAddLesson {
		t.Errorf("expected add-lesson form on empty day, got %v", m.state)
	}
	if m.form == nil {
		t.Error("expected a form to be initialized")
	}
}

func TestEnterOnPlannedDayOpensSummary(t *testing.T) {
	m, store := newTestModel(t)

	plan := models.LessonPlan{
		ID:     "p1",
		Date:   dateutil.FormatDate(m.cursor),
		Status: models.PlanStatusPlanned,
	}
	if err := store.SavePlan(constants.DefaultClassGroup, plan); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != constants.StateDaySummary {
		t.Errorf("expected day summary, got %v", m.state)
	}
}

func TestDeletePlanConfirmFlow(t *testing.T) {
	m, store := newTestModel(t)

	plan := models.LessonPlan{
		ID:     "p1",
		Date:   dateutil.FormatDate(m.cursor),
		Status: models.PlanStatusPlanned,
	}
	if err := store.SavePlan(constants.DefaultClassGroup, plan); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = updateModel(t, m, keyPress('x'))
	if m.state != constants.StateConfirmDeletePlan {
		t.Fatalf("expected confirm state, got %v", m.state)
	}

	// Declining keeps the plan.
	m = updateModel(t, m, keyPress('n'))
	if m.state != constants.StateDaySummary {
		t.Errorf("expected return to summary, got %v", m.state)
	}
	if _, err := store.GetPlan(constants.DefaultClassGroup, "p1"); err != nil {
		t.Fatalf("plan should still exist: %v", err)
	}

	m = updateModel(t, m, keyPress('x'))
	m = updateModel(t, m, keyPress('y'))
	if _, err := store.GetPlan(constants.DefaultClassGroup, "p1"); err == nil {
		t.Error("plan should be deleted")
	}
	// The day is empty now, so the modal falls back to the calendar.
	if m.state != constants.StateCalendar {
		t.Errorf("expected calendar after deleting last plan, got %v", m.state)
	}
}

func TestCompletePlanFromSummary(t *testing.T) {
	m, store := newTestModel(t)

	plan := models.LessonPlan{
		ID:     "p1",
		Date:   dateutil.FormatDate(m.cursor),
		Status: models.PlanStatusPlanned,
	}
	if err := store.SavePlan(constants.DefaultClassGroup, plan); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = updateModel(t, m, keyPress('c'))

	got, err := store.GetPlan(constants.DefaultClassGroup, "p1")
	if err != nil {
		t.Fatalf("failed to get plan: %v", err)
	}
	if got.Status != models.PlanStatusCompleted {
		t.Errorf("expected completed, got %s", got.Status)
	}
}

func TestUnitFilterCycle(t *testing.T) {
	m, store := newTestModel(t)

	for _, unit := range []models.Unit{
		{ID: "u1", Name: "Physics A", LessonNumbers: []string{"L1"}},
		{ID: "u2", Name: "Physics B", LessonNumbers: []string{"L2"}},
	} {
		if err := store.AddUnit(constants.DefaultClassGroup, unit); err != nil {
			t.Fatalf("failed to add unit: %v", err)
		}
	}

	m = updateModel(t, m, keyPress('u'))
	if m.unitFilter != "u1" {
		t.Errorf("expected filter u1, got %q", m.unitFilter)
	}
	m = updateModel(t, m, keyPress('u'))
	if m.unitFilter != "u2" {
		t.Errorf("expected filter u2, got %q", m.unitFilter)
	}
	m = updateModel(t, m, keyPress('u'))
	if m.unitFilter != "" {
		t.Errorf("expected filter cleared, got %q", m.unitFilter)
	}
}

func TestUnitFilterHidesOtherPlans(t *testing.T) {
	m, store := newTestModel(t)

	if err := store.AddUnit(constants.DefaultClassGroup, models.Unit{
		ID: "u1", Name: "Physics A", LessonNumbers: []string{"L1"},
	}); err != nil {
		t.Fatalf("failed to add unit: %v", err)
	}

	date := dateutil.FormatDate(m.cursor)
	for _, plan := range []models.LessonPlan{
		{ID: "p1", Date: date, UnitID: "u1", LessonNumber: "L1", Status: models.PlanStatusPlanned},
		{ID: "p2", Date: date, Status: models.PlanStatusPlanned},
	} {
		if err := store.SavePlan(constants.DefaultClassGroup, plan); err != nil {
			t.Fatalf("failed to save plan: %v", err)
		}
	}

	if got := len(m.visiblePlans(date)); got != 2 {
		t.Fatalf("expected 2 visible plans without filter, got %d", got)
	}

	m = updateModel(t, m, keyPress('u'))
	if m.unitFilter != "u1" {
		t.Fatalf("expected filter u1, got %q", m.unitFilter)
	}

	visible := m.visiblePlans(date)
	if len(visible) != 1 || visible[0].ID != "p1" {
		t.Errorf("expected only the u1 plan to be visible, got %v", visible)
	}
}

func TestEnterOnFilteredOutDayOpensLessonForm(t *testing.T) {
	m, store := newTestModel(t)

	if err := store.AddUnit(constants.DefaultClassGroup, models.Unit{
		ID: "u1", Name: "Physics A", LessonNumbers: []string{"L1"},
	}); err != nil {
		t.Fatalf("failed to add unit: %v", err)
	}

	// The only plan on the day belongs to no unit, so an active filter
	// hides it.
	plan := models.LessonPlan{
		ID:     "p1",
		Date:   dateutil.FormatDate(m.cursor),
		Status: models.PlanStatusPlanned,
	}
	if err := store.SavePlan(constants.DefaultClassGroup, plan); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}

	m = updateModel(t, m, keyPress('u'))
	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != constants.StateAddLesson {
		t.Errorf("expected add-lesson form on filtered-out day, got %v", m.state)
	}
}

func TestAddEventKeyOpensForm(t *testing.T) {
	m, _ := newTestModel(t)

	m = updateModel(t, m, keyPress('e'))
	if m.state != constants.StateAddEvent {
		t.Errorf("expected add-event state, got %v", m.state)
	}
	if m.eventForm == nil {
		t.Fatal("expected event form model")
	}
	if m.eventForm.StartDate != dateutil.FormatDate(m.cursor) {
		t.Errorf("expected start date prefilled with cursor, got %s", m.eventForm.StartDate)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(keyPress('q'))
	next := updated.(Model)
	if !next.quitting {
		t.Error("expected quitting flag")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}
