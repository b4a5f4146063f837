package engine

import (
	"fmt"
	"time"

	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/library"
	"github.com/termhq/termplan/internal/logger"
	"github.com/termhq/termplan/internal/models"
	"github.com/termhq/termplan/internal/storage"
)

// Engine is the scheduling facade for one class group. It wires the
// projector, overlay resolver, half-term registry and materializer over
// a shared store, and is the only entry point the TUI and CLI talk to.
//
// Query methods degrade to empty results when the store cannot be read;
// mutation methods return the error.
type Engine struct {
	store    storage.Provider
	group    string
	registry *Registry
	mat      *Materializer
}

func New(store storage.Provider, group string) *Engine {
	lib := library.NewStoreLibrary(store, group)
	registry := NewRegistry(store, group)
	return &Engine{
		store:    store,
		group:    group,
		registry: registry,
		mat:      NewMaterializer(store, lib, registry, group),
	}
}

func (e *Engine) Group() string { return e.group }

func (e *Engine) Registry() *Registry { return e.registry }

// Materialize applies a drop gesture at date (with hour for week/day
// view drops, NoHour otherwise) and returns the plans it created.
func (e *Engine) Materialize(g Gesture, date string, hour int) ([]models.LessonPlan, error) {
	return e.mat.Materialize(g, date, hour)
}

func (e *Engine) LessonPlansForDate(date string) []models.LessonPlan {
	plans, err := e.store.GetPlansForDate(e.group, date)
	if err != nil {
		logger.Warn("failed to load plans", "date", date, "err", err)
		return nil
	}
	return plans
}

func (e *Engine) EventsForDate(date string) []models.CalendarEvent {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil
	}
	return e.overlay().EventsOn(day)
}

func (e *Engine) ClassesForDay(date string) []models.TimetableClass {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil
	}
	return e.projector().OccurrencesOn(day)
}

func (e *Engine) ClassesForHour(date string, hour int) []models.TimetableClass {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil
	}
	return e.projector().OccurrencesInHour(day, hour)
}

// ClassificationOn reports how the date renders on the grid, with
// holidays taking precedence over inset days over general events.
func (e *Engine) ClassificationOn(date string) models.Classification {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return models.ClassificationNone
	}
	return e.overlay().ClassificationOn(day)
}

func (e *Engine) IsHoliday(date string) bool {
	return e.ClassificationOn(date) == models.ClassificationHoliday
}

func (e *Engine) IsInsetDay(date string) bool {
	return e.ClassificationOn(date) == models.ClassificationInset
}

func (e *Engine) WeekNumber(date string) int {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return 0
	}
	return dateutil.WeekNumber(day)
}

func (e *Engine) HalfTermOf(date string) (models.HalfTermID, error) {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return "", err
	}
	return HalfTermFor(day), nil
}

// SetPlanStatus marks an existing plan planned, completed or cancelled.
func (e *Engine) SetPlanStatus(id string, status models.PlanStatus) error {
	switch status {
	case models.PlanStatusPlanned, models.PlanStatusCompleted, models.PlanStatusCancelled:
	default:
		return fmt.Errorf("invalid plan status: %q", status)
	}
	plan, err := e.store.GetPlan(e.group, id)
	if err != nil {
		return err
	}
	plan.Status = status
	plan.UpdatedAt = time.Now()
	return e.store.SavePlan(e.group, plan)
}

// DeletePlan removes a plan. Half-term lesson assignments are left
// untouched: removing a scheduled plan does not unrecord the lesson
// from its term.
func (e *Engine) DeletePlan(id string) error {
	return e.store.DeletePlan(e.group, id)
}

func (e *Engine) overlay() *Overlay {
	events, err := e.store.GetAllEvents(e.group)
	if err != nil {
		logger.Warn("failed to load events", "err", err)
		events = nil
	}
	return NewOverlay(events)
}

func (e *Engine) projector() *Projector {
	classes, err := e.store.GetAllClasses(e.group)
	if err != nil {
		logger.Warn("failed to load classes", "err", err)
		classes = nil
	}
	return NewProjector(classes)
}
