package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/library"
	"github.com/termhq/termplan/internal/logger"
	"github.com/termhq/termplan/internal/models"
	"github.com/termhq/termplan/internal/storage"
)

type GestureKind string

const (
	// GestureActivity is a single activity dropped on a date cell.
	GestureActivity GestureKind = "activity"

	// GestureUnit assigns a whole unit starting at a date, one lesson
	// per eligible day in teaching order.
	GestureUnit GestureKind = "unit"
)

// Gesture is the tagged union of calendar drop actions. Exactly one of
// Activity/UnitID is meaningful, selected by Kind.
type Gesture struct {
	Kind     GestureKind
	Activity models.Activity
	UnitID   string
}

// NoHour marks a gesture that landed on a month-view date cell, where
// no time-of-day is implied.
const NoHour = -1

// Materializer turns drop gestures into persisted lesson plans. All
// operations are synchronous and in-memory; the only domain rejection
// is a blocked (holiday/inset) target date, surfaced as an empty result
// rather than an error.
type Materializer struct {
	store    storage.Provider
	library  library.Provider
	registry *Registry
	group    string
	now      func() time.Time
}

func NewMaterializer(store storage.Provider, lib library.Provider, registry *Registry, group string) *Materializer {
	return &Materializer{
		store:    store,
		library:  lib,
		registry: registry,
		group:    group,
		now:      time.Now,
	}
}

// Materialize applies a gesture at the given date. hour is the grid row
// for week/day view drops, or NoHour for month-view drops. The returned
// slice holds every plan created; an empty result with a nil error is
// the domain no-op (blocked date, unknown unit).
func (m *Materializer) Materialize(g Gesture, date string, hour int) ([]models.LessonPlan, error) {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	events, err := m.store.GetAllEvents(m.group)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	overlay := NewOverlay(events)

	switch g.Kind {
	case GestureActivity:
		return m.materializeActivity(g.Activity, day, hour, overlay)
	case GestureUnit:
		return m.materializeUnit(g.UnitID, day, overlay)
	default:
		return nil, fmt.Errorf("unknown gesture kind: %q", g.Kind)
	}
}

func (m *Materializer) materializeActivity(activity models.Activity, day time.Time, hour int, overlay *Overlay) ([]models.LessonPlan, error) {
	if overlay.Blocks(day) {
		// Expected outcome of a drag landing on a blocked day, not an error.
		logger.Debug("activity drop on blocked date ignored", "date", dateutil.FormatDate(day))
		return nil, nil
	}

	now := m.now()
	plan := models.LessonPlan{
		ID:         uuid.New().String(),
		Date:       dateutil.FormatDate(day),
		Week:       dateutil.WeekNumber(day),
		Activities: []models.Activity{activity},
		Duration:   activity.Time,
		Status:     models.PlanStatusPlanned,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if hour != NoHour {
		plan.Time = fmt.Sprintf("%02d:00", hour)
	}

	if err := m.store.SavePlan(m.group, plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	return []models.LessonPlan{plan}, nil
}

func (m *Materializer) materializeUnit(unitID string, start time.Time, overlay *Overlay) ([]models.LessonPlan, error) {
	unit, ok := m.library.UnitByID(unitID)
	if !ok {
		logger.Warn("unit assignment ignored: unit not found", "unit", unitID)
		return nil, nil
	}
	if len(unit.LessonNumbers) == 0 {
		return nil, nil
	}

	step := m.cadenceFor(unit.ID)
	now := m.now()

	// Build the full set first so a save failure cannot leave a partial
	// sequence behind unobserved.
	plans := make([]models.LessonPlan, 0, len(unit.LessonNumbers))
	day := step.first(start)
	for _, lessonNumber := range unit.LessonNumbers {
		for overlay.Blocks(day) {
			day = step.next(day)
		}

		plan := models.LessonPlan{
			ID:           uuid.New().String(),
			Date:         dateutil.FormatDate(day),
			Week:         dateutil.WeekNumber(day),
			ClassName:    step.className,
			Activities:   []models.Activity{},
			Status:       models.PlanStatusPlanned,
			Time:         step.startTime,
			LessonNumber: lessonNumber,
			UnitID:       unit.ID,
			UnitName:     unit.Name,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if lesson, ok := m.library.LessonByNumber(lessonNumber); ok {
			plan.Activities = lesson.FlatActivities()
			plan.Duration = lesson.TotalTime
		}
		plans = append(plans, plan)
		day = step.next(day)
	}

	for _, plan := range plans {
		if err := m.store.SavePlan(m.group, plan); err != nil {
			return nil, fmt.Errorf("failed to save plan for lesson %s: %w", plan.LessonNumber, err)
		}
	}

	// Record the unit's lessons against the half-term covering the
	// start date. Read-modify-write: existing assignments are kept and
	// missing numbers appended in unit order.
	halfTermID := HalfTermFor(start)
	assignment, err := m.registry.Get(halfTermID)
	if err != nil {
		return nil, err
	}
	merged := assignment.Lessons
	have := make(map[string]bool, len(merged))
	for _, n := range merged {
		have[n] = true
	}
	for _, n := range unit.LessonNumbers {
		if !have[n] {
			merged = append(merged, n)
			have[n] = true
		}
	}
	if err := m.registry.Assign(halfTermID, merged, assignment.IsComplete); err != nil {
		return nil, err
	}

	logger.Info("unit materialized",
		"unit", unit.Name, "lessons", len(plans),
		"start", dateutil.FormatDate(start), "half_term", string(halfTermID))
	return plans, nil
}

// cadence describes how sequential lesson dates advance during unit
// materialization: weekly on the linked timetable class's day when the
// unit has one, otherwise one lesson per consecutive calendar day.
type cadence struct {
	first     func(time.Time) time.Time
	next      func(time.Time) time.Time
	className string
	startTime string
}

func (m *Materializer) cadenceFor(unitID string) cadence {
	classes, err := m.store.GetAllClasses(m.group)
	if err == nil {
		for _, class := range classes {
			if class.RecurringUnitID == unitID {
				weekday := class.Day
				return cadence{
					first: func(t time.Time) time.Time {
						for t.Weekday() != weekday {
							t = dateutil.AddDays(t, 1)
						}
						return t
					},
					next: func(t time.Time) time.Time {
						return dateutil.AddDays(t, 7)
					},
					className: class.ClassName,
					startTime: class.StartTime,
				}
			}
		}
	}
	return cadence{
		first: func(t time.Time) time.Time { return t },
		next: func(t time.Time) time.Time {
			return dateutil.AddDays(t, 1)
		},
	}
}
