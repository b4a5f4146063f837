package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/termhq/termplan/internal/constants"
	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/engine"
	"github.com/termhq/termplan/internal/models"
	"github.com/termhq/termplan/internal/storage"
	"github.com/termhq/termplan/internal/validation"
)

type LessonFormModel struct {
	Name     string
	Duration string
	Category string
	Hour     string
}

type EventFormModel struct {
	Title       string
	StartDate   string
	EndDate     string
	Type        string
	Description string
}

// Model is the calendar TUI. Two cursors track position independently:
// cursor drives the month and week projections, dayCursor drives the
// day projection. Switching view modes never moves either one; only
// "today" resets them both.
type Model struct {
	store         storage.Provider
	engine        *engine.Engine
	state         constants.SessionState
	previousState constants.SessionState
	viewMode      constants.ViewMode
	cursor        time.Time
	dayCursor     time.Time
	unitFilter    string
	unitCycle     []string

	keys KeyMap
	help help.Model

	form       *huh.Form
	lessonForm *LessonFormModel
	eventForm  *EventFormModel
	formError  string

	summaryIndex   int
	planToDeleteID string

	validationConflicts []validation.Conflict

	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, eng *engine.Engine) Model {
	today := dateutil.Day(time.Now())

	m := Model{
		store:     store,
		engine:    eng,
		state:     constants.StateCalendar,
		viewMode:  constants.ViewMonth,
		cursor:    today,
		dayCursor: today,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
	m.refreshUnitCycle()
	m.updateValidationStatus()
	return m
}

// selectedDate is the date the current view mode's cursor points at.
func (m Model) selectedDate() time.Time {
	if m.viewMode == constants.ViewDay {
		return m.dayCursor
	}
	return m.cursor
}

func (m Model) selectedDateStr() string {
	return dateutil.FormatDate(m.selectedDate())
}

// refreshUnitCycle rebuilds the unit filter rotation: "" (no filter)
// followed by each unit id in store order.
func (m *Model) refreshUnitCycle() {
	cycle := []string{""}
	units, err := m.store.GetAllUnits(m.engine.Group())
	if err == nil {
		for _, unit := range units {
			cycle = append(cycle, unit.ID)
		}
	}
	m.unitCycle = cycle
	// Keep the active filter only if it still exists.
	found := false
	for _, id := range cycle {
		if id == m.unitFilter {
			found = true
			break
		}
	}
	if !found {
		m.unitFilter = ""
	}
}

func (m *Model) cycleUnitFilter() {
	if len(m.unitCycle) == 0 {
		m.unitFilter = ""
		return
	}
	current := 0
	for i, id := range m.unitCycle {
		if id == m.unitFilter {
			current = i
			break
		}
	}
	m.unitFilter = m.unitCycle[(current+1)%len(m.unitCycle)]
}

func (m *Model) updateValidationStatus() {
	validator := validation.New()

	var conflicts []validation.Conflict
	if classes, err := m.store.GetAllClasses(m.engine.Group()); err == nil {
		conflicts = append(conflicts, validator.ValidateClasses(classes).Conflicts...)
	}
	if events, err := m.store.GetAllEvents(m.engine.Group()); err == nil {
		conflicts = append(conflicts, validator.ValidateEvents(events).Conflicts...)
	}
	m.validationConflicts = conflicts
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateCalendar:
		keys = append(keys, m.keys.Enter, m.keys.Today, m.keys.MonthView, m.keys.WeekView, m.keys.DayView, m.keys.AddEvent)
	case constants.StateDaySummary:
		keys = append(keys, m.keys.Complete, m.keys.Cancel, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.Help, m.keys.Today}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.PrevPeriod, m.keys.NextPeriod}
	modes := []key.Binding{m.keys.MonthView, m.keys.WeekView, m.keys.DayView}
	actions := []key.Binding{m.keys.Enter, m.keys.AddEvent, m.keys.Filter, m.keys.Complete, m.keys.Cancel, m.keys.Delete}
	return [][]key.Binding{global, navigation, modes, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// visiblePlans is the date's plan list with the unit filter applied. An
// active filter hides every plan belonging to other units (or to none).
func (m Model) visiblePlans(date string) []models.LessonPlan {
	plans := m.engine.LessonPlansForDate(date)
	if m.unitFilter == "" {
		return plans
	}
	var visible []models.LessonPlan
	for _, plan := range plans {
		if plan.UnitID == m.unitFilter {
			visible = append(visible, plan)
		}
	}
	return visible
}

// plansMatchFilter reports whether any plan on the date belongs to the
// active unit filter.
func (m Model) plansMatchFilter(date string) bool {
	if m.unitFilter == "" {
		return false
	}
	return len(m.visiblePlans(date)) > 0
}

func (m *Model) newLessonForm() {
	m.lessonForm = &LessonFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity").
				Value(&m.lessonForm.Name).
				Validate(func(s string) error {
					if s == "" {
						return errEmptyName
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration (e.g. 20 mins)").
				Value(&m.lessonForm.Duration),
			huh.NewInput().
				Title("Category").
				Value(&m.lessonForm.Category),
			huh.NewInput().
				Title("Hour (optional, e.g. 9)").
				Value(&m.lessonForm.Hour),
		),
	)
}

func (m *Model) newEventForm() {
	selected := m.selectedDateStr()
	m.eventForm = &EventFormModel{
		StartDate: selected,
		EndDate:   selected,
		Type:      string(models.EventGeneral),
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&m.eventForm.Title).
				Validate(func(s string) error {
					if s == "" {
						return errEmptyName
					}
					return nil
				}),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD)").
				Value(&m.eventForm.StartDate),
			huh.NewInput().
				Title("End date (YYYY-MM-DD)").
				Value(&m.eventForm.EndDate),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("General", string(models.EventGeneral)),
					huh.NewOption("Holiday", string(models.EventHoliday)),
					huh.NewOption("Inset day", string(models.EventInset)),
				).
				Value(&m.eventForm.Type),
			huh.NewInput().
				Title("Description").
				Value(&m.eventForm.Description),
		),
	)
}
