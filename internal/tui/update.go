package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/termhq/termplan/internal/constants"
	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/engine"
	"github.com/termhq/termplan/internal/models"
)

var errEmptyName = errors.New("cannot be empty")

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	// Form states swallow all input until completed or aborted.
	if m.state == constants.StateAddLesson {
		return m.updateAddLesson(msg, cmds)
	}
	if m.state == constants.StateAddEvent {
		return m.updateAddEvent(msg, cmds)
	}
	if m.state == constants.StateConfirmDeletePlan {
		return m.updateConfirmDelete(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case constants.StateCalendar:
		return m.updateCalendar(keyMsg)
	case constants.StateDaySummary:
		return m.updateDaySummary(keyMsg)
	}

	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.MonthView):
		// Mode switches keep both cursors where they are.
		m.viewMode = constants.ViewMonth
	case key.Matches(msg, m.keys.WeekView):
		m.viewMode = constants.ViewWeek
	case key.Matches(msg, m.keys.DayView):
		m.viewMode = constants.ViewDay
	case key.Matches(msg, m.keys.Today):
		today := dateutil.Day(time.Now())
		m.cursor = today
		m.dayCursor = today
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursorVertical(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursorVertical(1)
	case key.Matches(msg, m.keys.PrevPeriod):
		m.movePeriod(-1)
	case key.Matches(msg, m.keys.NextPeriod):
		m.movePeriod(1)
	case key.Matches(msg, m.keys.Filter):
		m.refreshUnitCycle()
		m.cycleUnitFilter()
	case key.Matches(msg, m.keys.AddEvent):
		m.previousState = m.state
		m.state = constants.StateAddEvent
		m.formError = ""
		m.newEventForm()
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Enter):
		// A day with visible plans opens the summary; an empty (or
		// fully filtered-out) day goes straight to the add-lesson form.
		if len(m.visiblePlans(m.selectedDateStr())) > 0 {
			m.state = constants.StateDaySummary
			m.summaryIndex = 0
			return m, nil
		}
		m.previousState = m.state
		m.state = constants.StateAddLesson
		m.formError = ""
		m.newLessonForm()
		return m, m.form.Init()
	}
	return m, nil
}

// moveCursor shifts the active cursor by n days.
func (m *Model) moveCursor(n int) {
	if m.viewMode == constants.ViewDay {
		m.dayCursor = dateutil.AddDays(m.dayCursor, n)
		return
	}
	m.cursor = dateutil.AddDays(m.cursor, n)
}

// moveCursorVertical shifts by a week in month view, a day otherwise.
func (m *Model) moveCursorVertical(n int) {
	if m.viewMode == constants.ViewMonth {
		m.cursor = dateutil.AddDays(m.cursor, n*7)
		return
	}
	m.moveCursor(n)
}

// movePeriod advances by the view mode's natural unit: a month, a week
// or a day.
func (m *Model) movePeriod(n int) {
	switch m.viewMode {
	case constants.ViewMonth:
		m.cursor = m.cursor.AddDate(0, n, 0)
	case constants.ViewWeek:
		m.cursor = dateutil.AddDays(m.cursor, n*7)
	case constants.ViewDay:
		m.dayCursor = dateutil.AddDays(m.dayCursor, n)
	}
}

func (m Model) updateDaySummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	plans := m.visiblePlans(m.selectedDateStr())

	switch msg.String() {
	case "esc":
		m.state = constants.StateCalendar
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.summaryIndex > 0 {
			m.summaryIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.summaryIndex < len(plans)-1 {
			m.summaryIndex++
		}
	case key.Matches(msg, m.keys.Complete):
		if m.summaryIndex < len(plans) {
			if err := m.engine.SetPlanStatus(plans[m.summaryIndex].ID, models.PlanStatusCompleted); err == nil {
				m.updateValidationStatus()
			}
		}
	case key.Matches(msg, m.keys.Cancel):
		if m.summaryIndex < len(plans) {
			_ = m.engine.SetPlanStatus(plans[m.summaryIndex].ID, models.PlanStatusCancelled)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.summaryIndex < len(plans) {
			m.planToDeleteID = plans[m.summaryIndex].ID
			m.previousState = m.state
			m.state = constants.StateConfirmDeletePlan
		}
	case key.Matches(msg, m.keys.Enter):
		m.previousState = m.state
		m.state = constants.StateAddLesson
		m.formError = ""
		m.newLessonForm()
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		if err := m.engine.DeletePlan(m.planToDeleteID); err != nil {
			m.formError = err.Error()
		}
		m.planToDeleteID = ""
		m.summaryIndex = 0
		m.state = m.returnState()
	case "n", "N", "esc":
		m.planToDeleteID = ""
		m.state = m.returnState()
	}
	return m, nil
}

// returnState decides where a modal falls back to: the day summary if
// the selected day still has plans, otherwise the calendar.
func (m Model) returnState() constants.SessionState {
	if m.previousState == constants.StateDaySummary &&
		len(m.visiblePlans(m.selectedDateStr())) > 0 {
		return constants.StateDaySummary
	}
	return constants.StateCalendar
}

func (m Model) updateAddLesson(msg tea.Msg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.returnState()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		hour := engine.NoHour
		if hourStr := strings.TrimSpace(m.lessonForm.Hour); hourStr != "" {
			if h, err := strconv.Atoi(hourStr); err == nil && h >= 0 && h <= 23 {
				hour = h
			}
		}
		gesture := engine.Gesture{
			Kind: engine.GestureActivity,
			Activity: models.Activity{
				ID:       uuid.New().String(),
				Name:     m.lessonForm.Name,
				Time:     m.lessonForm.Duration,
				Category: m.lessonForm.Category,
			},
		}
		plans, err := m.engine.Materialize(gesture, m.selectedDateStr(), hour)
		if err != nil {
			m.formError = err.Error()
		} else if len(plans) == 0 {
			m.formError = "nothing scheduled: that day is a holiday or inset day"
		} else {
			m.formError = ""
		}
		m.state = m.returnState()
	case huh.StateAborted:
		m.state = m.returnState()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateAddEvent(msg tea.Msg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = constants.StateCalendar
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		event := models.CalendarEvent{
			ID:          uuid.New().String(),
			Title:       m.eventForm.Title,
			StartDate:   m.eventForm.StartDate,
			EndDate:     m.eventForm.EndDate,
			Type:        models.EventType(m.eventForm.Type),
			Description: m.eventForm.Description,
			CreatedAt:   time.Now(),
		}
		if err := event.Validate(); err != nil {
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		if err := m.store.AddEvent(m.engine.Group(), event); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.updateValidationStatus()
		}
		m.state = constants.StateCalendar
	case huh.StateAborted:
		m.state = constants.StateCalendar
	}
	return m, tea.Batch(cmds...)
}
