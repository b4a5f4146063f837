package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/termhq/termplan/internal/constants"
	"github.com/termhq/termplan/internal/dateutil"
	"github.com/termhq/termplan/internal/engine"
	"github.com/termhq/termplan/internal/models"
)

const (
	firstGridHour = 8
	lastGridHour  = 17
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateCalendar, constants.StateDaySummary:
		switch m.viewMode {
		case constants.ViewMonth:
			content = m.viewMonth()
		case constants.ViewWeek:
			content = m.viewWeek()
		case constants.ViewDay:
			content = m.viewDay()
		}
		if m.state == constants.StateDaySummary {
			content = lipgloss.JoinVertical(lipgloss.Left, content, m.viewDaySummary())
		}
	case constants.StateAddLesson, constants.StateAddEvent:
		content = m.form.View()
	case constants.StateConfirmDeletePlan:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewHeader()}
	if banner := m.viewConflictBanner(); banner != "" {
		sections = append(sections, banner)
	}
	if m.formError != "" {
		sections = append(sections, dangerStyle.Render("✗ "+m.formError))
	}
	sections = append(sections, content, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	selected := m.selectedDate()

	var period string
	switch m.viewMode {
	case constants.ViewMonth:
		period = selected.Format("January 2006")
	case constants.ViewWeek:
		start := dateutil.StartOfWeek(selected)
		period = fmt.Sprintf("Week %d: %s – %s",
			dateutil.WeekNumber(selected),
			start.Format("2 Jan"),
			dateutil.AddDays(start, 6).Format("2 Jan 2006"))
	case constants.ViewDay:
		period = selected.Format("Monday 2 January 2006")
	}

	halfTerm := engine.HalfTermFor(selected)
	var termName string
	for _, ht := range models.Catalogue() {
		if ht.ID == halfTerm {
			termName = ht.Name
			break
		}
	}

	title := headerStyle.Render(fmt.Sprintf("%s  %s (%s)", constants.AppName, period, termName))

	modes := []string{}
	for i, label := range []string{"Month", "Week", "Day"} {
		if m.viewMode == constants.ViewMode(i) {
			modes = append(modes, activeModeStyle.Render(label))
		} else {
			modes = append(modes, inactiveModeStyle.Render(label))
		}
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", lipgloss.JoinHorizontal(lipgloss.Top, modes...))
	if m.unitFilter != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, "  ", filterStyle.Render("unit filter: "+m.unitFilterName()))
	}
	return line
}

func (m Model) unitFilterName() string {
	unit, err := m.store.GetUnit(m.engine.Group(), m.unitFilter)
	if err != nil {
		return m.unitFilter
	}
	return unit.Name
}

func (m Model) viewMonth() string {
	selected := m.cursor
	first := dateutil.StartOfMonth(selected)
	days := dateutil.DaysInMonth(selected)

	header := []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
	for i, h := range header {
		header[i] = mutedStyle.Render(fmt.Sprintf("%-5s", h))
	}
	rows := []string{strings.Join(header, " ")}

	var cells []string
	// The grid starts on Monday; DayIndex is Sunday-based.
	pad := (dateutil.DayIndex(first) + 6) % 7
	for i := 0; i < pad; i++ {
		cells = append(cells, strings.Repeat(" ", 5))
	}

	today := dateutil.Day(time.Now())
	for d := 1; d <= days; d++ {
		date := first.AddDate(0, 0, d-1)
		cells = append(cells, m.renderMonthCell(date, today))
		if len(cells) == 7 {
			rows = append(rows, strings.Join(cells, " "))
			cells = nil
		}
	}
	if len(cells) > 0 {
		for len(cells) < 7 {
			cells = append(cells, strings.Repeat(" ", 5))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	return docStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderMonthCell(date, today time.Time) string {
	dateStr := dateutil.FormatDate(date)

	marker := " "
	if len(m.visiblePlans(dateStr)) > 0 {
		marker = "•"
	}
	if m.plansMatchFilter(dateStr) {
		marker = "◆"
	}

	label := fmt.Sprintf("%2d%s  ", date.Day(), marker)

	style := lipgloss.NewStyle()
	switch m.engine.ClassificationOn(dateStr) {
	case models.ClassificationHoliday:
		style = holidayStyle
	case models.ClassificationInset:
		style = insetStyle
	case models.ClassificationEvent:
		style = eventStyle
	}
	if dateutil.SameDay(date, today) {
		style = todayStyle
	}
	if dateutil.SameDay(date, m.cursor) {
		style = selectedDayStyle
	}
	return style.Render(label)
}

func (m Model) viewWeek() string {
	start := dateutil.StartOfWeek(m.cursor)

	header := []string{fmt.Sprintf("%5s", "")}
	for i := 0; i < 7; i++ {
		date := dateutil.AddDays(start, i)
		label := date.Format("Mon 2")
		cell := fmt.Sprintf("%-12s", label)
		if dateutil.SameDay(date, m.cursor) {
			cell = selectedDayStyle.Render(cell)
		} else if m.engine.ClassificationOn(dateutil.FormatDate(date)) != models.ClassificationNone {
			cell = m.classificationStyle(dateutil.FormatDate(date)).Render(cell)
		}
		header = append(header, cell)
	}
	rows := []string{strings.Join(header, " ")}

	for hour := firstGridHour; hour <= lastGridHour; hour++ {
		row := []string{mutedStyle.Render(fmt.Sprintf("%02d:00", hour))}
		for i := 0; i < 7; i++ {
			date := dateutil.FormatDate(dateutil.AddDays(start, i))
			row = append(row, fmt.Sprintf("%-12s", m.renderHourCell(date, hour)))
		}
		rows = append(rows, strings.Join(row, " "))
	}

	return docStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) classificationStyle(date string) lipgloss.Style {
	switch m.engine.ClassificationOn(date) {
	case models.ClassificationHoliday:
		return holidayStyle
	case models.ClassificationInset:
		return insetStyle
	case models.ClassificationEvent:
		return eventStyle
	}
	return lipgloss.NewStyle()
}

// renderHourCell shows the timetable class occupying the hour, or the
// first plan scheduled at it.
func (m Model) renderHourCell(date string, hour int) string {
	classes := m.engine.ClassesForHour(date, hour)
	if len(classes) > 0 {
		return truncate(classes[0].ClassName, 12)
	}
	for _, plan := range m.visiblePlans(date) {
		if planHour(plan) == hour {
			return truncate(planLabel(plan), 12)
		}
	}
	return ""
}

func (m Model) viewDay() string {
	date := dateutil.FormatDate(m.dayCursor)

	var rows []string
	for _, event := range m.engine.EventsForDate(date) {
		rows = append(rows, m.classificationStyle(date).Render(fmt.Sprintf("  %s (%s)", event.Title, event.Type)))
	}
	if len(rows) > 0 {
		rows = append(rows, "")
	}

	plans := m.visiblePlans(date)
	for hour := firstGridHour; hour <= lastGridHour; hour++ {
		line := mutedStyle.Render(fmt.Sprintf("%02d:00", hour))
		for _, class := range m.engine.ClassesForHour(date, hour) {
			line += "  " + class.ClassName
			if class.Location != "" {
				line += mutedStyle.Render(" @ " + class.Location)
			}
		}
		for _, plan := range plans {
			if planHour(plan) == hour {
				line += "  " + planLabel(plan)
			}
		}
		rows = append(rows, line)
	}

	var unscheduled []string
	for _, plan := range plans {
		if planHour(plan) == engine.NoHour {
			unscheduled = append(unscheduled, "  "+planLabel(plan))
		}
	}
	if len(unscheduled) > 0 {
		rows = append(rows, "", mutedStyle.Render("Unscheduled:"))
		rows = append(rows, unscheduled...)
	}

	return docStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) viewDaySummary() string {
	plans := m.visiblePlans(m.selectedDateStr())
	if len(plans) == 0 {
		return docStyle.Render(mutedStyle.Render("No plans for this day."))
	}

	rows := []string{headerStyle.Render("Plans for " + m.selectedDateStr())}
	for i, plan := range plans {
		prefix := "  "
		if i == m.summaryIndex {
			prefix = "> "
		}
		line := prefix + planLabel(plan)
		if plan.Time != "" {
			line += mutedStyle.Render(" at " + plan.Time)
		}
		switch plan.Status {
		case models.PlanStatusCompleted:
			line += filterStyle.Render(" ✓")
		case models.PlanStatusCancelled:
			line += dangerStyle.Render(" ✗")
		}
		rows = append(rows, line)
	}
	return docStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete this plan?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConflictBanner() string {
	if len(m.validationConflicts) == 0 {
		return ""
	}

	bannerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214")).
		Bold(true).
		Padding(0, 1)

	return bannerStyle.Render(fmt.Sprintf("⚠ %d CONFLICT(S) DETECTED", len(m.validationConflicts)))
}

func planLabel(plan models.LessonPlan) string {
	if plan.LessonNumber != "" {
		if plan.UnitName != "" {
			return fmt.Sprintf("%s %s", plan.UnitName, plan.LessonNumber)
		}
		return plan.LessonNumber
	}
	if len(plan.Activities) > 0 {
		return plan.Activities[0].Name
	}
	return "Lesson"
}

// planHour extracts the grid row for a plan, or NoHour for plans with
// no time of day.
func planHour(plan models.LessonPlan) int {
	if plan.Time == "" {
		return engine.NoHour
	}
	hour, err := dateutil.HourOf(plan.Time)
	if err != nil {
		return engine.NoHour
	}
	return hour
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
