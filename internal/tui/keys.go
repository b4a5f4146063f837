package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	PrevPeriod key.Binding
	NextPeriod key.Binding
	MonthView  key.Binding
	WeekView   key.Binding
	DayView    key.Binding
	Today      key.Binding
	Enter      key.Binding
	AddEvent   key.Binding
	Delete     key.Binding
	Complete   key.Binding
	Cancel     key.Binding
	Filter     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		PrevPeriod: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous period"),
		),
		NextPeriod: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next period"),
		),
		MonthView: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "month view"),
		),
		WeekView: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "week view"),
		),
		DayView: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "day view"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open day"),
		),
		AddEvent: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "add event"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete plan"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete plan"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "cancel plan"),
		),
		Filter: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "cycle unit filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
