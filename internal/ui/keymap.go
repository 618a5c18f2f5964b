package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevMonth    key.Binding
	NextMonth    key.Binding
	PrevYear     key.Binding
	NextYear     key.Binding
	Today        key.Binding
	Escape       key.Binding
	Marker       key.Binding
	ClearMarkers key.Binding
	Export       key.Binding
	Settings     key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevMonth: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next month"),
		),
		PrevYear: key.NewBinding(
			key.WithKeys("shift+left", "pgup"),
			key.WithHelp("pgup", "prev year"),
		),
		NextYear: key.NewBinding(
			key.WithKeys("shift+right", "pgdown"),
			key.WithHelp("pgdn", "next year"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear/hide"),
		),
		Marker: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "cycle marker"),
		),
		ClearMarkers: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "clear markers"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export ics"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
