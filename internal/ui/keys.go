package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the viewer's key bindings.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	Focus  key.Binding
	Delete key.Binding
	Reload key.Binding

	CycleTheme    key.Binding
	CycleGrouping key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Focus: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "focus"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),

		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		CycleGrouping: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Cycle grouping"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Focus, k.Delete, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Focus, k.Delete, k.Reload},
		{k.CycleTheme, k.CycleGrouping, k.Help, k.Quit},
	}
}
