package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding

	// Main screen
	Launch           key.Binding
	Settings         key.Binding
	Logs             key.Binding
	OpenGame         key.Binding
	OpenGameLogs     key.Binding
	OpenLauncherLogs key.Binding

	// Settings form
	Next    key.Binding
	Prev    key.Binding
	RAMDown key.Binding
	RAMUp   key.Binding
	NewUUID key.Binding
	Save    key.Binding
	Confirm key.Binding

	// Log view
	Reload key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back / discard"),
		),

		// Main screen
		Launch: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Play"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Settings"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Launcher log"),
		),
		OpenGame: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "Open game folder"),
		),
		OpenGameLogs: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Open game logs"),
		),
		OpenLauncherLogs: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open launcher logs"),
		),

		// Settings form
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		RAMDown: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Less RAM"),
		),
		RAMUp: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "More RAM"),
		),
		NewUUID: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "New offline UUID"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Next / save"),
		),

		// Log view
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Launch, k.Settings, k.Logs, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Launch, k.Settings, k.Logs},
		{k.OpenGame, k.OpenGameLogs, k.OpenLauncherLogs},
		{k.Next, k.Prev, k.RAMDown, k.RAMUp, k.NewUUID, k.Save, k.Back},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
