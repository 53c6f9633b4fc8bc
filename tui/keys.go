package tui

import "github.com/charmbracelet/bubbles/key"

// Key bindings reference:
//
// Global:
//   ctrl+c      Quit the application
//
// Splash screen:
//   any key     Skip to the workspace
//
// Workspace:
//   ctrl+g      Start a jump (keys then go to the jump prompt)
//   tab         Focus the next pane
//   up/down     Scroll the active pane
//   pgup/pgdown Scroll by a page
//   esc         Dismiss the jump prompt, or close the side view
//   ?           Help
//   q           Quit
//
// Help screen:
//   up/down     Scroll
//   esc/?       Back to the workspace

// KeyMap holds the workspace key bindings.
type KeyMap struct {
	Jump     key.Binding
	NextPane key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Escape   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "jump"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "page down"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
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

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.NextPane, k.Escape, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.NextPane},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Escape, k.Help, k.Quit},
	}
}
