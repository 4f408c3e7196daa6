package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings the root model matches globally. View-local keys
// (navigation, editor chords) live in the views that handle them.
type KeyMap struct {
	DashboardView key.Binding
	UploadView    key.Binding

	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		DashboardView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "projects"),
		),
		UploadView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "upload"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
