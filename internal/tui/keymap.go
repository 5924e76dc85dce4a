package tui

import "charm.land/bubbles/v2/key"

// GlobalKeyMap contains keybindings available in every context.
type GlobalKeyMap struct {
	Quit key.Binding
	Help key.Binding
}

// DefaultGlobalKeyMap returns the default global keybindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// TabKeyMap contains keybindings for the tab bar.
type TabKeyMap struct {
	// Jump selects a tab directly by its 1-based number.
	Jump     key.Binding
	Prev     key.Binding
	Next     key.Binding
	Activate key.Binding
}

// DefaultTabKeyMap returns the default tab bar keybindings.
func DefaultTabKeyMap() TabKeyMap {
	return TabKeyMap{
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "select tab"),
		),
		Prev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "prev tab"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "next tab"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("enter/space", "open tab"),
		),
	}
}
