// Package panels provides the units mounted under the tab bar and the
// stateless tab selector that switches between them.
package panels

import tea "charm.land/bubbletea/v2"

// Panel kinds. A change of kind at the tab position always remounts.
const (
	KindContent   = "content"
	KindDifferent = "different"
)

// Panel is the interface every unit mounted under the tab bar implements.
type Panel interface {
	// Kind names the unit's type for identity comparison.
	Kind() string

	// Update handles messages and returns the updated panel plus any command.
	Update(msg tea.Msg) (Panel, tea.Cmd)

	// View renders the panel into a string that fits within the given
	// dimensions. The focused flag controls whether the panel draws an
	// active (highlighted) or inactive border.
	View(width, height int, focused bool) string

	// HelpBindings returns the context-sensitive key hints to display in
	// the help bar.
	HelpBindings() []HelpBinding
}

// Flusher is implemented by panels whose state changes are batched. The
// container calls Flush once after each event has been handled.
type Flusher interface {
	Flush() bool
}

// Closer is implemented by panels holding resources that must be released
// on unmount.
type Closer interface {
	Close()
}

// HelpBinding pairs a key label with a short description for the help bar.
type HelpBinding struct {
	Key  string
	Desc string
}
