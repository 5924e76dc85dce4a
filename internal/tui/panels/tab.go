package panels

import (
	tea "charm.land/bubbletea/v2"

	"github.com/hinke/tabbed/internal/tui/theme"
)

// Tab is a stateless selector for one index. It reports activation through
// the callback it is given and never holds selection state itself.
type Tab struct {
	Index int
	Label string
}

// View renders the tab. current is the container's selection; focused marks
// the tab Enter/Space would activate.
func (t Tab) View(current int, focused bool) string {
	switch {
	case t.Index == current:
		return theme.ActiveTabStyle.Render(t.Label)
	case focused:
		return theme.FocusedTabStyle.Render(t.Label)
	}
	return theme.TabStyle.Render(t.Label)
}

// Activate returns a command that reports this tab's index through onSelect.
func (t Tab) Activate(onSelect func(index int) tea.Msg) tea.Cmd {
	index := t.Index
	return func() tea.Msg {
		return onSelect(index)
	}
}
