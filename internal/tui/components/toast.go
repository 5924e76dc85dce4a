// Package components holds small reusable widgets for the root model.
package components

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hinke/tabbed/internal/tui/theme"
)

// ToastDuration is how long a toast stays visible.
const ToastDuration = 3 * time.Second

// toastTimeoutMsg is sent when the toast auto-dismiss timer fires. seq
// identifies the toast that started the timer.
type toastTimeoutMsg struct {
	seq int
}

// Toast is a timed notification bar that auto-dismisses after a duration.
type Toast struct {
	Message string
	IsError bool
	Active  bool

	seq int
}

// Show activates the toast with message and returns a tick command that
// dismisses it after ToastDuration. A newer toast is never dismissed by an
// older toast's timer.
func (t Toast) Show(message string, isError bool) (Toast, tea.Cmd) {
	t.seq++
	t.Message = message
	t.IsError = isError
	t.Active = true

	seq := t.seq
	cmd := tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastTimeoutMsg{seq: seq}
	})
	return t, cmd
}

// Update handles the toast timeout message.
func (t Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	if msg, ok := msg.(toastTimeoutMsg); ok && msg.seq == t.seq {
		t.Active = false
	}
	return t, nil
}

// View renders the toast notification bar spanning the given width.
// Returns an empty string if the toast is not active.
func (t Toast) View(width int) string {
	if !t.Active {
		return ""
	}

	style := theme.ToastStyle
	if t.IsError {
		style = theme.ToastErrorStyle
	}

	return style.Width(width).Render(theme.Truncate(t.Message, max(width-2, 0)))
}

// Height returns the number of lines View occupies.
func (t Toast) Height() int {
	if !t.Active {
		return 0
	}
	return 1
}
