package panels

import (
	tea "charm.land/bubbletea/v2"

	"github.com/hinke/tabbed/internal/tui/theme"
)

// DifferentContent is a stateless panel of a different kind from
// ContentPanel. Showing it always unmounts any ContentPanel.
type DifferentContent struct{}

// Kind implements Panel.
func (DifferentContent) Kind() string { return KindDifferent }

// Update implements Panel. DifferentContent reacts to nothing.
func (d DifferentContent) Update(tea.Msg) (Panel, tea.Cmd) { return d, nil }

func (DifferentContent) View(width, height int, focused bool) string {
	style := theme.InactiveBorderStyle
	if focused {
		style = theme.ActiveBorderStyle
	}
	innerWidth := max(width-2, 0)
	innerHeight := max(height-2, 0)

	return style.
		Width(innerWidth).
		Height(innerHeight).
		Render(theme.DifferentStyle.Render("I'm a DIFFERENT tab, so I reset state"))
}

func (DifferentContent) HelpBindings() []HelpBinding { return nil }
