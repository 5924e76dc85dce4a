package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hinke/tabbed/internal/tui/theme"
)

// helpSection groups keybindings under a section heading.
type helpSection struct {
	title    string
	bindings []helpEntry
}

// helpEntry is a single key-description pair.
type helpEntry struct {
	key  string
	desc string
}

// HelpModal is an overlay listing every keybinding.
type HelpModal struct {
	active  bool
	scrollY int
}

// Toggle switches the help modal on or off.
func (h HelpModal) Toggle() HelpModal {
	h.active = !h.active
	if h.active {
		h.scrollY = 0
	}
	return h
}

// Active returns whether the help modal is currently visible.
func (h HelpModal) Active() bool {
	return h.active
}

// Update handles key events when the help modal is active.
func (h HelpModal) Update(msg tea.Msg) (HelpModal, tea.Cmd) {
	if !h.active {
		return h, nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "?", "q"))):
			h.active = false
		case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
			h.scrollY++
		case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
			h.scrollY = max(h.scrollY-1, 0)
		}
	}

	return h, nil
}

// View renders the help box.
func (h HelpModal) View(width, height int) string {
	if !h.active {
		return ""
	}

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorPrimary)

	keyStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorHighlight).
		Width(12).
		Align(lipgloss.Right)

	descStyle := lipgloss.NewStyle().
		Foreground(theme.ColorFg)

	hintStyle := lipgloss.NewStyle().
		Foreground(theme.ColorMuted)

	contentWidth := min(44, max(width-6, 20))

	var lines []string
	for i, section := range helpSections() {
		lines = append(lines, sectionStyle.Render(section.title))
		for _, entry := range section.bindings {
			lines = append(lines, keyStyle.Render(entry.key)+"  "+descStyle.Render(entry.desc))
		}
		if i < len(helpSections())-1 {
			lines = append(lines, "")
		}
	}

	// Border and padding take four lines, the hint two more.
	avail := max(height-6, 5)
	scroll := min(h.scrollY, max(len(lines)-avail, 0))
	end := min(scroll+avail, len(lines))
	visible := lines[scroll:end]

	hint := "esc/? close"
	if end < len(lines) {
		hint += fmt.Sprintf("  (%d more, j/k scroll)", len(lines)-end)
	}
	visible = append(visible, "", hintStyle.Render(hint))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorPrimary).
		Padding(1, 2).
		Width(contentWidth + 4).
		Render(strings.Join(visible, "\n"))
}

// helpSections returns all help sections with their keybindings.
func helpSections() []helpSection {
	return []helpSection{
		{
			title: "Tabs",
			bindings: []helpEntry{
				{"1-9", "Select tab"},
				{"h/l", "Move tab focus"},
				{"Enter/Space", "Open focused tab"},
				{"click", "Open tab"},
			},
		},
		{
			title: "Content",
			bindings: []helpEntry{
				{"d", "Show/hide details"},
				{"+", "Like"},
				{"*", "Like three times"},
				{"u", "Undo"},
				{"U", "Undo after a delay"},
			},
		},
		{
			title: "Global",
			bindings: []helpEntry{
				{"?", "Toggle help"},
				{"q", "Quit"},
			},
		},
	}
}
