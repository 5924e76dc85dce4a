// Package theme provides shared colours and styles used across TUI packages.
// Keeping them in a standalone package avoids circular imports between
// the root tui package and its sub-packages (panels, components).
package theme

import lipgloss "charm.land/lipgloss/v2"

// Colour palette.
var (
	ColorPrimary   = lipgloss.Color("#7aa2f7") // blue
	ColorSecondary = lipgloss.Color("#9ece6a") // green
	ColorSubtle    = lipgloss.Color("#565f89") // grey
	ColorHighlight = lipgloss.Color("#e0af68") // amber
	ColorError     = lipgloss.Color("#f7768e") // red
	ColorFg        = lipgloss.Color("#c0caf5") // light fg
	ColorMuted     = lipgloss.Color("#545c7e") // muted fg
	ColorBg        = lipgloss.Color("#1a1b26") // dark bg
)

// Panel border styles.
var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSubtle)
)

// Tab bar styles. Both carry the same padding so a tab keeps its width
// when it becomes active.
var (
	TabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBg).
			Background(ColorPrimary).
			Padding(0, 1)

	// FocusedTabStyle marks the tab Enter/Space would activate.
	FocusedTabStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(ColorHighlight).
			Padding(0, 1)
)

// Help bar styles.
var (
	HelpBarBg = lipgloss.Color("#24283b") // slightly lighter than bg

	HelpBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(HelpBarBg)

	HelpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight).
			Background(HelpBarBg)
)

// Content styles.
var (
	SummaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorFg)

	DetailsStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	LikesStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	DifferentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)
)

// Toast styles.
var (
	ToastStyle = lipgloss.NewStyle().
			Foreground(ColorFg).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	ToastErrorStyle = lipgloss.NewStyle().
				Foreground(ColorFg).
				Background(ColorError).
				Bold(true).
				Padding(0, 1)
)

// Truncate shortens a string to fit within the given width, accounting for
// ANSI escape sequences by using lipgloss.Width for measurement.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	// Brute-force truncation: trim runes until we fit.
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
