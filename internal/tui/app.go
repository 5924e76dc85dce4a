package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hinke/tabbed/internal/config"
	"github.com/hinke/tabbed/internal/content"
	"github.com/hinke/tabbed/internal/tui/components"
	"github.com/hinke/tabbed/internal/tui/panels"
	"github.com/hinke/tabbed/internal/tui/theme"
)

// App is the root bubbletea model: the tab container with a toast line and
// a help bar below it.
type App struct {
	config *config.Config
	logger *slog.Logger

	width, height int

	tabbed Tabbed
	toast  components.Toast
	help   HelpModal

	keys GlobalKeyMap
}

// NewApp creates a new App showing records.
func NewApp(cfg *config.Config, records []content.Record, logger *slog.Logger) App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return App{
		config: cfg,
		logger: logger,
		tabbed: NewTabbed(records, cfg.KeyPolicy(), cfg.UndoDelay(), logger),
		keys:   DefaultGlobalKeyMap(),
	}
}

// Init warns about tabs that will share state because their keys collide.
func (m App) Init() tea.Cmd {
	collisions := m.tabbed.Collisions()
	if len(collisions) == 0 {
		return nil
	}
	msg := toastMsg{message: collisionMessage(collisions), isError: true}
	return func() tea.Msg { return msg }
}

func collisionMessage(collisions []content.Collision) string {
	if len(collisions) == 1 {
		c := collisions[0]
		return fmt.Sprintf("%d tabs share the key %q and will share state", len(c.Indices), c.Key)
	}
	keys := make([]string, len(collisions))
	for i, c := range collisions {
		keys[i] = fmt.Sprintf("%q", c.Key)
	}
	return fmt.Sprintf("%d keys are shared by several tabs: %s", len(collisions), strings.Join(keys, ", "))
}

// Update handles all incoming messages.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case panels.UndoScheduledMsg:
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Show(fmt.Sprintf("Undo in %s", msg.Delay), false)
		return m, cmd

	case toastMsg:
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Show(msg.message, msg.isError)
		return m, cmd

	case tea.MouseMsg:
		// The help modal covers the tab bar.
		if m.help.Active() {
			return m, nil
		}
	}

	m.toast, _ = m.toast.Update(msg)

	var cmd tea.Cmd
	m.tabbed, cmd = m.tabbed.Update(msg)
	return m, cmd
}

// handleKey routes global keys first, then the help modal, then the tabs.
func (m App) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.help.Active() {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.logger.Info("quit")
		m.tabbed.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help = m.help.Toggle()
		return m, nil
	}

	var cmd tea.Cmd
	m.tabbed, cmd = m.tabbed.Update(msg)
	return m, cmd
}

// View renders the tabs with the toast and help bar underneath.
func (m App) View() tea.View {
	if m.width == 0 || m.height == 0 {
		v := tea.NewView("Loading...")
		v.AltScreen = true
		return v
	}

	helpHeight := 1
	contentHeight := max(m.height-helpHeight-m.toast.Height(), 0)

	main := m.tabbed.View(m.width, contentHeight)
	if m.help.Active() {
		main = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center,
			m.help.View(m.width, contentHeight))
	}

	parts := []string{main}
	if m.toast.Active {
		parts = append(parts, m.toast.View(m.width))
	}
	parts = append(parts, m.renderHelpBar())

	v := tea.NewView(lipgloss.JoinVertical(lipgloss.Left, parts...))
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderHelpBar renders the context-sensitive help bar at the bottom.
func (m App) renderHelpBar() string {
	bindings := m.tabbed.HelpBindings()
	bindings = append(bindings,
		panels.HelpBinding{Key: "?", Desc: "help"},
		panels.HelpBinding{Key: "q", Desc: "quit"},
	)

	formatted := make([]string, 0, len(bindings))
	for _, b := range bindings {
		formatted = append(formatted, helpBinding(b.Key, b.Desc))
	}
	bar := theme.Truncate(strings.Join(formatted, "  "), m.width)

	// Pad to full width.
	if w := lipgloss.Width(bar); w < m.width {
		bar += strings.Repeat(" ", m.width-w)
	}
	return theme.HelpBarStyle.Render(bar)
}

// helpBinding formats a single key-description pair for the help bar.
func helpBinding(k, desc string) string {
	return theme.HelpKeyStyle.Render(k) + " " + theme.HelpBarStyle.Render(desc)
}
