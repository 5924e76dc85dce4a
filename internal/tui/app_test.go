package tui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hinke/tabbed/internal/config"
	"github.com/hinke/tabbed/internal/content"
	"github.com/hinke/tabbed/internal/tui/panels"
)

func newTestApp(records []content.Record) App {
	m := NewApp(config.Default(), records, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(App)
}

func update(t *testing.T, m App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", next)
	}
	return app, cmd
}

func TestAppQuit(t *testing.T) {
	m := newTestApp(abcRecords())
	_, cmd := update(t, m, keyPress("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestAppRoutesKeysToTabs(t *testing.T) {
	m := newTestApp(abcRecords())

	m, _ = update(t, m, keyPress("*"))
	if s, _ := m.tabbed.ContentState(); s.Likes != 3 {
		t.Errorf("Likes = %d, want 3", s.Likes)
	}

	m, cmd := update(t, m, keyPress("2"))
	if cmd == nil {
		t.Fatal("tab key returned no command")
	}
	m, _ = update(t, m, cmd())
	if m.tabbed.Current() != 1 {
		t.Errorf("Current() = %d, want 1", m.tabbed.Current())
	}
	if s, _ := m.tabbed.ContentState(); s.Likes != 0 {
		t.Errorf("Likes after switch = %d, want 0", s.Likes)
	}
}

func TestAppHelpSwallowsKeys(t *testing.T) {
	m := newTestApp(abcRecords())

	m, _ = update(t, m, keyPress("?"))
	if !m.help.Active() {
		t.Fatal("help not active after ?")
	}

	// Keys go to the help modal, not the panel.
	m, _ = update(t, m, keyPress("+"))
	if s, _ := m.tabbed.ContentState(); s.Likes != 0 {
		t.Errorf("Likes = %d while help open, want 0", s.Likes)
	}

	m, _ = update(t, m, keyPress("?"))
	if m.help.Active() {
		t.Error("help still active after second ?")
	}
	_ = m.View()
}

func TestAppUndoScheduledToast(t *testing.T) {
	m := newTestApp(abcRecords())

	m, cmd := update(t, m, panels.UndoScheduledMsg{Delay: 2 * time.Second})
	if cmd == nil {
		t.Error("toast returned no dismiss command")
	}
	if !m.toast.Active || !strings.Contains(m.toast.Message, "2s") {
		t.Errorf("toast = %+v, want active undo toast", m.toast)
	}
}

func TestAppInitWarnsOnCollisions(t *testing.T) {
	clean := NewApp(config.Default(), abcRecords(), nil)
	if cmd := clean.Init(); cmd != nil {
		t.Error("Init returned a command without collisions")
	}

	records := []content.Record{
		{Summary: "same", Details: "one"},
		{Summary: "same", Details: "two"},
	}
	m := NewApp(config.Default(), records, nil)
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no command despite a key collision")
	}

	m, _ = update(t, m, cmd())
	if !m.toast.Active || !m.toast.IsError {
		t.Errorf("toast = %+v, want active error toast", m.toast)
	}
	if !strings.Contains(m.toast.Message, `"same"`) {
		t.Errorf("toast message = %q, want the colliding key", m.toast.Message)
	}
}

func TestAppViewBeforeResize(t *testing.T) {
	m := NewApp(config.Default(), abcRecords(), nil)
	_ = m.View()
	_ = newTestApp(nil).View()
}

func TestHelpModalView(t *testing.T) {
	h := HelpModal{}.Toggle()
	view := h.View(80, 40)
	for _, want := range []string{"Tabs", "Content", "Undo after a delay"} {
		if !strings.Contains(view, want) {
			t.Errorf("help view missing %q", want)
		}
	}
	if (HelpModal{}).View(80, 40) != "" {
		t.Error("inactive help modal rendered content")
	}
}

func TestAppQuitUnmountsPanels(t *testing.T) {
	cfg := config.Default()
	cfg.Undo.DelayMS = int(time.Hour / time.Millisecond)
	m := NewApp(cfg, abcRecords(), nil)

	m, cmd := update(t, m, keyPress("U"))
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("undo later returned %T, want tea.BatchMsg", cmd())
	}
	results := make(chan tea.Msg, len(batch))
	for _, c := range batch {
		go func() { results <- c() }()
	}

	m, _ = update(t, m, keyPress("q"))
	if n := m.tabbed.arena.Len(); n != 0 {
		t.Errorf("live panels after quit = %d, want 0", n)
	}

	for range batch {
		select {
		case msg := <-results:
			if _, ok := msg.(panels.UndoLaterMsg); ok {
				t.Error("deferred undo fired after quit")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("deferred undo timer still running after quit")
		}
	}
}

func TestAppHelpBlocksMouse(t *testing.T) {
	m := newTestApp(abcRecords())

	x := -1
	for i := range 200 {
		if tab, ok := m.tabbed.tabAt(i, 0); ok && tab.Index == 3 {
			x = i
			break
		}
	}
	if x < 0 {
		t.Fatal("no x position maps to the last tab")
	}
	click := tea.MouseClickMsg{X: x, Y: 0, Button: tea.MouseLeft}

	m, _ = update(t, m, keyPress("?"))
	m, cmd := update(t, m, click)
	if cmd != nil {
		m, _ = update(t, m, cmd())
	}
	if m.tabbed.Current() != 0 {
		t.Errorf("Current() = %d after click under help, want 0", m.tabbed.Current())
	}

	m, _ = update(t, m, keyPress("?"))
	m, cmd = update(t, m, click)
	if cmd == nil {
		t.Fatal("click with help closed returned no command")
	}
	m, _ = update(t, m, cmd())
	if m.tabbed.Current() != 3 {
		t.Errorf("Current() = %d after click, want 3", m.tabbed.Current())
	}
}

func TestAppInitReportsEveryCollision(t *testing.T) {
	records := []content.Record{
		{Summary: "x", Details: "1"},
		{Summary: "x", Details: "2"},
		{Summary: "y", Details: "3"},
		{Summary: "y", Details: "4"},
	}
	m := NewApp(config.Default(), records, nil)
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no command despite key collisions")
	}

	m, _ = update(t, m, cmd())
	for _, want := range []string{"2 keys", `"x"`, `"y"`} {
		if !strings.Contains(m.toast.Message, want) {
			t.Errorf("toast message = %q, want it to contain %s", m.toast.Message, want)
		}
	}
}
