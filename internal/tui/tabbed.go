package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hinke/tabbed/internal/content"
	"github.com/hinke/tabbed/internal/lifecycle"
	"github.com/hinke/tabbed/internal/tui/panels"
	"github.com/hinke/tabbed/internal/tui/theme"
)

// Tabbed is the tab container. It owns the selection index and decides
// which panel is mounted under the tab bar: a ContentPanel keyed by the
// selected record, or DifferentContent for the extra last tab.
//
// Exactly one panel is live at a time. Panel state survives only while
// the derived identity stays the same.
type Tabbed struct {
	records []content.Record
	policy  content.KeyPolicy
	delay   time.Duration
	logger  *slog.Logger

	current int // selection index, 0..len(records)
	focused int // tab Enter/Space activates
	tabs    []panels.Tab
	arena   *lifecycle.Arena[panels.Panel]

	keys TabKeyMap
}

// NewTabbed creates the container with the first tab selected. It offers
// one tab per record plus one for DifferentContent.
func NewTabbed(records []content.Record, policy content.KeyPolicy, undoDelay time.Duration, logger *slog.Logger) Tabbed {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tabs := make([]panels.Tab, len(records)+1)
	for i := range tabs {
		tabs[i] = panels.Tab{Index: i, Label: fmt.Sprintf("Tab %d", i+1)}
	}

	t := Tabbed{
		records: records,
		policy:  policy,
		delay:   undoDelay,
		logger:  logger,
		tabs:    tabs,
		arena:   lifecycle.NewArena[panels.Panel](logger),
		keys:    DefaultTabKeyMap(),
	}

	for _, c := range t.Collisions() {
		logger.Warn("identity key collision, these tabs will share panel state",
			"key", c.Key,
			"indices", fmt.Sprint(c.Indices),
			"policy", string(policy),
		)
	}

	t.reconcile()
	return t
}

// selectTab is the callback handed to every tab selector.
func selectTab(index int) tea.Msg {
	return SelectTabMsg{Index: index}
}

// Select makes index the current selection and remounts the panel if its
// identity changed. Indices outside the offered tabs fall back to the
// DifferentContent tab.
func (t Tabbed) Select(index int) Tabbed {
	if index < 0 || index > len(t.records) {
		t.logger.Debug("selection out of range", "index", index, "fallback", len(t.records))
		index = len(t.records)
	}
	t.current = index
	t.focused = index

	diff := t.reconcile()
	t.logger.Info("tab selected",
		"index", index,
		"identity", t.identity().String(),
		"remounted", !diff.Empty(),
	)
	return t
}

// Close unmounts every live panel, running their cleanups. Pending
// deferred undos are cancelled.
func (t Tabbed) Close() {
	diff := t.arena.UnmountAll()
	t.logger.Debug("tabs closed", "unmounted", len(diff.Unmounted))
}

// Current returns the selection index.
func (t Tabbed) Current() int {
	return t.current
}

// Tabs returns the tab selectors in display order.
func (t Tabbed) Tabs() []panels.Tab {
	return t.tabs
}

// Collisions reports records whose identity keys collide under the
// configured key policy.
func (t Tabbed) Collisions() []content.Collision {
	return t.policy.Duplicates(t.records)
}

// active returns the selected record, or nil when the selection addresses
// the DifferentContent tab.
func (t Tabbed) active() *content.Record {
	if t.current < 0 || t.current >= len(t.records) {
		return nil
	}
	return &t.records[t.current]
}

// identity derives the identity of the panel the current selection wants.
func (t Tabbed) identity() lifecycle.Identity {
	rec := t.active()
	if rec == nil {
		return lifecycle.Identity{Kind: panels.KindDifferent}
	}
	return lifecycle.Identity{Kind: panels.KindContent, Key: t.policy.Key(*rec, t.current)}
}

// reconcile mounts the wanted panel, unmounts everything else, and passes
// the current record to a retained ContentPanel.
func (t Tabbed) reconcile() lifecycle.Diff {
	diff := t.arena.Reconcile([]lifecycle.Identity{t.identity()}, t.mount)

	for _, id := range diff.Mounted {
		inst, _ := t.arena.Get(id)
		if c, ok := inst.Value.(panels.Closer); ok {
			t.arena.OnUnmount(inst.ID, c.Close)
		}
		t.arena.OnUnmount(inst.ID, func() {
			t.logger.Debug("panel unmounted", "identity", id.String(), "instance", inst.ID)
		})
	}

	// Same identity, possibly a different record: props change, state stays.
	for _, id := range diff.Retained {
		inst, _ := t.arena.Get(id)
		if cp, ok := inst.Value.(panels.ContentPanel); ok {
			inst.Value = cp.WithRecord(t.active())
		}
	}
	return diff
}

func (t Tabbed) mount(id lifecycle.Identity, instanceID uint64) panels.Panel {
	if id.Kind != panels.KindContent {
		return panels.DifferentContent{}
	}
	return panels.NewContentPanel(t.active(), instanceID, t.delay)
}

// Panel returns the live panel under the tab bar.
func (t Tabbed) Panel() panels.Panel {
	inst, ok := t.arena.Get(t.identity())
	if !ok {
		return nil
	}
	return inst.Value
}

// ContentState returns the live ContentPanel's committed state. ok is false
// when DifferentContent is mounted.
func (t Tabbed) ContentState() (s panels.PanelState, ok bool) {
	cp, ok := t.Panel().(panels.ContentPanel)
	if !ok {
		return s, false
	}
	return cp.State(), true
}

// Update handles selection reports, tab keys, mouse clicks on the tab bar,
// and routes everything else to the live panel.
func (t Tabbed) Update(msg tea.Msg) (Tabbed, tea.Cmd) {
	switch msg := msg.(type) {
	case SelectTabMsg:
		return t.Select(msg.Index), nil

	case panels.UndoLaterMsg:
		// Addressed by instance: a remount at the same tab is a different
		// instance and must not be touched.
		inst, ok := t.arena.Lookup(msg.InstanceID)
		if !ok {
			t.logger.Debug("deferred undo for unmounted panel dropped", "instance", msg.InstanceID)
			return t, nil
		}
		return t, t.deliver(inst, msg)

	case tea.KeyPressMsg:
		return t.handleKey(msg)

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button != tea.MouseLeft {
			return t, nil
		}
		if tab, ok := t.tabAt(mouse.X, mouse.Y); ok {
			t.focused = tab.Index
			return t, tab.Activate(selectTab)
		}
		return t, nil
	}

	return t, nil
}

func (t Tabbed) handleKey(msg tea.KeyPressMsg) (Tabbed, tea.Cmd) {
	switch {
	case key.Matches(msg, t.keys.Jump):
		n := int(msg.String()[0] - '1')
		if n >= len(t.tabs) {
			return t, nil
		}
		t.focused = n
		return t, t.tabs[n].Activate(selectTab)

	case key.Matches(msg, t.keys.Prev):
		t.focused = (t.focused + len(t.tabs) - 1) % len(t.tabs)
		return t, nil

	case key.Matches(msg, t.keys.Next):
		t.focused = (t.focused + 1) % len(t.tabs)
		return t, nil

	case key.Matches(msg, t.keys.Activate):
		return t, t.tabs[t.focused].Activate(selectTab)
	}

	inst, ok := t.arena.Get(t.identity())
	if !ok {
		return t, nil
	}
	return t, t.deliver(inst, msg)
}

// deliver hands msg to a live panel and flushes its queued state changes.
// One flush per event is the batch boundary.
func (t Tabbed) deliver(inst *lifecycle.Instance[panels.Panel], msg tea.Msg) tea.Cmd {
	next, cmd := inst.Value.Update(msg)
	inst.Value = next
	if f, ok := next.(panels.Flusher); ok && f.Flush() {
		if cp, ok := next.(panels.ContentPanel); ok {
			s := cp.State()
			t.logger.Debug("panel state changed",
				"instance", inst.ID,
				"details_visible", s.DetailsVisible,
				"likes", s.Likes,
			)
		}
	}
	return cmd
}

// tabBar renders the tab selectors on one line.
func (t Tabbed) tabBar() string {
	parts := make([]string, len(t.tabs))
	for i, tab := range t.tabs {
		parts[i] = tab.View(t.current, i == t.focused)
	}
	return strings.Join(parts, " ")
}

// tabAt maps a click position relative to the container to a tab.
func (t Tabbed) tabAt(x, y int) (panels.Tab, bool) {
	if y != 0 || x < 0 {
		return panels.Tab{}, false
	}
	pos := 0
	for i, tab := range t.tabs {
		w := lipgloss.Width(tab.View(t.current, i == t.focused))
		if x >= pos && x < pos+w {
			return tab, true
		}
		pos += w + 1
	}
	return panels.Tab{}, false
}

// View renders the tab bar above the live panel.
func (t Tabbed) View(width, height int) string {
	bar := theme.Truncate(t.tabBar(), width)
	body := ""
	if p := t.Panel(); p != nil {
		body = p.View(width, max(height-1, 0), true)
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, body)
}

// HelpBindings returns the tab keys followed by the live panel's keys.
func (t Tabbed) HelpBindings() []panels.HelpBinding {
	bindings := []panels.HelpBinding{
		{Key: fmt.Sprintf("1-%d", min(len(t.tabs), 9)), Desc: "tabs"},
		{Key: "h/l", Desc: "move"},
		{Key: "enter", Desc: "open"},
	}
	if p := t.Panel(); p != nil {
		bindings = append(bindings, p.HelpBindings()...)
	}
	return bindings
}
