package panels

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hinke/tabbed/internal/content"
	"github.com/hinke/tabbed/internal/state"
	"github.com/hinke/tabbed/internal/tui/theme"
)

// --- Messages ---

// UndoLaterMsg is delivered when a deferred undo comes due. It addresses
// the panel instance that scheduled it, not the tab position.
type UndoLaterMsg struct {
	InstanceID uint64
}

// UndoScheduledMsg is emitted when a deferred undo has been scheduled.
type UndoScheduledMsg struct {
	Delay time.Duration
}

// PanelState is the local state owned by one mounted ContentPanel.
type PanelState struct {
	DetailsVisible bool
	Likes          int
}

// InitialPanelState is the state of every freshly mounted ContentPanel.
func InitialPanelState() PanelState {
	return PanelState{DetailsVisible: true, Likes: 0}
}

// ContentPanel shows one record with a details toggle and a like counter.
// Its state lives exactly as long as the mounted instance.
type ContentPanel struct {
	record     *content.Record
	instanceID uint64
	undoDelay  time.Duration
	state      *state.Cell[PanelState]

	// ctx is cancelled on unmount so a pending deferred undo never fires.
	ctx    context.Context
	cancel context.CancelFunc

	// Keybindings
	details   key.Binding
	like      key.Binding
	tripleInc key.Binding
	undo      key.Binding
	undoLater key.Binding
}

// NewContentPanel mounts a panel for rec with fresh state. A nil rec yields
// a panel that renders nothing.
func NewContentPanel(rec *content.Record, instanceID uint64, undoDelay time.Duration) ContentPanel {
	ctx, cancel := context.WithCancel(context.Background())
	return ContentPanel{
		record:     rec,
		instanceID: instanceID,
		undoDelay:  undoDelay,
		state:      state.NewCell(InitialPanelState()),
		ctx:        ctx,
		cancel:     cancel,
		details: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "details"),
		),
		like: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "like"),
		),
		tripleInc: key.NewBinding(
			key.WithKeys("*"),
			key.WithHelp("*", "+3"),
		),
		undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		undoLater: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "undo later"),
		),
	}
}

// Kind implements Panel.
func (p ContentPanel) Kind() string { return KindContent }

// InstanceID returns the arena instance this panel was mounted as.
func (p ContentPanel) InstanceID() uint64 { return p.instanceID }

// Record returns the displayed record, or nil.
func (p ContentPanel) Record() *content.Record { return p.record }

// WithRecord returns the same instance showing rec. State is shared with p.
func (p ContentPanel) WithRecord(rec *content.Record) ContentPanel {
	p.record = rec
	return p
}

// State returns the committed state. Queued changes appear after Flush.
func (p ContentPanel) State() PanelState { return p.state.Value() }

// Flush commits the changes queued during the current event.
func (p ContentPanel) Flush() bool { return p.state.Flush() }

// Close cancels any pending deferred undo.
func (p ContentPanel) Close() { p.cancel() }

// ToggleDetails flips the details visibility.
func (p ContentPanel) ToggleDetails() {
	p.state.Update(func(s PanelState) PanelState {
		s.DetailsVisible = !s.DetailsVisible
		return s
	})
}

// Increment adds one like to whatever the pending value is.
func (p ContentPanel) Increment() {
	p.state.Update(func(s PanelState) PanelState {
		s.Likes++
		return s
	})
}

// IncrementTriple adds three likes within one event.
func (p ContentPanel) IncrementTriple() {
	p.Increment()
	p.Increment()
	p.Increment()
}

// Undo restores the initial state. The target is fixed, so it does not
// matter what else was queued before it in the same event.
func (p ContentPanel) Undo() {
	p.state.Set(InitialPanelState())
}

// UndoLater schedules Undo after the configured delay. The timer is
// cancelled if the panel unmounts first.
func (p ContentPanel) UndoLater() tea.Cmd {
	ctx := p.ctx
	id := p.instanceID
	delay := p.undoDelay
	timer := func() tea.Msg {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
			return UndoLaterMsg{InstanceID: id}
		case <-ctx.Done():
			return nil
		}
	}
	return tea.Batch(timer, func() tea.Msg {
		return UndoScheduledMsg{Delay: delay}
	})
}

// Update handles key events and due deferred undos.
func (p ContentPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	if p.record == nil {
		return p, nil
	}

	switch msg := msg.(type) {
	case UndoLaterMsg:
		if msg.InstanceID == p.instanceID {
			p.Undo()
		}
		return p, nil

	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}

	return p, nil
}

func (p ContentPanel) handleKey(msg tea.KeyPressMsg) (Panel, tea.Cmd) {
	switch {
	case key.Matches(msg, p.details):
		p.ToggleDetails()
	case key.Matches(msg, p.like):
		p.Increment()
	case key.Matches(msg, p.tripleInc):
		p.IncrementTriple()
	case key.Matches(msg, p.undo):
		p.Undo()
	case key.Matches(msg, p.undoLater):
		return p, p.UndoLater()
	}
	return p, nil
}

// View renders the summary, the optional details and the action row.
func (p ContentPanel) View(width, height int, focused bool) string {
	if p.record == nil {
		return ""
	}

	style := theme.InactiveBorderStyle
	if focused {
		style = theme.ActiveBorderStyle
	}

	innerWidth := max(width-2, 0)
	innerHeight := max(height-2, 0)
	s := p.State()

	lines := []string{
		theme.SummaryStyle.Width(innerWidth).Render(p.record.Summary),
	}
	if s.DetailsVisible {
		lines = append(lines, "", theme.DetailsStyle.Width(innerWidth).Render(p.record.Details))
	}

	toggle := "Show details"
	if s.DetailsVisible {
		toggle = "Hide details"
	}
	actions := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.ButtonStyle.Render("[d] "+toggle),
		"   ",
		theme.LikesStyle.Render(fmt.Sprintf("%d ♥", s.Likes)),
		"  ",
		theme.ButtonStyle.Render("[+] +  [*] +++"),
	)
	undo := theme.ButtonStyle.Render(fmt.Sprintf("[u] Undo  [U] Undo in %s", p.undoDelay))
	lines = append(lines, "", actions, undo)

	body := strings.Join(lines, "\n")
	return style.
		Width(innerWidth).
		Height(innerHeight).
		Render(body)
}

// HelpBindings returns the key hints for the content panel.
func (p ContentPanel) HelpBindings() []HelpBinding {
	if p.record == nil {
		return nil
	}
	return []HelpBinding{
		{Key: "d", Desc: "details"},
		{Key: "+", Desc: "like"},
		{Key: "*", Desc: "+3"},
		{Key: "u", Desc: "undo"},
		{Key: "U", Desc: "undo later"},
	}
}
