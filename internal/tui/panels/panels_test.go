package panels

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hinke/tabbed/internal/content"
)

func testRecord() *content.Record {
	return &content.Record{ID: "a", Summary: "Summary A", Details: "Details A"}
}

func keyPress(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

// send delivers msg and flushes, as the container does once per event.
func send(t *testing.T, p ContentPanel, msg tea.Msg) (ContentPanel, tea.Cmd) {
	t.Helper()
	next, cmd := p.Update(msg)
	cp, ok := next.(ContentPanel)
	if !ok {
		t.Fatalf("Update returned %T, want ContentPanel", next)
	}
	cp.Flush()
	return cp, cmd
}

func TestContentPanelInitialState(t *testing.T) {
	p := NewContentPanel(testRecord(), 1, time.Second)
	if got := p.State(); got != InitialPanelState() {
		t.Errorf("State() = %+v, want %+v", got, InitialPanelState())
	}
	if !p.State().DetailsVisible || p.State().Likes != 0 {
		t.Errorf("initial state = %+v, want details visible and 0 likes", p.State())
	}
	if p.Kind() != KindContent {
		t.Errorf("Kind() = %q, want %q", p.Kind(), KindContent)
	}
}

func TestContentPanelTripleIncrement(t *testing.T) {
	p := NewContentPanel(testRecord(), 1, time.Second)

	p, _ = send(t, p, keyPress("*"))
	if got := p.State().Likes; got != 3 {
		t.Errorf("Likes after +3 = %d, want 3", got)
	}

	p, _ = send(t, p, keyPress("+"))
	if got := p.State().Likes; got != 4 {
		t.Errorf("Likes after +1 = %d, want 4", got)
	}
}

func TestContentPanelNoResetWithoutUndo(t *testing.T) {
	p := NewContentPanel(testRecord(), 1, time.Second)

	for range 5 {
		p, _ = send(t, p, keyPress("+"))
		p, _ = send(t, p, keyPress("d"))
	}

	want := PanelState{DetailsVisible: false, Likes: 5}
	if got := p.State(); got != want {
		t.Errorf("State() = %+v, want %+v", got, want)
	}
}

func TestContentPanelUndo(t *testing.T) {
	p := NewContentPanel(testRecord(), 1, time.Second)
	p, _ = send(t, p, keyPress("*"))
	p, _ = send(t, p, keyPress("d"))

	p, _ = send(t, p, keyPress("u"))
	if got := p.State(); got != InitialPanelState() {
		t.Errorf("State() after undo = %+v, want %+v", got, InitialPanelState())
	}
}

func TestContentPanelUndoWithinBatch(t *testing.T) {
	p := NewContentPanel(testRecord(), 1, time.Second)
	p, _ = send(t, p, keyPress("*"))

	// Queued in one event: like, undo, like.
	p.Increment()
	p.Undo()
	p.Increment()
	p.Flush()

	want := PanelState{DetailsVisible: true, Likes: 1}
	if got := p.State(); got != want {
		t.Errorf("State() = %+v, want %+v", got, want)
	}
}

func TestContentPanelUndoLaterResetsToFixedTarget(t *testing.T) {
	p := NewContentPanel(testRecord(), 7, 10*time.Millisecond)
	p, _ = send(t, p, keyPress("+"))

	p, cmd := send(t, p, keyPress("U"))
	if cmd == nil {
		t.Fatal("undo later returned no command")
	}

	// Mutate again before the timer fires.
	p, _ = send(t, p, keyPress("*"))
	p, _ = send(t, p, keyPress("d"))
	if got := p.State().Likes; got != 4 {
		t.Fatalf("Likes before timer = %d, want 4", got)
	}

	p, _ = send(t, p, UndoLaterMsg{InstanceID: 7})
	if got := p.State(); got != InitialPanelState() {
		t.Errorf("State() after timer = %+v, want %+v", got, InitialPanelState())
	}
}

func TestContentPanelUndoLaterCommand(t *testing.T) {
	p := NewContentPanel(testRecord(), 9, time.Millisecond)

	batch, ok := p.UndoLater()().(tea.BatchMsg)
	if !ok {
		t.Fatal("UndoLater did not return a batch")
	}

	var gotUndo, gotScheduled bool
	for _, cmd := range batch {
		switch msg := cmd().(type) {
		case UndoLaterMsg:
			gotUndo = msg.InstanceID == 9
		case UndoScheduledMsg:
			gotScheduled = msg.Delay == time.Millisecond
		}
	}
	if !gotUndo {
		t.Error("timer did not deliver UndoLaterMsg for instance 9")
	}
	if !gotScheduled {
		t.Error("missing UndoScheduledMsg")
	}
}

func TestContentPanelCloseCancelsTimer(t *testing.T) {
	p := NewContentPanel(testRecord(), 3, time.Hour)
	batch := p.UndoLater()().(tea.BatchMsg)

	p.Close()

	done := make(chan tea.Msg, 1)
	go func() { done <- batch[0]() }()

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("cancelled timer delivered %T, want nil", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("cancelled timer did not return")
	}
}

func TestContentPanelIgnoresForeignUndo(t *testing.T) {
	p := NewContentPanel(testRecord(), 1, time.Second)
	p, _ = send(t, p, keyPress("+"))

	p, _ = send(t, p, UndoLaterMsg{InstanceID: 2})
	if got := p.State().Likes; got != 1 {
		t.Errorf("Likes = %d, want 1", got)
	}
}

func TestContentPanelNilRecord(t *testing.T) {
	p := NewContentPanel(nil, 1, time.Second)

	if got := p.View(40, 10, true); got != "" {
		t.Errorf("View() = %q, want empty", got)
	}
	p, _ = send(t, p, keyPress("+"))
	if got := p.State().Likes; got != 0 {
		t.Errorf("Likes = %d, want 0", got)
	}
	if p.HelpBindings() != nil {
		t.Error("HelpBindings() should be nil without a record")
	}
}

func TestContentPanelView(t *testing.T) {
	p := NewContentPanel(testRecord(), 1, 2*time.Second)
	view := p.View(60, 14, true)
	for _, want := range []string{"Summary A", "Details A", "Hide details", "0 ♥", "Undo in 2s"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	p, _ = send(t, p, keyPress("d"))
	view = p.View(60, 14, true)
	if strings.Contains(view, "Details A") {
		t.Error("details still rendered after toggle")
	}
	if !strings.Contains(view, "Show details") {
		t.Error("View() missing Show details after toggle")
	}
}

func TestDifferentContent(t *testing.T) {
	var d DifferentContent
	if d.Kind() != KindDifferent {
		t.Errorf("Kind() = %q, want %q", d.Kind(), KindDifferent)
	}
	if !strings.Contains(d.View(60, 5, false), "DIFFERENT") {
		t.Error("View() missing DIFFERENT text")
	}
	next, cmd := d.Update(keyPress("+"))
	if _, ok := next.(DifferentContent); !ok || cmd != nil {
		t.Errorf("Update() = (%T, %v), want unchanged and no command", next, cmd)
	}
}

func TestTab(t *testing.T) {
	tab := Tab{Index: 2, Label: "Tab 3"}

	msg := tab.Activate(func(i int) tea.Msg { return i })()
	if msg != 2 {
		t.Errorf("Activate reported %v, want 2", msg)
	}

	for _, current := range []int{0, 2} {
		if !strings.Contains(tab.View(current, false), "Tab 3") {
			t.Errorf("View(%d) missing label", current)
		}
	}
}
