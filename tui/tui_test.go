package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/guzus/panejump/internal/config"
	"github.com/guzus/panejump/internal/jump"
	"github.com/guzus/panejump/internal/log"
	"github.com/guzus/panejump/internal/pane"
	"github.com/guzus/panejump/internal/pubsub"
	"github.com/guzus/panejump/internal/shortcut"
	"github.com/guzus/panejump/internal/watcher"
)

func newTestModel(t *testing.T, titles ...string) (MainModel, []pane.ID) {
	t.Helper()
	ws, ids := newTestWorkspace(titles...)
	host := NewHost(ws)
	m := NewMainModel(Options{
		Service:   jump.New(host),
		Host:      host,
		Workspace: ws,
		Theme:     config.Defaults().Theme,
	})
	t.Cleanup(m.cancel)
	return m, ids
}

func update(t *testing.T, m MainModel, msg tea.Msg) (MainModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(MainModel), cmd
}

func onWorkspace(t *testing.T, m MainModel) MainModel {
	t.Helper()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, switchScreenMsg{target: screenWorkspace})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// startJump presses ctrl+g and runs the returned command in the background.
func startJump(t *testing.T, m MainModel) (MainModel, <-chan tea.Msg) {
	t.Helper()
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	if cmd == nil {
		t.Fatal("expected jump command")
	}
	if !m.jumping {
		t.Fatal("expected jumping state")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	return m, done
}

func finish(t *testing.T, m MainModel, done <-chan tea.Msg) MainModel {
	t.Helper()
	select {
	case msg := <-done:
		jd, ok := msg.(jumpDoneMsg)
		if !ok {
			t.Fatalf("expected jumpDoneMsg, got %T", msg)
		}
		if jd.err != nil {
			t.Fatalf("jump failed: %v", jd.err)
		}
		m, _ = update(t, m, msg)
		return m
	case <-time.After(time.Second):
		t.Fatal("jump did not finish")
		return m
	}
}

func TestNewMainModel(t *testing.T) {
	m, _ := newTestModel(t, "a")
	if m.currentScreen != screenSplash {
		t.Errorf("expected initial screen to be splash, got %d", m.currentScreen)
	}
}

func TestMainModelInit(t *testing.T) {
	m, _ := newTestModel(t, "a")
	if m.Init() == nil {
		t.Error("expected Init to return a command")
	}
}

func TestMainModelWindowSize(t *testing.T) {
	m, _ := newTestModel(t, "a")
	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if m.width != 80 || m.height != 24 {
		t.Errorf("expected 80x24, got %dx%d", m.width, m.height)
	}
	if cmd != nil {
		t.Error("expected no command from WindowSizeMsg")
	}
}

func TestMainModelCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t, "a")
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected Quit command from ctrl+c")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
	if m.ctx.Err() == nil {
		t.Error("expected context cancelled on quit")
	}
}

func TestWorkspaceViewShowsPanes(t *testing.T) {
	m, _ := newTestModel(t, "alpha.go", "beta.go")
	m = onWorkspace(t, m)
	view := m.View()
	for _, want := range []string{"panejump", "alpha.go", "beta.go", "ctrl+g"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestJumpFocusesPane(t *testing.T) {
	m, ids := newTestModel(t, "a.go", "b.go", "c.go")
	m = onWorkspace(t, m)

	m, done := startJump(t, m)
	waitFor(t, m.host.PromptOpen)

	view := m.View()
	if !strings.Contains(view, jump.PromptTitle) {
		t.Error("expected prompt in view")
	}
	if label, ok := m.ws.Hint(ids[1]); !ok || label != "s" {
		t.Errorf("expected hint s on second pane, got %q", label)
	}

	m, _ = update(t, m, runes("s"))
	m = finish(t, m, done)

	if p, _ := m.ws.Active(); p.ID != ids[1] {
		t.Errorf("expected %s active, got %s", ids[1], p.ID)
	}
	if m.jumping || m.host.PromptOpen() {
		t.Error("expected jump finished")
	}
	if _, ok := m.ws.Hint(ids[1]); ok {
		t.Error("expected hints cleared")
	}
}

func TestJumpQueuesKeysUntilPromptOpens(t *testing.T) {
	m, ids := newTestModel(t, "a.go", "b.go")
	m = onWorkspace(t, m)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	m, _ = update(t, m, runes("s"))
	if len(m.queued) != 1 {
		t.Fatalf("expected key queued, got %d", len(m.queued))
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	waitFor(t, m.host.PromptOpen)

	m, _ = update(t, m, pubsub.Event[pane.Pane]{Type: pubsub.UpdatedEvent})
	m = finish(t, m, done)

	if p, _ := m.ws.Active(); p.ID != ids[1] {
		t.Errorf("expected %s active, got %s", ids[1], p.ID)
	}
}

func TestJumpEscapeDismisses(t *testing.T) {
	m, ids := newTestModel(t, "a.go", "b.go")
	m = onWorkspace(t, m)

	m, done := startJump(t, m)
	waitFor(t, m.host.PromptOpen)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = finish(t, m, done)

	if p, _ := m.ws.Active(); p.ID != ids[0] {
		t.Errorf("expected focus unchanged, got %s", p.ID)
	}
	if m.svc.History().Len() != 0 {
		t.Error("expected no history after dismissal")
	}
}

func TestJumpViewShortcutOpensSidebar(t *testing.T) {
	m, _ := newTestModel(t, "a.go")
	m = onWorkspace(t, m)

	m, done := startJump(t, m)
	waitFor(t, m.host.PromptOpen)
	m, _ = update(t, m, runes("P"))
	m = finish(t, m, done)

	if cmd, _ := m.ws.Sidebar(); cmd != shortcut.CmdProblems {
		t.Errorf("expected problems view, got %q", cmd)
	}
	if !strings.Contains(m.View(), "No problems.") {
		t.Error("expected empty problems view")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd, _ := m.ws.Sidebar(); cmd != "" {
		t.Errorf("expected sidebar closed, got %q", cmd)
	}
}

func TestJumpErrorShownInFooter(t *testing.T) {
	m, _ := newTestModel(t, "a.go")
	m = onWorkspace(t, m)
	m.jumping = true
	m, _ = update(t, m, jumpDoneMsg{err: ErrLastPane})

	if m.jumping {
		t.Error("expected jumping cleared")
	}
	if !strings.Contains(m.View(), "cannot close the last pane") {
		t.Error("expected error in footer")
	}
}

func TestProblemsCollectWarnings(t *testing.T) {
	m, _ := newTestModel(t, "a.go")
	m.logEvents = make(chan pubsub.Event[log.Entry])

	m, _ = update(t, m, pubsub.Event[log.Entry]{Payload: log.Entry{Level: log.LevelDebug, Line: "noise"}})
	m, _ = update(t, m, pubsub.Event[log.Entry]{Payload: log.Entry{Level: log.LevelError, Line: "boom"}})

	if len(m.problems) != 1 || m.problems[0] != "boom" {
		t.Errorf("unexpected problems %q", m.problems)
	}
}

func TestTabFocusesNextPane(t *testing.T) {
	m, ids := newTestModel(t, "a.go", "b.go")
	m = onWorkspace(t, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if p, _ := m.ws.Active(); p.ID != ids[1] {
		t.Errorf("expected %s active, got %s", ids[1], p.ID)
	}
}

func TestHelpScreenRoundTrip(t *testing.T) {
	m, _ := newTestModel(t, "a.go")
	m = onWorkspace(t, m)

	m, _ = update(t, m, runes("?"))
	if m.currentScreen != screenHelp {
		t.Fatalf("expected help screen, got %d", m.currentScreen)
	}
	if !strings.Contains(m.View(), "panejump help") {
		t.Error("expected help header")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected switch command")
	}
	m, _ = update(t, m, cmd())
	if m.currentScreen != screenWorkspace {
		t.Errorf("expected workspace screen, got %d", m.currentScreen)
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t, "a.go")
	m = onWorkspace(t, m)
	_, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestClosingPaneStopsWatchingItsFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.go")
	b := filepath.Join(dir, "b.go")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("package x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	ws := NewWorkspace()
	if err := ws.OpenFiles([]string{a, b}, 2); err != nil {
		t.Fatal(err)
	}
	w, err := watcher.New(10 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range ws.Paths() {
		if err := w.Add(p); err != nil {
			t.Fatal(err)
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Run(ctx)

	host := NewHost(ws)
	m := NewMainModel(Options{
		Context:   ctx,
		Service:   jump.New(host),
		Host:      host,
		Workspace: ws,
		Watcher:   w,
		Theme:     config.Defaults().Theme,
	})
	t.Cleanup(m.cancel)

	// A second pane on b.go keeps it watched when the first one closes.
	panes := ws.Panes()
	if _, err := ws.Split(panes[1].ID, false); err != nil {
		t.Fatal(err)
	}
	if err := ws.Close(panes[1].ID); err != nil {
		t.Fatal(err)
	}
	update(t, m, pubsub.Event[pane.Pane]{Type: pubsub.DeletedEvent, Payload: panes[1]})
	if got := w.Files(); len(got) != 2 {
		t.Fatalf("expected both files still watched, got %v", got)
	}

	if err := ws.Close(panes[0].ID); err != nil {
		t.Fatal(err)
	}
	update(t, m, pubsub.Event[pane.Pane]{Type: pubsub.DeletedEvent, Payload: panes[0]})
	got := w.Files()
	if len(got) != 1 || got[0] != ws.Paths()[0] {
		t.Errorf("expected only %v watched, got %v", ws.Paths(), got)
	}
}
