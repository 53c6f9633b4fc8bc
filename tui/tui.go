package tui

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/guzus/panejump/internal/config"
	"github.com/guzus/panejump/internal/jump"
	"github.com/guzus/panejump/internal/log"
	"github.com/guzus/panejump/internal/pane"
	"github.com/guzus/panejump/internal/pubsub"
	"github.com/guzus/panejump/internal/shortcut"
	"github.com/guzus/panejump/internal/watcher"
)

type screen int

const (
	screenSplash screen = iota
	screenWorkspace
	screenHelp
)

type switchScreenMsg struct {
	target screen
}

// jumpDoneMsg reports the end of a jump session.
type jumpDoneMsg struct {
	err error
}

// reloadMsg carries files changed on disk.
type reloadMsg struct {
	paths []string
}

const maxProblems = 50

// Options wires the model to its collaborators.
type Options struct {
	Context    context.Context
	Service    *jump.Service
	Host       *Host
	Workspace  *Workspace
	Watcher    *watcher.Watcher // optional
	Theme      config.ThemeConfig
	ScrollStep int
}

// MainModel routes between the splash, workspace and help screens.
type MainModel struct {
	ctx           context.Context
	cancel        context.CancelFunc
	currentScreen screen
	width         int
	height        int
	splash        SplashModel
	help          HelpModel
	helpBar       help.Model
	keys          KeyMap
	styles        Styles

	svc        *jump.Service
	host       *Host
	ws         *Workspace
	watcher    *watcher.Watcher
	paneEvents *pubsub.Listener[pane.Pane]
	logEvents  <-chan pubsub.Event[log.Entry]
	scrollStep int

	jumping  bool
	queued   []jump.PromptEvent // keys typed before the prompt opened
	problems []string
	status   string
}

func NewMainModel(opts Options) MainModel {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	if opts.ScrollStep < 1 {
		opts.ScrollStep = 1
	}
	keys := DefaultKeyMap()
	var titles []string
	for _, p := range opts.Workspace.Panes() {
		titles = append(titles, p.Title)
	}

	return MainModel{
		ctx:           ctx,
		cancel:        cancel,
		currentScreen: screenSplash,
		splash:        NewSplashModel(titles),
		help:          NewHelpModel(opts.Service.Groups(), keys),
		helpBar:       help.New(),
		keys:          keys,
		styles:        NewStyles(opts.Theme),
		svc:           opts.Service,
		host:          opts.Host,
		ws:            opts.Workspace,
		watcher:       opts.Watcher,
		paneEvents:    pubsub.NewListener[pane.Pane](ctx, opts.Workspace.Broker()),
		logEvents:     log.Subscribe(ctx),
		scrollStep:    opts.ScrollStep,
	}
}

func (m MainModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.splash.Init(), m.paneEvents.Listen()}
	if m.logEvents != nil {
		cmds = append(cmds, pubsub.ListenCmd(m.ctx, m.logEvents))
	}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForReload())
	}
	return tea.Batch(cmds...)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ws.SetSize(msg.Width, msg.Height)
		m.helpBar.Width = msg.Width
		m.splash, _ = m.splash.Update(msg)
		m.help, _ = m.help.Update(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}

	case switchScreenMsg:
		m.currentScreen = msg.target
		return m, nil

	case pubsub.Event[pane.Pane]:
		if msg.Type == pubsub.DeletedEvent {
			m.unwatchClosed()
		}
		m.flushQueued()
		return m, m.paneEvents.Listen()

	case pubsub.Event[log.Entry]:
		if msg.Payload.Level >= log.LevelWarn {
			m.problems = append(m.problems, msg.Payload.Line)
			if len(m.problems) > maxProblems {
				m.problems = m.problems[len(m.problems)-maxProblems:]
			}
		}
		return m, pubsub.ListenCmd(m.ctx, m.logEvents)

	case jumpDoneMsg:
		m.jumping = false
		m.queued = nil
		if msg.err != nil {
			m.status = "jump: " + msg.err.Error()
			log.ErrorErr(log.CatUI, "jump failed", msg.err)
		}
		return m, nil

	case reloadMsg:
		for _, p := range msg.paths {
			lines, err := LoadFile(p)
			if err != nil {
				log.ErrorErr(log.CatWatcher, "reload failed", err, "path", p)
				continue
			}
			n := m.ws.Reload(p, lines)
			log.Debug(log.CatWatcher, "reloaded", "path", p, "panes", n)
		}
		return m, m.waitForReload()
	}

	var cmd tea.Cmd
	switch m.currentScreen {
	case screenSplash:
		m.splash, cmd = m.splash.Update(msg)
	case screenWorkspace:
		return m.updateWorkspace(msg)
	case screenHelp:
		m.help, cmd = m.help.Update(msg)
	}
	return m, cmd
}

func (m MainModel) updateWorkspace(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.jumping {
		m.promptKey(keyMsg)
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Jump):
		m.jumping = true
		m.status = ""
		return m, m.jumpCmd()
	case key.Matches(keyMsg, m.keys.NextPane):
		m.ws.FocusNext()
	case key.Matches(keyMsg, m.keys.Up):
		m.ws.Scroll(-m.scrollStep)
	case key.Matches(keyMsg, m.keys.Down):
		m.ws.Scroll(m.scrollStep)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.ws.Scroll(-m.pageSize())
	case key.Matches(keyMsg, m.keys.PageDown):
		m.ws.Scroll(m.pageSize())
	case key.Matches(keyMsg, m.keys.Escape):
		m.ws.CloseSidebar()
	case key.Matches(keyMsg, m.keys.Help):
		m.currentScreen = screenHelp
	case key.Matches(keyMsg, m.keys.Quit):
		return m, m.quit()
	}
	return m, nil
}

// promptKey routes a key typed during a jump. Keys typed before the host
// has opened the prompt are queued and sent once it is open.
func (m *MainModel) promptKey(msg tea.KeyMsg) {
	var events []jump.PromptEvent
	switch {
	case key.Matches(msg, m.keys.Escape):
		events = append(events, jump.DismissEvent())
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			events = append(events, jump.KeyEvent(r))
		}
	default:
		return
	}

	m.queued = append(m.queued, events...)
	m.flushQueued()
}

func (m *MainModel) flushQueued() {
	if len(m.queued) == 0 || !m.host.PromptOpen() {
		return
	}
	for _, ev := range m.queued {
		if ev.Dismissed {
			m.host.Dismiss()
			continue
		}
		m.host.Key(ev.Key)
	}
	m.queued = nil
}

func (m MainModel) jumpCmd() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return jumpDoneMsg{err: svc.Jump(ctx)}
	}
}

func (m MainModel) waitForReload() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		paths, ok := <-changes
		if !ok {
			return nil
		}
		return reloadMsg{paths: paths}
	}
}

// unwatchClosed stops watching files no pane shows any more.
func (m MainModel) unwatchClosed() {
	if m.watcher == nil {
		return
	}
	open := make(map[string]bool)
	for _, p := range m.ws.Paths() {
		open[p] = true
	}
	for _, f := range m.watcher.Files() {
		if !open[f] {
			m.watcher.Remove(f)
			log.Debug(log.CatWatcher, "stopped watching", "path", f)
		}
	}
}

func (m MainModel) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}

func (m MainModel) pageSize() int {
	if p, ok := m.ws.Active(); ok {
		if n := p.Visible.End - p.Visible.Start; n > 0 {
			return n
		}
	}
	return defaultInner
}

func (m MainModel) View() string {
	switch m.currentScreen {
	case screenSplash:
		return m.splash.View()
	case screenWorkspace:
		return m.workspaceView()
	case screenHelp:
		return m.help.View()
	default:
		return ""
	}
}

func (m MainModel) workspaceView() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.ws.layout()
	bodyHeight := m.height - chromeHeight

	paneWidth := m.width
	var side string
	if l.sidebar != "" {
		paneWidth -= sidebarWidth
		side = renderSidebar(m.sidebarContent(l.sidebar), m.styles, l.onSide, bodyHeight)
	}
	body := renderPanes(l, m.styles, paneWidth, bodyHeight)
	if side != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, side)
	}

	out := lipgloss.JoinVertical(lipgloss.Left, m.header(), body, m.footer())
	if l.prompt != nil {
		out = placeBottom(renderPrompt(l.prompt, m.styles, m.width), out, m.width, m.height, 1)
	}
	return out
}

func (m MainModel) header() string {
	left := headerStyle.Render(" panejump ")
	info := "no history"
	if e, ok := m.svc.History().Head(); ok {
		info = e.Label
	}
	right := headerStyle.Render(" " + info + " ")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + headerStyle.Render(strings.Repeat(" ", gap)) + right
}

func (m MainModel) footer() string {
	if m.status != "" {
		return errorMsgStyle.Width(m.width).Render(m.status)
	}
	if m.jumping {
		return statusBarStyle.Width(m.width).Render("type a key | esc: cancel")
	}
	return statusBarStyle.Width(m.width).Render(m.helpBar.View(m.keys))
}

func (m MainModel) sidebarContent(command string) sidebarContent {
	c := sidebarContent{title: viewTitle(command)}
	switch command {
	case shortcut.CmdProblems:
		for i := len(m.problems) - 1; i >= 0; i-- {
			c.lines = append(c.lines, warnMsgStyle.Render(m.problems[i]))
		}
		if len(c.lines) == 0 {
			c.lines = []string{"No problems."}
		}
	case shortcut.CmdExplorer:
		for _, p := range m.ws.Paths() {
			c.lines = append(c.lines, filepath.Base(p))
		}
		if len(c.lines) == 0 {
			c.lines = []string{"No files open."}
		}
	case shortcut.CmdOutline:
		if p, ok := m.ws.Active(); ok {
			c.lines = outline(m.ws.Lines(p.ID))
		}
		if len(c.lines) == 0 {
			c.lines = []string{"No symbols."}
		}
	case shortcut.CmdSCM:
		c.lines = []string{"No changes."}
	case shortcut.CmdTerminal:
		c.lines = []string{"No terminal sessions."}
	default:
		c.lines = []string{"No results."}
	}
	return c
}

// outline lists declaration and heading lines.
func outline(lines []string) []string {
	var out []string
	for _, l := range lines {
		t := strings.TrimSpace(l)
		switch {
		case strings.HasPrefix(t, "func "), strings.HasPrefix(t, "type "), strings.HasPrefix(t, "#"):
			out = append(out, t)
		}
	}
	return out
}
