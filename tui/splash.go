package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type tickMsg time.Time

const (
	splashTicks    = 6
	splashInterval = 300 * time.Millisecond
	splashMaxWidth = 60
)

// SplashModel shows the animated logo, the panes about to open and the jump
// keys. Any key or the last tick moves on to the workspace.
type SplashModel struct {
	titles []string
	ticks  int
	width  int
	height int
}

// NewSplashModel returns a splash listing titles, the panes being opened.
func NewSplashModel(titles []string) SplashModel {
	return SplashModel{titles: titles}
}

func (m SplashModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(splashInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func toWorkspace() tea.Msg {
	return switchScreenMsg{target: screenWorkspace}
}

func (m SplashModel) Update(msg tea.Msg) (SplashModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m, toWorkspace
	case tickMsg:
		m.ticks++
		if m.ticks >= splashTicks {
			return m, toWorkspace
		}
		return m, tickCmd()
	}
	return m, nil
}

// frame is the logo frame for the current tick.
func (m SplashModel) frame() int {
	return m.ticks % len(logoFrames)
}

func (m SplashModel) summary() string {
	switch len(m.titles) {
	case 0:
		return "no files"
	case 1:
		return "opening " + m.titles[0]
	default:
		return fmt.Sprintf("opening %d panes: %s", len(m.titles), strings.Join(m.titles, ", "))
	}
}

func (m SplashModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	width := min(m.width, splashMaxWidth)

	content := lipgloss.JoinVertical(lipgloss.Center,
		brandStyle.Render(logoFrames[m.frame()]),
		"",
		brandStyle.Render("p a n e j u m p"),
		"",
		textStyle.Render(ansi.Truncate(m.summary(), width, "…")),
		lineNumberStyle.Render("ctrl+g jump · ; back · ? help"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
