package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/guzus/panejump/internal/shortcut"
)

// HelpModel shows the key reference in a scrollable viewport.
type HelpModel struct {
	viewport viewport.Model
	groups   []shortcut.Group
	keys     KeyMap
	width    int
	height   int
	ready    bool
}

func NewHelpModel(groups []shortcut.Group, keys KeyMap) HelpModel {
	return HelpModel{groups: groups, keys: keys}
}

const helpOverhead = 2 // header + footer

func (m HelpModel) Update(msg tea.Msg) (HelpModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - helpOverhead
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.viewport.SetContent(renderMarkdown(helpMarkdown(m.groups, m.keys), m.width-2))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help):
			return m, func() tea.Msg { return switchScreenMsg{target: screenWorkspace} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m HelpModel) View() string {
	if !m.ready {
		return ""
	}
	header := headerStyle.Width(m.width).Render("panejump help")
	footer := statusBarStyle.Width(m.width).Render("↑/↓: scroll | esc: back")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}

// helpMarkdown documents the jump shortcuts and the workspace keys.
func helpMarkdown(groups []shortcut.Group, keys KeyMap) string {
	var b strings.Builder
	b.WriteString("# Jumping\n\n")
	b.WriteString("Press `ctrl+g`. Each pane shows its key; type it to focus the pane. ")
	b.WriteString("Keys that belong to a shortcut always run the shortcut.\n\n")

	for _, g := range groups {
		fmt.Fprintf(&b, "## %s\n\n| Key | Action |\n|---|---|\n", strings.ToUpper(g.Title[:1])+g.Title[1:])
		for _, s := range g.Shortcuts {
			desc := s.Description
			if s.Kind() == shortcut.KindEditorScoped {
				desc += " (then a pane key)"
			}
			fmt.Fprintf(&b, "| `%c` | %s |\n", s.Key, desc)
		}
		b.WriteString("\n")
	}

	b.WriteString("# Workspace\n\n| Key | Action |\n|---|---|\n")
	for _, group := range keys.FullHelp() {
		for _, k := range group {
			h := k.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	return b.String()
}

func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return textStyle.Width(width).Render(content)
	}
	out, err := r.Render(content)
	if err != nil {
		return textStyle.Width(width).Render(content)
	}
	return strings.TrimRight(out, "\n")
}
