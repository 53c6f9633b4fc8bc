package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/guzus/panejump/internal/config"
)

// Colors
var (
	colorBlue    = lipgloss.Color("#1DA1F2")
	colorLightFg = lipgloss.Color("#E1E8ED")
	colorMuted   = lipgloss.Color("#657786")
	colorRed     = lipgloss.Color("#E0245E")
	colorYellow  = lipgloss.Color("#FFAD1F")
	colorWhite   = lipgloss.Color("#FFFFFF")
)

// Fixed styles
var (
	headerStyle = lipgloss.NewStyle().
			Background(colorBlue).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	brandStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	textStyle = lipgloss.NewStyle().
			Foreground(colorLightFg)

	errorMsgStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	warnMsgStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

// Styles are the theme-dependent styles.
type Styles struct {
	Hint         lipgloss.Style
	Pane         lipgloss.Style
	ActivePane   lipgloss.Style
	Title        lipgloss.Style
	ActiveTitle  lipgloss.Style
	Prompt       lipgloss.Style
	PromptTitle  lipgloss.Style
	PromptDetail lipgloss.Style
	Sidebar      lipgloss.Style
}

// NewStyles builds styles from the theme colors.
func NewStyles(theme config.ThemeConfig) Styles {
	border := lipgloss.Color(theme.Border)
	active := lipgloss.Color(theme.ActiveBorder)
	prompt := lipgloss.Color(theme.Prompt)

	return Styles{
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.HintForeground)).
			Background(lipgloss.Color(theme.HintBackground)).
			Bold(true).
			Padding(0, 1),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),
		ActivePane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(active),
		Title: lipgloss.NewStyle().
			Foreground(colorMuted),
		ActiveTitle: lipgloss.NewStyle().
			Foreground(active).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(prompt).
			Padding(0, 1),
		PromptTitle: lipgloss.NewStyle().
			Foreground(prompt).
			Bold(true),
		PromptDetail: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(border).
			Padding(0, 1),
	}
}
