package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/guzus/panejump/internal/jump"
	"github.com/guzus/panejump/internal/shortcut"
)

const lineNumberWidth = 4

// renderPanes draws the pane columns into width x height cells.
func renderPanes(l layout, st Styles, width, height int) string {
	if len(l.columns) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	colWidth := width / len(l.columns)
	rendered := make([]string, 0, len(l.columns))
	for ci, col := range l.columns {
		w := colWidth
		if ci == len(l.columns)-1 {
			w = width - colWidth*(len(l.columns)-1)
		}
		boxes := make([]string, 0, len(col))
		for ri, lp := range col {
			boxes = append(boxes, renderPane(lp, st, w, l.heights[ci][ri]))
		}
		rendered = append(rendered, lipgloss.JoinVertical(lipgloss.Left, boxes...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderPane(lp layoutPane, st Styles, width, inner int) string {
	box, title := st.Pane, st.Title
	if lp.active {
		box, title = st.ActivePane, st.ActiveTitle
	}
	textWidth := width - 2
	if textWidth < 1 {
		textWidth = 1
	}

	head := title.Render(lp.pane.Title)
	hinted := make(map[int]bool)
	if lp.hint != nil {
		head = st.Hint.Render(lp.hint.label) + " " + head
		for _, y := range lp.hint.lines {
			hinted[y] = true
		}
	}

	rows := make([]string, 0, inner+1)
	rows = append(rows, ansi.Truncate(head, textWidth, "…"))
	for i, text := range lp.lines {
		y := lp.pane.Visible.Start + i
		num := lineNumberStyle.Render(fmt.Sprintf("%*d ", lineNumberWidth-1, y+1))
		body := textStyle.Render(text)
		if hinted[y] {
			body = st.Hint.Render(lp.hint.label) + " " + body
		}
		rows = append(rows, ansi.Truncate(num+body, textWidth, "…"))
	}
	for len(rows) < inner+1 {
		rows = append(rows, "")
	}

	return box.Width(textWidth).Height(inner + 1).Render(strings.Join(rows, "\n"))
}

// renderPrompt draws the jump prompt box.
func renderPrompt(p *promptState, st Styles, width int) string {
	maxWidth := width - 4
	if maxWidth < 10 {
		maxWidth = 10
	}
	lines := []string{st.PromptTitle.Render(p.title)}
	for _, it := range p.items {
		line := it.Label
		if it.Description != "" {
			sep := "  "
			if it.Label == jump.HistoryLabel {
				sep = ": "
			}
			line += sep + st.PromptDetail.Render(it.Description)
		}
		lines = append(lines, ansi.Truncate(line, maxWidth, "…"))
	}
	return st.Prompt.Render(strings.Join(lines, "\n"))
}

// sidebarContent is the body of a side view.
type sidebarContent struct {
	title string
	lines []string
}

func renderSidebar(c sidebarContent, st Styles, focused bool, height int) string {
	title := st.Title.Render(c.title)
	if focused {
		title = st.ActiveTitle.Render(c.title)
	}
	textWidth := sidebarWidth - 3
	rows := []string{title, ""}
	for _, l := range c.lines {
		if len(rows) >= height {
			break
		}
		rows = append(rows, ansi.Truncate(l, textWidth, "…"))
	}
	return st.Sidebar.Width(sidebarWidth - 1).Height(height).Render(strings.Join(rows, "\n"))
}

// viewTitle names the side view opened by command.
func viewTitle(command string) string {
	if v, ok := shortcut.ViewFor(command); ok {
		return strings.ToUpper(v.Description[:1]) + v.Description[1:]
	}
	return command
}

// placeBottom draws fg over the bottom of bg, centred horizontally. Both
// may contain ANSI styling.
func placeBottom(fg, bg string, width, height, padY int) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	x := (width - lipgloss.Width(fg)) / 2
	if x < 0 {
		x = 0
	}
	y := height - len(fgLines) - padY
	if y < 0 {
		y = 0
	}

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]
		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		var right string
		if end := x + ansi.StringWidth(line); end < ansi.StringWidth(bgLine) {
			right = ansi.TruncateLeft(bgLine, end, "")
		}
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}
