package tui

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/guzus/panejump/internal/pane"
	"github.com/guzus/panejump/internal/pubsub"
)

var (
	ErrUnknownPane = errors.New("unknown pane")
	ErrLastPane    = errors.New("cannot close the last pane")
)

const (
	chromeHeight = 2  // header + footer
	paneChrome   = 3  // border top/bottom + title row
	sidebarWidth = 32 // includes its border
	defaultInner = 10 // pane text rows before the first resize
)

// buffer is one pane's contents and scroll position.
type buffer struct {
	id    pane.ID
	title string
	path  string
	lines []string
	top   int
}

type hint struct {
	lines []int
	label string
}

// Workspace is the pane layout shown by the terminal host. It is shared by
// the UI goroutine and jump sessions running in commands, so every method
// locks.
type Workspace struct {
	mu      sync.Mutex
	columns [][]*buffer
	active  pane.ID
	sidebar string // command of the open side view, "" when closed
	onSide  bool   // side view has focus
	hints   map[pane.ID]hint
	prompt  *promptState
	width   int
	height  int
	nextID  int
	broker  *pubsub.Broker[pane.Pane]
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		hints:  make(map[pane.ID]hint),
		broker: pubsub.NewBroker[pane.Pane](),
	}
}

// Broker publishes FocusedEvent, DeletedEvent and UpdatedEvent for panes.
func (w *Workspace) Broker() *pubsub.Broker[pane.Pane] {
	return w.broker
}

// AddColumn opens lines in a new rightmost column and returns its pane ID.
// The first pane added becomes active.
func (w *Workspace) AddColumn(title, path string, lines []string) pane.ID {
	w.mu.Lock()
	defer w.mu.Unlock()

	b := w.newBuffer(title, path, lines)
	w.columns = append(w.columns, []*buffer{b})
	if w.active == "" {
		w.active = b.id
	}
	return b.id
}

func (w *Workspace) newBuffer(title, path string, lines []string) *buffer {
	w.nextID++
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &buffer{
		id:    pane.ID(fmt.Sprintf("pane-%d", w.nextID)),
		title: title,
		path:  path,
		lines: lines,
	}
}

// SetSize records the terminal size used to compute visible ranges.
func (w *Workspace) SetSize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
}

// Panes returns the visible panes column by column, top to bottom.
func (w *Workspace) Panes() []pane.Pane {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []pane.Pane
	for _, col := range w.columns {
		for i, b := range col {
			out = append(out, w.snapshot(b, w.innerHeight(len(col), i)))
		}
	}
	return out
}

// Active returns the active pane.
func (w *Workspace) Active() (pane.Pane, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ci, ri := w.find(w.active)
	if ci < 0 {
		return pane.Pane{}, false
	}
	col := w.columns[ci]
	return w.snapshot(col[ri], w.innerHeight(len(col), ri)), true
}

// Len returns the number of panes.
func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, col := range w.columns {
		n += len(col)
	}
	return n
}

func (w *Workspace) snapshot(b *buffer, inner int) pane.Pane {
	end := b.top + inner - 1
	if end > len(b.lines)-1 {
		end = len(b.lines) - 1
	}
	return pane.Pane{
		ID:      b.id,
		Title:   b.title,
		Visible: pane.Range{Start: b.top, End: end},
		Lines:   len(b.lines),
	}
}

// innerHeight returns the text rows of pane row i in a column of n panes.
func (w *Workspace) innerHeight(n, i int) int {
	if w.height == 0 || n == 0 {
		return defaultInner
	}
	area := w.height - chromeHeight
	outer := area / n
	if i == n-1 {
		outer = area - outer*(n-1)
	}
	if inner := outer - paneChrome; inner > 1 {
		return inner
	}
	return 1
}

func (w *Workspace) find(id pane.ID) (int, int) {
	for ci, col := range w.columns {
		for ri, b := range col {
			if b.id == id {
				return ci, ri
			}
		}
	}
	return -1, -1
}

// Focus makes id the active pane and moves focus off the side view.
func (w *Workspace) Focus(id pane.ID) error {
	w.mu.Lock()
	ci, ri := w.find(id)
	if ci < 0 {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownPane, id)
	}
	changed := w.active != id || w.onSide
	w.active = id
	w.onSide = false
	p := w.snapshot(w.columns[ci][ri], w.innerHeight(len(w.columns[ci]), ri))
	w.mu.Unlock()

	if changed {
		w.broker.Publish(pubsub.FocusedEvent, p)
	}
	return nil
}

// FocusNext moves focus to the next pane in layout order, wrapping around.
func (w *Workspace) FocusNext() {
	panes := w.Panes()
	if len(panes) == 0 {
		return
	}
	w.mu.Lock()
	active := w.active
	w.mu.Unlock()

	next := panes[0].ID
	for i, p := range panes {
		if p.ID == active {
			next = panes[(i+1)%len(panes)].ID
			break
		}
	}
	_ = w.Focus(next)
}

// Close removes id. The last pane cannot be closed. When the active pane is
// closed its neighbour becomes active.
func (w *Workspace) Close(id pane.ID) error {
	w.mu.Lock()
	ci, ri := w.find(id)
	if ci < 0 {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownPane, id)
	}
	if len(w.columns) == 1 && len(w.columns[0]) == 1 {
		w.mu.Unlock()
		return ErrLastPane
	}

	closed := w.snapshot(w.columns[ci][ri], w.innerHeight(len(w.columns[ci]), ri))
	col := append(w.columns[ci][:ri:ri], w.columns[ci][ri+1:]...)
	if len(col) == 0 {
		w.columns = append(w.columns[:ci:ci], w.columns[ci+1:]...)
		if ci >= len(w.columns) {
			ci = len(w.columns) - 1
		}
		ri = 0
	} else {
		w.columns[ci] = col
		if ri >= len(col) {
			ri = len(col) - 1
		}
	}
	delete(w.hints, id)

	var focused *pane.Pane
	if w.active == id {
		next := w.columns[ci][ri]
		w.active = next.id
		p := w.snapshot(next, w.innerHeight(len(w.columns[ci]), ri))
		focused = &p
	}
	w.mu.Unlock()

	w.broker.Publish(pubsub.DeletedEvent, closed)
	if focused != nil {
		w.broker.Publish(pubsub.FocusedEvent, *focused)
	}
	return nil
}

// Split opens a copy of id's buffer below it, or in a new column to its
// right when vertical is set. The copy becomes active.
func (w *Workspace) Split(id pane.ID, vertical bool) (pane.ID, error) {
	w.mu.Lock()
	ci, ri := w.find(id)
	if ci < 0 {
		w.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrUnknownPane, id)
	}
	src := w.columns[ci][ri]
	b := w.newBuffer(src.title, src.path, src.lines)
	b.top = src.top

	if vertical {
		cols := make([][]*buffer, 0, len(w.columns)+1)
		cols = append(cols, w.columns[:ci+1]...)
		cols = append(cols, []*buffer{b})
		w.columns = append(cols, w.columns[ci+1:]...)
		ci, ri = ci+1, 0
	} else {
		col := make([]*buffer, 0, len(w.columns[ci])+1)
		col = append(col, w.columns[ci][:ri+1]...)
		col = append(col, b)
		w.columns[ci] = append(col, w.columns[ci][ri+1:]...)
		ri++
	}
	w.active = b.id
	w.onSide = false
	p := w.snapshot(b, w.innerHeight(len(w.columns[ci]), ri))
	w.mu.Unlock()

	w.broker.Publish(pubsub.FocusedEvent, p)
	return b.id, nil
}

// Scroll moves the active pane by delta lines.
func (w *Workspace) Scroll(delta int) {
	w.mu.Lock()
	ci, ri := w.find(w.active)
	if ci < 0 {
		w.mu.Unlock()
		return
	}
	b := w.columns[ci][ri]
	b.top += delta
	if last := len(b.lines) - 1; b.top > last {
		b.top = last
	}
	if b.top < 0 {
		b.top = 0
	}
	p := w.snapshot(b, w.innerHeight(len(w.columns[ci]), ri))
	w.mu.Unlock()

	w.broker.Publish(pubsub.UpdatedEvent, p)
}

// Reload replaces the contents of every pane showing path.
func (w *Workspace) Reload(path string, lines []string) int {
	if len(lines) == 0 {
		lines = []string{""}
	}
	w.mu.Lock()
	n := 0
	for _, col := range w.columns {
		for _, b := range col {
			if b.path != path {
				continue
			}
			b.lines = lines
			if b.top > len(lines)-1 {
				b.top = len(lines) - 1
			}
			n++
		}
	}
	w.mu.Unlock()

	if n > 0 {
		w.broker.Publish(pubsub.UpdatedEvent, pane.Pane{})
	}
	return n
}

// Paths returns the distinct file paths open in panes.
func (w *Workspace) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, col := range w.columns {
		for _, b := range col {
			if b.path != "" && !seen[b.path] {
				seen[b.path] = true
				out = append(out, b.path)
			}
		}
	}
	return out
}

// OpenSidebar shows the side view opened by command and focuses it.
func (w *Workspace) OpenSidebar(command string) {
	w.mu.Lock()
	w.sidebar = command
	w.onSide = true
	w.mu.Unlock()
	w.broker.Publish(pubsub.UpdatedEvent, pane.Pane{})
}

// CloseSidebar hides the side view.
func (w *Workspace) CloseSidebar() bool {
	w.mu.Lock()
	open := w.sidebar != ""
	w.sidebar = ""
	w.onSide = false
	w.mu.Unlock()
	if open {
		w.broker.Publish(pubsub.UpdatedEvent, pane.Pane{})
	}
	return open
}

// Sidebar returns the open side view's command and whether it has focus.
func (w *Workspace) Sidebar() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sidebar, w.onSide
}

// SetHint shows label on lines of pane id.
func (w *Workspace) SetHint(id pane.ID, lines []int, label string) {
	w.mu.Lock()
	w.hints[id] = hint{lines: append([]int(nil), lines...), label: label}
	w.mu.Unlock()
	w.broker.Publish(pubsub.UpdatedEvent, pane.Pane{ID: id})
}

// ClearHint removes id's hint.
func (w *Workspace) ClearHint(id pane.ID) {
	w.mu.Lock()
	delete(w.hints, id)
	w.mu.Unlock()
	w.broker.Publish(pubsub.UpdatedEvent, pane.Pane{ID: id})
}

// Hint returns id's hint label.
func (w *Workspace) Hint(id pane.ID) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	h, ok := w.hints[id]
	return h.label, ok
}

func (w *Workspace) setPrompt(p *promptState) {
	w.mu.Lock()
	w.prompt = p
	w.mu.Unlock()
	w.broker.Publish(pubsub.UpdatedEvent, pane.Pane{})
}

// layoutPane is a render snapshot of one pane.
type layoutPane struct {
	pane   pane.Pane
	lines  []string // visible lines
	active bool
	hint   *hint
}

// layout is a render snapshot of the whole workspace.
type layout struct {
	columns [][]layoutPane
	heights [][]int // inner heights, parallel to columns
	sidebar string
	onSide  bool
	prompt  *promptState
}

func (w *Workspace) layout() layout {
	w.mu.Lock()
	defer w.mu.Unlock()

	l := layout{sidebar: w.sidebar, onSide: w.onSide}
	if w.prompt != nil {
		p := *w.prompt
		l.prompt = &p
	}
	for _, col := range w.columns {
		var lc []layoutPane
		var hs []int
		for i, b := range col {
			inner := w.innerHeight(len(col), i)
			snap := w.snapshot(b, inner)
			lp := layoutPane{
				pane:   snap,
				lines:  b.lines[snap.Visible.Start : snap.Visible.End+1],
				active: b.id == w.active && !w.onSide,
			}
			if h, ok := w.hints[b.id]; ok {
				h := h
				lp.hint = &h
			}
			lc = append(lc, lp)
			hs = append(hs, inner)
		}
		l.columns = append(l.columns, lc)
		l.heights = append(l.heights, hs)
	}
	return l
}

// LoadFile reads path as lines.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// OpenFiles loads each path into its own column, up to columns columns;
// further files are stacked in the last column. Without paths the welcome
// text is opened.
func (w *Workspace) OpenFiles(paths []string, columns int) error {
	if len(paths) == 0 {
		w.AddColumn("welcome", "", welcomeLines())
		return nil
	}
	if columns < 1 {
		columns = 1
	}
	for i, p := range paths {
		lines, err := LoadFile(p)
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		if i < columns {
			w.AddColumn(filepath.Base(p), abs, lines)
			continue
		}
		w.mu.Lock()
		last := len(w.columns) - 1
		w.columns[last] = append(w.columns[last], w.newBuffer(filepath.Base(p), abs, lines))
		w.mu.Unlock()
	}
	return nil
}

func welcomeLines() []string {
	return strings.Split(`panejump

Press ctrl+g to jump. Every pane shows a key in its corner:
type it to focus that pane.

Uppercase keys open side views (S search, G git, R references,
E explorer, P problems, T terminal, O outline).
Lowercase x, h and v close or split a pane: press the action,
then the pane key.
; returns to where you were before.

tab cycles panes, ? shows help, q quits.`, "\n")
}

// Lines returns a copy of id's buffer.
func (w *Workspace) Lines(id pane.ID) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	ci, ri := w.find(id)
	if ci < 0 {
		return nil
	}
	return append([]string(nil), w.columns[ci][ri].lines...)
}
