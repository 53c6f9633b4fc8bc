// Package pane describes the visible editing surfaces a jump session works on.
package pane

// ID identifies a pane for the lifetime of one jump session.
type ID string

// Range is an inclusive span of zero-based line numbers.
type Range struct {
	Start int
	End   int
}

// Pane is a borrowed snapshot of a visible pane taken from the host.
type Pane struct {
	ID      ID
	Title   string
	Visible Range
	Lines   int // total lines in the pane's buffer, 0 when unknown
}

// Assignment binds a jump key to a pane for one session.
type Assignment struct {
	Key  rune
	Pane Pane
}

// Alphabet is the pane-key priority order: home row first, then the upper row.
const Alphabet = "asdfjklqweruiop"

// Assign hands out keys from Alphabet to panes in enumeration order,
// skipping any rune for which reserved returns true. Panes left over once
// the alphabet runs out receive no key and are not returned.
func Assign(panes []Pane, reserved func(rune) bool) []Assignment {
	out := make([]Assignment, 0, len(panes))
	keys := []rune(Alphabet)
	next := 0
	for _, p := range panes {
		for next < len(keys) && reserved != nil && reserved(keys[next]) {
			next++
		}
		if next >= len(keys) {
			break
		}
		out = append(out, Assignment{Key: keys[next], Pane: p})
		next++
	}
	return out
}

// HintLines returns the lines that carry a pane's key badge: the line above
// the visible range, the first visible line and the line below it. Lines
// outside the buffer are dropped.
func HintLines(p Pane) []int {
	candidates := []int{p.Visible.Start - 1, p.Visible.Start, p.Visible.End + 1}
	out := make([]int, 0, len(candidates))
	seen := make(map[int]bool, len(candidates))
	for _, y := range candidates {
		if y < 0 || seen[y] {
			continue
		}
		if p.Lines > 0 && y >= p.Lines {
			continue
		}
		seen[y] = true
		out = append(out, y)
	}
	return out
}
