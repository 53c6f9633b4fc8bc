// Package shortcut defines the single-key actions offered by a jump session
// and builds the grouped set shown for one invocation.
package shortcut

import (
	"context"
	"fmt"
	"strings"

	"github.com/guzus/panejump/internal/history"
	"github.com/guzus/panejump/internal/pane"
)

// Kind tells whether a shortcut runs immediately or needs a target pane.
type Kind int

const (
	KindDirect Kind = iota
	KindEditorScoped
)

func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindEditorScoped:
		return "editor-scoped"
	default:
		return "unknown"
	}
}

// Action is implemented by Direct and EditorScoped only.
type Action interface {
	kind() Kind
}

// Direct runs without a target.
type Direct func(ctx context.Context) error

// EditorScoped runs against the pane the user picks next.
type EditorScoped func(ctx context.Context, p pane.Pane) error

func (Direct) kind() Kind       { return KindDirect }
func (EditorScoped) kind() Kind { return KindEditorScoped }

// Shortcut is one key in the overlay.
type Shortcut struct {
	Key         rune
	Description string
	Action      Action
	// Record pushes a history entry for Target after a Direct action succeeds.
	Record bool
	Target history.Target
}

// Kind reports the shortcut's action kind.
func (s Shortcut) Kind() Kind {
	if s.Action == nil {
		return KindDirect
	}
	return s.Action.kind()
}

// Label renders "k: description".
func (s Shortcut) Label() string {
	return fmt.Sprintf("%c: %s", s.Key, s.Description)
}

// Group is a display grouping; it has no effect on matching.
type Group struct {
	Title     string
	Shortcuts []Shortcut
}

// Hint joins the group's labels with commas.
func (g Group) Hint() string {
	labels := make([]string, 0, len(g.Shortcuts))
	for _, s := range g.Shortcuts {
		labels = append(labels, s.Label())
	}
	return strings.Join(labels, ", ")
}

// Find returns the first shortcut bound to key across groups, in group order.
func Find(groups []Group, key rune) (Shortcut, bool) {
	for _, g := range groups {
		for _, s := range g.Shortcuts {
			if s.Key == key {
				return s, true
			}
		}
	}
	return Shortcut{}, false
}

// Keys returns the set of runes bound by groups.
func Keys(groups []Group) map[rune]bool {
	out := make(map[rune]bool)
	for _, g := range groups {
		for _, s := range g.Shortcuts {
			out[s.Key] = true
		}
	}
	return out
}
