// Package resolver turns the keys typed into a jump prompt into a decision.
//
// A Resolver starts out waiting for the first key. Shortcut keys are checked
// before pane keys, so a shortcut wins when both use the same rune. A
// shortcut that needs a pane moves the resolver to AwaitingPaneKey unless
// exactly one pane is visible, in which case it resolves against that pane
// at once. Unknown keys and dismissal end the session with no action. Once
// the resolver has left its waiting states it ignores every further key.
package resolver

import (
	"github.com/guzus/panejump/internal/pane"
	"github.com/guzus/panejump/internal/shortcut"
)

// State is a resolver state.
type State int

const (
	Idle State = iota
	AwaitingFirstKey
	AwaitingPaneKey
	Resolved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingFirstKey:
		return "awaiting-first-key"
	case AwaitingPaneKey:
		return "awaiting-pane-key"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Outcome tells the caller what to do with a key.
type Outcome int

const (
	// Ignore: nothing to run; the session is over.
	Ignore Outcome = iota
	// RunDirect: run Decision.Shortcut's Direct action.
	RunDirect
	// AwaitPane: show the pane sub-prompt and keep reading keys.
	AwaitPane
	// RunScoped: run Decision.Shortcut's EditorScoped action on Decision.Pane.
	RunScoped
	// FocusPane: focus Decision.Pane.
	FocusPane
)

func (o Outcome) String() string {
	switch o {
	case Ignore:
		return "ignore"
	case RunDirect:
		return "run-direct"
	case AwaitPane:
		return "await-pane"
	case RunScoped:
		return "run-scoped"
	case FocusPane:
		return "focus-pane"
	default:
		return "unknown"
	}
}

// Decision is the result of feeding one key.
type Decision struct {
	Outcome  Outcome
	Shortcut shortcut.Shortcut
	Pane     pane.Pane
}

// Resolver is the per-session key state machine. It is not safe for
// concurrent use; a session feeds it from one goroutine.
type Resolver struct {
	state   State
	groups  []shortcut.Group
	panes   []pane.Assignment
	pending shortcut.Shortcut
}

// New returns a resolver awaiting its first key.
func New(groups []shortcut.Group, panes []pane.Assignment) *Resolver {
	return &Resolver{
		state:  AwaitingFirstKey,
		groups: groups,
		panes:  panes,
	}
}

// State returns the current state.
func (r *Resolver) State() State {
	return r.state
}

// Pending returns the shortcut waiting for a pane, if any.
func (r *Resolver) Pending() (shortcut.Shortcut, bool) {
	if r.state != AwaitingPaneKey {
		return shortcut.Shortcut{}, false
	}
	return r.pending, true
}

// Feed consumes one key.
func (r *Resolver) Feed(key rune) Decision {
	switch r.state {
	case AwaitingFirstKey:
		return r.first(key)
	case AwaitingPaneKey:
		return r.paneFor(key)
	default:
		return Decision{Outcome: Ignore}
	}
}

// Dismiss abandons the session from any state.
func (r *Resolver) Dismiss() {
	r.state = Idle
	r.pending = shortcut.Shortcut{}
}

func (r *Resolver) first(key rune) Decision {
	if s, ok := shortcut.Find(r.groups, key); ok {
		if s.Kind() == shortcut.KindDirect {
			r.state = Resolved
			return Decision{Outcome: RunDirect, Shortcut: s}
		}
		switch len(r.panes) {
		case 0:
			r.Dismiss()
			return Decision{Outcome: Ignore}
		case 1:
			r.state = Resolved
			return Decision{Outcome: RunScoped, Shortcut: s, Pane: r.panes[0].Pane}
		default:
			r.state = AwaitingPaneKey
			r.pending = s
			return Decision{Outcome: AwaitPane, Shortcut: s}
		}
	}

	if p, ok := r.lookupPane(key); ok {
		r.state = Resolved
		return Decision{Outcome: FocusPane, Pane: p}
	}

	r.Dismiss()
	return Decision{Outcome: Ignore}
}

func (r *Resolver) paneFor(key rune) Decision {
	p, ok := r.lookupPane(key)
	if !ok {
		r.Dismiss()
		return Decision{Outcome: Ignore}
	}
	s := r.pending
	r.pending = shortcut.Shortcut{}
	r.state = Resolved
	return Decision{Outcome: RunScoped, Shortcut: s, Pane: p}
}

func (r *Resolver) lookupPane(key rune) (pane.Pane, bool) {
	for _, a := range r.panes {
		if a.Key == key {
			return a.Pane, true
		}
	}
	return pane.Pane{}, false
}
