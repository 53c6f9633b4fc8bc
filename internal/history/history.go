package history

import (
	"sync"

	"github.com/guzus/panejump/internal/pane"
)

// Capacity is the number of places the store remembers.
const Capacity = 2

// TargetKind says what a history entry points at.
type TargetKind int

const (
	TargetPane TargetKind = iota
	TargetView
)

// Target is a comparable reference to something that can be focused again:
// a pane by ID or a side view by the host command that opens it.
type Target struct {
	Kind TargetKind
	Pane pane.ID
	View string
}

// PaneTarget returns the target for a pane.
func PaneTarget(id pane.ID) Target {
	return Target{Kind: TargetPane, Pane: id}
}

// ViewTarget returns the target for a side view opened by command.
func ViewTarget(command string) Target {
	return Target{Kind: TargetView, View: command}
}

// Entry is a place that was focused, either through a shortcut or by the host.
type Entry struct {
	Label      string
	Target     Target
	Recordable bool
}

// Store holds the most recently focused places, newest first.
type Store struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty store.
func New() *Store {
	return &Store{entries: make([]Entry, 0, Capacity)}
}

// Push prepends e and drops anything past Capacity.
func (s *Store) Push(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > Capacity {
		s.entries = s.entries[:Capacity]
	}
}

// PushUnlessHead pushes e unless the newest entry already points at
// e.Target. It reports whether e was pushed.
func (s *Store) PushUnlessHead(e Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > 0 && s.entries[0].Target == e.Target {
		return false
	}
	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > Capacity {
		s.entries = s.entries[:Capacity]
	}
	return true
}

// Cycle swaps the two newest entries. With fewer than two entries it does nothing.
func (s *Store) Cycle() {
	s.CycleBack()
}

// CycleBack swaps the two newest entries and returns the new head. It
// reports false, leaving the store untouched, when there is no previous entry.
func (s *Store) CycleBack() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) < 2 {
		return Entry{}, false
	}
	s.entries[0], s.entries[1] = s.entries[1], s.entries[0]
	return s.entries[0], true
}

// Top returns a copy of the first n entries.
func (s *Store) Top(n int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.entries) {
		n = len(s.entries)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Entry, n)
	copy(out, s.entries[:n])
	return out
}

// Head returns the newest entry.
func (s *Store) Head() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[0], true
}

// At returns the entry at index i.
func (s *Store) At(i int) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Forget removes every entry pointing at t and reports whether any was removed.
func (s *Store) Forget(t Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	removed := false
	for _, e := range s.entries {
		if e.Target == t {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
