// Package session keeps jump sessions single-flight and makes sure their
// transient UI state is torn down on every exit path.
package session

import "sync"

// Guard admits one session at a time.
type Guard struct {
	mu     sync.Mutex
	active bool
}

// Session is an admitted session. Close it with defer right after TryEnter.
type Session struct {
	guard    *Guard
	mu       sync.Mutex
	cleanups []func()
	closed   bool
}

// TryEnter starts a session. It returns false, and does nothing, while
// another session is active.
func (g *Guard) TryEnter() (*Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active {
		return nil, false
	}
	g.active = true
	return &Session{guard: g}, true
}

// Active reports whether a session is running.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Defer registers fn to run when the session closes. Cleanups run in
// reverse registration order.
func (s *Session) Defer(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanups = append(s.cleanups, fn)
}

// Close runs the registered cleanups and releases the guard. Only the first
// call has any effect. The guard is released even if a cleanup panics.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	defer s.release()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

func (s *Session) release() {
	s.guard.mu.Lock()
	s.guard.active = false
	s.guard.mu.Unlock()
}
