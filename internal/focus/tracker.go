// Package focus records focus changes the host makes on its own, such as a
// pane clicked or cycled without opening the jump overlay.
package focus

import (
	"context"

	"github.com/guzus/panejump/internal/history"
	"github.com/guzus/panejump/internal/log"
	"github.com/guzus/panejump/internal/pane"
	"github.com/guzus/panejump/internal/pubsub"
)

// Tracker pushes host-driven focus changes into a history store.
type Tracker struct {
	history *history.Store
}

// NewTracker returns a tracker feeding h.
func NewTracker(h *history.Store) *Tracker {
	return &Tracker{history: h}
}

// Observe records that p became active. Repeated notifications for the pane
// already at the head of the history are dropped.
func (t *Tracker) Observe(p pane.Pane) bool {
	pushed := t.history.PushUnlessHead(history.Entry{
		Label:  "externally-focused pane " + p.Title,
		Target: history.PaneTarget(p.ID),
	})
	if !pushed {
		return false
	}
	log.Debug(log.CatFocus, "recorded external focus", "pane", p.ID)
	return true
}

// Closed forgets a pane that no longer exists.
func (t *Tracker) Closed(p pane.Pane) {
	if t.history.Forget(history.PaneTarget(p.ID)) {
		log.Debug(log.CatFocus, "forgot closed pane", "pane", p.ID)
	}
}

// Run handles events until ctx ends or events closes.
func (t *Tracker) Run(ctx context.Context, events <-chan pubsub.Event[pane.Pane]) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Type {
			case pubsub.FocusedEvent:
				t.Observe(ev.Payload)
			case pubsub.DeletedEvent:
				t.Closed(ev.Payload)
			}
		}
	}
}
