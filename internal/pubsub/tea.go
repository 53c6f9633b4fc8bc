package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd returns a command that waits for the next event on ch and hands
// it to the program as a message. It yields nil once ctx ends or ch closes.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return event
		}
	}
}

// Listener keeps one subscription open across Update calls. Call Listen
// again after handling each event to keep receiving.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewListener subscribes to s for as long as ctx lives.
func NewListener[T any](ctx context.Context, s Subscriber[T]) *Listener[T] {
	return &Listener[T]{ctx: ctx, ch: s.Subscribe(ctx)}
}

// Listen returns a command that delivers the next event.
func (l *Listener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}
