// Package pubsub fans host notifications out to subscribers whose lifetime
// is bound to a context.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload.
type EventType string

const (
	// FocusedEvent reports that the payload became the active pane.
	FocusedEvent EventType = "focused"
	// UpdatedEvent reports that the payload changed and should be redrawn.
	UpdatedEvent EventType = "updated"
	// DeletedEvent reports that the payload no longer exists.
	DeletedEvent EventType = "deleted"
)

// Event is a published notification with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels that close when ctx ends.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}
