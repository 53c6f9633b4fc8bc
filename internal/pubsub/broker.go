package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 64

type subscription[T any] struct {
	ch   chan Event[T]
	stop func() bool // detaches the context hook
}

// Broker delivers each published event to every live subscription.
// Delivery never blocks: a subscription whose buffer is full misses the event.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscription[T]
	nextID uint64
	closed bool
	size   int
}

// NewBroker creates a broker with the default per-subscriber buffer.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a broker whose subscriptions buffer size events.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs: make(map[uint64]*subscription[T]),
		size: size,
	}
}

// Subscribe registers a subscription that is dropped and closed once ctx
// ends or the broker is closed. Subscribing to a closed broker returns a
// closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	id := b.nextID
	b.nextID++
	sub := &subscription[T]{ch: make(chan Event[T], b.size)}
	b.subs[id] = sub
	sub.stop = context.AfterFunc(ctx, func() { b.unsubscribe(id) })
	return sub.ch
}

func (b *Broker[T]) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subs[id]
	if !ok {
		return
	}
	delete(b.subs, id)
	close(sub.ch)
}

// Publish stamps payload and offers it to every subscription.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	event := Event[T]{Type: eventType, Payload: payload, Timestamp: time.Now()}
	for _, sub := range b.subs {
		select {
		case sub.ch <- event:
		default:
		}
	}
}

// Close closes every subscription. Later publishes are ignored.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		sub.stop()
		close(sub.ch)
		delete(b.subs, id)
	}
}

// SubscriberCount returns the number of live subscriptions.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
