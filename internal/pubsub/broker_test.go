package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_Subscribe(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(FocusedEvent, "left")

	select {
	case event := <-ch:
		require.Equal(t, "left", event.Payload)
		require.Equal(t, FocusedEvent, event.Type)
		require.False(t, event.Timestamp.IsZero())
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "timeout waiting for event")
	}
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx := context.Background()
	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx)
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(UpdatedEvent, 7)

	for i, ch := range []<-chan Event[int]{ch1, ch2} {
		select {
		case event := <-ch:
			require.Equal(t, 7, event.Payload, "subscriber %d", i)
		case <-time.After(100 * time.Millisecond):
			require.Fail(t, "timeout waiting for event", "subscriber %d", i)
		}
	}
}

func TestBroker_ContextCancellationUnsubscribes(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()
	require.Eventually(t, func() bool { return broker.SubscriberCount() == 0 },
		time.Second, 5*time.Millisecond)

	_, ok := <-ch
	require.False(t, ok, "channel should be closed")
}

func TestBroker_PublishDoesNotBlock(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	_ = broker.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			broker.Publish(UpdatedEvent, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "publish blocked on a full subscriber")
	}
}

func TestBroker_SubscribeAfterClose(t *testing.T) {
	broker := NewBroker[string]()
	broker.Close()
	broker.Close()

	ch := broker.Subscribe(context.Background())
	_, ok := <-ch
	require.False(t, ok)
	broker.Publish(DeletedEvent, "ignored")
}

func TestBroker_CloseEndsLiveSubscriptions(t *testing.T) {
	broker := NewBroker[string]()
	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)

	broker.Close()
	_, ok := <-ch
	require.False(t, ok)
	require.Equal(t, 0, broker.SubscriberCount())

	require.NotPanics(t, assert.PanicTestFunc(cancel), "cancelling after close must not close the channel twice")
}

func TestBroker_SubscribeWithEndedContext(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := broker.Subscribe(ctx)

	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(time.Second):
		require.Fail(t, "subscription for an ended context was not closed")
	}
}

func TestListenCmd(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener[string](ctx, broker)
	broker.Publish(DeletedEvent, "right")

	msg := l.Listen()()
	event, ok := msg.(Event[string])
	require.True(t, ok, "expected Event[string], got %T", msg)
	require.Equal(t, DeletedEvent, event.Type)
	require.Equal(t, "right", event.Payload)
}

func TestListenCmd_ReturnsNilOnCancel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Nil(t, ListenCmd(ctx, ch)())
}
