package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuard_SingleFlight(t *testing.T) {
	var g Guard

	s, ok := g.TryEnter()
	require.True(t, ok)
	require.True(t, g.Active())

	again, ok := g.TryEnter()
	require.False(t, ok)
	require.Nil(t, again)

	s.Close()
	require.False(t, g.Active())

	s2, ok := g.TryEnter()
	require.True(t, ok)
	s2.Close()
}

func TestSession_CleanupsRunLIFOOnce(t *testing.T) {
	var g Guard
	s, _ := g.TryEnter()

	var order []int
	s.Defer(func() { order = append(order, 1) })
	s.Defer(func() { order = append(order, 2) })
	s.Defer(func() { order = append(order, 3) })

	s.Close()
	s.Close()
	require.Equal(t, []int{3, 2, 1}, order)
}

func runSession(g *Guard, cleared *bool, work func() error) error {
	s, ok := g.TryEnter()
	if !ok {
		return nil
	}
	defer s.Close()
	s.Defer(func() { *cleared = true })
	return work()
}

func TestSession_CleanupOnError(t *testing.T) {
	var g Guard
	cleared := false
	boom := errors.New("host rejected focus")

	err := runSession(&g, &cleared, func() error { return boom })
	require.ErrorIs(t, err, boom)
	require.True(t, cleared)
	require.False(t, g.Active())
}

func TestSession_CleanupOnPanic(t *testing.T) {
	var g Guard
	cleared := false

	require.Panics(t, func() {
		_ = runSession(&g, &cleared, func() error { panic("host crashed") })
	})
	require.True(t, cleared)
	require.False(t, g.Active())
}

func TestSession_GuardReleasedWhenCleanupPanics(t *testing.T) {
	var g Guard
	s, _ := g.TryEnter()
	s.Defer(func() { panic("bad cleanup") })

	require.Panics(t, s.Close)
	require.False(t, g.Active())
}

func TestGuard_ConcurrentTryEnter(t *testing.T) {
	var g Guard
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)
	start := make(chan struct{})
	sessions := make(chan *Session, 16)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if s, ok := g.TryEnter(); ok {
				mu.Lock()
				admitted++
				mu.Unlock()
				sessions <- s
			}
		}()
	}
	close(start)
	wg.Wait()
	close(sessions)

	require.Equal(t, 1, admitted)
	for s := range sessions {
		s.Close()
	}
	require.False(t, g.Active())
}
