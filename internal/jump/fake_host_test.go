package jump

import (
	"context"
	"fmt"
	"sync"

	"github.com/guzus/panejump/internal/pane"
	"github.com/guzus/panejump/internal/pubsub"
)

// fakeHost records every call the service makes.
type fakeHost struct {
	mu       sync.Mutex
	panes    []pane.Pane
	listErr  error
	focusErr error
	cmdErr   error
	calls    []string
	hints    map[pane.ID]string
	setHints int
	prompts  []*fakePrompt
	script   []PromptEvent
	broker   *pubsub.Broker[pane.Pane]
	shown    chan struct{}
}

func newFakeHost(titles ...string) *fakeHost {
	h := &fakeHost{
		hints:  make(map[pane.ID]string),
		broker: pubsub.NewBroker[pane.Pane](),
		shown:  make(chan struct{}, 8),
	}
	for i, title := range titles {
		h.panes = append(h.panes, pane.Pane{
			ID:      pane.ID(fmt.Sprintf("p%d", i)),
			Title:   title,
			Visible: pane.Range{Start: 0, End: 9},
			Lines:   100,
		})
	}
	return h
}

func (h *fakeHost) record(call string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, call)
}

func (h *fakeHost) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

func (h *fakeHost) VisiblePanes(context.Context) ([]pane.Pane, error) {
	if h.listErr != nil {
		return nil, h.listErr
	}
	return append([]pane.Pane(nil), h.panes...), nil
}

func (h *fakeHost) Focus(_ context.Context, id pane.ID) error {
	h.record("focus:" + string(id))
	return h.focusErr
}

func (h *fakeHost) RunCommand(_ context.Context, name string) error {
	h.record("cmd:" + name)
	return h.cmdErr
}

func (h *fakeHost) SetHint(id pane.ID, _ []int, label string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hints[id] = label
	h.setHints++
}

func (h *fakeHost) ClearHint(id pane.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.hints, id)
}

func (h *fakeHost) Hints() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.hints)
}

func (h *fakeHost) ShowPrompt(_ context.Context, p Prompt) (PromptHandle, error) {
	fp := &fakePrompt{events: make(chan PromptEvent, len(h.script)+1), shown: []Prompt{p}}
	for _, ev := range h.script {
		fp.events <- ev
	}
	h.mu.Lock()
	h.prompts = append(h.prompts, fp)
	h.mu.Unlock()
	h.shown <- struct{}{}
	return fp, nil
}

func (h *fakeHost) Subscribe(ctx context.Context) <-chan pubsub.Event[pane.Pane] {
	return h.broker.Subscribe(ctx)
}

type fakePrompt struct {
	mu     sync.Mutex
	events chan PromptEvent
	shown  []Prompt
	closes int
}

func (p *fakePrompt) Events() <-chan PromptEvent { return p.events }

func (p *fakePrompt) Update(next Prompt) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown = append(p.shown, next)
}

func (p *fakePrompt) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closes++
}

func (p *fakePrompt) last() Prompt {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown[len(p.shown)-1]
}

func keys(s string) []PromptEvent {
	out := make([]PromptEvent, 0, len(s))
	for _, r := range s {
		out = append(out, KeyEvent(r))
	}
	return out
}
