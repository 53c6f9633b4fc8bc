package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/guzus/panejump/internal/jump"
	"github.com/guzus/panejump/internal/log"
	"github.com/guzus/panejump/internal/pane"
	"github.com/guzus/panejump/internal/pubsub"
	"github.com/guzus/panejump/internal/shortcut"
)

// ErrUnknownCommand is returned for command names the host does not know.
var ErrUnknownCommand = errors.New("unknown command")

// promptState is what the prompt box currently shows.
type promptState struct {
	title string
	items []jump.PromptItem
}

// Host adapts a Workspace to jump.Host. Keys typed while a prompt is open
// are forwarded to it with Key; Dismiss closes it without a key.
type Host struct {
	ws *Workspace

	mu      sync.Mutex
	current *promptHandle
}

var _ jump.Host = (*Host)(nil)

// NewHost returns a host driving ws.
func NewHost(ws *Workspace) *Host {
	return &Host{ws: ws}
}

func (h *Host) VisiblePanes(context.Context) ([]pane.Pane, error) {
	return h.ws.Panes(), nil
}

func (h *Host) Focus(_ context.Context, id pane.ID) error {
	return h.ws.Focus(id)
}

// RunCommand runs a view command (view.*) or a pane command on the active pane.
func (h *Host) RunCommand(_ context.Context, name string) error {
	if _, ok := shortcut.ViewFor(name); ok {
		h.ws.OpenSidebar(name)
		log.Debug(log.CatHost, "opened view", "command", name)
		return nil
	}

	active, ok := h.ws.Active()
	if !ok {
		return fmt.Errorf("%s: no active pane", name)
	}
	var err error
	switch name {
	case shortcut.CmdClosePane:
		err = h.ws.Close(active.ID)
	case shortcut.CmdSplitHorizontal:
		_, err = h.ws.Split(active.ID, false)
	case shortcut.CmdSplitVertical:
		_, err = h.ws.Split(active.ID, true)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if err != nil {
		return err
	}
	log.Debug(log.CatHost, "ran pane command", "command", name, "pane", active.ID)
	return nil
}

func (h *Host) SetHint(id pane.ID, lines []int, label string) {
	h.ws.SetHint(id, lines, label)
}

func (h *Host) ClearHint(id pane.ID) {
	h.ws.ClearHint(id)
}

// ShowPrompt opens the prompt box. An already open prompt is closed first.
func (h *Host) ShowPrompt(_ context.Context, p jump.Prompt) (jump.PromptHandle, error) {
	h.mu.Lock()
	prev := h.current
	h.mu.Unlock()
	if prev != nil {
		prev.Close()
	}

	ph := &promptHandle{host: h, events: make(chan jump.PromptEvent, 16)}
	h.mu.Lock()
	h.current = ph
	h.mu.Unlock()
	h.ws.setPrompt(&promptState{title: p.Title, items: p.Items})
	return ph, nil
}

func (h *Host) Subscribe(ctx context.Context) <-chan pubsub.Event[pane.Pane] {
	return h.ws.broker.Subscribe(ctx)
}

// PromptOpen reports whether a prompt is waiting for keys.
func (h *Host) PromptOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current != nil
}

// Key forwards a typed key to the open prompt. It reports false when no
// prompt is open.
func (h *Host) Key(k rune) bool {
	return h.send(jump.KeyEvent(k))
}

// Dismiss closes the open prompt without a key.
func (h *Host) Dismiss() bool {
	return h.send(jump.DismissEvent())
}

func (h *Host) send(ev jump.PromptEvent) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return false
	}
	select {
	case h.current.events <- ev:
	default:
		log.Warn(log.CatHost, "prompt buffer full, key dropped")
	}
	return true
}

type promptHandle struct {
	host   *Host
	events chan jump.PromptEvent
	once   sync.Once
}

func (p *promptHandle) Events() <-chan jump.PromptEvent {
	return p.events
}

func (p *promptHandle) Update(next jump.Prompt) {
	p.host.mu.Lock()
	open := p.host.current == p
	p.host.mu.Unlock()
	if open {
		p.host.ws.setPrompt(&promptState{title: next.Title, items: next.Items})
	}
}

func (p *promptHandle) Close() {
	p.once.Do(func() {
		p.host.mu.Lock()
		current := p.host.current == p
		if current {
			p.host.current = nil
		}
		close(p.events)
		p.host.mu.Unlock()
		if current {
			p.host.ws.setPrompt(nil)
		}
	})
}
