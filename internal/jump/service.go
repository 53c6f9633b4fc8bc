// Package jump runs jump sessions against a host: it shows key hints on the
// visible panes, resolves the keys the user types and keeps the focus
// history used by the toggle shortcut.
package jump

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guzus/panejump/internal/focus"
	"github.com/guzus/panejump/internal/history"
	"github.com/guzus/panejump/internal/log"
	"github.com/guzus/panejump/internal/pane"
	"github.com/guzus/panejump/internal/resolver"
	"github.com/guzus/panejump/internal/session"
	"github.com/guzus/panejump/internal/shortcut"
)

// ErrNoPrompt is returned when the host opens no prompt.
var ErrNoPrompt = errors.New("host returned no prompt")

const (
	// PromptTitle titles the first-key prompt.
	PromptTitle = "Jump"
	// HistoryLabel prefixes history lines in the prompt.
	HistoryLabel = "History"
)

// Service owns the process-lifetime jump state.
type Service struct {
	host        Host
	history     *history.Store
	guard       session.Guard
	registry    *shortcut.Registry
	tracker     *focus.Tracker
	showHistory bool
}

// Option configures a Service.
type Option func(*Service)

// WithShowHistory controls whether the prompt lists the history entries.
func WithShowHistory(show bool) Option {
	return func(s *Service) { s.showHistory = show }
}

// WithHistory makes the service use h instead of a fresh store.
func WithHistory(h *history.Store) Option {
	return func(s *Service) { s.history = h }
}

// New creates a service for host.
func New(host Host, opts ...Option) *Service {
	s := &Service{host: host, showHistory: true}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		s.history = history.New()
	}
	s.registry = shortcut.NewRegistry(host, s.Toggle)
	s.tracker = focus.NewTracker(s.history)
	return s
}

// History returns the focus history.
func (s *Service) History() *history.Store {
	return s.history
}

// Groups returns the shortcut groups offered by every session.
func (s *Service) Groups() []shortcut.Group {
	return s.registry.Groups()
}

// Active reports whether a session is running.
func (s *Service) Active() bool {
	return s.guard.Active()
}

// Track records host focus changes until ctx ends.
func (s *Service) Track(ctx context.Context) {
	s.tracker.Run(ctx, s.host.Subscribe(ctx))
}

// Jump runs one session: hints and prompt go up, keys are read until the
// session resolves or is dismissed, then everything is torn down. A call
// made while another session is running returns nil at once.
func (s *Service) Jump(ctx context.Context) error {
	sess, ok := s.guard.TryEnter()
	if !ok {
		log.Debug(log.CatSession, "jump ignored: session active")
		return nil
	}
	defer sess.Close()

	visible, err := s.host.VisiblePanes(ctx)
	if err != nil {
		return fmt.Errorf("listing panes: %w", err)
	}
	assignments, groups := s.registry.Build(visible)
	if dropped := len(visible) - len(assignments); dropped > 0 {
		log.Debug(log.CatSession, "panes without a key", "count", dropped)
	}

	for _, a := range assignments {
		id := a.Pane.ID
		s.host.SetHint(id, pane.HintLines(a.Pane), string(a.Key))
		sess.Defer(func() { s.host.ClearHint(id) })
	}

	prompt, err := s.host.ShowPrompt(ctx, s.firstPrompt(groups))
	if err != nil {
		return fmt.Errorf("showing prompt: %w", err)
	}
	if prompt == nil {
		return ErrNoPrompt
	}
	sess.Defer(prompt.Close)

	res := resolver.New(groups, assignments)
	for {
		select {
		case <-ctx.Done():
			res.Dismiss()
			return nil
		case ev, ok := <-prompt.Events():
			if !ok || ev.Dismissed {
				res.Dismiss()
				log.Debug(log.CatSession, "prompt dismissed")
				return nil
			}
			d := res.Feed(ev.Key)
			log.Debug(log.CatSession, "key", "key", string(ev.Key), "outcome", d.Outcome, "state", res.State())
			if d.Outcome == resolver.AwaitPane {
				prompt.Update(panePrompt(d.Shortcut, assignments))
				continue
			}
			prompt.Close()
			return s.execute(ctx, d)
		}
	}
}

// Toggle returns to the previously focused place. It does nothing when
// there is no previous place.
func (s *Service) Toggle(ctx context.Context) error {
	prev, ok := s.history.CycleBack()
	if !ok {
		log.Debug(log.CatHistory, "toggle ignored: no previous entry")
		return nil
	}
	log.Info(log.CatHistory, "toggle", "label", prev.Label)
	return s.activate(ctx, prev)
}

func (s *Service) execute(ctx context.Context, d resolver.Decision) error {
	switch d.Outcome {
	case resolver.RunDirect:
		run, ok := d.Shortcut.Action.(shortcut.Direct)
		if !ok {
			return fmt.Errorf("shortcut %q is not direct", d.Shortcut.Description)
		}
		if err := run(ctx); err != nil {
			return err
		}
		if d.Shortcut.Record {
			s.history.Push(history.Entry{
				Label:      d.Shortcut.Description,
				Target:     d.Shortcut.Target,
				Recordable: true,
			})
			log.Info(log.CatHistory, "recorded shortcut", "label", d.Shortcut.Description)
		}
		return nil

	case resolver.RunScoped:
		run, ok := d.Shortcut.Action.(shortcut.EditorScoped)
		if !ok {
			return fmt.Errorf("shortcut %q is not editor-scoped", d.Shortcut.Description)
		}
		return run(ctx, d.Pane)

	case resolver.FocusPane:
		// Recorded before focusing so the host's own notification for this
		// pane finds it at the head and is dropped. Picking the pane that is
		// already at the head leaves the history alone.
		s.history.PushUnlessHead(history.Entry{
			Label:      "internally-focused pane " + d.Pane.Title,
			Target:     history.PaneTarget(d.Pane.ID),
			Recordable: true,
		})
		if err := s.host.Focus(ctx, d.Pane.ID); err != nil {
			return fmt.Errorf("focusing %s: %w", d.Pane.ID, err)
		}
		return nil
	}
	return nil
}

func (s *Service) activate(ctx context.Context, e history.Entry) error {
	switch e.Target.Kind {
	case history.TargetPane:
		if err := s.host.Focus(ctx, e.Target.Pane); err != nil {
			return fmt.Errorf("focusing %s: %w", e.Target.Pane, err)
		}
	case history.TargetView:
		if err := s.host.RunCommand(ctx, e.Target.View); err != nil {
			return fmt.Errorf("running %s: %w", e.Target.View, err)
		}
	}
	return nil
}

func (s *Service) firstPrompt(groups []shortcut.Group) Prompt {
	p := Prompt{Title: PromptTitle}
	for _, g := range groups {
		p.Items = append(p.Items, PromptItem{Label: g.Hint(), Description: g.Title})
	}
	if s.showHistory {
		for _, e := range s.history.Top(history.Capacity) {
			p.Items = append(p.Items, PromptItem{Label: HistoryLabel, Description: e.Label})
		}
	}
	return p
}

func panePrompt(pending shortcut.Shortcut, assignments []pane.Assignment) Prompt {
	labels := make([]string, 0, len(assignments))
	for _, a := range assignments {
		labels = append(labels, fmt.Sprintf("%c: %s", a.Key, a.Pane.Title))
	}
	return Prompt{
		Title: "Select a pane to " + pending.Description,
		Items: []PromptItem{{Label: strings.Join(labels, ", "), Description: "panes"}},
	}
}
