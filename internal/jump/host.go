package jump

import (
	"context"

	"github.com/guzus/panejump/internal/pane"
	"github.com/guzus/panejump/internal/pubsub"
)

// Host is the editor the service drives.
type Host interface {
	// VisiblePanes returns the panes on screen in the host's natural order.
	VisiblePanes(ctx context.Context) ([]pane.Pane, error)
	// Focus makes the pane active and returns once it is.
	Focus(ctx context.Context, id pane.ID) error
	// RunCommand runs a host command by name.
	RunCommand(ctx context.Context, name string) error
	// SetHint shows label on the given lines of a pane.
	SetHint(id pane.ID, lines []int, label string)
	// ClearHint removes the pane's hint.
	ClearHint(id pane.ID)
	// ShowPrompt opens the key prompt.
	ShowPrompt(ctx context.Context, p Prompt) (PromptHandle, error)
	// Subscribe reports active-pane changes (FocusedEvent) and closed panes
	// (DeletedEvent) until ctx ends.
	pubsub.Subscriber[pane.Pane]
}

// PromptItem is one line of the prompt.
type PromptItem struct {
	Label       string
	Description string
}

// Prompt is what the prompt displays.
type Prompt struct {
	Title string
	Items []PromptItem
}

// PromptEvent is a key typed into the prompt or its dismissal.
type PromptEvent struct {
	Key       rune
	Dismissed bool
}

// KeyEvent returns the event for a typed key.
func KeyEvent(k rune) PromptEvent { return PromptEvent{Key: k} }

// DismissEvent returns the event for a prompt closed without a key.
func DismissEvent() PromptEvent { return PromptEvent{Dismissed: true} }

// PromptHandle controls an open prompt.
type PromptHandle interface {
	// Events delivers keys and dismissal. The host may close the channel
	// when the prompt goes away; that counts as dismissal.
	Events() <-chan PromptEvent
	// Update replaces the title and items.
	Update(p Prompt)
	// Close hides the prompt. It must be safe to call more than once.
	Close()
}
