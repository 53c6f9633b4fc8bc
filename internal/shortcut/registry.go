package shortcut

import (
	"context"
	"fmt"

	"github.com/guzus/panejump/internal/history"
	"github.com/guzus/panejump/internal/pane"
)

// Host commands the registry issues.
const (
	CmdSearch          = "view.search"
	CmdSCM             = "view.scm"
	CmdReferences      = "view.references"
	CmdExplorer        = "view.explorer"
	CmdProblems        = "view.problems"
	CmdTerminal        = "view.terminal"
	CmdOutline         = "view.outline"
	CmdClosePane       = "pane.close"
	CmdSplitHorizontal = "pane.splitHorizontal"
	CmdSplitVertical   = "pane.splitVertical"
)

// ToggleKey jumps back to the previously focused place.
const ToggleKey = ';'

// Runner is the slice of the host the built-in actions need.
type Runner interface {
	Focus(ctx context.Context, id pane.ID) error
	RunCommand(ctx context.Context, name string) error
}

// View is a side view reachable from the overlay.
type View struct {
	Key         rune
	Description string
	Command     string
}

// Views lists the side views in overlay order.
var Views = []View{
	{Key: 'S', Description: "search", Command: CmdSearch},
	{Key: 'G', Description: "git", Command: CmdSCM},
	{Key: 'R', Description: "references", Command: CmdReferences},
	{Key: 'E', Description: "explorer", Command: CmdExplorer},
	{Key: 'P', Description: "problems", Command: CmdProblems},
	{Key: 'T', Description: "terminal", Command: CmdTerminal},
	{Key: 'O', Description: "outline", Command: CmdOutline},
}

// ViewFor returns the view opened by command.
func ViewFor(command string) (View, bool) {
	for _, v := range Views {
		if v.Command == command {
			return v, true
		}
	}
	return View{}, false
}

// Registry builds the shortcut set for each session.
type Registry struct {
	run    Runner
	toggle Direct
}

// NewRegistry creates a registry whose actions run against run. toggle is
// the action bound to ToggleKey.
func NewRegistry(run Runner, toggle Direct) *Registry {
	return &Registry{run: run, toggle: toggle}
}

// Groups returns the fixed shortcut groups: views, pane actions, history.
func (r *Registry) Groups() []Group {
	views := Group{Title: "views"}
	for _, v := range Views {
		views.Shortcuts = append(views.Shortcuts, Shortcut{
			Key:         v.Key,
			Description: v.Description,
			Action:      r.command(v.Command),
			Record:      true,
			Target:      history.ViewTarget(v.Command),
		})
	}

	panes := Group{Title: "panes", Shortcuts: []Shortcut{
		{Key: 'x', Description: "close pane", Action: r.onPane(CmdClosePane)},
		{Key: 'h', Description: "split horizontal", Action: r.onPane(CmdSplitHorizontal)},
		{Key: 'v', Description: "split vertical", Action: r.onPane(CmdSplitVertical)},
	}}

	toggle := r.toggle
	if toggle == nil {
		toggle = func(context.Context) error { return nil }
	}
	hist := Group{Title: "history", Shortcuts: []Shortcut{
		{Key: ToggleKey, Description: "previous", Action: toggle},
	}}

	return []Group{views, panes, hist}
}

// Build assigns keys to the visible panes and returns them with the groups.
// Pane keys never reuse a shortcut key.
func (r *Registry) Build(visible []pane.Pane) ([]pane.Assignment, []Group) {
	groups := r.Groups()
	used := Keys(groups)
	return pane.Assign(visible, func(k rune) bool { return used[k] }), groups
}

func (r *Registry) command(name string) Direct {
	return func(ctx context.Context) error {
		if err := r.run.RunCommand(ctx, name); err != nil {
			return fmt.Errorf("running %s: %w", name, err)
		}
		return nil
	}
}

func (r *Registry) onPane(name string) EditorScoped {
	return func(ctx context.Context, p pane.Pane) error {
		if err := r.run.Focus(ctx, p.ID); err != nil {
			return fmt.Errorf("focusing %s: %w", p.ID, err)
		}
		if err := r.run.RunCommand(ctx, name); err != nil {
			return fmt.Errorf("running %s on %s: %w", name, p.ID, err)
		}
		return nil
	}
}
