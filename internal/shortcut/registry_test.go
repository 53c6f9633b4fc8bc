package shortcut

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guzus/panejump/internal/history"
	"github.com/guzus/panejump/internal/pane"
)

type recordingRunner struct {
	calls    []string
	focusErr error
	cmdErr   error
}

func (r *recordingRunner) Focus(_ context.Context, id pane.ID) error {
	r.calls = append(r.calls, "focus:"+string(id))
	return r.focusErr
}

func (r *recordingRunner) RunCommand(_ context.Context, name string) error {
	r.calls = append(r.calls, "cmd:"+name)
	return r.cmdErr
}

func TestGroupsOrderAndKinds(t *testing.T) {
	groups := NewRegistry(&recordingRunner{}, nil).Groups()
	require.Len(t, groups, 3)
	require.Equal(t, []string{"views", "panes", "history"},
		[]string{groups[0].Title, groups[1].Title, groups[2].Title})

	for _, s := range groups[0].Shortcuts {
		require.Equal(t, KindDirect, s.Kind(), "view %q", s.Description)
		require.True(t, s.Record, "view %q should be recorded", s.Description)
		require.Equal(t, history.TargetView, s.Target.Kind)
	}
	for _, s := range groups[1].Shortcuts {
		require.Equal(t, KindEditorScoped, s.Kind(), "pane action %q", s.Description)
		require.False(t, s.Record)
	}
	toggle := groups[2].Shortcuts[0]
	require.Equal(t, ToggleKey, toggle.Key)
	require.Equal(t, KindDirect, toggle.Kind())
	require.False(t, toggle.Record)
}

func TestGroupHint(t *testing.T) {
	g := Group{Shortcuts: []Shortcut{
		{Key: 'x', Description: "close pane"},
		{Key: 'h', Description: "split horizontal"},
	}}
	require.Equal(t, "x: close pane, h: split horizontal", g.Hint())
	require.Equal(t, "", Group{}.Hint())
}

func TestBuildPaneKeysAvoidShortcutKeys(t *testing.T) {
	visible := []pane.Pane{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	assignments, groups := NewRegistry(&recordingRunner{}, nil).Build(visible)

	require.Len(t, assignments, 3)
	require.Equal(t, 'a', assignments[0].Key)
	require.Equal(t, 's', assignments[1].Key)
	require.Equal(t, 'd', assignments[2].Key)

	used := Keys(groups)
	for _, a := range assignments {
		require.False(t, used[a.Key], "pane key %q collides with a shortcut", a.Key)
	}
}

func TestViewShortcutRunsCommand(t *testing.T) {
	run := &recordingRunner{}
	s, ok := Find(NewRegistry(run, nil).Groups(), 'S')
	require.True(t, ok)
	require.Equal(t, "search", s.Description)

	direct, ok := s.Action.(Direct)
	require.True(t, ok)
	require.NoError(t, direct(context.Background()))
	require.Equal(t, []string{"cmd:" + CmdSearch}, run.calls)
}

func TestPaneShortcutFocusesBeforeCommand(t *testing.T) {
	run := &recordingRunner{}
	s, ok := Find(NewRegistry(run, nil).Groups(), 'x')
	require.True(t, ok)

	scoped, ok := s.Action.(EditorScoped)
	require.True(t, ok)
	require.NoError(t, scoped(context.Background(), pane.Pane{ID: "p2"}))
	require.Equal(t, []string{"focus:p2", "cmd:" + CmdClosePane}, run.calls)
}

func TestPaneShortcutStopsOnFocusError(t *testing.T) {
	run := &recordingRunner{focusErr: errors.New("gone")}
	s, _ := Find(NewRegistry(run, nil).Groups(), 'v')

	err := s.Action.(EditorScoped)(context.Background(), pane.Pane{ID: "p1"})
	require.ErrorIs(t, err, run.focusErr)
	require.Equal(t, []string{"focus:p1"}, run.calls)
}

func TestToggleShortcutUsesProvidedAction(t *testing.T) {
	called := false
	toggle := Direct(func(context.Context) error {
		called = true
		return nil
	})
	s, ok := Find(NewRegistry(&recordingRunner{}, toggle).Groups(), ToggleKey)
	require.True(t, ok)
	require.NoError(t, s.Action.(Direct)(context.Background()))
	require.True(t, called)
}

func TestFindMissing(t *testing.T) {
	_, ok := Find(nil, 'z')
	require.False(t, ok)
}

func TestViewFor(t *testing.T) {
	v, ok := ViewFor(CmdOutline)
	require.True(t, ok)
	require.Equal(t, 'O', v.Key)

	_, ok = ViewFor("nope")
	require.False(t, ok)
}

func TestShortcutKindDefaultsToDirect(t *testing.T) {
	require.Equal(t, KindDirect, Shortcut{}.Kind())
	require.Equal(t, "editor-scoped", KindEditorScoped.String())
}
