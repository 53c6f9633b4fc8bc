package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/guzus/panejump/internal/jump"
	"github.com/guzus/panejump/internal/log"
	"github.com/guzus/panejump/internal/watcher"
	"github.com/guzus/panejump/tui"
)

// runWorkspace opens args in panes and runs the terminal workspace.
func runWorkspace(cmd *cobra.Command, args []string) error {
	if cfg.Debug {
		closeLog, err := log.Init(cfg.LogPath)
		if err != nil {
			return err
		}
		defer closeLog()
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		log.SetMinLevel(level)
	}

	ws := tui.NewWorkspace()
	if err := ws.OpenFiles(args, cfg.Workspace.Columns); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	host := tui.NewHost(ws)
	svc := jump.New(host, jump.WithShowHistory(cfg.ShowHistory))
	go svc.Track(ctx)

	var w *watcher.Watcher
	if cfg.Workspace.Reload && len(ws.Paths()) > 0 {
		var err error
		w, err = watcher.New(cfg.Workspace.ReloadDebounce)
		if err != nil {
			return err
		}
		for _, p := range ws.Paths() {
			if err := w.Add(p); err != nil {
				log.ErrorErr(log.CatWatcher, "watch failed", err, "path", p)
			}
		}
		go w.Run(ctx)
	}

	m := tui.NewMainModel(tui.Options{
		Context:    ctx,
		Service:    svc,
		Host:       host,
		Workspace:  ws,
		Watcher:    w,
		Theme:      cfg.Theme,
		ScrollStep: cfg.Workspace.ScrollStep,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
