package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/guzus/panejump/internal/pane"
	"github.com/guzus/panejump/internal/shortcut"
)

var keysCmd = &cobra.Command{
	Use:     "keys",
	Short:   "List the jump shortcuts",
	GroupID: "panejump",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printKeys(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

// noopRunner lets the registry be listed without a host.
type noopRunner struct{}

func (noopRunner) Focus(context.Context, pane.ID) error     { return nil }
func (noopRunner) RunCommand(context.Context, string) error { return nil }

func printKeys(w io.Writer) error {
	out := termenv.NewOutput(w)
	accent := out.Color("#1DA1F2")

	groups := shortcut.NewRegistry(noopRunner{}, nil).Groups()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, g := range groups {
		fmt.Fprintln(tw, out.String(g.Title).Bold().Underline())
		for _, s := range g.Shortcuts {
			desc := s.Description
			if s.Kind() == shortcut.KindEditorScoped {
				desc += ", then a pane key"
			}
			fmt.Fprintf(tw, "  %s\t%s\n", out.String(string(s.Key)).Foreground(accent).Bold(), desc)
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintf(tw, "%s\n  %s\n", out.String("pane keys").Bold().Underline(), pane.Alphabet)
	return tw.Flush()
}
