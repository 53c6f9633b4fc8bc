package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/guzus/panejump/internal/config"
	"github.com/guzus/panejump/internal/log"
)

var (
	cfgFile       string
	debugFlag     bool
	noHistoryFlag bool

	v   *viper.Viper
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "panejump [files...]",
	Short: "Jump between panes with single keystrokes",
	Long: `panejump opens files side by side in a terminal workspace and lets you
move between panes, side views and the previous location with one or two
keystrokes.

Press ctrl+g to start a jump. Every pane shows a key; type it to focus
the pane. Uppercase keys open side views, x/h/v close or split a pane
and ; returns to where you were before.

Examples:
  panejump main.go main_test.go     # two panes side by side
  panejump keys                     # list the jump shortcuts
  panejump config init              # write a default config file`,
	PersistentPreRunE: loadConfig,
	RunE:              runWorkspace,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Args:              cobra.ArbitraryArgs,
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: "panejump", Title: "Commands:"})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .panejump/config.yaml, then ~/.config/panejump/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs to the configured log file")
	rootCmd.Flags().BoolVar(&noHistoryFlag, "no-history", false,
		"hide the history lines in the jump prompt")

	v = newViper()
}

func newViper() *viper.Viper {
	nv := viper.New()
	_ = nv.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	return nv
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, used, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	if noHistoryFlag {
		loaded.ShowHistory = false
	}
	cfg = loaded
	if used != "" {
		log.Debug(log.CatConfig, "using config", "path", used)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
