package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guzus/panejump/internal/config"
)

var forceFlag bool

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage the configuration file",
	GroupID: "panejump",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long:  "Write the default configuration to path, or to ~/.config/panejump/config.yaml when no path is given.",
	Args:  cobra.MaximumNArgs(1),
	// Writing a config must work even when the current one is broken.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		if err := config.WriteDefault(path, forceFlag); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
