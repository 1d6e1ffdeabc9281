package cmd

import (
	"vdash/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vdash settings",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings to ~/.vdash/config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectConfigCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleInit()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectConfigCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleShow()
	},
}
