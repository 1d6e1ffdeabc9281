package cmd

import (
	"vdash/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	backupCmd.AddCommand(backupListCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Inspect backups on the active cluster",
}

var backupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List backups on the active cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectRestoreCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleListBackups(cmd.Context())
	},
}
