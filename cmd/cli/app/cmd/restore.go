package cmd

import (
	"vdash/cmd/cli/app"
	"vdash/internal/core/domain"
	"vdash/internal/core/handler"

	"github.com/spf13/cobra"
)

var (
	restoreBackupName string
	restoreIncluded   string
	restoreExcluded   string
	restoreRulesFile  string
	restoreDryRun     bool
)

func init() {
	restoreCreateCmd.Flags().StringVarP(&restoreBackupName, "backup", "b", "", "name of the backup to restore from")
	restoreCreateCmd.Flags().StringVar(&restoreIncluded, "include-namespaces", "", "comma separated namespaces to restore")
	restoreCreateCmd.Flags().StringVar(&restoreExcluded, "exclude-namespaces", "", "comma separated namespaces to skip")
	restoreCreateCmd.Flags().StringVarP(&restoreRulesFile, "rules", "f", "", "resource modifier rule file (YAML or JSON)")
	restoreCreateCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "print the request instead of sending it")
	_ = restoreCreateCmd.MarkFlagRequired("backup")
	_ = restoreCreateCmd.RegisterFlagCompletionFunc("backup", BackupNameCompletion)

	restoreCmd.AddCommand(restoreCreateCmd)
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Create restores on the active cluster",
}

var restoreCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a restore, optionally with resource modifications",
	Long: `Create a restore from a backup on the active cluster. With --rules the
resources are patched during the restore by the given modification rules.
The active cluster must accept restores (role destination or both).`,
	Example: `  # Plain restore of one namespace
  vdash restore create shop-restore --backup nightly --include-namespaces shop

  # Restore with every deployment in 'shop' scaled to zero
  vdash restore create shop-cold --backup nightly --rules scale-down.yaml

  # Show the request that would be sent
  vdash restore create shop-cold --backup nightly --rules scale-down.yaml --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		options := handler.RestoreOptions{
			Name:               args[0],
			BackupName:         restoreBackupName,
			IncludedNamespaces: domain.ParseNamespaces(restoreIncluded),
			ExcludedNamespaces: domain.ParseNamespaces(restoreExcluded),
			RulesFile:          restoreRulesFile,
			DryRun:             restoreDryRun,
		}

		handler, err := app.InjectRestoreCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleCreate(cmd.Context(), options)
	},
}
