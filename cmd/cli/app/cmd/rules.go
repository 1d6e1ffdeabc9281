package cmd

import (
	"vdash/cmd/cli/app"

	"github.com/spf13/cobra"
)

var (
	rulesExportRestore string
	rulesExportApply   bool
)

func init() {
	rulesExportCmd.Flags().StringVar(&rulesExportRestore, "restore", "", "name of the restore the ConfigMap belongs to")
	rulesExportCmd.Flags().BoolVar(&rulesExportApply, "apply", false, "write the ConfigMap to the cluster of the current kubeconfig context")
	_ = rulesExportCmd.MarkFlagRequired("restore")

	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesExportCmd)
	rulesCmd.AddCommand(rulesPreviewCmd)
	rootCmd.AddCommand(rulesCmd)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Work with resource modifier rule files",
	Long: `Work with resource modifier rule files. A rule file has the layout of a
Velero resource-modifiers document:

  version: v1
  resourceModifierRules:
    - conditions:
        namespaces: [shop]
        groupResource: deployments.apps
      patches:
        - operation: replace
          path: /spec/replicas
          value: "0"`,
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a rule file without contacting any cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectRulesCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleValidate(args[0])
	},
}

var rulesExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Render a rule file as a resource-modifiers ConfigMap",
	Example: `  # Print the ConfigMap manifest
  vdash rules export scale-down.yaml --restore shop-cold

  # Create or update it in the velero namespace
  vdash rules export scale-down.yaml --restore shop-cold --apply`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectRulesCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleExport(cmd.Context(), args[0], rulesExportRestore, rulesExportApply)
	},
}

var rulesPreviewCmd = &cobra.Command{
	Use:   "preview <rules-file> <manifests-file>",
	Short: "Apply rules locally to manifests and print the result",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectRulesCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandlePreview(args[0], args[1])
	},
}
