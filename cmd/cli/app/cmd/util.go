package cmd

import (
	"strings"

	"vdash/cmd/cli/app"
	"vdash/internal/core/domain"

	"github.com/spf13/cobra"
)

func ClusterIDCompletion(
	cmd *cobra.Command,
	args []string,
	toComplete string,
) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	registry, err := app.InjectClusterRegistry()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var ids []cobra.Completion
	for _, cluster := range registry.List() {
		if strings.HasPrefix(cluster.ID, toComplete) {
			ids = append(ids, cobra.CompletionWithDesc(cluster.ID, cluster.Name))
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func BackupNameCompletion(
	cmd *cobra.Command,
	args []string,
	toComplete string,
) ([]cobra.Completion, cobra.ShellCompDirective) {
	handler, err := app.InjectRestoreCommandHandler()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []cobra.Completion
	for _, name := range handler.BackupNames(cmd.Context()) {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func RoleCompletion(
	cmd *cobra.Command,
	args []string,
	toComplete string,
) ([]cobra.Completion, cobra.ShellCompDirective) {
	return []cobra.Completion{
		string(domain.ClusterRoleSource),
		string(domain.ClusterRoleDestination),
		string(domain.ClusterRoleBoth),
	}, cobra.ShellCompDirectiveNoFileComp
}
