package cmd

import (
	"vdash/cmd/cli/app"
	"vdash/internal/core/domain"
	"vdash/internal/core/handler"

	"github.com/spf13/cobra"
)

var (
	clusterAddRole    string
	clusterUpdateName string
	clusterUpdateURL  string
	clusterUpdateRole string
	clusterRemoveYes  bool
)

func init() {
	clusterAddCmd.Flags().StringVarP(&clusterAddRole, "role", "r", string(domain.ClusterRoleBoth), "cluster role: source, destination or both")
	_ = clusterAddCmd.RegisterFlagCompletionFunc("role", RoleCompletion)

	clusterRemoveCmd.Flags().BoolVarP(&clusterRemoveYes, "yes", "y", false, "remove the active cluster without asking")

	clusterUpdateCmd.Flags().StringVar(&clusterUpdateName, "name", "", "new display name")
	clusterUpdateCmd.Flags().StringVar(&clusterUpdateURL, "url", "", "new backend url")
	clusterUpdateCmd.Flags().StringVar(&clusterUpdateRole, "role", "", "new role: source, destination or both")
	_ = clusterUpdateCmd.RegisterFlagCompletionFunc("role", RoleCompletion)

	clusterCmd.AddCommand(clusterAddCmd)
	clusterCmd.AddCommand(clusterListCmd)
	clusterCmd.AddCommand(clusterRemoveCmd)
	clusterCmd.AddCommand(clusterUpdateCmd)
	clusterCmd.AddCommand(clusterUseCmd)
	clusterCmd.AddCommand(clusterCurrentCmd)
	clusterCmd.AddCommand(clusterLoginCmd)
	clusterCmd.AddCommand(clusterLogoutCmd)
	rootCmd.AddCommand(clusterCmd)
}

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Manage registered clusters",
	Long: `Manage the clusters vdash can talk to. Exactly one cluster is active at a
time and every backend request is sent to it.`,
}

var clusterAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Register a cluster",
	Long: `Register a cluster by the url of its dashboard backend. The first cluster
added to an empty registry becomes active.`,
	Example: `  # Add a cluster that receives restores
  vdash cluster add prod https://velero.prod.example --role destination`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectClusterCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleAdd(args[0], args[1], clusterAddRole)
	},
}

var clusterListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered clusters",
	Long:    `List registered clusters. The active cluster is marked with '*'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectClusterCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleList()
	},
}

var clusterRemoveCmd = &cobra.Command{
	Use:               "remove <id>",
	Aliases:           []string{"rm"},
	Short:             "Remove a cluster",
	Long:              `Remove a cluster and its stored token. Removing the active cluster activates the first remaining one.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: ClusterIDCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectClusterCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleRemove(args[0], clusterRemoveYes)
	},
}

var clusterUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a cluster's name, url or role",
	Example: `  # Rename a cluster
  vdash cluster update 3f2a... --name staging

  # Mark a cluster as restore source only
  vdash cluster update 3f2a... --role source`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: ClusterIDCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		var options handler.ClusterUpdateOptions
		if cmd.Flags().Changed("name") {
			options.Name = &clusterUpdateName
		}
		if cmd.Flags().Changed("url") {
			options.URL = &clusterUpdateURL
		}
		if cmd.Flags().Changed("role") {
			options.Role = &clusterUpdateRole
		}

		handler, err := app.InjectClusterCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleUpdate(args[0], options)
	},
}

var clusterUseCmd = &cobra.Command{
	Use:               "use <id>",
	Short:             "Select the active cluster",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: ClusterIDCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectClusterCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleUse(args[0])
	},
}

var clusterCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectClusterCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleCurrent()
	},
}

var clusterLoginCmd = &cobra.Command{
	Use:   "login <id>",
	Short: "Store an API token for a cluster",
	Long: `Store a bearer token for a cluster in the system keyring. The token is
prompted securely and sent with every request to that cluster.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: ClusterIDCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectClusterCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleLogin(args[0])
	},
}

var clusterLogoutCmd = &cobra.Command{
	Use:               "logout <id>",
	Short:             "Remove the stored API token of a cluster",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: ClusterIDCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectClusterCommandHandler()
		if err != nil {
			return err
		}

		return handler.HandleLogout(args[0])
	},
}
