package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vdash",
	Short: "Velero dashboard client for restores across clusters",
	Long: `vdash drives Velero dashboard backends on several clusters. One cluster is
active at a time and every request is routed to it.

Clusters are stored in ~/.vdash/clusters.json and settings in
~/.vdash/config.yaml. Run 'vdash config init' to create the settings file.

Common workflows:
  vdash cluster add prod https://velero.prod.example --role destination
  vdash cluster use <id>          Switch the active cluster
  vdash backup list               List backups on the active cluster
  vdash restore create r1 --backup nightly --rules rules.yaml
  vdash rules preview rules.yaml manifests.yaml`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
