package cmd

import (
	"github.com/Nullybeats/tampamixtape/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server and the background sync scheduler",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		server.Start(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
