package cmd

import (
	"fmt"
	"os"

	"github.com/Nullybeats/tampamixtape/config"
	"github.com/Nullybeats/tampamixtape/logger"
	"github.com/Nullybeats/tampamixtape/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tampamixtape",
	Short: "Tampa Mixtape is a music-artist directory and stats aggregator.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		server.Start(cfg)
	},
}

// loadConfig loads the environment config and initializes logging.
func loadConfig() *config.Config {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogOutputPath,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	})
	return cfg
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
