package cmd

import (
	"fmt"
	"time"

	"github.com/Nullybeats/tampamixtape/core/scheduler"
	"github.com/Nullybeats/tampamixtape/core/spotify"
	"github.com/Nullybeats/tampamixtape/db"
	"github.com/Nullybeats/tampamixtape/logger"
	"github.com/Nullybeats/tampamixtape/model"
	"github.com/Nullybeats/tampamixtape/repository"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one artist reconciliation pass and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		if err := db.Connect(cfg); err != nil {
			return err
		}
		defer db.Close()

		if err := db.AutoMigrate(&model.Artist{}, &model.Release{}, &model.AppSettings{}); err != nil {
			return err
		}

		spotifyClient := spotify.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		sched := scheduler.New(
			spotifyClient,
			repository.NewArtistRepository(db.DB),
			repository.NewReleaseRepository(db.DB),
			repository.NewSettingsRepository(db.DB),
			time.Duration(cfg.SyncArtistDelayMs)*time.Millisecond,
		)

		sched.RunSync()

		status, err := sched.Status()
		if err != nil {
			return err
		}
		fmt.Printf("sync finished (%s): %s\n", status.LastSyncStatus, status.LastSyncMessage)
		logger.Info("one-off sync finished", logger.String("status", status.LastSyncStatus))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
