package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nullybeats/tampamixtape/config"
	"github.com/Nullybeats/tampamixtape/core/aggregator"
	"github.com/Nullybeats/tampamixtape/core/events"
	"github.com/Nullybeats/tampamixtape/core/lastfm"
	"github.com/Nullybeats/tampamixtape/core/scheduler"
	"github.com/Nullybeats/tampamixtape/core/spotify"
	"github.com/Nullybeats/tampamixtape/core/youtube"
	"github.com/Nullybeats/tampamixtape/db"
	"github.com/Nullybeats/tampamixtape/logger"
	"github.com/Nullybeats/tampamixtape/model"
	"github.com/Nullybeats/tampamixtape/repository"

	"github.com/gorilla/mux"
)

// Start wires the application together and runs the HTTP server until
// SIGINT/SIGTERM.
func Start(cfg *config.Config) {
	if err := db.Connect(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.Close()

	if err := db.AutoMigrate(&model.Artist{}, &model.Release{}, &model.AppSettings{}); err != nil {
		logger.Fatal("Failed to migrate database", logger.ErrorField(err))
	}

	spotifyClient := spotify.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	youtubeClient := youtube.NewClient(cfg.YouTubeAPIKey)
	lastfmClient := lastfm.NewClient(cfg.LastfmAPIKey)
	eventsClient := events.NewClient(cfg.TicketmasterAPIKey)

	agg := aggregator.New(spotifyClient, youtubeClient, lastfmClient)

	artistRepo := repository.NewArtistRepository(db.DB)
	releaseRepo := repository.NewReleaseRepository(db.DB)
	settingsRepo := repository.NewSettingsRepository(db.DB)

	sched := scheduler.New(spotifyClient, artistRepo, releaseRepo, settingsRepo,
		time.Duration(cfg.SyncArtistDelayMs)*time.Millisecond)
	if err := sched.Start(); err != nil {
		logger.Error("Failed to start sync scheduler", logger.ErrorField(err))
	}
	defer sched.Stop()

	handler := NewAPIHandler(agg, spotifyClient, eventsClient, sched, settingsRepo)

	router := mux.NewRouter()
	router.Use(corsMiddleware)

	router.HandleFunc("/api/health", handler.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/artists/{name}/stats", handler.GetArtistStatsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/artists/stats/batch", handler.BatchStatsHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/search/artists", handler.SearchArtistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/spotify/artist/{id}", handler.FullArtistDataHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/events", handler.EventsHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/admin/sync/status", handler.SyncStatusHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/sync/run", handler.RunSyncHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/sync/settings", handler.UpdateSyncSettingsHandler).Methods(http.MethodPut)
	router.HandleFunc("/api/admin/cache/clear", handler.ClearCacheHandler).Methods(http.MethodPost)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", logger.ErrorField(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shut down", logger.ErrorField(err))
	}
	logger.Info("Server exited")
}

// corsMiddleware allows the directory frontend (served elsewhere) to call the
// API from any origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
