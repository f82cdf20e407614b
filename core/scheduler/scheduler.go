package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Nullybeats/tampamixtape/core/spotify"
	"github.com/Nullybeats/tampamixtape/logger"
	"github.com/Nullybeats/tampamixtape/model"
	"github.com/Nullybeats/tampamixtape/repository"

	"github.com/google/uuid"
)

// SpotifyAPI is the slice of the Spotify client the sync job needs.
type SpotifyAPI interface {
	GetArtistAlbums(ctx context.Context, id string) ([]spotify.Album, error)
	GetArtist(ctx context.Context, id string) (*spotify.Artist, error)
}

// Status is the combined scheduler state: schedule and last-run fields from
// storage, the busy flag from memory. The two can be briefly inconsistent
// while a run is writing its result.
type Status struct {
	Enabled         bool       `json:"enabled"`
	IntervalMins    int        `json:"intervalMins"`
	LastSyncAt      *time.Time `json:"lastSyncAt"`
	LastSyncStatus  string     `json:"lastSyncStatus"`
	LastSyncMessage string     `json:"lastSyncMessage"`
	IsRunning       bool       `json:"isRunning"`
}

// Scheduler periodically reconciles approved Spotify-linked artists against
// the Spotify API. Artists are processed strictly one at a time with a fixed
// delay in between to stay under the upstream rate limit.
type Scheduler struct {
	spotify  SpotifyAPI
	artists  repository.ArtistRepository
	releases repository.ReleaseRepository
	settings repository.SettingsRepository

	// artistDelay is the pause after each artist during a run.
	artistDelay time.Duration

	// running is advisory only: a trigger that finds it set is dropped, not
	// queued.
	running atomic.Bool

	mu     sync.Mutex
	ticker *time.Ticker
	stopCh chan struct{}
}

// New creates a Scheduler. artistDelay <= 0 falls back to 1500ms.
func New(
	sp SpotifyAPI,
	artists repository.ArtistRepository,
	releases repository.ReleaseRepository,
	settings repository.SettingsRepository,
	artistDelay time.Duration,
) *Scheduler {
	if artistDelay <= 0 {
		artistDelay = 1500 * time.Millisecond
	}
	return &Scheduler{
		spotify:     sp,
		artists:     artists,
		releases:    releases,
		settings:    settings,
		artistDelay: artistDelay,
	}
}

// Start reads the persisted schedule and installs the recurring timer. If the
// last run is already older than one interval, a catch-up run fires
// immediately as well. Any previously installed timer is replaced.
func (s *Scheduler) Start() error {
	settings, err := s.settings.Get()
	if err != nil {
		return fmt.Errorf("failed to read sync settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	if !settings.AutoSyncEnabled || settings.AutoSyncIntervalMins <= 0 {
		logger.Info("auto sync disabled",
			logger.Bool("enabled", settings.AutoSyncEnabled),
			logger.Int("intervalMins", settings.AutoSyncIntervalMins))
		return nil
	}

	interval := time.Duration(settings.AutoSyncIntervalMins) * time.Minute
	stopCh := make(chan struct{})
	ticker := time.NewTicker(interval)
	s.stopCh = stopCh
	s.ticker = ticker

	go func() {
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				s.RunSync()
			}
		}
	}()

	logger.Info("auto sync scheduled", logger.Duration("interval", interval))

	if settings.LastSyncAt == nil || time.Since(*settings.LastSyncAt) > interval {
		logger.Info("last sync is overdue, running catch-up sync")
		go s.RunSync()
	}

	return nil
}

// Stop clears the recurring timer. It does not interrupt a run already in
// flight.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
}

// Restart stops and re-reads the persisted schedule. Called after an admin
// changes the interval or enabled flag.
func (s *Scheduler) Restart() error {
	s.Stop()
	return s.Start()
}

// RunSync executes one reconciliation run. A trigger while a run is in flight
// logs and returns without doing anything. Per-artist errors are recorded and
// the loop continues, except a rate-limit error, which abandons the rest of
// the run. The outcome is always persisted to the settings row.
func (s *Scheduler) RunSync() {
	if !s.running.CompareAndSwap(false, true) {
		logger.Info("sync already running, trigger dropped")
		return
	}
	defer s.running.Store(false)

	ctx := context.Background()
	runID := uuid.NewString()[:8]
	started := time.Now()

	logger.Info("sync run starting", logger.String("runId", runID))

	var (
		total   int
		synced  int
		failed  int
		skipped int
		runErr  error
	)

	artists, err := s.artists.ListSyncable()
	if err != nil {
		runErr = err
	} else {
		total = len(artists)
		for i := range artists {
			artist := &artists[i]
			if err := s.syncArtist(ctx, artist); err != nil {
				if spotify.IsRateLimited(err) {
					skipped = total - i
					logger.Warn("rate limited, abandoning remaining artists in this run",
						logger.String("runId", runID),
						logger.String("artist", artist.Name),
						logger.Int("remaining", skipped))
					break
				}
				failed++
				logger.Error("artist sync failed",
					logger.String("runId", runID),
					logger.String("artist", artist.Name),
					logger.ErrorField(err))
			} else {
				synced++
			}
			time.Sleep(s.artistDelay)
		}
	}

	status := model.SyncStatusSuccess
	var message string
	if runErr != nil {
		status = model.SyncStatusFailed
		message = fmt.Sprintf("run %s failed: %v", runID, runErr)
	} else {
		if failed > 0 || skipped > 0 {
			status = model.SyncStatusPartial
		}
		message = fmt.Sprintf("run %s: %d/%d artists synced, %d failed, %d skipped in %s",
			runID, synced, total, failed, skipped, time.Since(started).Truncate(time.Second))
	}

	if err := s.settings.UpdateSyncResult(time.Now(), status, message); err != nil {
		logger.Error("failed to persist sync result",
			logger.String("runId", runID), logger.ErrorField(err))
	}

	logger.Info("sync run finished",
		logger.String("runId", runID),
		logger.String("status", status),
		logger.Int("synced", synced),
		logger.Int("failed", failed),
		logger.Int("skipped", skipped))
}

// syncArtist upserts one artist's releases and refreshes their profile fields.
func (s *Scheduler) syncArtist(ctx context.Context, artist *model.Artist) error {
	spotifyID := *artist.SpotifyID

	albums, err := s.spotify.GetArtistAlbums(ctx, spotifyID)
	if err != nil {
		return fmt.Errorf("fetch albums: %w", err)
	}
	for _, album := range albums {
		release := &model.Release{
			SpotifyID:   album.ID,
			Name:        album.Name,
			Type:        releaseType(album),
			Image:       album.ImageURL,
			ReleaseDate: album.ReleaseDate,
			SpotifyURL:  album.ExternalURL,
			ArtistID:    artist.ID,
			ArtistName:  artist.Name,
			ArtistSlug:  artist.Slug,
		}
		if err := s.releases.UpsertBySpotifyID(release); err != nil {
			return fmt.Errorf("upsert release: %w", err)
		}
	}

	profile, err := s.spotify.GetArtist(ctx, spotifyID)
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}

	// Partial update: only fields the response actually carries are written.
	fields := map[string]interface{}{
		"popularity": profile.Popularity,
		"followers":  profile.Followers,
	}
	if len(profile.Genres) > 0 {
		fields["genres"] = strings.Join(profile.Genres, ", ")
	}
	if profile.ImageURL != "" {
		fields["avatar"] = profile.ImageURL
	}
	if err := s.artists.UpdateSyncedFields(artist.ID, fields); err != nil {
		return fmt.Errorf("update profile fields: %w", err)
	}

	return nil
}

// releaseType maps a Spotify album type onto the directory's labels. Spotify
// has no EP type, so singles named like EPs are promoted.
func releaseType(album spotify.Album) string {
	switch album.AlbumType {
	case "single":
		name := strings.ToLower(strings.TrimSpace(album.Name))
		if strings.HasSuffix(name, " ep") || name == "ep" {
			return model.ReleaseTypeEP
		}
		return model.ReleaseTypeSingle
	default:
		return model.ReleaseTypeAlbum
	}
}

// Status reports the persisted schedule plus the in-memory busy flag.
func (s *Scheduler) Status() (*Status, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	return &Status{
		Enabled:         settings.AutoSyncEnabled,
		IntervalMins:    settings.AutoSyncIntervalMins,
		LastSyncAt:      settings.LastSyncAt,
		LastSyncStatus:  settings.LastSyncStatus,
		LastSyncMessage: settings.LastSyncMessage,
		IsRunning:       s.running.Load(),
	}, nil
}
