package aggregator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Nullybeats/tampamixtape/cache"
	"github.com/Nullybeats/tampamixtape/core/lastfm"
	"github.com/Nullybeats/tampamixtape/core/spotify"
	"github.com/Nullybeats/tampamixtape/core/youtube"
	"github.com/Nullybeats/tampamixtape/logger"
	"github.com/Nullybeats/tampamixtape/model"
)

// SpotifySource is the slice of the Spotify client the aggregator needs.
type SpotifySource interface {
	SearchArtists(ctx context.Context, query string) ([]spotify.Artist, error)
	GetArtistStats(ctx context.Context, id string) (*spotify.ArtistStats, error)
}

// YouTubeSource is the slice of the YouTube client the aggregator needs.
type YouTubeSource interface {
	GetChannelStats(ctx context.Context, artistName string) (*youtube.ChannelStats, error)
}

// LastfmSource is the slice of the Last.fm client the aggregator needs.
type LastfmSource interface {
	GetArtistInfo(ctx context.Context, name string) (*lastfm.ArtistInfo, error)
	SearchArtists(ctx context.Context, query string) ([]lastfm.ArtistMatch, error)
}

// ArtistQuery identifies one artist in a batch request.
type ArtistQuery struct {
	Name      string `json:"name"`
	SpotifyID string `json:"spotifyId,omitempty"`
}

// BatchResult is the per-artist outcome of a batch aggregation.
type BatchResult struct {
	Query   string             `json:"query"`
	Success bool               `json:"success"`
	Data    *model.ArtistStats `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Aggregator merges per-platform artist data into one cached document.
type Aggregator struct {
	spotify SpotifySource
	youtube YouTubeSource
	lastfm  LastfmSource
	cache   *cache.StatsCache
}

// New creates an Aggregator with a fresh stats cache.
func New(sp SpotifySource, yt YouTubeSource, lf LastfmSource) *Aggregator {
	return &Aggregator{
		spotify: sp,
		youtube: yt,
		lastfm:  lf,
		cache:   cache.NewStatsCache(cache.DefaultStatsTTL),
	}
}

// cacheKey builds the cache key for one artist query.
func cacheKey(name, spotifyID string) string {
	id := spotifyID
	if id == "" {
		id = "auto"
	}
	return fmt.Sprintf("artist:%s:%s", strings.ToLower(name), id)
}

// settled is one branch result of the settle-all join.
type settled[T any] struct {
	value T
	err   error
}

// GetAggregatedStats returns the merged stats document for one artist,
// serving from cache within the TTL. The three platform lookups run
// concurrently and settle independently: one platform failing never aborts
// the others.
func (a *Aggregator) GetAggregatedStats(ctx context.Context, artistName, spotifyID string) (*model.ArtistStats, error) {
	key := cacheKey(artistName, spotifyID)
	if doc, ok := a.cache.Get(key); ok {
		hit := *doc
		hit.Cached = true
		return &hit, nil
	}

	var (
		wg sync.WaitGroup
		sp settled[*spotify.ArtistStats]
		yt settled[*youtube.ChannelStats]
		lf settled[*lastfm.ArtistInfo]
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		sp.value, sp.err = a.fetchSpotify(ctx, artistName, spotifyID)
	}()
	go func() {
		defer wg.Done()
		yt.value, yt.err = a.youtube.GetChannelStats(ctx, artistName)
	}()
	go func() {
		defer wg.Done()
		lf.value, lf.err = a.lastfm.GetArtistInfo(ctx, artistName)
	}()
	wg.Wait()

	doc := a.merge(artistName, sp, yt, lf)
	a.cache.Set(key, doc)

	logger.Debug("aggregated artist stats",
		logger.String("artist", artistName),
		logger.Bool("spotify", doc.Platforms.Spotify.Available),
		logger.Bool("youtube", doc.Platforms.YouTube.Available),
		logger.Bool("lastfm", doc.Platforms.Lastfm.Available))

	return doc, nil
}

// fetchSpotify resolves the artist ID (searching by name when none is given)
// and fetches the shaped Spotify stats.
func (a *Aggregator) fetchSpotify(ctx context.Context, artistName, spotifyID string) (*spotify.ArtistStats, error) {
	id := spotifyID
	if id == "" {
		matches, err := a.spotify.SearchArtists(ctx, artistName)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no spotify artist found for %q", artistName)
		}
		id = matches[0].ID
	}
	return a.spotify.GetArtistStats(ctx, id)
}

// merge builds the stats document from the settled platform results.
func (a *Aggregator) merge(
	artistName string,
	sp settled[*spotify.ArtistStats],
	yt settled[*youtube.ChannelStats],
	lf settled[*lastfm.ArtistInfo],
) *model.ArtistStats {
	doc := &model.ArtistStats{
		Artist:    model.ArtistInfo{Name: artistName},
		FetchedAt: time.Now(),
	}

	switch {
	case sp.err != nil:
		doc.Platforms.Spotify = &model.SpotifyStats{Available: false, Reason: sp.err.Error()}
	case sp.value == nil:
		doc.Platforms.Spotify = &model.SpotifyStats{Available: false}
	default:
		stats := sp.value
		topTracks := make([]model.TopTrack, 0, len(stats.TopTracks))
		for _, t := range stats.TopTracks {
			topTracks = append(topTracks, model.TopTrack{
				Name:       t.Name,
				Popularity: t.Popularity,
				URL:        t.ExternalURL,
			})
		}
		doc.Platforms.Spotify = &model.SpotifyStats{
			Available:  true,
			Followers:  stats.Followers,
			Popularity: stats.Popularity,
			Genres:     stats.Genres,
			TopTracks:  topTracks,
			Albums:     stats.AlbumCount,
			URL:        stats.ExternalURL,
		}
		doc.Artist.Name = stats.Name
		doc.Artist.Image = stats.ImageURL
		doc.Artist.Genres = stats.Genres
	}

	switch {
	case yt.err != nil:
		doc.Platforms.YouTube = &model.YouTubeStats{Available: false, Reason: yt.err.Error()}
	case yt.value == nil:
		doc.Platforms.YouTube = &model.YouTubeStats{Available: false}
	default:
		doc.Platforms.YouTube = &model.YouTubeStats{
			Available:   true,
			Channel:     yt.value.Title,
			Subscribers: yt.value.Subscribers,
			Views:       yt.value.Views,
			Videos:      yt.value.Videos,
			URL:         yt.value.URL,
		}
	}

	switch {
	case lf.err != nil:
		doc.Platforms.Lastfm = &model.LastfmStats{Available: false, Reason: lf.err.Error()}
	case lf.value == nil:
		doc.Platforms.Lastfm = &model.LastfmStats{Available: false}
	default:
		doc.Platforms.Lastfm = &model.LastfmStats{
			Available: true,
			Listeners: lf.value.Listeners,
			Plays:     lf.value.Playcount,
			Tags:      lf.value.Tags,
			URL:       lf.value.URL,
		}
	}

	doc.Totals = buildTotals(doc.Platforms)
	return doc
}

// buildTotals computes the cross-platform sums. GrandTotal adds spotify
// followers, youtube subscribers, youtube views and lastfm listeners; plays
// are reported but not summed.
func buildTotals(p model.Platforms) model.Totals {
	var spotifyFollowers, ytSubscribers, ytViews, lfListeners, lfPlays int64
	if p.Spotify.Available {
		spotifyFollowers = p.Spotify.Followers
	}
	if p.YouTube.Available {
		ytSubscribers = p.YouTube.Subscribers
		ytViews = p.YouTube.Views
	}
	if p.Lastfm.Available {
		lfListeners = p.Lastfm.Listeners
		lfPlays = p.Lastfm.Plays
	}

	followers := spotifyFollowers + ytSubscribers
	grandTotal := spotifyFollowers + ytSubscribers + ytViews + lfListeners

	return model.Totals{
		Followers:           followers,
		FollowersFormatted:  FormatNumber(followers),
		Views:               ytViews,
		ViewsFormatted:      FormatNumber(ytViews),
		Plays:               lfPlays,
		PlaysFormatted:      FormatNumber(lfPlays),
		Listeners:           lfListeners,
		ListenersFormatted:  FormatNumber(lfListeners),
		GrandTotal:          grandTotal,
		GrandTotalFormatted: FormatNumber(grandTotal),
	}
}

// GetMultipleArtistsStats aggregates a batch of artists concurrently. Each
// entry settles on its own; one artist failing never fails the batch.
func (a *Aggregator) GetMultipleArtistsStats(ctx context.Context, queries []ArtistQuery) []BatchResult {
	results := make([]BatchResult, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q ArtistQuery) {
			defer wg.Done()
			doc, err := a.GetAggregatedStats(ctx, q.Name, q.SpotifyID)
			if err != nil {
				results[i] = BatchResult{Query: q.Name, Success: false, Error: err.Error()}
				return
			}
			results[i] = BatchResult{Query: q.Name, Success: true, Data: doc}
		}(i, q)
	}
	wg.Wait()

	return results
}

// SearchArtists searches Spotify and Last.fm concurrently and merges the
// results, de-duplicating by lowercased name. Spotify results come first, so
// Spotify wins ties.
func (a *Aggregator) SearchArtists(ctx context.Context, query string) ([]model.ArtistSearchResult, error) {
	var (
		wg sync.WaitGroup
		sp settled[[]spotify.Artist]
		lf settled[[]lastfm.ArtistMatch]
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sp.value, sp.err = a.spotify.SearchArtists(ctx, query)
	}()
	go func() {
		defer wg.Done()
		lf.value, lf.err = a.lastfm.SearchArtists(ctx, query)
	}()
	wg.Wait()

	if sp.err != nil {
		logger.Warn("spotify search failed during merged search",
			logger.String("query", query), logger.ErrorField(sp.err))
	}
	if lf.err != nil {
		logger.Warn("lastfm search failed during merged search",
			logger.String("query", query), logger.ErrorField(lf.err))
	}

	seen := make(map[string]struct{})
	var merged []model.ArtistSearchResult

	for _, artist := range sp.value {
		nameKey := strings.ToLower(artist.Name)
		if _, ok := seen[nameKey]; ok {
			continue
		}
		seen[nameKey] = struct{}{}
		followers := artist.Followers
		merged = append(merged, model.ArtistSearchResult{
			Name:      artist.Name,
			SpotifyID: artist.ID,
			Image:     artist.ImageURL,
			Followers: &followers,
			Source:    "spotify",
		})
	}
	for _, match := range lf.value {
		nameKey := strings.ToLower(match.Name)
		if _, ok := seen[nameKey]; ok {
			continue
		}
		seen[nameKey] = struct{}{}
		listeners := match.Listeners
		merged = append(merged, model.ArtistSearchResult{
			Name:      match.Name,
			Listeners: &listeners,
			Source:    "lastfm",
		})
	}

	return merged, nil
}

// ClearCache flushes the whole stats cache.
func (a *Aggregator) ClearCache() {
	a.cache.Clear()
	logger.Info("stats cache cleared")
}

// CacheLen reports the current number of cached documents.
func (a *Aggregator) CacheLen() int {
	return a.cache.Len()
}
