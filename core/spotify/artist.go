package spotify

import (
	"context"
	"fmt"
	"net/url"
	"sort"
)

// Artist is a normalized Spotify artist.
type Artist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Genres      []string `json:"genres"`
	Popularity  int      `json:"popularity"`
	Followers   int64    `json:"followers"`
	ImageURL    string   `json:"imageUrl"`
	ExternalURL string   `json:"externalUrl"`
}

// Track is a normalized Spotify track.
type Track struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Popularity  int    `json:"popularity"`
	ExternalURL string `json:"externalUrl"`
}

// Album is a normalized Spotify album or single.
type Album struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AlbumType   string `json:"albumType"`
	ReleaseDate string `json:"releaseDate"`
	TotalTracks int    `json:"totalTracks"`
	ImageURL    string `json:"imageUrl"`
	ExternalURL string `json:"externalUrl"`
}

// AlbumTrack is one track of an album tracklist.
type AlbumTrack struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TrackNumber int    `json:"trackNumber"`
	DurationMs  int64  `json:"durationMs"`
	ExternalURL string `json:"externalUrl"`
}

// ArtistStats is the shaped per-artist stats object.
type ArtistStats struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ImageURL    string   `json:"imageUrl"`
	Followers   int64    `json:"followers"`
	Popularity  int      `json:"popularity"`
	Genres      []string `json:"genres"`
	TopTracks   []Track  `json:"topTracks"`
	AlbumCount  int      `json:"albumCount"`
	ExternalURL string   `json:"externalUrl"`
}

// Discography is the three-way release split of GetFullArtistData.
type Discography struct {
	Albums       []Album `json:"albums"`
	Singles      []Album `json:"singles"`
	Compilations []Album `json:"compilations"`
}

// FullArtistData is the complete profile payload for an artist page.
type FullArtistData struct {
	Artist         Artist      `json:"artist"`
	TopTracks      []Track     `json:"topTracks"`
	LatestReleases []Album     `json:"latestReleases"`
	Discography    Discography `json:"discography"`
}

type artistResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  struct {
		Total int64 `json:"total"`
	} `json:"followers"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type trackResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Popularity   int    `json:"popularity"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type albumResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AlbumType   string `json:"album_type"`
	ReleaseDate string `json:"release_date"`
	TotalTracks int    `json:"total_tracks"`
	Images      []struct {
		URL string `json:"url"`
	} `json:"images"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

func (a artistResponse) normalize() Artist {
	artist := Artist{
		ID:          a.ID,
		Name:        a.Name,
		Genres:      a.Genres,
		Popularity:  a.Popularity,
		Followers:   a.Followers.Total,
		ExternalURL: a.ExternalURLs.Spotify,
	}
	if len(a.Images) > 0 {
		artist.ImageURL = a.Images[0].URL
	}
	return artist
}

func (t trackResponse) normalize() Track {
	return Track{
		ID:          t.ID,
		Name:        t.Name,
		Popularity:  t.Popularity,
		ExternalURL: t.ExternalURLs.Spotify,
	}
}

func (a albumResponse) normalize() Album {
	album := Album{
		ID:          a.ID,
		Name:        a.Name,
		AlbumType:   a.AlbumType,
		ReleaseDate: a.ReleaseDate,
		TotalTracks: a.TotalTracks,
		ExternalURL: a.ExternalURLs.Spotify,
	}
	if len(a.Images) > 0 {
		album.ImageURL = a.Images[0].URL
	}
	return album
}

// SearchArtists searches artists by name and returns up to 5 matches.
func (c *Client) SearchArtists(ctx context.Context, query string) ([]Artist, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", "artist")
	q.Set("limit", "5")

	var result struct {
		Artists struct {
			Items []artistResponse `json:"items"`
		} `json:"artists"`
	}
	if err := c.get(ctx, "/search", q, &result); err != nil {
		return nil, fmt.Errorf("artist search %q: %w", query, err)
	}

	artists := make([]Artist, len(result.Artists.Items))
	for i, item := range result.Artists.Items {
		artists[i] = item.normalize()
	}
	return artists, nil
}

// GetArtist fetches one artist by ID.
func (c *Client) GetArtist(ctx context.Context, id string) (*Artist, error) {
	var result artistResponse
	if err := c.get(ctx, "/artists/"+id, nil, &result); err != nil {
		return nil, err
	}
	artist := result.normalize()
	return &artist, nil
}

// GetArtistTopTracks fetches the artist's top tracks for the given market
// (defaulting to US).
func (c *Client) GetArtistTopTracks(ctx context.Context, id, market string) ([]Track, error) {
	if market == "" {
		market = "US"
	}
	q := url.Values{}
	q.Set("market", market)

	var result struct {
		Tracks []trackResponse `json:"tracks"`
	}
	if err := c.get(ctx, "/artists/"+id+"/top-tracks", q, &result); err != nil {
		return nil, err
	}

	tracks := make([]Track, len(result.Tracks))
	for i, item := range result.Tracks {
		tracks[i] = item.normalize()
	}
	return tracks, nil
}

// GetArtistAlbums fetches up to 50 of the artist's albums and singles.
func (c *Client) GetArtistAlbums(ctx context.Context, id string) ([]Album, error) {
	q := url.Values{}
	q.Set("include_groups", "album,single")
	q.Set("limit", "50")

	var result struct {
		Items []albumResponse `json:"items"`
	}
	if err := c.get(ctx, "/artists/"+id+"/albums", q, &result); err != nil {
		return nil, err
	}

	albums := make([]Album, len(result.Items))
	for i, item := range result.Items {
		albums[i] = item.normalize()
	}
	return albums, nil
}

// GetAlbumTracks fetches the tracklist of one album.
func (c *Client) GetAlbumTracks(ctx context.Context, id string) ([]AlbumTrack, error) {
	q := url.Values{}
	q.Set("limit", "50")

	var result struct {
		Items []struct {
			ID           string `json:"id"`
			Name         string `json:"name"`
			TrackNumber  int    `json:"track_number"`
			DurationMs   int64  `json:"duration_ms"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
		} `json:"items"`
	}
	if err := c.get(ctx, "/albums/"+id+"/tracks", q, &result); err != nil {
		return nil, err
	}

	tracks := make([]AlbumTrack, len(result.Items))
	for i, item := range result.Items {
		tracks[i] = AlbumTrack{
			ID:          item.ID,
			Name:        item.Name,
			TrackNumber: item.TrackNumber,
			DurationMs:  item.DurationMs,
			ExternalURL: item.ExternalURLs.Spotify,
		}
	}
	return tracks, nil
}

// fetchArtistBundle runs the artist, top-tracks and albums requests
// concurrently and fails on the first error.
func (c *Client) fetchArtistBundle(ctx context.Context, id string) (*Artist, []Track, []Album, error) {
	var (
		artist    *Artist
		topTracks []Track
		albums    []Album
	)
	errs := make(chan error, 3)

	go func() {
		var err error
		artist, err = c.GetArtist(ctx, id)
		errs <- err
	}()
	go func() {
		var err error
		topTracks, err = c.GetArtistTopTracks(ctx, id, "US")
		errs <- err
	}()
	go func() {
		var err error
		albums, err = c.GetArtistAlbums(ctx, id)
		errs <- err
	}()

	var firstErr error
	for i := 0; i < 3; i++ {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, nil, nil, firstErr
	}
	return artist, topTracks, albums, nil
}

// GetArtistStats fetches and shapes the per-artist stats object. Any failed
// sub-request fails the whole call.
func (c *Client) GetArtistStats(ctx context.Context, id string) (*ArtistStats, error) {
	artist, topTracks, albums, err := c.fetchArtistBundle(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(topTracks) > 5 {
		topTracks = topTracks[:5]
	}

	return &ArtistStats{
		ID:          artist.ID,
		Name:        artist.Name,
		ImageURL:    artist.ImageURL,
		Followers:   artist.Followers,
		Popularity:  artist.Popularity,
		Genres:      artist.Genres,
		TopTracks:   topTracks,
		AlbumCount:  len(albums),
		ExternalURL: artist.ExternalURL,
	}, nil
}

// GetFullArtistData fetches the complete profile payload: all top tracks, the
// six most recent releases, and the discography split by type, each sorted by
// release date descending.
func (c *Client) GetFullArtistData(ctx context.Context, id string) (*FullArtistData, error) {
	artist, topTracks, albums, err := c.fetchArtistBundle(ctx, id)
	if err != nil {
		return nil, err
	}

	sortByReleaseDateDesc(albums)

	latest := albums
	if len(latest) > 6 {
		latest = latest[:6]
	}

	var discography Discography
	for _, album := range albums {
		switch album.AlbumType {
		case "single":
			discography.Singles = append(discography.Singles, album)
		case "compilation":
			discography.Compilations = append(discography.Compilations, album)
		default:
			discography.Albums = append(discography.Albums, album)
		}
	}
	sortByReleaseDateDesc(discography.Albums)
	sortByReleaseDateDesc(discography.Singles)
	sortByReleaseDateDesc(discography.Compilations)

	return &FullArtistData{
		Artist:         *artist,
		TopTracks:      topTracks,
		LatestReleases: latest,
		Discography:    discography,
	}, nil
}

// sortByReleaseDateDesc orders albums newest first. Spotify release dates are
// zero-padded ISO strings (possibly truncated to year or month), so a plain
// string comparison sorts them correctly.
func sortByReleaseDateDesc(albums []Album) {
	sort.SliceStable(albums, func(i, j int) bool {
		return albums[i].ReleaseDate > albums[j].ReleaseDate
	})
}
