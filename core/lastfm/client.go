package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Nullybeats/tampamixtape/logger"
)

const defaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

// ArtistInfo is a normalized Last.fm artist record.
type ArtistInfo struct {
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	Listeners int64    `json:"listeners"`
	Playcount int64    `json:"playcount"`
	Tags      []string `json:"tags"`
}

// ArtistMatch is one Last.fm search hit.
type ArtistMatch struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Listeners int64  `json:"listeners"`
}

// Client wraps the Last.fm API. The platform is an optional enrichment: a
// missing API key or a failed call yields nil/empty results, never an error.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Last.fm client. An empty apiKey disables the platform.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
}

// SetBaseURL overrides the API base URL.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// GetArtistInfo returns listener/playcount data for an artist, or nil when
// the platform is unavailable or the lookup fails.
func (c *Client) GetArtistInfo(ctx context.Context, name string) (*ArtistInfo, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("method", "artist.getinfo")
	q.Set("artist", name)
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")

	var result struct {
		Artist struct {
			Name  string `json:"name"`
			URL   string `json:"url"`
			Stats struct {
				Listeners string `json:"listeners"`
				Playcount string `json:"playcount"`
			} `json:"stats"`
			Tags struct {
				Tag []struct {
					Name string `json:"name"`
				} `json:"tag"`
			} `json:"tags"`
		} `json:"artist"`
		Error   int    `json:"error"`
		Message string `json:"message"`
	}
	if err := c.getJSON(ctx, q, &result); err != nil {
		logger.Warn("lastfm artist lookup failed",
			logger.String("artist", name), logger.ErrorField(err))
		return nil, nil
	}
	if result.Error != 0 || result.Artist.Name == "" {
		logger.Debug("lastfm artist not found",
			logger.String("artist", name), logger.String("message", result.Message))
		return nil, nil
	}

	info := &ArtistInfo{
		Name:      result.Artist.Name,
		URL:       result.Artist.URL,
		Listeners: parseCount(result.Artist.Stats.Listeners),
		Playcount: parseCount(result.Artist.Stats.Playcount),
	}
	for _, tag := range result.Artist.Tags.Tag {
		info.Tags = append(info.Tags, tag.Name)
	}
	return info, nil
}

// SearchArtists returns up to 5 search hits, or an empty slice when the
// platform is unavailable or the search fails.
func (c *Client) SearchArtists(ctx context.Context, query string) ([]ArtistMatch, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("method", "artist.search")
	q.Set("artist", query)
	q.Set("limit", "5")
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")

	var result struct {
		Results struct {
			ArtistMatches struct {
				Artist []struct {
					Name      string `json:"name"`
					URL       string `json:"url"`
					Listeners string `json:"listeners"`
				} `json:"artist"`
			} `json:"artistmatches"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, q, &result); err != nil {
		logger.Warn("lastfm artist search failed",
			logger.String("query", query), logger.ErrorField(err))
		return nil, nil
	}

	matches := make([]ArtistMatch, 0, len(result.Results.ArtistMatches.Artist))
	for _, a := range result.Results.ArtistMatches.Artist {
		matches = append(matches, ArtistMatch{
			Name:      a.Name,
			URL:       a.URL,
			Listeners: parseCount(a.Listeners),
		})
	}
	return matches, nil
}

func (c *Client) getJSON(ctx context.Context, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lastfm API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseCount parses Last.fm's string-typed counters, tolerating garbage.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
