package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Nullybeats/tampamixtape/logger"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// ChannelStats is a normalized YouTube channel statistics record.
type ChannelStats struct {
	ChannelID   string `json:"channelId"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Subscribers int64  `json:"subscribers"`
	Views       int64  `json:"views"`
	Videos      int64  `json:"videos"`
}

// Client wraps the YouTube Data API. The platform is an optional enrichment:
// a missing API key or a failed call yields nil, never an error.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a YouTube client. An empty apiKey disables the platform.
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

// GetChannelStats finds the best-matching channel for an artist name and
// returns its statistics, or nil when the platform is unavailable, no channel
// matches, or a call fails.
func (c *Client) GetChannelStats(ctx context.Context, artistName string) (*ChannelStats, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	channelID, err := c.findChannel(ctx, artistName)
	if err != nil {
		logger.Warn("youtube channel search failed",
			logger.String("artist", artistName), logger.ErrorField(err))
		return nil, nil
	}
	if channelID == "" {
		return nil, nil
	}

	stats, err := c.fetchStatistics(ctx, channelID)
	if err != nil {
		logger.Warn("youtube channel statistics failed",
			logger.String("artist", artistName), logger.ErrorField(err))
		return nil, nil
	}
	return stats, nil
}

func (c *Client) findChannel(ctx context.Context, artistName string) (string, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "channel")
	q.Set("q", artistName)
	q.Set("maxResults", "1")
	q.Set("key", c.apiKey)

	var result struct {
		Items []struct {
			ID struct {
				ChannelID string `json:"channelId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, "/search", q, &result); err != nil {
		return "", err
	}
	if len(result.Items) == 0 {
		return "", nil
	}
	return result.Items[0].ID.ChannelID, nil
}

func (c *Client) fetchStatistics(ctx context.Context, channelID string) (*ChannelStats, error) {
	q := url.Values{}
	q.Set("part", "snippet,statistics")
	q.Set("id", channelID)
	q.Set("key", c.apiKey)

	var result struct {
		Items []struct {
			Snippet struct {
				Title string `json:"title"`
			} `json:"snippet"`
			Statistics struct {
				SubscriberCount string `json:"subscriberCount"`
				ViewCount       string `json:"viewCount"`
				VideoCount      string `json:"videoCount"`
			} `json:"statistics"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, "/channels", q, &result); err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, nil
	}

	item := result.Items[0]
	return &ChannelStats{
		ChannelID:   channelID,
		Title:       item.Snippet.Title,
		URL:         "https://www.youtube.com/channel/" + channelID,
		Subscribers: parseCount(item.Statistics.SubscriberCount),
		Views:       parseCount(item.Statistics.ViewCount),
		Videos:      parseCount(item.Statistics.VideoCount),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
