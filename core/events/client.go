package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Nullybeats/tampamixtape/logger"
)

const (
	defaultBaseURL = "https://app.ticketmaster.com/discovery/v2"
	maxEvents      = 20
)

// Event is one upcoming show.
type Event struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	URL   string  `json:"url"`
	Date  string  `json:"date"`
	Time  *string `json:"time"`
	Venue string  `json:"venue"`
	City  string  `json:"city"`
	Image string  `json:"image,omitempty"`
}

// Client wraps the Ticketmaster Discovery API. The platform is an optional
// enrichment: a missing API key or a failed call yields an empty list, never
// an error.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an events client. An empty apiKey disables the platform.
// Unlike the other platform clients this one carries an explicit request
// timeout.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetBaseURL overrides the API base URL.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// GetUpcomingEvents returns up to 20 music events matching the keyword and
// optional city, sorted by date ascending. Unavailable platform or upstream
// failure yields an empty list.
func (c *Client) GetUpcomingEvents(ctx context.Context, keyword, city string) ([]Event, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("classificationName", "music")
	q.Set("size", strconv.Itoa(maxEvents))
	q.Set("sort", "date,asc")
	q.Set("apikey", c.apiKey)
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	if city != "" {
		q.Set("city", city)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events.json?"+q.Encode(), nil)
	if err != nil {
		return nil, nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("events request failed",
			logger.String("keyword", keyword), logger.ErrorField(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("events API returned non-200",
			logger.Int("status", resp.StatusCode), logger.String("keyword", keyword))
		return nil, nil
	}

	var result struct {
		Embedded struct {
			Events []struct {
				ID     string `json:"id"`
				Name   string `json:"name"`
				URL    string `json:"url"`
				Images []struct {
					URL string `json:"url"`
				} `json:"images"`
				Dates struct {
					Start struct {
						LocalDate string `json:"localDate"`
						LocalTime string `json:"localTime"`
					} `json:"start"`
				} `json:"dates"`
				Embedded struct {
					Venues []struct {
						Name string `json:"name"`
						City struct {
							Name string `json:"name"`
						} `json:"city"`
					} `json:"venues"`
				} `json:"_embedded"`
			} `json:"events"`
		} `json:"_embedded"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Warn("events response decode failed", logger.ErrorField(err))
		return nil, nil
	}

	events := make([]Event, 0, len(result.Embedded.Events))
	for _, e := range result.Embedded.Events {
		event := Event{
			ID:   e.ID,
			Name: e.Name,
			URL:  e.URL,
			Date: e.Dates.Start.LocalDate,
			Time: FormatTime(e.Dates.Start.LocalTime),
		}
		if len(e.Images) > 0 {
			event.Image = e.Images[0].URL
		}
		if len(e.Embedded.Venues) > 0 {
			event.Venue = e.Embedded.Venues[0].Name
			event.City = e.Embedded.Venues[0].City.Name
		}
		events = append(events, event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	if len(events) > maxEvents {
		events = events[:maxEvents]
	}
	return events, nil
}

// FormatTime converts a 24-hour "HH:MM" or "HH:MM:SS" string to a 12-hour
// AM/PM string. Malformed input yields nil.
func FormatTime(local string) *string {
	if local == "" {
		return nil
	}
	parts := strings.Split(local, ":")
	if len(parts) < 2 {
		return nil
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return nil
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return nil
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	formatted := fmt.Sprintf("%d:%02d %s", hour12, minute, suffix)
	return &formatted
}
