package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Nullybeats/tampamixtape/logger"
)

const (
	defaultBaseURL  = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"

	// A token is treated as expired this long before its real expiry.
	tokenSafetyMargin = 60 * time.Second
)

// ErrMissingCredentials is returned when the client is used without a
// configured client ID and secret. Spotify is a hard dependency; unlike the
// optional platforms this is not degraded away.
var ErrMissingCredentials = errors.New("spotify client credentials are not configured")

// APIError is a non-2xx response from the Spotify Web API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify API error: status %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited reports whether err is a Spotify 429, either as a typed
// APIError or as a wrapped error whose message carries the status code.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(err.Error(), "429")
}

// Client wraps the Spotify Web API with client-credentials authentication.
// The access token is a single process-wide slot shared by all callers.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	tokenURL     string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewClient creates a Spotify client. Credentials may be empty; calls will
// then fail with ErrMissingCredentials.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		tokenURL:     defaultTokenURL,
		httpClient:   &http.Client{},
	}
}

// SetBaseURL overrides the API base URL.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// SetTokenURL overrides the token endpoint URL.
func (c *Client) SetTokenURL(u string) {
	c.tokenURL = u
}

// getAccessToken returns the cached bearer token, refreshing it when it is
// within the safety margin of expiry.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt.Add(-tokenSafetyMargin)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	credential := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+credential)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	requestAt := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.accessToken = result.AccessToken
	c.expiresAt = requestAt.Add(time.Duration(result.ExpiresIn) * time.Second)
	logger.Debug("refreshed spotify access token",
		logger.String("expiresAt", c.expiresAt.Format(time.RFC3339)))

	return c.accessToken, nil
}

// get performs an authenticated GET against the API and decodes the JSON
// response into out. HTTP errors, including 404 and 429, are returned to the
// caller as *APIError.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
