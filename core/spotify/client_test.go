package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient wires a client against httptest servers for both the token
// endpoint and the API, returning the token exchange counter.
func newTestClient(t *testing.T, apiHandler http.HandlerFunc) (*Client, *atomic.Int64) {
	t.Helper()

	var tokenRequests atomic.Int64
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenRequests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	}))
	t.Cleanup(tokenServer.Close)

	apiServer := httptest.NewServer(apiHandler)
	t.Cleanup(apiServer.Close)

	client := NewClient("id", "secret")
	client.SetTokenURL(tokenServer.URL)
	client.SetBaseURL(apiServer.URL)
	return client, &tokenRequests
}

func TestGetArtist_MissingCredentials(t *testing.T) {
	client := NewClient("", "")
	_, err := client.GetArtist(context.Background(), testArtistID)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestToken_ReusedAcrossCalls(t *testing.T) {
	client, tokenRequests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"id":"a","name":"A","followers":{"total":10}}`)
	})

	ctx := context.Background()
	_, err := client.GetArtist(ctx, "a")
	require.NoError(t, err)
	_, err = client.GetArtist(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, int64(1), tokenRequests.Load(), "second call must reuse the cached token")
}

func TestToken_RefreshedNearExpiry(t *testing.T) {
	client, tokenRequests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"a","name":"A"}`)
	})

	ctx := context.Background()
	_, err := client.GetArtist(ctx, "a")
	require.NoError(t, err)

	// Move the recorded expiry inside the 60s safety margin.
	client.mu.Lock()
	client.expiresAt = time.Now().Add(30 * time.Second)
	client.mu.Unlock()

	_, err = client.GetArtist(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), tokenRequests.Load())
}

func TestGet_PropagatesAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	_, err := client.GetArtist(context.Background(), "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(&APIError{StatusCode: 429, Body: "rate limited"}))
	assert.True(t, IsRateLimited(fmt.Errorf("fetch albums: %w", &APIError{StatusCode: 429})))
	assert.True(t, IsRateLimited(fmt.Errorf("upstream said 429, backing off")))
	assert.False(t, IsRateLimited(&APIError{StatusCode: 500, Body: "boom"}))
	assert.False(t, IsRateLimited(nil))
}

func TestGetArtistStats_TruncatesTopTracks(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/artists/a":
			fmt.Fprint(w, `{"id":"a","name":"A","popularity":50,"followers":{"total":1000},"genres":["rap"]}`)
		case "/artists/a/top-tracks":
			fmt.Fprint(w, `{"tracks":[{"id":"1"},{"id":"2"},{"id":"3"},{"id":"4"},{"id":"5"},{"id":"6"},{"id":"7"}]}`)
		case "/artists/a/albums":
			fmt.Fprint(w, `{"items":[{"id":"al1","album_type":"album"},{"id":"al2","album_type":"single"}]}`)
		default:
			http.NotFound(w, r)
		}
	})

	stats, err := client.GetArtistStats(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "A", stats.Name)
	assert.Equal(t, int64(1000), stats.Followers)
	assert.Len(t, stats.TopTracks, 5)
	assert.Equal(t, 2, stats.AlbumCount)
}

func TestGetFullArtistData_SortsAndSplits(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/artists/a":
			fmt.Fprint(w, `{"id":"a","name":"A"}`)
		case "/artists/a/top-tracks":
			fmt.Fprint(w, `{"tracks":[{"id":"1"}]}`)
		case "/artists/a/albums":
			fmt.Fprint(w, `{"items":[
				{"id":"s1","album_type":"single","release_date":"2021-03-01"},
				{"id":"al1","album_type":"album","release_date":"2023-01-15"},
				{"id":"c1","album_type":"compilation","release_date":"2019-06-01"},
				{"id":"al2","album_type":"album","release_date":"2020-11-20"},
				{"id":"s2","album_type":"single","release_date":"2024-05-05"}
			]}`)
		default:
			http.NotFound(w, r)
		}
	})

	data, err := client.GetFullArtistData(context.Background(), "a")
	require.NoError(t, err)

	require.Len(t, data.LatestReleases, 5)
	assert.Equal(t, "s2", data.LatestReleases[0].ID)
	assert.Equal(t, "al1", data.LatestReleases[1].ID)

	require.Len(t, data.Discography.Albums, 2)
	assert.Equal(t, "al1", data.Discography.Albums[0].ID)
	assert.Equal(t, "al2", data.Discography.Albums[1].ID)
	require.Len(t, data.Discography.Singles, 2)
	assert.Equal(t, "s2", data.Discography.Singles[0].ID)
	require.Len(t, data.Discography.Compilations, 1)
}
