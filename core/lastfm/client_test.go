package lastfm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetArtistInfo_NoAPIKey(t *testing.T) {
	c := NewClient("")
	info, err := c.GetArtistInfo(context.Background(), "Foo")
	assert.NoError(t, err)
	assert.Nil(t, info)
}

func TestGetArtistInfo_ParsesStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "artist.getinfo", r.URL.Query().Get("method"))
		fmt.Fprint(w, `{"artist":{"name":"Foo","url":"https://last.fm/music/Foo",
			"stats":{"listeners":"300","playcount":"9999"},
			"tags":{"tag":[{"name":"rap"},{"name":"florida"}]}}}`)
	}))
	defer server.Close()

	c := NewClient("key")
	c.SetBaseURL(server.URL)

	info, err := c.GetArtistInfo(context.Background(), "Foo")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, int64(300), info.Listeners)
	assert.Equal(t, int64(9999), info.Playcount)
	assert.Equal(t, []string{"rap", "florida"}, info.Tags)
}

func TestGetArtistInfo_UnknownArtist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":6,"message":"The artist you supplied could not be found"}`)
	}))
	defer server.Close()

	c := NewClient("key")
	c.SetBaseURL(server.URL)

	info, err := c.GetArtistInfo(context.Background(), "Nobody")
	assert.NoError(t, err)
	assert.Nil(t, info)
}

func TestGetArtistInfo_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient("key")
	c.SetBaseURL(server.URL)

	info, err := c.GetArtistInfo(context.Background(), "Foo")
	assert.NoError(t, err, "optional platform never surfaces errors")
	assert.Nil(t, info)
}

func TestSearchArtists_ParsesMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":{"artistmatches":{"artist":[
			{"name":"Foo","url":"u1","listeners":"10"},
			{"name":"Foobar","url":"u2","listeners":"garbage"}
		]}}}`)
	}))
	defer server.Close()

	c := NewClient("key")
	c.SetBaseURL(server.URL)

	matches, err := c.SearchArtists(context.Background(), "foo")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, int64(10), matches[0].Listeners)
	assert.Equal(t, int64(0), matches[1].Listeners, "garbage counters parse to zero")
}
