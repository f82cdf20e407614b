package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChannelStats_NoAPIKey(t *testing.T) {
	c := NewClient("")
	stats, err := c.GetChannelStats(context.Background(), "Foo")
	assert.NoError(t, err)
	assert.Nil(t, stats)
}

func TestGetChannelStats_ParsesStatistics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			fmt.Fprint(w, `{"items":[{"id":{"channelId":"UC123"}}]}`)
		case "/channels":
			assert.Equal(t, "UC123", r.URL.Query().Get("id"))
			fmt.Fprint(w, `{"items":[{"snippet":{"title":"Foo Music"},
				"statistics":{"subscriberCount":"200","viewCount":"5000","videoCount":"12"}}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := NewClient("key")
	c.SetBaseURL(server.URL)

	stats, err := c.GetChannelStats(context.Background(), "Foo")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, "Foo Music", stats.Title)
	assert.Equal(t, int64(200), stats.Subscribers)
	assert.Equal(t, int64(5000), stats.Views)
	assert.Equal(t, "https://www.youtube.com/channel/UC123", stats.URL)
}

func TestGetChannelStats_NoChannelMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer server.Close()

	c := NewClient("key")
	c.SetBaseURL(server.URL)

	stats, err := c.GetChannelStats(context.Background(), "Nobody")
	assert.NoError(t, err)
	assert.Nil(t, stats)
}

func TestGetChannelStats_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient("key")
	c.SetBaseURL(server.URL)

	stats, err := c.GetChannelStats(context.Background(), "Foo")
	assert.NoError(t, err, "optional platform never surfaces errors")
	assert.Nil(t, stats)
}
