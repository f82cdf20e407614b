package events

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"19:30:00", "7:30 PM"},
		{"00:00:00", "12:00 AM"},
		{"12:00:00", "12:00 PM"},
		{"09:05:00", "9:05 AM"},
		{"23:59", "11:59 PM"},
	}
	for _, c := range cases {
		got := FormatTime(c.in)
		require.NotNil(t, got, "FormatTime(%q)", c.in)
		assert.Equal(t, c.want, *got, "FormatTime(%q)", c.in)
	}
}

func TestFormatTime_Malformed(t *testing.T) {
	for _, in := range []string{"", "late", "25:00:00", "12:61:00", "12", "aa:bb"} {
		assert.Nil(t, FormatTime(in), "FormatTime(%q)", in)
	}
}

func TestGetUpcomingEvents_NoAPIKey(t *testing.T) {
	c := NewClient("")
	list, err := c.GetUpcomingEvents(context.Background(), "foo", "")
	assert.NoError(t, err)
	assert.Nil(t, list)
}

func TestGetUpcomingEvents_SortsByDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "music", r.URL.Query().Get("classificationName"))
		fmt.Fprint(w, `{"_embedded":{"events":[
			{"id":"e2","name":"Later","dates":{"start":{"localDate":"2026-10-01","localTime":"20:00:00"}},
			 "_embedded":{"venues":[{"name":"The Ritz","city":{"name":"Ybor City"}}]}},
			{"id":"e1","name":"Sooner","dates":{"start":{"localDate":"2026-09-10","localTime":"bad"}},
			 "_embedded":{"venues":[{"name":"Jannus Live","city":{"name":"St. Petersburg"}}]}}
		]}}`)
	}))
	defer server.Close()

	c := NewClient("key")
	c.SetBaseURL(server.URL)

	list, err := c.GetUpcomingEvents(context.Background(), "foo", "Tampa")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "e1", list[0].ID)
	assert.Nil(t, list[0].Time, "malformed time degrades to null")
	assert.Equal(t, "e2", list[1].ID)
	require.NotNil(t, list[1].Time)
	assert.Equal(t, "8:00 PM", *list[1].Time)
	assert.Equal(t, "The Ritz", list[1].Venue)
	assert.Equal(t, "Ybor City", list[1].City)
}

func TestGetUpcomingEvents_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient("key")
	c.SetBaseURL(server.URL)

	list, err := c.GetUpcomingEvents(context.Background(), "foo", "")
	assert.NoError(t, err)
	assert.Nil(t, list)
}
