package cache

import (
	"testing"
	"time"

	"github.com/Nullybeats/tampamixtape/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(name string) *model.ArtistStats {
	return &model.ArtistStats{
		Artist:    model.ArtistInfo{Name: name},
		FetchedAt: time.Now(),
	}
}

func TestStatsCache_SetAndGet(t *testing.T) {
	c := NewStatsCache(time.Minute)
	c.Set("artist:foo:auto", testDoc("Foo"))

	doc, ok := c.Get("artist:foo:auto")
	require.True(t, ok)
	assert.Equal(t, "Foo", doc.Artist.Name)
}

func TestStatsCache_MissingKey(t *testing.T) {
	c := NewStatsCache(time.Minute)
	_, ok := c.Get("artist:nobody:auto")
	assert.False(t, ok)
}

func TestStatsCache_LazyExpiry(t *testing.T) {
	c := NewStatsCache(10 * time.Millisecond)
	c.Set("k", testDoc("Foo"))

	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, 1, c.Len(), "expired entries stay until a read drops them")

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestStatsCache_SetReplaces(t *testing.T) {
	c := NewStatsCache(time.Minute)
	c.Set("k", testDoc("Old"))
	c.Set("k", testDoc("New"))

	doc, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "New", doc.Artist.Name)
	assert.Equal(t, 1, c.Len())
}

func TestStatsCache_Clear(t *testing.T) {
	c := NewStatsCache(time.Minute)
	c.Set("a", testDoc("A"))
	c.Set("b", testDoc("B"))

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}
