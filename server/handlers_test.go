package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nullybeats/tampamixtape/core/events"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(h *APIHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/health", h.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/artists/{name}/stats", h.GetArtistStatsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/artists/stats/batch", h.BatchStatsHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/search/artists", h.SearchArtistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/events", h.EventsHandler).Methods(http.MethodGet)
	return router
}

func TestHealthHandler(t *testing.T) {
	h := NewAPIHandler(nil, nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetArtistStatsHandler_RejectsBadSpotifyID(t *testing.T) {
	h := NewAPIHandler(nil, nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/artists/Foo/stats?spotifyId=nonsense", nil)
	testRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid spotify artist id")
}

func TestBatchStatsHandler_EmptyList(t *testing.T) {
	h := NewAPIHandler(nil, nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/artists/stats/batch", strings.NewReader(`{"artists":[]}`))
	testRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchStatsHandler_CapsAtTwenty(t *testing.T) {
	entries := make([]string, 21)
	for i := range entries {
		entries[i] = `{"name":"a"}`
	}
	body := `{"artists":[` + strings.Join(entries, ",") + `]}`

	h := NewAPIHandler(nil, nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/artists/stats/batch", strings.NewReader(body))
	testRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "maximum 20 artists")
}

func TestBatchStatsHandler_InvalidBody(t *testing.T) {
	h := NewAPIHandler(nil, nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/artists/stats/batch", strings.NewReader("not json"))
	testRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchArtistsHandler_RequiresQuery(t *testing.T) {
	h := NewAPIHandler(nil, nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search/artists", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventsHandler_EmptyPlatformYieldsEmptyList(t *testing.T) {
	// An events client without an API key degrades to no events, not an error.
	h := NewAPIHandler(nil, nil, events.NewClient(""), nil, nil)
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events?keyword=foo", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"events":[]}`, rec.Body.String())
}
