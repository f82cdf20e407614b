package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nullybeats/tampamixtape/core/aggregator"
	"github.com/Nullybeats/tampamixtape/core/events"
	"github.com/Nullybeats/tampamixtape/core/scheduler"
	"github.com/Nullybeats/tampamixtape/core/spotify"
	"github.com/Nullybeats/tampamixtape/logger"
	"github.com/Nullybeats/tampamixtape/repository"

	"github.com/gorilla/mux"
)

// maxBatchArtists caps how many artists one batch request may carry. The
// aggregator itself does not enforce this; the route layer does.
const maxBatchArtists = 20

// APIHandler holds the handlers' shared collaborators.
type APIHandler struct {
	aggregator *aggregator.Aggregator
	spotify    *spotify.Client
	events     *events.Client
	scheduler  *scheduler.Scheduler
	settings   repository.SettingsRepository
}

// NewAPIHandler creates the handler set.
func NewAPIHandler(
	agg *aggregator.Aggregator,
	sp *spotify.Client,
	ev *events.Client,
	sched *scheduler.Scheduler,
	settings repository.SettingsRepository,
) *APIHandler {
	return &APIHandler{
		aggregator: agg,
		spotify:    sp,
		events:     ev,
		scheduler:  sched,
		settings:   settings,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// HealthHandler reports liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetArtistStatsHandler returns the merged stats document for one artist.
// Partial platform availability is a 200 with per-platform available flags,
// never an error.
func (h *APIHandler) GetArtistStatsHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		writeError(w, http.StatusBadRequest, "artist name is required")
		return
	}
	// The spotifyId parameter accepts a raw ID, URI or URL.
	spotifyID := ""
	if raw := r.URL.Query().Get("spotifyId"); raw != "" {
		spotifyID = spotify.ExtractArtistID(raw)
		if spotifyID == "" {
			writeError(w, http.StatusBadRequest, "invalid spotify artist id")
			return
		}
	}

	doc, err := h.aggregator.GetAggregatedStats(r.Context(), name, spotifyID)
	if err != nil {
		logger.Error("stats aggregation failed",
			logger.String("artist", name), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to aggregate artist stats")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// BatchStatsHandler aggregates stats for up to 20 artists in one call.
func (h *APIHandler) BatchStatsHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Artists []aggregator.ArtistQuery `json:"artists"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Artists) == 0 {
		writeError(w, http.StatusBadRequest, "artists list is empty")
		return
	}
	if len(body.Artists) > maxBatchArtists {
		writeError(w, http.StatusBadRequest, "maximum 20 artists per request")
		return
	}

	results := h.aggregator.GetMultipleArtistsStats(r.Context(), body.Artists)
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// SearchArtistsHandler searches Spotify and Last.fm and returns the merged
// list.
func (h *APIHandler) SearchArtistsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	results, err := h.aggregator.SearchArtists(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// FullArtistDataHandler returns the complete Spotify profile payload for an
// artist page.
func (h *APIHandler) FullArtistDataHandler(w http.ResponseWriter, r *http.Request) {
	input := mux.Vars(r)["id"]
	id := spotify.ExtractArtistID(input)
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid spotify artist id")
		return
	}

	data, err := h.spotify.GetFullArtistData(r.Context(), id)
	if err != nil {
		var apiErr *spotify.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			writeError(w, http.StatusNotFound, "artist not found")
			return
		}
		logger.Error("full artist data fetch failed",
			logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusBadGateway, "failed to fetch artist data")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// EventsHandler lists upcoming music events for a keyword and optional city.
func (h *APIHandler) EventsHandler(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	city := r.URL.Query().Get("city")

	list, _ := h.events.GetUpcomingEvents(r.Context(), keyword, city)
	if list == nil {
		list = []events.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": list})
}

// SyncStatusHandler reports the scheduler's persisted and in-memory state.
func (h *APIHandler) SyncStatusHandler(w http.ResponseWriter, r *http.Request) {
	status, err := h.scheduler.Status()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read sync status")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// RunSyncHandler triggers a sync run. Fire and forget: a run already in
// flight silently absorbs the trigger.
func (h *APIHandler) RunSyncHandler(w http.ResponseWriter, r *http.Request) {
	go h.scheduler.RunSync()
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "sync started"})
}

// UpdateSyncSettingsHandler stores a new auto-sync schedule and restarts the
// scheduler with it.
func (h *APIHandler) UpdateSyncSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AutoSyncEnabled      *bool `json:"autoSyncEnabled"`
		AutoSyncIntervalMins *int  `json:"autoSyncIntervalMins"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.AutoSyncEnabled == nil || body.AutoSyncIntervalMins == nil {
		writeError(w, http.StatusBadRequest, "autoSyncEnabled and autoSyncIntervalMins are required")
		return
	}
	if *body.AutoSyncIntervalMins < 0 {
		writeError(w, http.StatusBadRequest, "autoSyncIntervalMins must not be negative")
		return
	}

	if err := h.settings.UpdateAutoSync(*body.AutoSyncEnabled, *body.AutoSyncIntervalMins); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}
	if err := h.scheduler.Restart(); err != nil {
		writeError(w, http.StatusInternalServerError, "settings saved but scheduler restart failed")
		return
	}

	status, err := h.scheduler.Status()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read sync status")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// ClearCacheHandler flushes the whole stats cache.
func (h *APIHandler) ClearCacheHandler(w http.ResponseWriter, r *http.Request) {
	h.aggregator.ClearCache()
	writeJSON(w, http.StatusOK, map[string]string{"message": "cache cleared"})
}
