package app

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gapfit/gapfit/internal/event_bus"
	"github.com/gapfit/gapfit/internal/utils"
	"github.com/gapfit/gapfit/pkg/location"
)

// HealthHandler reports service liveness plus a few process counters fed by
// the event bus.
type HealthHandler struct {
	catalog         *location.Catalog
	clock           utils.Clock
	startedAt       time.Time
	uploads         atomic.Int64
	suggestionRuns  atomic.Int64
	lastSuggestions atomic.Int64
}

func NewHealthHandler(catalog *location.Catalog, bus *event_bus.EventBus, clock utils.Clock) *HealthHandler {
	h := &HealthHandler{catalog: catalog, clock: clock, startedAt: clock.Now()}

	bus.Subscribe(event_bus.ScheduleUploaded, func(e event_bus.Event) error {
		h.uploads.Add(1)
		return nil
	})
	bus.Subscribe(event_bus.SuggestionsGenerated, func(e event_bus.Event) error {
		h.suggestionRuns.Add(1)
		if data, ok := e.Data.(event_bus.SuggestionsGeneratedData); ok {
			h.lastSuggestions.Store(int64(data.SuggestionCount))
		}
		return nil
	})

	return h
}

func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	response := struct {
		Status          string `json:"status"`
		UptimeSeconds   int64  `json:"uptimeSeconds"`
		LocationsLoaded int    `json:"locationsLoaded"`
		ScheduleUploads int64  `json:"scheduleUploads"`
		SuggestionRuns  int64  `json:"suggestionRuns"`
		LastSuggestions int64  `json:"lastSuggestionCount"`
	}{
		Status:          "ok",
		UptimeSeconds:   int64(h.clock.Now().Sub(h.startedAt).Seconds()),
		LocationsLoaded: h.catalog.Size(),
		ScheduleUploads: h.uploads.Load(),
		SuggestionRuns:  h.suggestionRuns.Load(),
		LastSuggestions: h.lastSuggestions.Load(),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
