package handlers

import (
	"net/http"

	"github.com/snapbooth/snapbooth/internal/server/response"
)

// HandleHealth handles GET /health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "snapbooth",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready (readiness probe).
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":      "ready",
		"photos":      h.store.Count(),
		"subscribers": h.broadcaster.SubscriberCount(),
		"capturing":   h.booth.Busy(),
	})
}
