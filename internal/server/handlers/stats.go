package handlers

import (
	"net/http"
	"time"

	"github.com/snapbooth/snapbooth/internal/server/response"
)

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"photos":            h.store.Count(),
		"subscribers":       h.broadcaster.SubscriberCount(),
		"thumbnails_cached": h.store.ThumbnailCacheSize(),
		"capturing":         h.booth.Busy(),
		"uptime_seconds":    int64(time.Since(h.startTime).Seconds()),
	})
}
