// Package sse streams capture lifecycle events to browsers over
// Server-Sent Events.
package sse

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/snapbooth/snapbooth/internal/server/events"
	"github.com/snapbooth/snapbooth/internal/server/wire"
)

// heartbeatInterval keeps idle connections alive through proxies.
const heartbeatInterval = 30 * time.Second

// Handler serves the SSE event stream. Each request gets its own
// subscription, released on every exit path.
type Handler struct {
	broadcaster *events.Broadcaster
	logger      *zerolog.Logger
}

// NewHandler creates an SSE stream handler.
func NewHandler(broadcaster *events.Broadcaster, logger *zerolog.Logger) *Handler {
	return &Handler{broadcaster: broadcaster, logger: logger}
}

// ServeHTTP handles SSE connections.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sub := h.broadcaster.Subscribe()
	defer sub.Close()

	h.logger.Info().
		Str("remote_addr", r.RemoteAddr).
		Msg("SSE client connected")

	// Initial event so clients can confirm the stream is live.
	_, _ = fmt.Fprintf(w, "event: connected\ndata: {\"timestamp\":%q}\n\n",
		time.Now().UTC().Format(time.RFC3339Nano))
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				// Broadcaster shut down or pruned this subscriber.
				return
			}
			h.writeEvent(w, flusher, ev)

		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()

		case <-r.Context().Done():
			h.logger.Info().
				Str("remote_addr", r.RemoteAddr).
				Msg("SSE client disconnected")
			return
		}
	}
}

// writeEvent frames one event on the stream.
func (h *Handler) writeEvent(w http.ResponseWriter, flusher http.Flusher, ev events.Event) {
	data, err := wire.Encode(ev)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode SSE event")
		return
	}

	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}
