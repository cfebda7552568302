// Package websocket pushes capture lifecycle events to clients over
// WebSocket connections.
package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/snapbooth/snapbooth/internal/server/events"
)

// Handler upgrades HTTP requests and streams events to each connection
// through its own broadcaster subscription.
type Handler struct {
	broadcaster *events.Broadcaster
	upgrader    websocket.Upgrader
	logger      *zerolog.Logger
}

// NewHandler creates a WebSocket stream handler.
func NewHandler(broadcaster *events.Broadcaster, logger *zerolog.Logger) *Handler {
	return &Handler{
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true // Kiosk UI is served from a different origin
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket connections.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &client{
		conn:   conn,
		sub:    h.broadcaster.Subscribe(),
		logger: h.logger,
	}

	h.logger.Info().
		Str("remote_addr", r.RemoteAddr).
		Msg("WebSocket client connected")

	go client.writePump()
	go client.readPump()
}
