package handlers

import "net/http"

// HandleSSE handles GET /api/v1/events/stream.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sse.ServeHTTP(w, r)
}

// HandleWebSocket handles GET /api/v1/events/ws.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.ws.ServeHTTP(w, r)
}
