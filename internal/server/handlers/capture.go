package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/snapbooth/snapbooth/internal/server/response"
	pkgerrors "github.com/snapbooth/snapbooth/pkg/errors"
)

// captureRequest is the optional POST /capture body.
type captureRequest struct {
	Source string `json:"source"`
}

// HandleCapture handles POST /api/v1/capture. It starts a capture session
// and returns immediately; progress is reported over the event stream.
func (h *Handlers) HandleCapture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if r.Body != nil {
		// The body is optional; a missing or empty one means default source.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			response.BadRequest(w, "Invalid request body", err.Error())
			return
		}
	}
	if req.Source == "" {
		req.Source = "web"
	}

	if err := h.booth.Trigger(req.Source); err != nil {
		if errors.Is(err, pkgerrors.ErrBusy) {
			response.Conflict(w, "A capture is already in progress")
			return
		}
		h.logger.Error().Err(err).Msg("Failed to trigger capture")
		response.InternalError(w, "Failed to trigger capture")
		return
	}

	response.Accepted(w, map[string]any{
		"status": "countdown-started",
		"source": req.Source,
	})
}
