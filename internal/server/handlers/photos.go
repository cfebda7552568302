package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/snapbooth/snapbooth/internal/server/response"
	pkgerrors "github.com/snapbooth/snapbooth/pkg/errors"
)

// HandleListPhotos handles GET /api/v1/photos.
func (h *Handlers) HandleListPhotos(w http.ResponseWriter, _ *http.Request) {
	photos := h.store.List()
	response.OK(w, map[string]any{
		"photos": photos,
		"count":  len(photos),
	})
}

// HandleGetPhoto handles GET /api/v1/photos/{id}.
func (h *Handlers) HandleGetPhoto(w http.ResponseWriter, _ *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		response.BadRequest(w, "Invalid photo ID", err.Error())
		return
	}

	photo, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			response.NotFound(w, "Photo not found")
			return
		}
		h.logger.Error().Err(err).Str("photo_id", rawID).Msg("Failed to load photo")
		response.InternalError(w, "Failed to load photo")
		return
	}

	response.OK(w, photo)
}

// HandleGetImage handles GET /api/v1/photos/{id}/image.
func (h *Handlers) HandleGetImage(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		response.BadRequest(w, "Invalid photo ID", err.Error())
		return
	}

	path, err := h.store.ImagePath(id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			response.NotFound(w, "Photo not found")
			return
		}
		response.InternalError(w, "Failed to load photo")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	http.ServeFile(w, r, path)
}

// HandleGetThumbnail handles GET /api/v1/photos/{id}/thumbnail.
func (h *Handlers) HandleGetThumbnail(w http.ResponseWriter, _ *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		response.BadRequest(w, "Invalid photo ID", err.Error())
		return
	}

	thumb, err := h.store.Thumbnail(id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			response.NotFound(w, "Photo not found")
			return
		}
		h.logger.Error().Err(err).Str("photo_id", rawID).Msg("Failed to build thumbnail")
		response.InternalError(w, "Failed to build thumbnail")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	_, _ = w.Write(thumb)
}

// HandleGetQR handles GET /api/v1/photos/{id}/qr. The PNG encodes the
// photo's share URL so guests can open it on their own devices.
func (h *Handlers) HandleGetQR(w http.ResponseWriter, _ *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		response.BadRequest(w, "Invalid photo ID", err.Error())
		return
	}

	if _, err := h.store.Get(id); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			response.NotFound(w, "Photo not found")
			return
		}
		response.InternalError(w, "Failed to load photo")
		return
	}

	png, err := qrcode.Encode(h.shareURL(id), qrcode.Medium, 256)
	if err != nil {
		h.logger.Error().Err(err).Str("photo_id", rawID).Msg("Failed to encode QR code")
		response.InternalError(w, "Failed to encode QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// HandleLookupCode handles GET /api/v1/codes/{code}.
func (h *Handlers) HandleLookupCode(w http.ResponseWriter, _ *http.Request, code string) {
	photo, err := h.store.GetByCode(code)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			response.NotFound(w, "Unknown code")
			return
		}
		response.InternalError(w, "Failed to look up code")
		return
	}

	response.OK(w, photo)
}

func (h *Handlers) shareURL(id uuid.UUID) string {
	base := strings.TrimRight(h.publicURL, "/")
	return base + h.pathPrefix + "/photos/" + id.String() + "/image"
}
