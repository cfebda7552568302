package server

import (
	"net/http"
	"strings"

	"github.com/snapbooth/snapbooth/internal/server/handlers"
	"github.com/snapbooth/snapbooth/internal/server/middleware"
	"github.com/snapbooth/snapbooth/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.booth,
		s.store,
		s.broadcaster,
		s.sse,
		s.ws,
		handlers.Config{
			PublicURL:  s.config.PublicURL,
			PathPrefix: s.config.PathPrefix,
		},
		s.logger,
	)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/ready", h.HandleReady)

	// Capture trigger
	mux.HandleFunc(prefix+"/capture", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w)
			return
		}
		h.HandleCapture(w, r)
	})

	// Photos
	mux.HandleFunc(prefix+"/photos", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w)
			return
		}
		h.HandleListPhotos(w, r)
	})

	mux.HandleFunc(prefix+"/photos/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w)
			return
		}

		parts := splitPath(r.URL.Path[len(prefix+"/photos/"):])
		switch {
		case len(parts) == 1:
			h.HandleGetPhoto(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "image":
			h.HandleGetImage(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "thumbnail":
			h.HandleGetThumbnail(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "qr":
			h.HandleGetQR(w, r, parts[0])
		default:
			response.NotFound(w, "Not found")
		}
	})

	// Share code lookup
	mux.HandleFunc(prefix+"/codes/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w)
			return
		}

		code := extractPathParam(r.URL.Path, prefix+"/codes/")
		if code == "" {
			response.BadRequest(w, "Share code required", "")
			return
		}
		h.HandleLookupCode(w, r, code)
	})

	// Real-time endpoints
	mux.HandleFunc(prefix+"/events/stream", h.HandleSSE)
	mux.HandleFunc(prefix+"/events/ws", h.HandleWebSocket)

	// Stats
	mux.HandleFunc(prefix+"/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w)
			return
		}
		h.HandleStats(w, r)
	})
}

// applyMiddleware wraps handler with the middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
	}

	if s.config.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(s.config.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = s.config.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		middlewares = append(middlewares, middleware.CORS(corsConfig))
	}

	middlewares = append(middlewares, middleware.Logger(s.logger))

	return middleware.Chain(middlewares...)(handler)
}

// extractPathParam extracts a single path parameter after the prefix.
func extractPathParam(path, prefix string) string {
	param := strings.TrimPrefix(path, prefix)
	return strings.Trim(param, "/")
}

// splitPath splits a path into non-empty segments.
func splitPath(path string) []string {
	var parts []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
