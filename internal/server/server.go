// Package server provides the HTTP server for the snapbooth API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/snapbooth/snapbooth/internal/booth"
	"github.com/snapbooth/snapbooth/internal/server/events"
	"github.com/snapbooth/snapbooth/internal/server/sse"
	"github.com/snapbooth/snapbooth/internal/server/websocket"
	"github.com/snapbooth/snapbooth/internal/storage"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	booth       *booth.Booth
	store       *storage.Store
	broadcaster *events.Broadcaster
	sse         *sse.Handler
	ws          *websocket.Handler
	logger      *zerolog.Logger
	config      Config
}

// New creates a new server instance with the given collaborators.
func New(bo *booth.Booth, store *storage.Store, broadcaster *events.Broadcaster, cfg Config, logger *zerolog.Logger) *Server {
	defaults := DefaultConfig()
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = defaults.PathPrefix
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = defaults.IdleTimeout
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}

	return &Server{
		booth:       bo,
		store:       store,
		broadcaster: broadcaster,
		sse:         sse.NewHandler(broadcaster, logger),
		ws:          websocket.NewHandler(broadcaster, logger),
		logger:      logger,
		config:      cfg,
	}
}

// Handler returns the configured http.Handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Run serves HTTP until ctx is cancelled, then drains connections and
// shuts the broadcaster down so every event stream terminates.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", httpServer.Addr).
			Str("prefix", s.config.PathPrefix).
			Msg("HTTP server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving HTTP: %w", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down HTTP server")

		// End all event streams first so SSE/WebSocket handlers return
		// and stop holding connections open during draining.
		s.broadcaster.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("HTTP shutdown did not complete cleanly")
			return fmt.Errorf("shutting down HTTP server: %w", err)
		}

		s.logger.Info().Msg("HTTP server stopped")
		return nil
	}
}

// Broadcaster returns the event broadcaster, e.g. for wiring producers.
func (s *Server) Broadcaster() *events.Broadcaster {
	return s.broadcaster
}
