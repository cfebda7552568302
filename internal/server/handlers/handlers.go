// Package handlers provides HTTP request handlers for the snapbooth API.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/snapbooth/snapbooth/internal/booth"
	"github.com/snapbooth/snapbooth/internal/server/events"
	"github.com/snapbooth/snapbooth/internal/server/sse"
	"github.com/snapbooth/snapbooth/internal/server/websocket"
	"github.com/snapbooth/snapbooth/internal/storage"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	booth       *booth.Booth
	store       *storage.Store
	broadcaster *events.Broadcaster
	sse         *sse.Handler
	ws          *websocket.Handler
	logger      *zerolog.Logger
	publicURL   string
	pathPrefix  string
	startTime   time.Time
}

// Config carries the pieces handlers need beyond their collaborators.
type Config struct {
	// PublicURL is the externally reachable base URL, used when building
	// share links and QR codes.
	PublicURL string

	// PathPrefix is the API route prefix.
	PathPrefix string
}

// New creates a new Handlers instance.
func New(
	bo *booth.Booth,
	store *storage.Store,
	broadcaster *events.Broadcaster,
	sseHandler *sse.Handler,
	wsHandler *websocket.Handler,
	cfg Config,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		booth:       bo,
		store:       store,
		broadcaster: broadcaster,
		sse:         sseHandler,
		ws:          wsHandler,
		logger:      logger,
		publicURL:   cfg.PublicURL,
		pathPrefix:  cfg.PathPrefix,
		startTime:   time.Now(),
	}
}
