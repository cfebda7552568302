// Package booth orchestrates the capture flow: countdown, shutter,
// storage, and client notification through the event broadcaster.
package booth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/snapbooth/snapbooth/internal/camera"
	"github.com/snapbooth/snapbooth/internal/codes"
	"github.com/snapbooth/snapbooth/internal/server/events"
	"github.com/snapbooth/snapbooth/internal/storage"
	pkgerrors "github.com/snapbooth/snapbooth/pkg/errors"
)

// Config holds booth behavior settings.
type Config struct {
	// Countdown is how long clients get to pose before the shutter fires.
	Countdown time.Duration

	// CaptureTimeout bounds how long one camera capture may take.
	CaptureTimeout time.Duration

	// PathPrefix is the API prefix used to build image URLs in events.
	PathPrefix string
}

// DefaultConfig returns booth defaults.
func DefaultConfig() Config {
	return Config{
		Countdown:      3 * time.Second,
		CaptureTimeout: 30 * time.Second,
		PathPrefix:     "/api/v1",
	}
}

// Booth runs capture sessions. Only one capture may be in flight at a
// time; concurrent triggers are rejected with ErrBusy.
type Booth struct {
	camera      camera.Camera
	store       *storage.Store
	broadcaster *events.Broadcaster
	config      Config
	logger      *zerolog.Logger

	// busy is a 1-slot semaphore guarding the capture session.
	busy chan struct{}
}

// New creates a booth.
func New(cam camera.Camera, store *storage.Store, broadcaster *events.Broadcaster, cfg Config, logger *zerolog.Logger) *Booth {
	if cfg.Countdown <= 0 {
		cfg.Countdown = DefaultConfig().Countdown
	}
	if cfg.CaptureTimeout <= 0 {
		cfg.CaptureTimeout = DefaultConfig().CaptureTimeout
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}

	return &Booth{
		camera:      cam,
		store:       store,
		broadcaster: broadcaster,
		config:      cfg,
		logger:      logger,
		busy:        make(chan struct{}, 1),
	}
}

// Trigger starts a capture session and returns immediately. The session
// publishes countdown-started right away, then photo-captured or
// capture-failed when it finishes. Returns ErrBusy while a session is
// already running.
func (b *Booth) Trigger(source string) error {
	select {
	case b.busy <- struct{}{}:
	default:
		return pkgerrors.ErrBusy
	}

	b.broadcaster.Publish(events.NewCountdownStarted(b.config.Countdown, source))
	b.logger.Info().
		Str("source", source).
		Dur("countdown", b.config.Countdown).
		Msg("Capture session started")

	go b.run(source)
	return nil
}

// Busy reports whether a capture session is in flight.
func (b *Booth) Busy() bool {
	return len(b.busy) > 0
}

func (b *Booth) run(source string) {
	defer func() { <-b.busy }()

	time.Sleep(b.config.Countdown)

	ctx, cancel := context.WithTimeout(context.Background(), b.config.CaptureTimeout)
	defer cancel()

	data, err := b.camera.Capture(ctx)
	if err != nil {
		b.fail(source, "camera capture failed", err)
		return
	}

	code, err := codes.New()
	if err != nil {
		b.fail(source, "generating share code failed", err)
		return
	}

	photo, err := b.store.Save(data, code)
	if err != nil {
		b.fail(source, "saving photo failed", err)
		return
	}

	b.broadcaster.Publish(events.NewPhotoCaptured(photo.ID, photo.Code, b.imageURL(photo.ID)))

	b.logger.Info().
		Str("photo_id", photo.ID.String()).
		Str("code", photo.Code).
		Str("source", source).
		Msg("Photo captured")
}

// fail reports a failed session to clients without surfacing the error to
// the trigger caller; a broken capture never crashes the server.
func (b *Booth) fail(source, reason string, err error) {
	b.logger.Error().
		Err(err).
		Str("source", source).
		Msg("Capture session failed")

	b.broadcaster.Publish(events.NewCaptureFailed(fmt.Sprintf("%s: %v", reason, err)))
}

func (b *Booth) imageURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/photos/%s/image", b.config.PathPrefix, id)
}
