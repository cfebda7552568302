package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapbooth/snapbooth/internal/booth"
	"github.com/snapbooth/snapbooth/internal/camera"
	"github.com/snapbooth/snapbooth/internal/server"
	"github.com/snapbooth/snapbooth/internal/server/events"
	"github.com/snapbooth/snapbooth/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the photobooth server",
	Long: `Start the snapbooth HTTP server.

Features:
  - POST /api/v1/capture triggers the countdown and shutter
  - Server-Sent Events stream of capture lifecycle events (/api/v1/events/stream)
  - WebSocket stream of the same events (/api/v1/events/ws)
  - Photo retrieval by ID or share code, with thumbnails and QR codes
  - Request logging, panic recovery, CORS, graceful shutdown`,
	Example: `  # Serve with an attached camera via gphoto2
  snapbooth serve

  # Serve on another port without hardware
  snapbooth serve --port 3000 --stub-camera`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "Server port (overrides config)")
	serveCmd.Flags().String("host", "", "Bind address (overrides config)")
	serveCmd.Flags().Bool("stub-camera", false, "Use the stub camera instead of capture hardware")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Host = host
	}
	if stub, _ := cmd.Flags().GetBool("stub-camera"); stub {
		cfg.StubCamera = true
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("photos_dir", cfg.PhotosDir).
		Bool("stub_camera", cfg.StubCamera).
		Dur("countdown", cfg.Countdown).
		Msg("Starting snapbooth server")

	store, err := storage.New(cfg.PhotosDir, cfg.ThumbnailTTL, &logger)
	if err != nil {
		return fmt.Errorf("opening photo store: %w", err)
	}

	var cam camera.Camera
	if cfg.StubCamera {
		cam = camera.NewStubCamera(1280, 720)
	} else {
		cam = camera.NewExecCamera(cfg.CameraCommand, cfg.CameraArgs, &logger)
	}

	broadcaster := events.NewBroadcaster(&logger)

	bo := booth.New(cam, store, broadcaster, booth.Config{
		Countdown:      cfg.Countdown,
		CaptureTimeout: cfg.CaptureTimeout,
		PathPrefix:     cfg.PathPrefix,
	}, &logger)

	srv := server.New(bo, store, broadcaster, server.Config{
		Host:        cfg.Host,
		Port:        cfg.Port,
		PathPrefix:  cfg.PathPrefix,
		PublicURL:   cfg.PublicURL,
		CORSEnabled: cfg.CORSEnabled,
		CORSOrigins: cfg.CORSOrigins,
	}, &logger)

	return srv.Run(cmd.Context())
}
