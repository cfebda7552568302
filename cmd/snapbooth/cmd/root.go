// Package cmd implements the snapbooth CLI commands.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/snapbooth/snapbooth/internal/config"
	"github.com/snapbooth/snapbooth/pkg/logging"
)

var (
	configFile string

	cfg    *config.Config
	logger zerolog.Logger

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "snapbooth",
	Short: "Photobooth server with real-time capture events",
	Long: `Snapbooth runs a photobooth: it drives the camera, stores captured
photos with share codes, and notifies connected browsers about capture
lifecycle events (countdown started, photo captured, capture failed) in
near real time over SSE and WebSocket.`,
	PersistentPreRunE: setup,
}

// Execute runs the CLI with signal-aware context for graceful shutdown.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./snapbooth.yaml)")
}

// setup loads .env, configuration, and the logger before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg = loaded

	logger = logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
	})

	return nil
}
