// Package camera abstracts the capture hardware. The booth orchestrator
// only ever talks to the Camera interface; concrete implementations shell
// out to a tethering tool or synthesize frames for development.
package camera

import "context"

// Camera triggers photo captures regardless of how the hardware is
// controlled (USB tethering, GPIO, network protocol).
type Camera interface {
	// Capture takes a single photo and returns the encoded JPEG bytes.
	Capture(ctx context.Context) ([]byte, error)
}
