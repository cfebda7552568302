package server

import "time"

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// PublicURL is the externally reachable base URL used in share links.
	PublicURL string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// HTTP timeouts. WriteTimeout stays zero: the SSE stream is a
	// long-lived response and a global write timeout would sever it.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// ShutdownTimeout bounds graceful connection draining.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		PathPrefix:      "/api/v1",
		PublicURL:       "http://localhost:8080",
		CORSEnabled:     true,
		CORSOrigins:     []string{},
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    0,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}
