// Package config loads snapbooth configuration from environment
// variables and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full snapbooth configuration.
type Config struct {
	// HTTP
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	PathPrefix  string   `mapstructure:"path_prefix"`
	PublicURL   string   `mapstructure:"public_url"`
	CORSEnabled bool     `mapstructure:"cors_enabled"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Booth
	Countdown      time.Duration `mapstructure:"countdown"`
	CaptureTimeout time.Duration `mapstructure:"capture_timeout"`

	// Camera
	CameraCommand string   `mapstructure:"camera_command"`
	CameraArgs    []string `mapstructure:"camera_args"`
	StubCamera    bool     `mapstructure:"stub_camera"`

	// Storage
	PhotosDir    string        `mapstructure:"photos_dir"`
	ThumbnailTTL time.Duration `mapstructure:"thumbnail_ttl"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration. Precedence: environment variables
// (SNAPBOOTH_*), then the config file, then defaults. configFile may be
// empty, in which case snapbooth.yaml is searched for but not required.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("path_prefix", "/api/v1")
	v.SetDefault("public_url", "http://localhost:8080")
	v.SetDefault("cors_enabled", true)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("countdown", 3*time.Second)
	v.SetDefault("capture_timeout", 30*time.Second)
	v.SetDefault("camera_command", "gphoto2")
	v.SetDefault("camera_args", []string{"--capture-image-and-download", "--force-overwrite", "--filename", "{file}"})
	v.SetDefault("stub_camera", false)
	v.SetDefault("photos_dir", "photos")
	v.SetDefault("thumbnail_ttl", time.Hour)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "auto")

	v.SetEnvPrefix("SNAPBOOTH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("snapbooth")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.snapbooth")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing default config file is fine; an explicit one is not.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
