// Package config loads cinecluster settings.
//
// Precedence (low -> high): defaults, YAML file, CINECLUSTER_* environment.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the client configuration.
type Config struct {
	// BaseURL is the root of the clustering service.
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// RequestsPerSecond limits outgoing requests. 0 disables the limit.
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`

	// Rating slider bounds, step and starting value.
	RatingMin     float64 `koanf:"rating_min" validate:"gte=0"`
	RatingMax     float64 `koanf:"rating_max" validate:"gt=0"`
	RatingStep    float64 `koanf:"rating_step" validate:"gt=0"`
	RatingDefault float64 `koanf:"rating_default" validate:"gte=0"`

	// Clapperboard phase pauses.
	ShowDelay  time.Duration `koanf:"show_delay" validate:"gte=0"`
	ClapDelay  time.Duration `koanf:"clap_delay" validate:"gte=0"`
	ResetDelay time.Duration `koanf:"reset_delay" validate:"gte=0"`

	// LogPath is the JSONL event log. Empty means ~/.cinecluster/events.jsonl.
	LogPath string `koanf:"log_path"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		BaseURL:           "http://localhost:8000",
		Timeout:           30 * time.Second,
		RequestsPerSecond: 2,
		RatingMin:         0,
		RatingMax:         10,
		RatingStep:        0.5,
		RatingDefault:     7,
		ShowDelay:         600 * time.Millisecond,
		ClapDelay:         300 * time.Millisecond,
		ResetDelay:        600 * time.Millisecond,
	}
}

// AnimationTotal is the fixed length of one clapperboard sequence.
func (c *Config) AnimationTotal() time.Duration {
	return c.ShowDelay + c.ClapDelay + c.ResetDelay
}

// DataDir returns ~/.cinecluster.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cinecluster"), nil
}

// ResolvedLogPath returns LogPath or the default location under DataDir.
func (c *Config) ResolvedLogPath() (string, error) {
	if c.LogPath != "" {
		return c.LogPath, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "events.jsonl"), nil
}
