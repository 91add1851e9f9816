package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces environment overrides, e.g. CINECLUSTER_BASE_URL.
const envPrefix = "CINECLUSTER_"

// Load builds a Config from defaults, then the YAML file named by
// CINECLUSTER_CONFIG (or ~/.cinecluster/config.yaml when it exists), then env.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	path, err := configPath()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// configPath returns the explicit config file, the default one if present,
// or "" when there is no file to read.
func configPath() (string, error) {
	if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
		return p, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", nil
	}
	p := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return "", nil
	}
	return p, nil
}

// Validate checks field constraints and the rating range.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.RatingMin >= c.RatingMax {
		return errors.New("invalid config: rating_min must be below rating_max")
	}
	if c.RatingDefault < c.RatingMin || c.RatingDefault > c.RatingMax {
		return errors.New("invalid config: rating_default must lie within [rating_min, rating_max]")
	}
	return nil
}
