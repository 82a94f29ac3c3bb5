package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if KEJANI_CONFIG is set
//  3. env (prefix KEJANI_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("KEJANI_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: KEJANI_ADDR, KEJANI_POLL_INTERVAL_MS, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("KEJANI_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "kejani_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.BackendURL == "":
		return nil, fmt.Errorf("%w: backend_url must not be empty", ErrInvalidConfig)
	case cfg.PollIntervalMS <= 0:
		return nil, fmt.Errorf("%w: poll_interval_ms must be positive", ErrInvalidConfig)
	case cfg.MetricFanout <= 0:
		return nil, fmt.Errorf("%w: metric_fanout must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
