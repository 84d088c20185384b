package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read directly by the loader.
const (
	envPrefix     = "COURTSIDE_"
	envConfig     = "COURTSIDE_CONFIG"
	envEnvFile    = "COURTSIDE_ENV_FILE"
	envAddr       = "COURTSIDE_ADDR"
	envPort       = "PORT"
	defaultDotenv = ".env"
)

// Load builds a Config by layering defaults, optional file, .env and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if COURTSIDE_CONFIG is set
//  3. .env file (COURTSIDE_ENV_FILE, default ".env"); never overrides the real environment
//  4. env (prefix COURTSIDE_), then PORT when COURTSIDE_ADDR is unset
//
// When no layer sets api_base_url it follows the final listen address, so the
// dashboard fetches from the server it is rendered by.
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	if err := loadDotenv(); err != nil {
		return nil, err
	}

	// COURTSIDE_DATA_DIR -> data_dir (flat keys, underscores preserved).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(envPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if _, ok := os.LookupEnv(envAddr); !ok {
		if port := strings.TrimSpace(os.Getenv(envPort)); port != "" {
			cfg.Addr = ":" + port
		}
	}

	if !k.Exists("api_base_url") {
		if u, ok := localURL(cfg.Addr); ok {
			cfg.APIBaseURL = u
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PlayerChartLimit < 1:
		return fmt.Errorf("%w: player_chart_limit must be positive", ErrInvalidConfig)
	case c.RankingsLimit < 1:
		return fmt.Errorf("%w: rankings_limit must be positive", ErrInvalidConfig)
	case c.FetchTimeoutMS < 0:
		return fmt.Errorf("%w: fetch_timeout_ms must not be negative", ErrInvalidConfig)
	case c.MetricsRefreshMS < 1:
		return fmt.Errorf("%w: metrics_refresh_ms must be positive", ErrInvalidConfig)
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api_base_url must be an absolute URL", ErrInvalidConfig)
	}
	return nil
}

// loadDotenv copies variables from the dotenv file into the process
// environment. A missing default file is not an error.
func loadDotenv() error {
	path, explicit := os.LookupEnv(envEnvFile)
	explicit = explicit && path != ""
	if !explicit {
		path = defaultDotenv
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: dotenv %s: %w", ErrLoadConfig, path, err)
	}
	return nil
}

// localURL maps a listen address such as ":8080" or "0.0.0.0:8080" to
// "http://localhost:8080".
func localURL(addr string) (string, bool) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return "", false
	}
	return "http://" + net.JoinHostPort("localhost", port), true
}
