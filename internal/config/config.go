// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"time"
)

// Config contains process configuration shared by the server and the tools.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// DataDir holds the analyzed datasets served by the API.
	DataDir string `koanf:"data_dir"`

	// InputDir holds processed_stats_*.json files consumed by the analyzer.
	InputDir string `koanf:"input_dir"`

	// APIBaseURL is where the dashboard fetches its datasets from. Unset, it
	// follows Addr.
	APIBaseURL string `koanf:"api_base_url"`

	// FetchTimeoutMS bounds a single dashboard fetch; 0 means no timeout.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// MetricsRefreshMS is how often system gauges are refreshed.
	MetricsRefreshMS int `koanf:"metrics_refresh_ms"`

	// PlayerChartLimit caps the number of players drawn on the player chart.
	PlayerChartLimit int `koanf:"player_chart_limit"`

	// RankingsLimit caps GET /api/player-rankings.
	RankingsLimit int `koanf:"rankings_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":5000",
		DataDir:          "/data/analyzed",
		InputDir:         "/data/processed",
		APIBaseURL:       "http://localhost:5000",
		FetchTimeoutMS:   10_000,
		MetricsRefreshMS: 10_000,
		PlayerChartLimit: 10,
		RankingsLimit:    50,
	}
}

// MetricsRefresh returns MetricsRefreshMS as a duration.
func (c *Config) MetricsRefresh() time.Duration {
	return time.Duration(c.MetricsRefreshMS) * time.Millisecond
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
