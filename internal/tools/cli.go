// Package tools holds the command-line runners behind cmd/analyze and
// cmd/render: flag-level config, logging setup and help text.
package tools

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okian/courtside/pkg/logger"
)

// File permission constants.
const (
	logFilePermission   = 0o600
	outputPermission    = 0o644
	directoryPermission = 0o750
)

// SetupLogging points the global logger at stdout, teeing into logFile
// when one is given. The returned func closes the log file.
func SetupLogging(logFile string, verbose bool) (func() error, error) {
	closeFn := func() error { return nil }

	var w io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return closeFn, fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
		closeFn = file.Close
	}

	if err := logger.InitWriter(w, logger.FormatText); err != nil {
		return closeFn, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	if logFile != "" {
		logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	}
	return closeFn, nil
}

// ShowAnalyzeHelp prints usage information for the analyze tool.
func ShowAnalyzeHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Courtside Analyzer
==================

Ranks players and aggregates team performance from the newest
processed_stats_*.json file, writing player_rankings.json, team_stats.json
and manifest.json.

Usage:
  go run ./cmd/analyze [options]

Options:
  -input string
        Directory holding processed_stats_*.json (default: config input_dir)
  -output string
        Directory receiving the analyzed files (default: config data_dir)
  -log string
        Also write logs to this file
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  go run ./cmd/analyze -input ./data/processed -output ./data/analyzed
`)
}

// ShowRenderHelp prints usage information for the render tool.
func ShowRenderHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Courtside Dashboard Renderer
===========================

Fetches player rankings and team stats from a running courtside server and
writes the bar chart dashboard to a standalone HTML file. Missing datasets
leave their chart out.

Usage:
  go run ./cmd/render [options]

Options:
  -url string
        Base URL of the courtside server (default: config api_base_url)
  -output string
        HTML file to write (default "dashboard.html")
  -timeout duration
        Per-request fetch timeout (default: config fetch_timeout_ms)
  -limit int
        Players shown in the player chart (default: config player_chart_limit)
  -log string
        Also write logs to this file
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  go run ./cmd/render -url http://localhost:5000 -output /tmp/dashboard.html
`)
}
