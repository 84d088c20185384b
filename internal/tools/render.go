package tools

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/courtside/internal/dashboard"
	"github.com/okian/courtside/pkg/logger"
)

// DefaultRenderOutput is the file render writes when none is given.
const DefaultRenderOutput = "dashboard.html"

// RunRender draws the dashboard charts from cfg.BaseURL and writes the page
// to cfg.OutputFile.
func RunRender(ctx context.Context, cfg RenderConfig) (RenderStats, error) {
	start := time.Now()
	log := logger.Get()
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultRenderOutput
	}

	log.Info(ctx, "rendering dashboard",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("output", cfg.OutputFile),
		logger.Duration("timeout", cfg.Timeout),
		logger.Int("playerLimit", cfg.PlayerLimit))

	if err := checkServiceHealth(ctx, cfg); err != nil {
		return RenderStats{}, fmt.Errorf("service health check failed: %w", err)
	}

	fetcher := dashboard.NewFetcher(cfg.BaseURL,
		dashboard.WithTimeout(cfg.Timeout),
		dashboard.WithFetcherLogger(log.Named("fetcher")),
	)
	initializer := dashboard.NewInitializer(fetcher,
		dashboard.WithPlayerLimit(cfg.PlayerLimit),
		dashboard.WithLogger(log.Named("dashboard")),
	)

	canvas := dashboard.NewEChartsCanvas("")
	charts, err := initializer.Initialize(ctx, canvas)
	if err != nil {
		return RenderStats{}, fmt.Errorf("chart initialization failed: %w", err)
	}

	var buf bytes.Buffer
	if err := canvas.Render(&buf); err != nil {
		return RenderStats{}, fmt.Errorf("page render failed: %w", err)
	}
	if err := writeOutput(cfg.OutputFile, buf.Bytes()); err != nil {
		return RenderStats{}, err
	}

	stats := RenderStats{Bytes: buf.Len(), Duration: time.Since(start)}
	for _, c := range charts {
		stats.Charts = append(stats.Charts, c.ElementID)
	}
	if len(stats.Charts) == 0 {
		log.Warn(ctx, "no datasets available; page has no charts")
	}
	log.Info(ctx, "dashboard written",
		logger.String("output", cfg.OutputFile),
		logger.Any("charts", stats.Charts),
		logger.Int("bytes", stats.Bytes),
		logger.Duration("duration", stats.Duration))
	return stats, nil
}

// checkServiceHealth verifies the server answers /healthz.
func checkServiceHealth(ctx context.Context, cfg RenderConfig) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}

func writeOutput(filename string, data []byte) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(filename, data, outputPermission); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
