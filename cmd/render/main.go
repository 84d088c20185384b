package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/courtside/internal/config"
	"github.com/okian/courtside/internal/tools"
	"github.com/okian/courtside/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var (
		baseURL = flag.String("url", cfg.APIBaseURL, "Base URL of the courtside server")
		output  = flag.String("output", tools.DefaultRenderOutput, "HTML file to write")
		timeout = flag.Duration("timeout", cfg.FetchTimeout(), "Per-request fetch timeout")
		limit   = flag.Int("limit", cfg.PlayerChartLimit, "Players shown in the player chart")
		logFile = flag.String("log", "", "Also write logs to this file")
		verbose = flag.Bool("verbose", false, "Enable debug logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		tools.ShowRenderHelp(os.Stdout)
		return
	}

	closeLog, err := tools.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	_, err = tools.RunRender(ctx, tools.RenderConfig{
		BaseURL:     *baseURL,
		OutputFile:  *output,
		Timeout:     *timeout,
		PlayerLimit: *limit,
	})
	if err != nil {
		logger.Get().Error(ctx, "render failed", logger.Error(err))
		_ = closeLog()
		os.Exit(1)
	}
	_ = closeLog()
}
