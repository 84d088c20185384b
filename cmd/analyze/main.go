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
		inputDir  = flag.String("input", cfg.InputDir, "Directory holding processed_stats_*.json")
		outputDir = flag.String("output", cfg.DataDir, "Directory receiving the analyzed files")
		logFile   = flag.String("log", "", "Also write logs to this file")
		verbose   = flag.Bool("verbose", false, "Enable debug logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		tools.ShowAnalyzeHelp(os.Stdout)
		return
	}

	closeLog, err := tools.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	_, err = tools.RunAnalyze(ctx, tools.AnalyzeConfig{InputDir: *inputDir, OutputDir: *outputDir})
	if err != nil {
		logger.Get().Error(ctx, "analysis failed", logger.Error(err))
		_ = closeLog()
		os.Exit(1)
	}
	_ = closeLog()
}
