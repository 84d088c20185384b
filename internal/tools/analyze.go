package tools

import (
	"context"
	"fmt"

	"github.com/okian/courtside/internal/adapters/repository"
	app "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/logger"
)

// RunAnalyze runs the analysis pipeline once over cfg.InputDir.
func RunAnalyze(ctx context.Context, cfg AnalyzeConfig) (types.Manifest, error) {
	log := logger.Get()
	log.Info(ctx, "starting analysis",
		logger.String("inputDir", cfg.InputDir),
		logger.String("outputDir", cfg.OutputDir))

	store := repository.NewFileStore(cfg.OutputDir, repository.WithInputDir(cfg.InputDir))
	analyzer := app.NewAnalyzer(store, store, app.WithAnalyzerLogger(log.Named("analyzer")))

	manifest, err := analyzer.Run(ctx)
	if err != nil {
		return types.Manifest{}, fmt.Errorf("analysis failed: %w", err)
	}

	log.Info(ctx, "analysis completed",
		logger.String("runID", manifest.RunID),
		logger.String("source", manifest.Source),
		logger.Int("players", manifest.Players),
		logger.Int("teams", manifest.Teams))
	return manifest, nil
}
