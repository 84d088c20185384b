package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	repository "github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/analytics"
	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// Analyzer turns the newest processed stats file into the analyzed datasets.
type Analyzer struct {
	source repository.Source
	writer repository.Writer
	logger logger.Logger
	now    func() time.Time
	newID  func() string
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithAnalyzerLogger sets the analyzer's logger.
func WithAnalyzerLogger(l logger.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock overrides the time source stamped into the manifest.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAnalyzer creates an Analyzer reading from source and writing to writer.
func NewAnalyzer(source repository.Source, writer repository.Writer, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		source: source,
		writer: writer,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logger.Get()
	}
	return a
}

// Run executes load -> rank -> aggregate -> save once.
func (a *Analyzer) Run(ctx context.Context) (types.Manifest, error) {
	start := time.Now()
	runID := a.newID()
	log := a.logger.Named("analysis")
	log.Info(ctx, "starting analysis pipeline", logger.String("runID", runID))

	manifest, err := a.run(ctx, runID)
	if err != nil {
		metrics.RecordAnalysisRun("failure", time.Since(start))
		metrics.RecordErrorByComponent("analysis", "pipeline_error")
		log.Error(ctx, "analysis pipeline failed", logger.String("runID", runID), logger.Error(err))
		return types.Manifest{}, fmt.Errorf("%w: %w", ErrAnalysis, err)
	}

	metrics.RecordAnalysisRun("success", time.Since(start))
	metrics.UpdateAnalysisResult(manifest.Players, manifest.Teams, manifest.GeneratedAt)
	log.Info(ctx, "analysis pipeline completed",
		logger.String("runID", runID),
		logger.Int("players", manifest.Players),
		logger.Int("teams", manifest.Teams),
		logger.Duration("took", time.Since(start)),
	)
	return manifest, nil
}

func (a *Analyzer) run(ctx context.Context, runID string) (types.Manifest, error) {
	players, source, err := a.source.LatestPlayerStats(ctx)
	if err != nil {
		return types.Manifest{}, fmt.Errorf("load processed stats: %w", err)
	}

	rankings, err := analytics.RankPlayers(players)
	if err != nil {
		return types.Manifest{}, fmt.Errorf("calculate rankings: %w", err)
	}
	teams, err := analytics.AggregateTeams(players)
	if err != nil {
		return types.Manifest{}, fmt.Errorf("analyze team performance: %w", err)
	}

	manifest := types.Manifest{
		RunID:       runID,
		Source:      source,
		GeneratedAt: a.now().UTC(),
		Players:     len(rankings),
		Teams:       len(teams),
	}
	if err := a.writer.SaveAnalysis(ctx, rankings, teams, manifest); err != nil {
		return types.Manifest{}, fmt.Errorf("save analysis: %w", err)
	}
	return manifest, nil
}
