// Package service provides the visualizer data service behind the HTTP API
// and the analysis pipeline that produces its datasets.
package service

import (
	"context"
	"sync"
	"sync/atomic"

	repository "github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// Default service configuration.
const (
	defaultRankingsLimit = 50
	defaultDataDir       = "/data/analyzed"
)

// Service serves the analyzed datasets. It reads the store on every call.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	dataDir string

	rankingsLimit int

	started bool

	playerRequests atomic.Int64
	teamRequests   atomic.Int64
	loadFailures   atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the dataset store. Without one, Start opens a FileStore over the data dir.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDataDir sets the analyzed data directory.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithRankingsLimit caps the player rankings returned.
func WithRankingsLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.rankingsLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:       defaultDataDir,
		rankingsLimit: defaultRankingsLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start prepares the store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewFileStore(s.dataDir)
	}

	s.started = true
	s.logger.Info(ctx, "stats service started",
		logger.String("dataDir", s.dataDir),
		logger.Int("rankingsLimit", s.rankingsLimit),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "stats service stopped")
}

// PlayerRankings returns the first n player rankings in stored order. n is
// clamped to the configured rankings limit; n <= 0 means the limit.
func (s *Service) PlayerRankings(ctx context.Context, n int) ([]types.PlayerRanking, error) {
	store, err := s.storeIfStarted()
	if err != nil {
		return nil, err
	}
	s.playerRequests.Add(1)

	if n <= 0 || n > s.rankingsLimit {
		n = s.rankingsLimit
	}
	rows, err := store.PlayerRankings(ctx, n)
	if err != nil {
		s.loadFailures.Add(1)
		s.logger.Error(ctx, "failed to load player rankings", logger.Error(err))
		return nil, err
	}
	metrics.UpdateDatasetRecords("player-rankings", len(rows))
	return rows, nil
}

// TeamStats returns every team stat record.
func (s *Service) TeamStats(ctx context.Context) ([]types.TeamStat, error) {
	store, err := s.storeIfStarted()
	if err != nil {
		return nil, err
	}
	s.teamRequests.Add(1)

	rows, err := store.TeamStats(ctx)
	if err != nil {
		s.loadFailures.Add(1)
		s.logger.Error(ctx, "failed to load team stats", logger.Error(err))
		return nil, err
	}
	metrics.UpdateDatasetRecords("team-stats", len(rows))
	return rows, nil
}

func (s *Service) storeIfStarted() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// RankingsLimit is the most player rankings a single read returns.
func (s *Service) RankingsLimit() int {
	return s.rankingsLimit
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"dataDir":        s.dataDir,
		"rankingsLimit":  s.rankingsLimit,
		"playerRequests": s.playerRequests.Load(),
		"teamRequests":   s.teamRequests.Load(),
		"loadFailures":   s.loadFailures.Load(),
	}

	if m, ok := s.store.(interface {
		Manifest(context.Context) (types.Manifest, error)
	}); ok && s.started {
		if manifest, err := m.Manifest(context.Background()); err == nil {
			stats["lastAnalysis"] = manifest
		}
	}
	return stats
}
