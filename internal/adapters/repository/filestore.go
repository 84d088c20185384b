package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/metrics"
)

// Defaults for the file store.
const (
	defaultFileMode     = 0o644
	defaultDirMode      = 0o755
	defaultInputPattern = "processed_stats_*.json"
)

// Dataset labels used in metrics.
const (
	datasetPlayerRankings = "player-rankings"
	datasetTeamStats      = "team-stats"
)

// FileStore keeps each dataset as a JSON array file. Files are read on every
// call; nothing is cached.
type FileStore struct {
	dataDir      string
	inputDir     string
	inputPattern string
	fileMode     fs.FileMode
}

var (
	_ Store  = (*FileStore)(nil)
	_ Writer = (*FileStore)(nil)
	_ Source = (*FileStore)(nil)
)

// NewFileStore creates a store over dataDir (analyzed output).
func NewFileStore(dataDir string, opts ...Option) *FileStore {
	s := &FileStore{
		dataDir:      dataDir,
		inputPattern: defaultInputPattern,
		fileMode:     defaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlayerRankings implements Store.
func (s *FileStore) PlayerRankings(ctx context.Context, limit int) ([]types.PlayerRanking, error) {
	var rows []types.PlayerRanking
	if err := s.load(ctx, datasetPlayerRankings, PlayerRankingsFile, &rows); err != nil {
		return nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// TeamStats implements Store.
func (s *FileStore) TeamStats(ctx context.Context) ([]types.TeamStat, error) {
	var rows []types.TeamStat
	if err := s.load(ctx, datasetTeamStats, TeamStatsFile, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Manifest returns the manifest of the last analysis run.
func (s *FileStore) Manifest(ctx context.Context) (types.Manifest, error) {
	var m types.Manifest
	err := s.load(ctx, "manifest", ManifestFile, &m)
	return m, err
}

func (s *FileStore) load(ctx context.Context, dataset, name string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(s.dataDir, name)
	b, err := os.ReadFile(path)
	if err != nil {
		metrics.RecordDatasetLoad(dataset, "error")
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		metrics.RecordDatasetLoad(dataset, "error")
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	metrics.RecordDatasetLoad(dataset, "success")
	return nil
}

// SaveAnalysis implements Writer. Each file is replaced atomically.
func (s *FileStore) SaveAnalysis(ctx context.Context, rankings []types.PlayerRanking, teams []types.TeamStat, manifest types.Manifest) error {
	if err := os.MkdirAll(s.dataDir, defaultDirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if rankings != nil {
		if err := s.writeJSON(ctx, PlayerRankingsFile, rankings); err != nil {
			return err
		}
	}
	if teams != nil {
		if err := s.writeJSON(ctx, TeamStatsFile, teams); err != nil {
			return err
		}
	}
	return s.writeJSON(ctx, ManifestFile, manifest)
}

func (s *FileStore) writeJSON(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWrite, name, err)
	}
	tmp, err := os.CreateTemp(s.dataDir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, name, err)
	}
	if err := os.Chmod(tmp.Name(), s.fileMode); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dataDir, name)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, name, err)
	}
	return nil
}

// LatestPlayerStats implements Source. The newest file is chosen by
// modification time.
func (s *FileStore) LatestPlayerStats(ctx context.Context) ([]types.PlayerStat, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	matches, err := filepath.Glob(filepath.Join(s.inputDir, s.inputPattern))
	if err != nil {
		return nil, "", fmt.Errorf("glob %s: %w", s.inputPattern, err)
	}

	var (
		latest   string
		latestMT time.Time
	)
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if latest == "" || info.ModTime().After(latestMT) {
			latest, latestMT = m, info.ModTime()
		}
	}
	if latest == "" {
		return nil, "", fmt.Errorf("%w in %s", ErrNoInput, s.inputDir)
	}

	b, err := os.ReadFile(latest)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", latest, err)
	}
	var rows []types.PlayerStat
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrDecode, latest, err)
	}
	return rows, latest, nil
}
