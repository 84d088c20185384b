// Package repository reads and writes the analyzed datasets.
package repository

import (
	"context"

	"github.com/okian/courtside/internal/domain/types"
)

// Dataset file names inside the analyzed directory.
const (
	PlayerRankingsFile = "player_rankings.json"
	TeamStatsFile      = "team_stats.json"
	ManifestFile       = "manifest.json"
)

// Store provides read access to the analyzed datasets.
type Store interface {
	// PlayerRankings returns up to limit rankings in stored order.
	// limit <= 0 returns every record.
	PlayerRankings(ctx context.Context, limit int) ([]types.PlayerRanking, error)

	// TeamStats returns every team stat record in stored order.
	TeamStats(ctx context.Context) ([]types.TeamStat, error)
}

// Writer persists the output of one analysis run.
type Writer interface {
	SaveAnalysis(ctx context.Context, rankings []types.PlayerRanking, teams []types.TeamStat, manifest types.Manifest) error
}

// Source provides processed player statistics to the analyzer.
type Source interface {
	// LatestPlayerStats returns the rows of the newest processed file and its path.
	LatestPlayerStats(ctx context.Context) ([]types.PlayerStat, string, error)
}
