// Package analytics derives player rankings and team performance from
// processed player statistics.
package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/okian/courtside/internal/domain/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TeamScore weights.
const (
	teamWeightPoints     = 0.4
	teamWeightEfficiency = 0.3
	teamWeightAssists    = 0.15
	teamWeightSteals     = 0.15
)

// statColumns are the per-player stats folded into OverallScore.
var statColumns = []func(types.PlayerStat) float64{
	func(p types.PlayerStat) float64 { return p.PointsPerGame },
	func(p types.PlayerStat) float64 { return p.EfficiencyRating },
	func(p types.PlayerStat) float64 { return p.Rebounds },
	func(p types.PlayerStat) float64 { return p.Assists },
	func(p types.PlayerStat) float64 { return p.Steals },
	func(p types.PlayerStat) float64 { return p.BlockedShots },
}

// RankPlayers scores every player as the mean of their standardized stats and
// ranks them. The embedded stat fields keep the raw input values; the
// standardized values only feed OverallScore. The result is ordered by
// OverallRank; ties keep input order.
func RankPlayers(players []types.PlayerStat) ([]types.PlayerRanking, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}

	n := len(players)
	overall := make([]float64, n)
	for _, col := range statColumns {
		z := Standardize(column(players, col))
		floats.Add(overall, z)
	}
	floats.Scale(1/float64(len(statColumns)), overall)

	overallRank := RankDescending(overall)
	scoringRank := RankDescending(column(players, statColumns[0]))
	efficiencyRank := RankDescending(column(players, statColumns[1]))

	out := make([]types.PlayerRanking, n)
	for i, p := range players {
		out[i] = types.PlayerRanking{
			PlayerStat:     p,
			OverallScore:   overall[i],
			OverallRank:    overallRank[i],
			ScoringRank:    scoringRank[i],
			EfficiencyRank: efficiencyRank[i],
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OverallRank < out[j].OverallRank })
	return out, nil
}

// AggregateTeams groups players by team: means for PointsPerGame and
// EfficiencyRating, sums for counting stats, all rounded to two decimals.
// TeamScore is computed from the rounded values. Players without a team are
// ignored. The result is ordered by team name.
func AggregateTeams(players []types.PlayerStat) ([]types.TeamStat, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}

	groups := make(map[string][]types.PlayerStat)
	for _, p := range players {
		team := strings.TrimSpace(p.Team)
		if team == "" {
			continue
		}
		groups[team] = append(groups[team], p)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]types.TeamStat, len(names))
	scores := make([]float64, len(names))
	for i, name := range names {
		members := groups[name]
		t := types.TeamStat{
			Team:             name,
			PointsPerGame:    round2(stat.Mean(column(members, statColumns[0]), nil)),
			EfficiencyRating: round2(stat.Mean(column(members, statColumns[1]), nil)),
			Rebounds:         round2(floats.Sum(column(members, statColumns[2]))),
			Assists:          round2(floats.Sum(column(members, statColumns[3]))),
			Steals:           round2(floats.Sum(column(members, statColumns[4]))),
			BlockedShots:     round2(floats.Sum(column(members, statColumns[5]))),
		}
		t.TeamScore = t.PointsPerGame*teamWeightPoints +
			t.EfficiencyRating*teamWeightEfficiency +
			t.Assists*teamWeightAssists +
			t.Steals*teamWeightSteals
		scores[i] = t.TeamScore
		out[i] = t
	}

	for i, r := range RankDescending(scores) {
		out[i].TeamRank = r
	}
	return out, nil
}

// Standardize returns (x - mean) / std using the population standard
// deviation. A constant column standardizes to zeros.
func Standardize(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	mean, std := stat.PopMeanStdDev(x, nil)
	if std == 0 || math.IsNaN(std) {
		std = 1
	}
	for i, v := range x {
		out[i] = (v - mean) / std
	}
	return out
}

// RankDescending assigns 1-based ranks with the largest value first. Tied
// values share the average of the positions they span.
func RankDescending(x []float64) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] > x[idx[b]] })

	ranks := make([]float64, len(x))
	for start := 0; start < len(idx); {
		end := start + 1
		for end < len(idx) && x[idx[end]] == x[idx[start]] {
			end++
		}
		// positions start+1 .. end
		avg := float64(start+1+end) / 2
		for k := start; k < end; k++ {
			ranks[idx[k]] = avg
		}
		start = end
	}
	return ranks
}

func column(players []types.PlayerStat, get func(types.PlayerStat) float64) []float64 {
	out := make([]float64, len(players))
	for i, p := range players {
		out[i] = get(p)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
