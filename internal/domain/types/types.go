// Package types contains the records shared by the analyzer, the API and the dashboard.
//
// JSON keys keep the column names of the analyzed datasets (Name,
// EfficiencyRating, Team, TeamScore, ...), which is what the dashboard reads.
package types

import "time"

// PlayerStat is one processed per-player row, the analyzer's input.
type PlayerStat struct {
	Name             string  `json:"Name"`
	Team             string  `json:"Team"`
	PointsPerGame    float64 `json:"PointsPerGame"`
	EfficiencyRating float64 `json:"EfficiencyRating"`
	Rebounds         float64 `json:"Rebounds"`
	Assists          float64 `json:"Assists"`
	Steals           float64 `json:"Steals"`
	BlockedShots     float64 `json:"BlockedShots"`
}

// PlayerRanking is a player row enriched with the composite score and ranks.
// The embedded stats are raw values, not z-scores.
// Ranks are 1-based, higher stat is better, ties share the average rank.
type PlayerRanking struct {
	PlayerStat
	OverallScore   float64 `json:"OverallScore"`
	OverallRank    float64 `json:"OverallRank"`
	ScoringRank    float64 `json:"ScoringRank"`
	EfficiencyRank float64 `json:"EfficiencyRank"`
}

// TeamStat aggregates a team's players.
type TeamStat struct {
	Team             string  `json:"Team"`
	PointsPerGame    float64 `json:"PointsPerGame"`
	EfficiencyRating float64 `json:"EfficiencyRating"`
	Rebounds         float64 `json:"Rebounds"`
	Assists          float64 `json:"Assists"`
	Steals           float64 `json:"Steals"`
	BlockedShots     float64 `json:"BlockedShots"`
	TeamScore        float64 `json:"TeamScore"`
	TeamRank         float64 `json:"TeamRank"`
}

// Manifest describes one analysis run.
type Manifest struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
	Players     int       `json:"players"`
	Teams       int       `json:"teams"`
}
