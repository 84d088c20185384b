package analytics

import "errors"

// Sentinel kinds for analytics errors.
var (
	ErrNoPlayers = errors.New("no player stats to analyze")
)
