package dashboard

import "github.com/okian/courtside/internal/domain/types"

// Element ids the dashboard draws into, and the endpoints that feed them.
const (
	PlayerChartID = "playerChart"
	TeamChartID   = "teamChart"

	EndpointPlayerRankings = "player-rankings"
	EndpointTeamStats      = "team-stats"
)

// Chart styling.
const (
	chartTypeBar      = "bar"
	legendTop         = "top"
	playerSeriesLabel = "Efficiency Rating"
	playerSeriesColor = "rgba(54, 162, 235, 0.8)"
	teamSeriesLabel   = "Team Score"
	teamSeriesColor   = "rgba(255, 99, 132, 0.8)"
)

// Dataset is one labeled numeric series.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
}

// Legend positions the series legend.
type Legend struct {
	Position string `json:"position"`
}

// Options holds display options.
type Options struct {
	Responsive bool   `json:"responsive"`
	Legend     Legend `json:"legend"`
}

// BarChart is the full configuration of one chart widget.
type BarChart struct {
	ElementID string    `json:"elementId"`
	Type      string    `json:"type"`
	Labels    []string  `json:"labels"`
	Datasets  []Dataset `json:"datasets"`
	Options   Options   `json:"options"`
}

// PlayerChart maps at most limit players to a bar chart of efficiency
// ratings. Records are taken in the order given; nothing is sorted.
func PlayerChart(players []types.PlayerRanking, limit int) BarChart {
	if limit >= 0 && len(players) > limit {
		players = players[:limit]
	}
	labels := make([]string, len(players))
	data := make([]float64, len(players))
	for i, p := range players {
		labels[i] = p.Name
		data[i] = p.EfficiencyRating
	}
	return newBarChart(PlayerChartID, labels, playerSeriesLabel, data, playerSeriesColor)
}

// TeamChart maps every team to a bar chart of team scores.
func TeamChart(teams []types.TeamStat) BarChart {
	labels := make([]string, len(teams))
	data := make([]float64, len(teams))
	for i, t := range teams {
		labels[i] = t.Team
		data[i] = t.TeamScore
	}
	return newBarChart(TeamChartID, labels, teamSeriesLabel, data, teamSeriesColor)
}

func newBarChart(elementID string, labels []string, label string, data []float64, color string) BarChart {
	return BarChart{
		ElementID: elementID,
		Type:      chartTypeBar,
		Labels:    labels,
		Datasets: []Dataset{{
			Label:           label,
			Data:            data,
			BackgroundColor: color,
		}},
		Options: Options{
			Responsive: true,
			Legend:     Legend{Position: legendTop},
		},
	}
}
