package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// DefaultPlayerLimit is how many players the player chart shows.
const DefaultPlayerLimit = 10

// Chart outcomes reported to metrics.
const (
	chartDrawn   = "drawn"
	chartSkipped = "skipped"
)

// Canvas is the page surface charts are drawn on.
type Canvas interface {
	// Draw binds chart to the element named by chart.ElementID.
	// It returns ErrNoElement when the page has no such element.
	Draw(ctx context.Context, chart BarChart) error
}

// Initializer fetches both datasets and draws a chart for each one present.
type Initializer struct {
	fetcher     DataFetcher
	playerLimit int
	logger      logger.Logger
}

// InitializerOption configures an Initializer.
type InitializerOption func(*Initializer)

// WithPlayerLimit sets how many players are charted.
func WithPlayerLimit(n int) InitializerOption {
	return func(i *Initializer) {
		if n > 0 {
			i.playerLimit = n
		}
	}
}

// WithLogger sets the initializer's logger.
func WithLogger(l logger.Logger) InitializerOption {
	return func(i *Initializer) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewInitializer creates an Initializer reading through fetcher.
func NewInitializer(fetcher DataFetcher, opts ...InitializerOption) *Initializer {
	i := &Initializer{
		fetcher:     fetcher,
		playerLimit: DefaultPlayerLimit,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = logger.Get()
	}
	return i
}

// Initialize fetches player rankings, then team stats, and draws the charts
// whose data arrived. A missing dataset skips its chart without error; an
// empty one still draws. Only a canvas failure is returned.
func (i *Initializer) Initialize(ctx context.Context, canvas Canvas) ([]BarChart, error) {
	start := time.Now()
	defer func() { metrics.RecordDashboardRender(time.Since(start)) }()

	var players []types.PlayerRanking
	playersOK := i.fetcher.Fetch(ctx, EndpointPlayerRankings, &players)

	var teams []types.TeamStat
	teamsOK := i.fetcher.Fetch(ctx, EndpointTeamStats, &teams)

	drawn := make([]BarChart, 0, 2)

	if playersOK && players != nil {
		chart := PlayerChart(players, i.playerLimit)
		if err := i.draw(ctx, canvas, chart); err != nil {
			return drawn, err
		}
		drawn = append(drawn, chart)
	} else {
		i.skip(ctx, PlayerChartID)
	}

	if teamsOK && teams != nil {
		chart := TeamChart(teams)
		if err := i.draw(ctx, canvas, chart); err != nil {
			return drawn, err
		}
		drawn = append(drawn, chart)
	} else {
		i.skip(ctx, TeamChartID)
	}

	return drawn, nil
}

func (i *Initializer) draw(ctx context.Context, canvas Canvas, chart BarChart) error {
	if err := canvas.Draw(ctx, chart); err != nil {
		metrics.RecordErrorByComponent("dashboard", "draw_error")
		return fmt.Errorf("draw %s: %w", chart.ElementID, err)
	}
	metrics.RecordDashboardChart(chart.ElementID, chartDrawn)
	i.logger.Debug(ctx, "chart drawn",
		logger.String("element", chart.ElementID),
		logger.Int("bars", len(chart.Labels)),
	)
	return nil
}

func (i *Initializer) skip(ctx context.Context, elementID string) {
	metrics.RecordDashboardChart(elementID, chartSkipped)
	i.logger.Debug(ctx, "no data; chart skipped", logger.String("element", elementID))
}
