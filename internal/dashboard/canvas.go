package dashboard

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// DefaultPageTitle is the title of the rendered dashboard page.
const DefaultPageTitle = "Courtside Stats Dashboard"

const chartHeight = "420px"

// EChartsCanvas collects charts as go-echarts bar charts and renders them as
// one HTML page. Only the declared elements can be drawn on.
type EChartsCanvas struct {
	mu       sync.Mutex
	title    string
	elements []string
	bars     map[string]*charts.Bar
}

var _ Canvas = (*EChartsCanvas)(nil)

// NewEChartsCanvas declares a page with the given element ids. With no ids
// the dashboard's two chart elements are declared.
func NewEChartsCanvas(title string, elementIDs ...string) *EChartsCanvas {
	if len(elementIDs) == 0 {
		elementIDs = []string{PlayerChartID, TeamChartID}
	}
	if title == "" {
		title = DefaultPageTitle
	}
	return &EChartsCanvas{
		title:    title,
		elements: elementIDs,
		bars:     make(map[string]*charts.Bar, len(elementIDs)),
	}
}

// Draw implements Canvas.
func (c *EChartsCanvas) Draw(_ context.Context, chart BarChart) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasElement(chart.ElementID) {
		return fmt.Errorf("%w: %q", ErrNoElement, chart.ElementID)
	}

	bar := charts.NewBar()
	initOpts := opts.Initialization{ChartID: chart.ElementID, Height: chartHeight}
	if chart.Options.Responsive {
		initOpts.Width = "100%"
	}
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Top: chart.Options.Legend.Position}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	bar.SetXAxis(chart.Labels)
	for _, ds := range chart.Datasets {
		items := make([]opts.BarData, len(ds.Data))
		for i, v := range ds.Data {
			items[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(ds.Label, items, charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.BackgroundColor}))
	}
	c.bars[chart.ElementID] = bar
	return nil
}

// Drawn reports whether a chart was drawn on elementID.
func (c *EChartsCanvas) Drawn(elementID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.bars[elementID]
	return ok
}

// Render writes the page with every drawn chart in element order.
func (c *EChartsCanvas) Render(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	page := components.NewPage()
	page.PageTitle = c.title
	page.SetLayout(components.PageFlexLayout)
	for _, id := range c.elements {
		if bar, ok := c.bars[id]; ok {
			page.AddCharts(bar)
		}
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

func (c *EChartsCanvas) hasElement(id string) bool {
	for _, e := range c.elements {
		if e == id {
			return true
		}
	}
	return false
}
