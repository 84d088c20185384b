// Package metrics provides Prometheus metrics for the courtside service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the courtside service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Dashboard Metrics - fetches and chart construction
	dashboardFetches       *prometheus.CounterVec
	dashboardFetchLatency  *prometheus.HistogramVec
	dashboardCharts        *prometheus.CounterVec
	dashboardRenderLatency prometheus.Histogram

	// Dataset Metrics - analyzed files served by the API
	datasetLoads   *prometheus.CounterVec
	datasetRecords *prometheus.GaugeVec

	// Analysis Metrics - pipeline runs
	analysisRuns        *prometheus.CounterVec
	analysisDuration    prometheus.Histogram
	analysisPlayers     prometheus.Gauge
	analysisTeams       prometheus.Gauge
	analysisLastSuccess prometheus.Gauge

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "courtside",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval is how often callers should refresh system gauges.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds",
			[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}),
		[]string{"endpoint", "method", "status_code"},
	)

	m.dashboardFetches = auto.NewCounterVec(
		m.counterOpts("dashboard_fetch_total", "Dashboard dataset fetches by endpoint and outcome"),
		[]string{"endpoint", "outcome"},
	)
	m.dashboardFetchLatency = auto.NewHistogramVec(
		m.histogramOpts("dashboard_fetch_latency_seconds", "Dashboard dataset fetch latency in seconds", m.histogramBuckets),
		[]string{"endpoint"},
	)
	m.dashboardCharts = auto.NewCounterVec(
		m.counterOpts("dashboard_charts_total", "Dashboard charts by element and outcome (drawn or skipped)"),
		[]string{"chart", "outcome"},
	)
	m.dashboardRenderLatency = auto.NewHistogram(
		m.histogramOpts("dashboard_render_latency_seconds", "Full dashboard initialization latency in seconds", m.histogramBuckets),
	)

	m.datasetLoads = auto.NewCounterVec(
		m.counterOpts("dataset_loads_total", "Analyzed dataset loads by dataset and outcome"),
		[]string{"dataset", "outcome"},
	)
	m.datasetRecords = auto.NewGaugeVec(
		m.gaugeOpts("dataset_records", "Number of records in the last loaded dataset"),
		[]string{"dataset"},
	)

	m.analysisRuns = auto.NewCounterVec(
		m.counterOpts("analysis_runs_total", "Analysis pipeline runs by outcome"),
		[]string{"outcome"},
	)
	m.analysisDuration = auto.NewHistogram(
		m.histogramOpts("analysis_duration_seconds", "Analysis pipeline duration in seconds", m.histogramBuckets),
	)
	m.analysisPlayers = auto.NewGauge(m.gaugeOpts("analysis_players", "Players ranked by the last successful analysis"))
	m.analysisTeams = auto.NewGauge(m.gaugeOpts("analysis_teams", "Teams aggregated by the last successful analysis"))
	m.analysisLastSuccess = auto.NewGauge(m.gaugeOpts("analysis_last_success_unix", "Unix time of the last successful analysis"))

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors",
			[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Dashboard Metrics Functions.

// RecordDashboardFetch counts one dataset fetch and observes its latency.
func RecordDashboardFetch(endpoint, outcome string, latency time.Duration) {
	globalManager.dashboardFetches.WithLabelValues(endpoint, outcome).Inc()
	globalManager.dashboardFetchLatency.WithLabelValues(endpoint).Observe(latency.Seconds())
}

// RecordDashboardChart counts a chart drawn or skipped.
func RecordDashboardChart(chart, outcome string) {
	globalManager.dashboardCharts.WithLabelValues(chart, outcome).Inc()
}

// RecordDashboardRender observes a full initialization pass.
func RecordDashboardRender(latency time.Duration) {
	globalManager.dashboardRenderLatency.Observe(latency.Seconds())
}

// Dataset Metrics Functions.

// RecordDatasetLoad counts a dataset load.
func RecordDatasetLoad(dataset, outcome string) {
	globalManager.datasetLoads.WithLabelValues(dataset, outcome).Inc()
}

// UpdateDatasetRecords sets the record count of the last loaded dataset.
func UpdateDatasetRecords(dataset string, count int) {
	globalManager.datasetRecords.WithLabelValues(dataset).Set(float64(count))
}

// Analysis Metrics Functions.

// RecordAnalysisRun counts a pipeline run and observes its duration.
func RecordAnalysisRun(outcome string, duration time.Duration) {
	globalManager.analysisRuns.WithLabelValues(outcome).Inc()
	globalManager.analysisDuration.Observe(duration.Seconds())
}

// UpdateAnalysisResult records the sizes and time of a successful run.
func UpdateAnalysisResult(players, teams int, at time.Time) {
	globalManager.analysisPlayers.Set(float64(players))
	globalManager.analysisTeams.Set(float64(teams))
	globalManager.analysisLastSuccess.Set(float64(at.Unix()))
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// Init replaces the global manager with one built from opts on a fresh
// package registry. It is meant for process startup, before /healthz is
// served; the registry option is always the package registry.
func Init(opts ...Option) *Manager {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append(opts[:len(opts):len(opts)], WithPrometheusRegistry(customRegistry))...)
	return globalManager
}

// Default returns the global manager.
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
