// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/courtside/internal/dashboard"
	"github.com/okian/courtside/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// PlayerRankings returns the first n rankings; n <= 0 means the default.
	PlayerRankings(ctx context.Context, n int) ([]types.PlayerRanking, error)
	TeamStats(ctx context.Context) ([]types.TeamStat, error)
	RankingsLimit() int
}

// ChartInitializer draws the dashboard charts on a canvas.
type ChartInitializer interface {
	Initialize(ctx context.Context, canvas dashboard.Canvas) ([]dashboard.BarChart, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	datasetsHandler  *DatasetsHandler
	dashboardHandler *DashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, charts ChartInitializer) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		datasetsHandler:  NewDatasetsHandler(deps),
		dashboardHandler: NewDashboardHandler(charts),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/player-rankings", MetricsMiddleware(s.datasetsHandler.HandlePlayerRankings, "player_rankings"))
	mux.HandleFunc("/api/team-stats", MetricsMiddleware(s.datasetsHandler.HandleTeamStats, "team_stats"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	// "/" matches every unregistered path; only the exact root serves the page.
	mux.HandleFunc("/", MetricsMiddleware(s.handleRoot, "root"))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeNotFound(w)
		return
	}
	s.dashboardHandler.HandleDashboard(w, r)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func writeNotFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "", "Not found")
}
