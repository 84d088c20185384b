package api

import (
	"net/http"
	"strconv"

	"github.com/okian/courtside/pkg/logger"
)

const (
	msgPlayerRankingsFailed = "Failed to load player rankings"
	msgTeamStatsFailed      = "Failed to load team statistics"
)

// DatasetsHandler serves the analyzed player and team datasets.
type DatasetsHandler struct {
	deps Dependencies
}

// NewDatasetsHandler creates a new datasets handler.
func NewDatasetsHandler(deps Dependencies) *DatasetsHandler {
	return &DatasetsHandler{deps: deps}
}

// HandlePlayerRankings handles GET /api/player-rankings[?limit=N] requests.
func (h *DatasetsHandler) HandlePlayerRankings(w http.ResponseWriter, r *http.Request) {
	const op = "api.player_rankings"
	if r.Method != http.MethodGet {
		writeNotFound(w)
		return
	}

	n := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest).Error())
			return
		}
		if v > h.deps.RankingsLimit() {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest).Error())
			return
		}
		n = v
	}

	rows, err := h.deps.PlayerRankings(r.Context(), n)
	if err != nil {
		logger.Get().Error(r.Context(), "error loading player rankings", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusInternalServerError, "", msgPlayerRankingsFailed)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleTeamStats handles GET /api/team-stats requests.
func (h *DatasetsHandler) HandleTeamStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.team_stats"
	if r.Method != http.MethodGet {
		writeNotFound(w)
		return
	}

	rows, err := h.deps.TeamStats(r.Context())
	if err != nil {
		logger.Get().Error(r.Context(), "error loading team stats", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusInternalServerError, "", msgTeamStatsFailed)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
