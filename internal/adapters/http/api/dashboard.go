package api

import (
	"bytes"
	"net/http"

	"github.com/okian/courtside/internal/dashboard"
	"github.com/okian/courtside/pkg/logger"
)

// DashboardHandler renders the stats dashboard page.
type DashboardHandler struct {
	charts ChartInitializer
	title  string
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(charts ChartInitializer) *DashboardHandler {
	return &DashboardHandler{charts: charts, title: dashboard.DefaultPageTitle}
}

// HandleDashboard handles GET / and GET /dashboard requests.
// Each request runs the chart initializer against a fresh canvas; missing
// datasets leave their chart out of the page.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard"
	if r.Method != http.MethodGet {
		writeNotFound(w)
		return
	}

	canvas := dashboard.NewEChartsCanvas(h.title)
	if _, err := h.charts.Initialize(r.Context(), canvas); err != nil {
		logger.Get().Error(r.Context(), "dashboard initialization failed", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrRender.Error())
		return
	}

	var buf bytes.Buffer
	if err := canvas.Render(&buf); err != nil {
		logger.Get().Error(r.Context(), "dashboard render failed", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrRender.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
