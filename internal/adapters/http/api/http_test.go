package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/courtside/internal/adapters/http/api"
	"github.com/okian/courtside/internal/dashboard"
	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeDeps struct {
	players   []types.PlayerRanking
	teams     []types.TeamStat
	playerErr error
	teamErr   error
	limit     int
	lastN     int
}

func (f *fakeDeps) PlayerRankings(_ context.Context, n int) ([]types.PlayerRanking, error) {
	f.lastN = n
	if f.playerErr != nil {
		return nil, f.playerErr
	}
	if n <= 0 || n > f.limit {
		n = f.limit
	}
	if n > len(f.players) {
		return f.players, nil
	}
	return f.players[:n], nil
}

func (f *fakeDeps) TeamStats(context.Context) ([]types.TeamStat, error) {
	if f.teamErr != nil {
		return nil, f.teamErr
	}
	return f.teams, nil
}

func (f *fakeDeps) RankingsLimit() int { return f.limit }

type fakeStats struct{}

func (fakeStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

type stubCharts struct {
	charts []dashboard.BarChart
	err    error
}

func (s stubCharts) Initialize(ctx context.Context, canvas dashboard.Canvas) ([]dashboard.BarChart, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.charts {
		if err := canvas.Draw(ctx, c); err != nil {
			return nil, err
		}
	}
	return s.charts, nil
}

func samplePlayers(n int) []types.PlayerRanking {
	out := make([]types.PlayerRanking, n)
	for i := range out {
		out[i] = types.PlayerRanking{
			PlayerStat:  types.PlayerStat{Name: "Player " + string(rune('A'+i)), Team: "BOS", EfficiencyRating: float64(30 - i)},
			OverallRank: float64(i + 1),
		}
	}
	return out
}

func newMux(deps api.Dependencies, charts api.ChartInitializer) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, fakeStats{}, charts).Register(mux)
	return mux
}

func do(mux http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestDatasetRoutes(t *testing.T) {
	_ = logger.InitWriter(io.Discard, logger.FormatText)

	Convey("Given an API server backed by analyzed datasets", t, func() {
		deps := &fakeDeps{
			players: samplePlayers(12),
			teams:   []types.TeamStat{{Team: "BOS", TeamScore: 14.2}, {Team: "DEN", TeamScore: 13.75}},
			limit:   10,
		}
		mux := newMux(deps, stubCharts{})

		Convey("When GET /api/player-rankings is requested", func() {
			rec := do(mux, http.MethodGet, "/api/player-rankings")

			Convey("Then the default number of rankings is returned as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				var rows []types.PlayerRanking
				So(json.Unmarshal(rec.Body.Bytes(), &rows), ShouldBeNil)
				So(rows, ShouldHaveLength, 10)
				So(rows[0].Name, ShouldEqual, "Player A")
				So(deps.lastN, ShouldEqual, 0)
			})

			Convey("Then records use PascalCase keys", func() {
				var raw []map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &raw), ShouldBeNil)
				So(raw[0], ShouldContainKey, "Name")
				So(raw[0], ShouldContainKey, "EfficiencyRating")
			})
		})

		Convey("When a limit is given", func() {
			rec := do(mux, http.MethodGet, "/api/player-rankings?limit=3")

			Convey("Then only that many rankings are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var rows []types.PlayerRanking
				So(json.Unmarshal(rec.Body.Bytes(), &rows), ShouldBeNil)
				So(rows, ShouldHaveLength, 3)
				So(deps.lastN, ShouldEqual, 3)
			})
		})

		Convey("When the limit is invalid", func() {
			for _, q := range []string{"abc", "0", "-2"} {
				rec := do(mux, http.MethodGet, "/api/player-rankings?limit="+q)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, `"code":"bad_request"`)
			}
		})

		Convey("When the limit exceeds the maximum", func() {
			rec := do(mux, http.MethodGet, "/api/player-rankings?limit=11")

			Convey("Then limit_exceeded is reported", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, `"code":"limit_exceeded"`)
			})
		})

		Convey("When GET /api/team-stats is requested", func() {
			rec := do(mux, http.MethodGet, "/api/team-stats")

			Convey("Then every team is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var rows []types.TeamStat
				So(json.Unmarshal(rec.Body.Bytes(), &rows), ShouldBeNil)
				So(rows, ShouldHaveLength, 2)
				So(rows[1].TeamScore, ShouldEqual, 13.75)
			})
		})

		Convey("When the datasets cannot be loaded", func() {
			deps.playerErr = errors.New("open player_rankings.json: no such file")
			deps.teamErr = errors.New("open team_stats.json: no such file")

			players := do(mux, http.MethodGet, "/api/player-rankings")
			teams := do(mux, http.MethodGet, "/api/team-stats")

			Convey("Then 500 responses carry the load failure messages", func() {
				So(players.Code, ShouldEqual, http.StatusInternalServerError)
				So(players.Body.String(), ShouldEqual, "{\"error\":\"Failed to load player rankings\"}\n")
				So(teams.Code, ShouldEqual, http.StatusInternalServerError)
				So(teams.Body.String(), ShouldEqual, "{\"error\":\"Failed to load team statistics\"}\n")
			})
		})

		Convey("When a dataset route gets a non-GET method", func() {
			rec := do(mux, http.MethodPost, "/api/team-stats")

			Convey("Then it is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRouting(t *testing.T) {
	_ = logger.InitWriter(io.Discard, logger.FormatText)

	Convey("Given an API server", t, func() {
		deps := &fakeDeps{limit: 50}
		mux := newMux(deps, stubCharts{charts: []dashboard.BarChart{dashboard.TeamChart([]types.TeamStat{{Team: "BOS", TeamScore: 14.2}})}})

		Convey("When an unknown path is requested", func() {
			rec := do(mux, http.MethodGet, "/api/unknown")

			Convey("Then a JSON 404 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				So(rec.Body.String(), ShouldEqual, "{\"error\":\"Not found\"}\n")
			})
		})

		Convey("When /stats is requested", func() {
			rec := do(mux, http.MethodGet, "/stats")

			Convey("Then service stats are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"started":true`)
			})
		})

		Convey("When /healthz is requested after some traffic", func() {
			_ = do(mux, http.MethodGet, "/stats")
			rec := do(mux, http.MethodGet, "/healthz")

			Convey("Then Prometheus metrics are exposed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "courtside_http_requests_total")
			})
		})

		Convey("When the root page is requested", func() {
			rec := do(mux, http.MethodGet, "/")

			Convey("Then the dashboard HTML is rendered", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "text/html")
				So(rec.Body.String(), ShouldContainSubstring, dashboard.DefaultPageTitle)
				So(rec.Body.String(), ShouldContainSubstring, "teamChart")
			})
		})

		Convey("When the chart initializer fails", func() {
			mux := newMux(deps, stubCharts{err: dashboard.ErrNoElement})
			rec := do(mux, http.MethodGet, "/dashboard")

			Convey("Then a 500 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestDashboardEndToEnd(t *testing.T) {
	_ = logger.InitWriter(io.Discard, logger.FormatText)

	Convey("Given a data server and a dashboard fetching from it", t, func() {
		deps := &fakeDeps{
			players: samplePlayers(15),
			teams:   []types.TeamStat{},
			limit:   50,
		}
		data := httptest.NewServer(newMux(deps, stubCharts{}))
		defer data.Close()

		charts := dashboard.NewInitializer(
			dashboard.NewFetcher(data.URL),
			dashboard.WithLogger(logger.Discard()),
		)
		mux := newMux(deps, charts)

		Convey("When /dashboard is requested", func() {
			rec := do(mux, http.MethodGet, "/dashboard")
			html := rec.Body.String()

			Convey("Then both charts are on the page, the player chart capped at ten", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(html, ShouldContainSubstring, "playerChart")
				So(html, ShouldContainSubstring, "teamChart")
				So(html, ShouldContainSubstring, "Efficiency Rating")
				So(html, ShouldContainSubstring, "Team Score")
				So(html, ShouldContainSubstring, "Player J")
				So(html, ShouldNotContainSubstring, "Player K")
				So(html, ShouldNotContainSubstring, "Player O")
			})
		})

		Convey("When the player dataset is missing", func() {
			deps.playerErr = errors.New("missing")
			rec := do(mux, http.MethodGet, "/dashboard")

			Convey("Then the page still renders without the player chart", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldNotContainSubstring, "playerChart")
				So(rec.Body.String(), ShouldContainSubstring, "teamChart")
			})
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given a handler wrapped with request ids", t, func() {
		var seen string
		h := api.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get(api.RequestIDHeader)
		}))

		Convey("When the caller sends no id", func() {
			rec := do(h, http.MethodGet, "/")

			Convey("Then one is generated and echoed", func() {
				So(seen, ShouldNotBeEmpty)
				So(rec.Header().Get(api.RequestIDHeader), ShouldEqual, seen)
			})
		})

		Convey("When the caller sends an id", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			h.ServeHTTP(rec, req)

			Convey("Then it is preserved", func() {
				So(seen, ShouldEqual, "abc-123")
				So(rec.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})
	})
}
