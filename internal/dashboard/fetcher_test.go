package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/courtside/internal/dashboard"
	"github.com/okian/courtside/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

const rankingsBody = `[{"Name":"Star C","EfficiencyRating":31.5,"Team":"DEN"},{"Name":"Guard A","EfficiencyRating":18}]`

func newAPIServer(routes map[string]func(http.ResponseWriter, *http.Request)) *httptest.Server {
	mux := http.NewServeMux()
	for path, h := range routes {
		mux.HandleFunc(path, h)
	}
	return httptest.NewServer(mux)
}

func body(status int, payload string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}
}

func TestFetcher_Fetch(t *testing.T) {
	Convey("Given a fetcher pointed at a stats API", t, func() {
		var gotPath, gotAccept string
		srv := newAPIServer(map[string]func(http.ResponseWriter, *http.Request){
			"/api/player-rankings": func(w http.ResponseWriter, r *http.Request) {
				gotPath, gotAccept = r.URL.Path, r.Header.Get("Accept")
				body(http.StatusOK, rankingsBody)(w, r)
			},
			"/api/team-stats": body(http.StatusInternalServerError, `{"error":"Failed to load team statistics"}`),
			"/api/broken":     body(http.StatusOK, `[{"Name": "unterminated`),
			"/api/nothing":    body(http.StatusOK, `null`),
			"/api/slow": func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
				body(http.StatusOK, `[]`)(w, r)
			},
		})
		defer srv.Close()

		log := newCountingLogger()
		f := dashboard.NewFetcher(srv.URL+"/", dashboard.WithFetcherLogger(log), dashboard.WithTimeout(200*time.Millisecond))
		ctx := context.Background()

		Convey("When fetching a known-good endpoint", func() {
			var raw json.RawMessage
			ok := f.Fetch(ctx, dashboard.EndpointPlayerRankings, &raw)

			Convey("Then the body is returned unchanged", func() {
				So(ok, ShouldBeTrue)
				So(string(raw), ShouldEqual, rankingsBody)
				So(gotPath, ShouldEqual, "/api/player-rankings")
				So(gotAccept, ShouldEqual, "application/json")
				So(log.count("error"), ShouldEqual, 0)
			})

			Convey("And it decodes into typed records", func() {
				var players []types.PlayerRanking
				So(f.Fetch(ctx, dashboard.EndpointPlayerRankings, &players), ShouldBeTrue)
				So(players, ShouldHaveLength, 2)
				So(players[0].Name, ShouldEqual, "Star C")
				So(players[0].EfficiencyRating, ShouldEqual, 31.5)
			})
		})

		Convey("When the endpoint answers with a failure status", func() {
			var teams []types.TeamStat
			ok := f.Fetch(ctx, dashboard.EndpointTeamStats, &teams)

			Convey("Then the result is absent and exactly one error is logged", func() {
				So(ok, ShouldBeFalse)
				So(teams, ShouldBeNil)
				So(log.count("error"), ShouldEqual, 1)
			})
		})

		Convey("When the endpoint returns malformed JSON", func() {
			var players []types.PlayerRanking
			ok := f.Fetch(ctx, "broken", &players)

			Convey("Then the result is absent and exactly one error is logged", func() {
				So(ok, ShouldBeFalse)
				So(log.count("error"), ShouldEqual, 1)
			})
		})

		Convey("When the endpoint does not exist", func() {
			var players []types.PlayerRanking
			ok := f.Fetch(ctx, "missing", &players)

			Convey("Then the 404 is treated like any failure status", func() {
				So(ok, ShouldBeFalse)
				So(log.count("error"), ShouldEqual, 1)
			})
		})

		Convey("When the endpoint returns JSON null", func() {
			var players []types.PlayerRanking
			ok := f.Fetch(ctx, "nothing", &players)

			Convey("Then the fetch succeeds with no data", func() {
				So(ok, ShouldBeTrue)
				So(players, ShouldBeNil)
				So(log.count("error"), ShouldEqual, 0)
			})
		})

		Convey("When the endpoint is slower than the timeout", func() {
			var players []types.PlayerRanking
			ok := f.Fetch(ctx, "slow", &players)

			Convey("Then the fetch fails once without retrying", func() {
				So(ok, ShouldBeFalse)
				So(log.count("error"), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a fetcher pointed at a closed server", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		log := newCountingLogger()
		f := dashboard.NewFetcher(srv.URL, dashboard.WithFetcherLogger(log))

		Convey("When fetching", func() {
			var players []types.PlayerRanking
			ok := f.Fetch(context.Background(), dashboard.EndpointPlayerRankings, &players)

			Convey("Then the network error is logged once and swallowed", func() {
				So(ok, ShouldBeFalse)
				So(log.count("error"), ShouldEqual, 1)
			})
		})
	})
}
