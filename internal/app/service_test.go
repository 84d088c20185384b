package service_test

import (
	"context"
	"errors"
	"testing"

	repository "github.com/okian/courtside/internal/adapters/repository"
	service "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

type fakeStore struct {
	players   []types.PlayerRanking
	teams     []types.TeamStat
	err       error
	lastLimit int
}

func (f *fakeStore) PlayerRankings(_ context.Context, limit int) ([]types.PlayerRanking, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.players) > limit {
		return f.players[:limit], nil
	}
	return f.players, nil
}

func (f *fakeStore) TeamStats(context.Context) ([]types.TeamStat, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.teams, nil
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithStore(&fakeStore{}), service.WithLogger(logger.Discard()))
		ctx := context.Background()

		Convey("When reading before Start", func() {
			_, err := svc.TeamStats(ctx)

			Convey("Then ErrNotStarted is returned", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil) // idempotent

			Convey("Then it should be marked as started", func() {
				So(svc.GetStats()["started"], ShouldEqual, true)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Datasets(t *testing.T) {
	Convey("Given a started service over a store", t, func() {
		store := &fakeStore{
			players: make([]types.PlayerRanking, 80),
			teams:   []types.TeamStat{{Team: "BOS", TeamScore: 14.2}},
		}
		svc := service.New(
			service.WithStore(store),
			service.WithRankingsLimit(50),
			service.WithLogger(logger.Discard()),
		)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When reading player rankings", func() {
			rows, err := svc.PlayerRankings(ctx, 0)

			Convey("Then the configured limit is applied", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 50)
				So(store.lastLimit, ShouldEqual, 50)
				So(svc.RankingsLimit(), ShouldEqual, 50)
			})
		})

		Convey("When asking for fewer or more rows than the limit", func() {
			few, err := svc.PlayerRankings(ctx, 10)
			So(err, ShouldBeNil)
			many, err := svc.PlayerRankings(ctx, 500)
			So(err, ShouldBeNil)

			Convey("Then the request is clamped to the limit", func() {
				So(few, ShouldHaveLength, 10)
				So(many, ShouldHaveLength, 50)
			})
		})

		Convey("When reading team stats", func() {
			rows, err := svc.TeamStats(ctx)

			Convey("Then every team is returned", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldResemble, store.teams)
			})
		})

		Convey("When the store fails", func() {
			store.err = repository.ErrNotFound
			_, err := svc.PlayerRankings(ctx, 0)

			Convey("Then the error is returned and counted", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(svc.GetStats()["loadFailures"], ShouldEqual, int64(1))
				So(svc.GetStats()["playerRequests"], ShouldEqual, int64(1))
			})
		})
	})
}

func TestService_DefaultFileStore(t *testing.T) {
	Convey("Given a service over an analyzed directory", t, func() {
		dir := t.TempDir()
		ctx := context.Background()
		fs := repository.NewFileStore(dir)
		So(fs.SaveAnalysis(ctx, []types.PlayerRanking{{}}, []types.TeamStat{{Team: "DEN"}}, types.Manifest{RunID: "r1", Players: 1, Teams: 1}), ShouldBeNil)

		svc := service.New(service.WithDataDir(dir), service.WithLogger(logger.Discard()))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Then it reads from the file store and reports the last analysis", func() {
			teams, err := svc.TeamStats(ctx)
			So(err, ShouldBeNil)
			So(teams[0].Team, ShouldEqual, "DEN")

			stats := svc.GetStats()
			So(stats["dataDir"], ShouldEqual, dir)
			manifest, ok := stats["lastAnalysis"].(types.Manifest)
			So(ok, ShouldBeTrue)
			So(manifest.RunID, ShouldEqual, "r1")
		})
	})
}
