package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/application"
	leaderboarddb "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/infrastructure/repositories"
)

// FakeService stubs the progress service; each method panics unless its
// *Func field is set.
type FakeService struct {
	UpsertScoreFunc         func(ctx context.Context, username string, score, stage int64) (*leaderboarddb.Leader, bool, error)
	GetOrCreateProgressFunc func(ctx context.Context, username string) (*leaderboarddb.Leader, error)
	LeaderboardFunc         func(ctx context.Context, offset, limit int) ([]leaderboarddb.Leader, error)
	GetUserFunc             func(ctx context.Context, id int64) (*leaderboarddb.Leader, error)
	ReplaceUserFunc         func(ctx context.Context, id int64, username string, score, stage int64) (*leaderboarddb.Leader, error)
	DeleteUserFunc          func(ctx context.Context, id int64) error
}

func (f *FakeService) UpsertScore(ctx context.Context, username string, score, stage int64) (*leaderboarddb.Leader, bool, error) {
	return f.UpsertScoreFunc(ctx, username, score, stage)
}

func (f *FakeService) GetOrCreateProgress(ctx context.Context, username string) (*leaderboarddb.Leader, error) {
	return f.GetOrCreateProgressFunc(ctx, username)
}

func (f *FakeService) Leaderboard(ctx context.Context, offset, limit int) ([]leaderboarddb.Leader, error) {
	return f.LeaderboardFunc(ctx, offset, limit)
}

func (f *FakeService) GetUser(ctx context.Context, id int64) (*leaderboarddb.Leader, error) {
	return f.GetUserFunc(ctx, id)
}

func (f *FakeService) ReplaceUser(ctx context.Context, id int64, username string, score, stage int64) (*leaderboarddb.Leader, error) {
	return f.ReplaceUserFunc(ctx, id, username, score, stage)
}

func (f *FakeService) DeleteUser(ctx context.Context, id int64) error {
	return f.DeleteUserFunc(ctx, id)
}

var _ leaderboardservice.Service = (*FakeService)(nil)
