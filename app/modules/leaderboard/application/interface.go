package leaderboardservice

import (
	"context"

	leaderboarddb "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/infrastructure/repositories"
)

// Service defines the contract for player progress operations.
type Service interface {
	// UpsertScore records a score submission for username, creating the
	// record on first sight and otherwise raising score and stage
	// independently when the submitted values are strictly greater.
	// The bool result reports whether a new record was created.
	UpsertScore(ctx context.Context, username string, score, stage int64) (*leaderboarddb.Leader, bool, error)

	// GetOrCreateProgress returns the record for username, creating a
	// zero-score one if it has never been seen. Idempotent.
	GetOrCreateProgress(ctx context.Context, username string) (*leaderboarddb.Leader, error)

	// Leaderboard returns records ordered by score descending. limit == 0
	// yields an empty sequence.
	Leaderboard(ctx context.Context, offset, limit int) ([]leaderboarddb.Leader, error)

	// GetUser retrieves a record by surrogate id.
	GetUser(ctx context.Context, id int64) (*leaderboarddb.Leader, error)

	// ReplaceUser unconditionally overwrites all fields of the record.
	ReplaceUser(ctx context.Context, id int64, username string, score, stage int64) (*leaderboarddb.Leader, error)

	// DeleteUser permanently removes the record.
	DeleteUser(ctx context.Context, id int64) error
}

var _ Service = (*ProgressService)(nil)
