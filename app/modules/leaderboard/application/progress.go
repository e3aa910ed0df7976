package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	leaderboarddb "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/infrastructure/repositories"
	"github.com/M8eight/socio-oprosnik/app/shared/apperrors"
)

// GetOrCreateProgress returns the record for username, creating one with
// zero score and stage if the username has never been seen. Two concurrent
// calls for the same unseen username end up with exactly one row: the insert
// yields on the unique constraint and the loser re-reads the winner's row.
func (s *ProgressService) GetOrCreateProgress(ctx context.Context, username string) (*leaderboarddb.Leader, error) {
	ctx, span := s.tracer.Start(ctx, "GetOrCreateProgress", trace.WithAttributes(
		attribute.String("username", username),
	))
	defer span.End()

	if username == "" {
		return nil, apperrors.InvalidInput("username must not be empty")
	}

	var leader *leaderboarddb.Leader
	err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		var txErr error
		leader, txErr = s.getOrCreateProgressTx(ctx, db, username)
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("GetOrCreateProgress: %w", err)
	}
	return leader, nil
}

func (s *ProgressService) getOrCreateProgressTx(ctx context.Context, db bun.IDB, username string) (*leaderboarddb.Leader, error) {
	leader, err := s.repo.GetByUsername(ctx, db, username)
	if err == nil {
		return leader, nil
	}
	if !errors.Is(err, leaderboarddb.ErrNotFound) {
		return nil, err
	}

	fresh := &leaderboarddb.Leader{
		Username:   username,
		LastUpdate: time.Now().UTC(),
	}
	inserted, err := s.repo.Insert(ctx, db, fresh)
	if err != nil {
		return nil, err
	}
	if inserted {
		s.logger.InfoContext(ctx, "created initial progress record",
			slog.String("username", username),
		)
		return fresh, nil
	}

	// A concurrent call created the row between our read and insert.
	return s.repo.GetByUsername(ctx, db, username)
}
