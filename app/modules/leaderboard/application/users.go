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

// Administrative operations keyed by surrogate id.

// GetUser retrieves a record by id.
func (s *ProgressService) GetUser(ctx context.Context, id int64) (*leaderboarddb.Leader, error) {
	ctx, span := s.tracer.Start(ctx, "GetUser", trace.WithAttributes(attribute.Int64("id", id)))
	defer span.End()

	var leader *leaderboarddb.Leader
	err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		var txErr error
		leader, txErr = s.repo.GetByID(ctx, db, id)
		return txErr
	})
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrNotFound) {
			return nil, apperrors.NotFound("user %d not found", id)
		}
		return nil, fmt.Errorf("GetUser: %w", err)
	}
	return leader, nil
}

// ReplaceUser unconditionally overwrites username, score and stage. Unlike
// UpsertScore there is no field-by-field comparison.
func (s *ProgressService) ReplaceUser(ctx context.Context, id int64, username string, score, stage int64) (*leaderboarddb.Leader, error) {
	ctx, span := s.tracer.Start(ctx, "ReplaceUser", trace.WithAttributes(attribute.Int64("id", id)))
	defer span.End()

	if err := validateSubmission(username, score, stage); err != nil {
		return nil, err
	}

	leader := &leaderboarddb.Leader{
		ID:         id,
		Username:   username,
		Score:      score,
		Stage:      stage,
		LastUpdate: time.Now().UTC(),
	}
	err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		return s.repo.Update(ctx, db, leader)
	})
	if err != nil {
		switch {
		case errors.Is(err, leaderboarddb.ErrNotFound):
			return nil, apperrors.NotFound("user %d not found", id)
		case errors.Is(err, leaderboarddb.ErrUsernameTaken):
			return nil, apperrors.Conflict("username %q already taken", username)
		}
		return nil, fmt.Errorf("ReplaceUser: %w", err)
	}

	s.logger.InfoContext(ctx, "user replaced",
		slog.Int64("id", id),
		slog.String("username", username),
	)
	return leader, nil
}

// DeleteUser permanently removes the record.
func (s *ProgressService) DeleteUser(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "DeleteUser", trace.WithAttributes(attribute.Int64("id", id)))
	defer span.End()

	err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		return s.repo.Delete(ctx, db, id)
	})
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrNotFound) {
			return apperrors.NotFound("user %d not found", id)
		}
		return fmt.Errorf("DeleteUser: %w", err)
	}

	s.logger.InfoContext(ctx, "user deleted", slog.Int64("id", id))
	return nil
}
