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

// UpsertScore records a score submission. Score and stage only ever move up:
// each field is raised independently when the submitted value is strictly
// greater than the stored one, and the row is written at most once per call.
func (s *ProgressService) UpsertScore(ctx context.Context, username string, score, stage int64) (*leaderboarddb.Leader, bool, error) {
	ctx, span := s.tracer.Start(ctx, "UpsertScore", trace.WithAttributes(
		attribute.String("username", username),
		attribute.Int64("score", score),
	))
	defer span.End()

	if err := validateSubmission(username, score, stage); err != nil {
		return nil, false, err
	}

	var (
		leader  *leaderboarddb.Leader
		created bool
	)
	err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		var txErr error
		leader, created, txErr = s.upsertScoreTx(ctx, db, username, score, stage)
		return txErr
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "score submission failed",
			slog.String("username", username),
			slog.Any("error", err),
		)
		return nil, false, fmt.Errorf("UpsertScore: %w", err)
	}

	s.logger.InfoContext(ctx, "score submitted",
		slog.String("username", username),
		slog.Int64("score", leader.Score),
		slog.Int64("stage", leader.Stage),
		slog.Bool("created", created),
	)
	return leader, created, nil
}

func (s *ProgressService) upsertScoreTx(ctx context.Context, db bun.IDB, username string, score, stage int64) (*leaderboarddb.Leader, bool, error) {
	existing, err := s.repo.GetByUsername(ctx, db, username)
	switch {
	case errors.Is(err, leaderboarddb.ErrNotFound):
		fresh := &leaderboarddb.Leader{
			Username:   username,
			Score:      score,
			Stage:      stage,
			LastUpdate: time.Now().UTC(),
		}
		inserted, insErr := s.repo.Insert(ctx, db, fresh)
		if insErr != nil {
			return nil, false, insErr
		}
		if inserted {
			return fresh, true, nil
		}
		// Lost the creation race; the winner's row exists now, so fall
		// through and treat this call as an update.
		existing, err = s.repo.GetByUsername(ctx, db, username)
		if err != nil {
			return nil, false, err
		}
	case err != nil:
		return nil, false, err
	}

	changed := false
	if score > existing.Score {
		existing.Score = score
		changed = true
	}
	if stage > existing.Stage {
		existing.Stage = stage
		changed = true
	}
	if !changed {
		return existing, false, nil
	}

	existing.LastUpdate = time.Now().UTC()
	if err := s.repo.Update(ctx, db, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func validateSubmission(username string, score, stage int64) error {
	if username == "" {
		return apperrors.InvalidInput("username must not be empty")
	}
	if score < 0 {
		return apperrors.InvalidInput("score must not be negative")
	}
	if stage < 0 {
		return apperrors.InvalidInput("stage must not be negative")
	}
	return nil
}
