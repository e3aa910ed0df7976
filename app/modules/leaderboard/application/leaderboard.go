package leaderboardservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	leaderboarddb "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/infrastructure/repositories"
	"github.com/M8eight/socio-oprosnik/app/shared/apperrors"
)

// Leaderboard returns records ordered by score descending with a stable
// tie-break. limit == 0 means "nothing", not "everything".
func (s *ProgressService) Leaderboard(ctx context.Context, offset, limit int) ([]leaderboarddb.Leader, error) {
	ctx, span := s.tracer.Start(ctx, "Leaderboard", trace.WithAttributes(
		attribute.Int("offset", offset),
		attribute.Int("limit", limit),
	))
	defer span.End()

	if offset < 0 {
		return nil, apperrors.InvalidInput("skip must not be negative")
	}
	if limit < 0 {
		return nil, apperrors.InvalidInput("limit must not be negative")
	}
	if limit == 0 {
		return []leaderboarddb.Leader{}, nil
	}

	var leaders []leaderboarddb.Leader
	err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		var txErr error
		leaders, txErr = s.repo.List(ctx, db, offset, limit)
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("Leaderboard: %w", err)
	}
	return leaders, nil
}
