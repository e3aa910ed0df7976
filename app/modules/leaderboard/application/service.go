package leaderboardservice

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	leaderboarddb "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/infrastructure/repositories"
)

// ProgressService implements the Service interface.
type ProgressService struct {
	repo   leaderboarddb.Repository
	db     *bun.DB
	logger *slog.Logger
	tracer trace.Tracer
}

// NewProgressService creates a new ProgressService.
func NewProgressService(
	repo leaderboarddb.Repository,
	db *bun.DB,
	logger *slog.Logger,
	tracer trace.Tracer,
) *ProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("leaderboard")
	}
	return &ProgressService{
		repo:   repo,
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// runInTx ensures the operation runs within a single transaction so every
// exit path either fully commits or fully rolls back.
func (s *ProgressService) runInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
