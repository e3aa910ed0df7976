package stageservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	stagedb "github.com/M8eight/socio-oprosnik/app/modules/stage/infrastructure/repositories"
	"github.com/M8eight/socio-oprosnik/app/shared/apperrors"
)

// StageService implements the Service interface.
type StageService struct {
	repo   stagedb.Repository
	db     *bun.DB
	logger *slog.Logger
	tracer trace.Tracer
}

// NewStageService creates a new StageService.
func NewStageService(
	repo stagedb.Repository,
	db *bun.DB,
	logger *slog.Logger,
	tracer trace.Tracer,
) *StageService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("stage")
	}
	return &StageService{
		repo:   repo,
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// ReadStage returns the stored dialogue blob for stageNum, verbatim.
func (s *StageService) ReadStage(ctx context.Context, stageNum int64) (*stagedb.StageContent, error) {
	ctx, span := s.tracer.Start(ctx, "ReadStage", trace.WithAttributes(
		attribute.Int64("stage_num", stageNum),
	))
	defer span.End()

	if stageNum < 1 {
		return nil, apperrors.InvalidInput("stage_num must be positive")
	}

	var content *stagedb.StageContent
	err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		var txErr error
		content, txErr = s.repo.GetByStageNum(ctx, db, stageNum)
		return txErr
	})
	if err != nil {
		if errors.Is(err, stagedb.ErrNotFound) {
			return nil, apperrors.NotFound("stage %d not found", stageNum)
		}
		return nil, fmt.Errorf("ReadStage: %w", err)
	}
	return content, nil
}

// SaveStage validates that dialogueJSON is syntactically valid JSON and then
// creates or overwrites the row for stageNum. The store is never touched with
// a malformed blob. Returns a human-readable confirmation for admin tooling.
func (s *StageService) SaveStage(ctx context.Context, stageNum int64, dialogueJSON string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "SaveStage", trace.WithAttributes(
		attribute.Int64("stage_num", stageNum),
	))
	defer span.End()

	if stageNum < 1 {
		return "", apperrors.InvalidInput("stage_num must be positive")
	}
	if !json.Valid([]byte(dialogueJSON)) {
		return "", apperrors.InvalidInput("malformed JSON in dialogue_json")
	}

	var created bool
	err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		_, getErr := s.repo.GetByStageNum(ctx, db, stageNum)
		switch {
		case errors.Is(getErr, stagedb.ErrNotFound):
			created = true
		case getErr != nil:
			return getErr
		}
		return s.repo.Upsert(ctx, db, &stagedb.StageContent{
			StageNum:     stageNum,
			DialogueJSON: dialogueJSON,
		})
	})
	if err != nil {
		return "", fmt.Errorf("SaveStage: %w", err)
	}

	s.logger.InfoContext(ctx, "stage content saved",
		slog.Int64("stage_num", stageNum),
		slog.Bool("created", created),
		slog.Int("bytes", len(dialogueJSON)),
	)
	if created {
		return fmt.Sprintf("stage %d created", stageNum), nil
	}
	return fmt.Sprintf("stage %d updated", stageNum), nil
}

// runInTx ensures the operation runs within a single transaction.
func (s *StageService) runInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
