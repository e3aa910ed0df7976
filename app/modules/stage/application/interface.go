package stageservice

import (
	"context"

	stagedb "github.com/M8eight/socio-oprosnik/app/modules/stage/infrastructure/repositories"
)

// Service defines the contract for stage content operations.
type Service interface {
	// ReadStage returns the stored dialogue blob for stageNum, verbatim.
	ReadStage(ctx context.Context, stageNum int64) (*stagedb.StageContent, error)

	// SaveStage validates dialogueJSON and creates or overwrites the row
	// for stageNum, returning a human-readable confirmation.
	SaveStage(ctx context.Context, stageNum int64, dialogueJSON string) (string, error)
}

var _ Service = (*StageService)(nil)
