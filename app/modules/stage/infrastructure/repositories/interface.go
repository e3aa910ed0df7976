package stagedb

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
)

// ErrNotFound indicates no stage content exists for the requested stage number.
var ErrNotFound = errors.New("stage not found")

// Repository defines the contract for stage content persistence.
type Repository interface {
	// GetByStageNum retrieves stage content by its natural key.
	GetByStageNum(ctx context.Context, db bun.IDB, stageNum int64) (*StageContent, error)

	// Upsert creates the row for content.StageNum or overwrites its
	// dialogue blob. Atomic: concurrent saves for the same stage number
	// never produce two rows.
	Upsert(ctx context.Context, db bun.IDB, content *StageContent) error
}
