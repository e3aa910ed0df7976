package stagedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new stage content repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetByStageNum retrieves stage content by its natural key.
func (r *Impl) GetByStageNum(ctx context.Context, db bun.IDB, stageNum int64) (*StageContent, error) {
	db = r.resolveDB(db)
	content := new(StageContent)
	err := db.NewSelect().
		Model(content).
		Where("stage_num = ?", stageNum).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get stage content: %w", err)
	}
	return content, nil
}

// Upsert creates or overwrites the dialogue blob for content.StageNum.
func (r *Impl) Upsert(ctx context.Context, db bun.IDB, content *StageContent) error {
	db = r.resolveDB(db)
	content.UpdatedAt = time.Now().UTC()
	_, err := db.NewInsert().
		Model(content).
		On("CONFLICT (stage_num) DO UPDATE").
		Set("dialogue_json = EXCLUDED.dialogue_json").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert stage content: %w", err)
	}
	return nil
}
