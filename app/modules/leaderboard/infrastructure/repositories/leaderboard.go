package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new leader repository.
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

// GetByID retrieves a leader by surrogate id.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id int64) (*Leader, error) {
	db = r.resolveDB(db)
	leader := new(Leader)
	err := db.NewSelect().
		Model(leader).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get leader by id: %w", err)
	}
	return leader, nil
}

// GetByUsername retrieves a leader by its natural key.
func (r *Impl) GetByUsername(ctx context.Context, db bun.IDB, username string) (*Leader, error) {
	db = r.resolveDB(db)
	leader := new(Leader)
	err := db.NewSelect().
		Model(leader).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get leader by username: %w", err)
	}
	return leader, nil
}

// Insert creates a new leader row. ON CONFLICT DO NOTHING keeps a lost
// creation race from aborting the surrounding transaction: the insert simply
// affects zero rows, and the caller re-reads the winner's row.
func (r *Impl) Insert(ctx context.Context, db bun.IDB, leader *Leader) (bool, error) {
	db = r.resolveDB(db)
	res, err := db.NewInsert().
		Model(leader).
		On("CONFLICT (username) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert leader: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected after insert: %w", err)
	}
	return rows == 1, nil
}

// Update overwrites the row identified by leader.ID.
func (r *Impl) Update(ctx context.Context, db bun.IDB, leader *Leader) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model(leader).
		WherePK().
		Exec(ctx)
	if err != nil {
		if isIntegrityViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to update leader: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after update: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a leader by id.
func (r *Impl) Delete(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Leader)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete leader: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after delete: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns leaders ordered by score descending. Ties break on id so the
// ordering is stable across identical queries.
func (r *Impl) List(ctx context.Context, db bun.IDB, offset, limit int) ([]Leader, error) {
	db = r.resolveDB(db)
	leaders := make([]Leader, 0)
	err := db.NewSelect().
		Model(&leaders).
		OrderExpr("score DESC, id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaders: %w", err)
	}
	return leaders, nil
}

// isIntegrityViolation reports whether err is a Postgres integrity constraint
// violation (class 23).
func isIntegrityViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.IntegrityViolation()
}
