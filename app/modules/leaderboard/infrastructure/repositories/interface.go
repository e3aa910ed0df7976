package leaderboarddb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for leader persistence. Every method takes
// an explicit db handle so callers control the transaction boundary; a nil
// handle falls back to the repository's default connection.
type Repository interface {
	// GetByID retrieves a leader by surrogate id.
	GetByID(ctx context.Context, db bun.IDB, id int64) (*Leader, error)

	// GetByUsername retrieves a leader by its natural key.
	GetByUsername(ctx context.Context, db bun.IDB, username string) (*Leader, error)

	// Insert creates a new leader row, yielding to any concurrent creation
	// of the same username. Returns false (and no error) if the row already
	// existed; the caller re-reads and continues as an update.
	Insert(ctx context.Context, db bun.IDB, leader *Leader) (bool, error)

	// Update overwrites the row identified by leader.ID.
	Update(ctx context.Context, db bun.IDB, leader *Leader) error

	// Delete removes a leader by id.
	Delete(ctx context.Context, db bun.IDB, id int64) error

	// List returns leaders ordered by score descending with a stable
	// tie-break, applying offset and limit.
	List(ctx context.Context, db bun.IDB, offset, limit int) ([]Leader, error)
}
