package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	leaderboarddb "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/infrastructure/repositories"
	stagedb "github.com/M8eight/socio-oprosnik/app/modules/stage/infrastructure/repositories"
	"github.com/M8eight/socio-oprosnik/config"
)

// DBService bundles the repositories with the underlying connection pool.
type DBService struct {
	LeaderDB leaderboarddb.Repository
	StageDB  stagedb.Repository
	db       *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService initializes a new DBService with the provided Postgres configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewDBService(BunDB(sqldb)), nil
}

// NewDBService wraps an existing bun.DB. Used by tests that manage their own
// connection.
func NewDBService(db *bun.DB) *DBService {
	return &DBService{
		LeaderDB: leaderboarddb.NewRepository(db),
		StageDB:  stagedb.NewRepository(db),
		db:       db,
	}
}

// BunDB returns a new bun.DB for a given sql.DB connection pool.
func BunDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

func pgConn(dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}

// BootstrapSchema creates the leaders and vn_stages tables if they do not
// exist. The unique constraints on username and stage_num come from the model
// tags and are the final backstop against duplicate rows under concurrency.
func BootstrapSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*leaderboarddb.Leader)(nil),
		(*stagedb.StageContent)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}
	return nil
}
