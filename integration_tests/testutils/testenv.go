// Package testutils provisions a real Postgres-backed environment for
// integration tests. Suites are skipped unless RUN_INTEGRATION_TESTS=true.
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	"github.com/M8eight/socio-oprosnik/db/bundb"
	"github.com/M8eight/socio-oprosnik/integration_tests/containers"
)

// TestEnvironment bundles the container-backed database shared by a suite.
type TestEnvironment struct {
	DB        *bun.DB
	DBService *bundb.DBService
	Logger    *slog.Logger

	container *postgres.PostgresContainer
}

// NewTestEnvironment starts a Postgres container, connects through the pgx
// stdlib driver and bootstraps the schema.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	container, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	sqldb, err := sql.Open("pgx", dsn)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqldb.SetMaxOpenConns(8)

	db := bundb.BunDB(sqldb)
	if err := bundb.BootstrapSchema(ctx, db); err != nil {
		db.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	return &TestEnvironment{
		DB:        db,
		DBService: bundb.NewDBService(db),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		container: container,
	}, nil
}

// Cleanup closes the database and terminates the container.
func (env *TestEnvironment) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if env.DB != nil {
		env.DB.Close()
	}
	if env.container != nil {
		env.container.Terminate(ctx)
	}
}

// TruncateTables resets the data between tests while keeping the schema.
func (env *TestEnvironment) TruncateTables(ctx context.Context) error {
	for _, table := range []string{"leaders", "vn_stages"} {
		if _, err := env.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// RequireIntegration skips the calling test unless integration runs are
// explicitly enabled.
func RequireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("skipping integration test; set RUN_INTEGRATION_TESTS=true to run")
	}
}
