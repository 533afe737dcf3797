package pgsql

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/SscSPs/trade_journal_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testDB wraps a pool connected to a throwaway PostgreSQL container.
type testDB struct {
	Pool      *pgxpool.Pool
	container testcontainers.Container
}

// setupTestDB starts PostgreSQL, applies the migrations and returns a connected pool.
func setupTestDB(t *testing.T) *testDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	tdb := &testDB{container: pgContainer}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tdb.cleanup(t)
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Get the migrations path relative to this file
	_, filename, _, _ := runtime.Caller(0)
	migrationsPath := filepath.Join(filepath.Dir(filename), "..", "..", "..", "..", "migrations")
	if _, err := database.RunMigrations(connStr, migrationsPath); err != nil {
		tdb.cleanup(t)
		t.Fatalf("failed to run migrations: %v", err)
	}

	tdb.Pool, err = database.NewPgxPool(ctx, connStr, true)
	if err != nil {
		tdb.cleanup(t)
		t.Fatalf("failed to connect to test database: %v", err)
	}
	return tdb
}

func (tdb *testDB) cleanup(t *testing.T) {
	t.Helper()
	database.ClosePgxPool(tdb.Pool)
	if tdb.container != nil {
		if err := tdb.container.Terminate(context.Background()); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	}
}

// truncateAll empties every table for test isolation.
func (tdb *testDB) truncateAll(t *testing.T) {
	t.Helper()
	_, err := tdb.Pool.Exec(context.Background(), `TRUNCATE TABLE journal_entry_images, journal_entries, users CASCADE`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
