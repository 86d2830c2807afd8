package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/chantier/internal/db"
)

// NewTestDB opens an in-memory planning database with the schema applied.
// It is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// NewTestFileDB opens a WAL database file in a temp directory. Unlike
// :memory: it is shared by every pooled connection, so concurrent readers
// and writers really overlap.
func NewTestFileDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "chantier_test.db"))
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewRetryingTestUoW wraps NewTestUoW with busy retries and no delay.
func NewRetryingTestUoW(database *sql.DB, attempts uint) db.UnitOfWork {
	return db.NewRetryingUnitOfWork(db.NewSQLiteUnitOfWork(database), attempts, 0, nil)
}
