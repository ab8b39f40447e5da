// Package sqlitedb creates migrated SQLite databases for hermetic tests and benchmarks.
package sqlitedb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/schema"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/config"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/internal/seed"
)

// Dialect is the dialect name of the databases created here.
const Dialect = "sqlite3"

// New creates an empty, migrated SQLite database in a temp dir. It is closed when the test ends.
func New(t testing.TB) *sql.DB {
	t.Helper()

	db, err := config.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "authors.db"))
	require.NoError(t, err, "error opening the sqlite test database")

	t.Cleanup(func() {
		_ = db.Close() // makes no sense to handle this
	})

	require.NoError(t, schema.MigrateUp(db, Dialect), "error migrating the sqlite test database")

	return db
}

// NewWithDataset creates a migrated SQLite database and inserts the dataset.
func NewWithDataset(t testing.TB, dataset seed.Dataset) *sql.DB {
	t.Helper()

	db := New(t)
	require.NoError(t, seed.Insert(context.Background(), db, Dialect, dataset), "error inserting fixture data")

	return db
}
