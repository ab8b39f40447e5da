// Package schema holds the table definitions of the author store as embedded migrations, one set per SQL dialect.
//
// Accounts and publishers are NOT NULL foreign keys: an author always has an account
// and a book always has a publisher.
package schema

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrations embed.FS

// ErrMigrationFailed is returned when the migrations cannot be prepared or applied.
var ErrMigrationFailed = errors.New("schema migration failed")

// MigrateUp applies all pending migrations for the dialect ("postgres" or "sqlite3").
// An up-to-date schema is not an error.
//
// The database handle stays open, closing it is up to the caller.
func MigrateUp(db *sql.DB, dialect string) error {
	if db == nil {
		return authorstore.ErrNilDatabaseConnection
	}

	driver, err := driverFor(db, dialect)
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, "migrations/"+dialect)
	if err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	// m.Close would also close db, so only the source is closed.
	defer func() { _ = source.Close() }()

	m, err := migrate.NewWithInstance("iofs", source, dialect, driver)
	if err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Join(ErrMigrationFailed, err)
	}

	return nil
}

func driverFor(db *sql.DB, dialect string) (database.Driver, error) {
	var (
		driver database.Driver
		err    error
	)

	switch dialect {
	case dialectPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case dialectSQLite:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		return nil, authorstore.ErrUnsupportedDialect
	}

	if err != nil {
		return nil, errors.Join(ErrMigrationFailed, err)
	}

	return driver, nil
}
