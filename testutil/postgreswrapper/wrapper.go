package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/schema"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/sqlengine"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/config"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/internal/seed"
)

// Dialect is the dialect name of the databases wrapped here.
const Dialect = "postgres"

const pingTimeout = 2 * time.Second

// Wrapper abstracts over the different adapter types.
type Wrapper interface {
	AuthorStore() *sqlengine.AuthorStore

	// DB is a database/sql handle on the same database, used for migrations and fixtures.
	DB() *sql.DB

	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing.
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	db    *sql.DB
	store *sqlengine.AuthorStore
}

func (w *PGXPoolWrapper) AuthorStore() *sqlengine.AuthorStore { return w.store }
func (w *PGXPoolWrapper) DB() *sql.DB                         { return w.db }

func (w *PGXPoolWrapper) Close() {
	_ = w.db.Close()
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing.
type SQLDBWrapper struct {
	db    *sql.DB
	store *sqlengine.AuthorStore
}

func (w *SQLDBWrapper) AuthorStore() *sqlengine.AuthorStore { return w.store }
func (w *SQLDBWrapper) DB() *sql.DB                         { return w.db }

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing.
type SQLXWrapper struct {
	db    *sqlx.DB
	store *sqlengine.AuthorStore
}

func (w *SQLXWrapper) AuthorStore() *sqlengine.AuthorStore { return w.store }
func (w *SQLXWrapper) DB() *sql.DB                         { return w.db.DB }

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig connects to the test database with the adapter from ADAPTER_TYPE,
// migrates it, and replaces its content with the dataset.
// The test is skipped when the database is unreachable. The wrapper is closed when the test ends.
func CreateWrapperWithTestConfig(t testing.TB, dataset seed.Dataset, options ...sqlengine.Option) Wrapper {
	t.Helper()

	skipIfUnreachable(t)

	wrapper := createWrapper(t, options)
	t.Cleanup(wrapper.Close)

	ctx := context.Background()
	require.NoError(t, schema.MigrateUp(wrapper.DB(), Dialect), "error migrating the test database")
	require.NoError(t, seed.Reset(ctx, wrapper.DB(), Dialect), "error cleaning up the test database")
	require.NoError(t, seed.Insert(ctx, wrapper.DB(), Dialect, dataset), "error inserting fixture data")

	return wrapper
}

func createWrapper(t testing.TB, options []sqlengine.Option) Wrapper {
	ctx := context.Background()
	adapterTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch adapterTypeFromEnv {
	case config.DriverPGXPool, "":
		poolConfig, err := config.PostgresPGXPoolConfig(config.PostgresTestDSN())
		require.NoError(t, err, "error configuring the DB pool in test setup")

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		require.NoError(t, err, "error connecting to DB pool in test setup")

		store, err := sqlengine.NewAuthorStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating the author store")

		return &PGXPoolWrapper{pool: pool, db: stdlib.OpenDBFromPool(pool), store: store}

	case config.DriverSQLDB:
		db, err := config.PostgresSQLDBConfig(ctx, config.PostgresTestDSN())
		require.NoError(t, err, "error connecting to DB in test setup")

		store, err := sqlengine.NewAuthorStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating the author store")

		return &SQLDBWrapper{db: db, store: store}

	case config.DriverSQLXDB:
		db, err := config.PostgresSQLXConfig(ctx, config.PostgresTestDSN())
		require.NoError(t, err, "error connecting to DB in test setup")

		store, err := sqlengine.NewAuthorStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating the author store")

		return &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterTypeFromEnv))
	}
}

func skipIfUnreachable(t testing.TB) {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	db, err := sql.Open("postgres", config.PostgresTestDSN())
	if err != nil {
		t.Skipf("postgres test database not available: %v", err)
	}

	defer func() {
		_ = db.Close()
	}()

	if err = db.PingContext(ctx); err != nil {
		t.Skipf("postgres test database not available: %v", err)
	}
}
