// Package sqlengine provides the SQL implementation of the author store: the "fetch" stage of every query variant.
//
// It supports PostgreSQL through three database adapters (pgx.Pool, sql.DB, sqlx.DB) and SQLite
// through sql.DB. All SQL is built with goqu for the matching dialect.
//
// Two fetch strategies are offered:
//   - FetchAllAuthors loads every author with account, roles, books and publishers, without any filter.
//   - FetchTopAuthorRows pushes the country/age filter, the BooksCount ordering and the limit into SQL
//     and only projects the fields of the output records. The publication year is derived in SQL,
//     the year threshold is NOT applied there.
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := sqlengine.NewAuthorStoreFromPGXPool(db)
//
//	// With logging and metrics
//	store, _ := sqlengine.NewAuthorStoreFromPGXPool(
//		db,
//		sqlengine.WithLogger(slog.Default()),
//		sqlengine.WithMetrics(collector),
//	)
//
//	// SQLite
//	db, _ := sql.Open("sqlite3", path)
//	store, _ := sqlengine.NewAuthorStoreFromSQLite(db)
//
//	authorRows, bookRows, err := store.FetchTopAuthorRows(ctx)
package sqlengine
