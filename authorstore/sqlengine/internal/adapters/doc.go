// Package adapters provide the database adapter implementations for the SQL author store.
//
// The store only ever needs read queries, so each adapter exposes a single Query method
// over pgx.Pool, sql.DB or sqlx.DB. SQLite connections go through the sql.DB adapter.
package adapters
