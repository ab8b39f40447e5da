// Package postgreswrapper runs author store tests against PostgreSQL with the adapter chosen by ADAPTER_TYPE.
//
// Supported values are "pgx.pool" (the default), "sql.db", and "sqlx.db".
// Tests are skipped when the test database is not reachable, so the hermetic SQLite tests
// remain the baseline and PostgreSQL coverage comes on top when a database is running:
//
//	ADAPTER_TYPE=sqlx.db go test ./...
package postgreswrapper
