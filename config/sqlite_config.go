package config

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// OpenSQLite opens and pings a SQLite database file, creating it if needed.
//
// SQLite serializes writers, so the pool is capped at a single open connection.
// Foreign keys are enforced.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	const maxOpenConnections = 1

	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, connectionFailed(err)
	}

	db.SetMaxOpenConns(maxOpenConnections)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, connectionFailed(pingErr)
	}

	return db, nil
}
