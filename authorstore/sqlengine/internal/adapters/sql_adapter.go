package adapters

import (
	"context"
	"database/sql"
)

// *sql.Rows is a Rows as is.
var _ Rows = (*sql.Rows)(nil)

// SQLAdapter reads through a database/sql pool, used for lib/pq and mattn/go-sqlite3 connections.
type SQLAdapter struct {
	db *sql.DB
}

func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

func (a *SQLAdapter) Query(ctx context.Context, query string) (Rows, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
