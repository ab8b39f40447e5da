package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// *sqlx.Rows embeds *sql.Rows, which makes it a Rows too.
var _ Rows = (*sqlx.Rows)(nil)

// SQLXAdapter reads through an sqlx pool.
type SQLXAdapter struct {
	db *sqlx.DB
}

func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

// Query returns the sqlx rows without a wrapper. The store scans positionally, so the struct mapping of sqlx stays unused.
func (a *SQLXAdapter) Query(ctx context.Context, query string) (Rows, error) {
	rows, err := a.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
