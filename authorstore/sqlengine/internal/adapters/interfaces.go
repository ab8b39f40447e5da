package adapters

import "context"

// Querier runs one fully rendered read statement. goqu interpolates all values, so there are no arguments.
type Querier interface {
	Query(ctx context.Context, query string) (Rows, error)
}

// Rows is the cursor the store scans. Err must be checked after Next returns false,
// it carries failures such as a context canceled mid-iteration.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}
