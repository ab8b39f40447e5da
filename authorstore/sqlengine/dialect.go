package sqlengine

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

const (
	// DialectPostgres is the goqu dialect name for PostgreSQL.
	DialectPostgres = "postgres"

	// DialectSQLite is the goqu dialect name for SQLite.
	DialectSQLite = "sqlite3"
)

// dialect bundles the goqu dialect with the dialect-specific expression for the publication year.
type dialect struct {
	name   string
	yearOf func(column exp.IdentifierExpression) exp.LiteralExpression
}

func dialectFor(name string) (dialect, error) {
	switch name {
	case DialectPostgres:
		return dialect{
			name: DialectPostgres,
			yearOf: func(column exp.IdentifierExpression) exp.LiteralExpression {
				return goqu.L("EXTRACT(YEAR FROM ?)::integer", column)
			},
		}, nil

	case DialectSQLite:
		return dialect{
			name: DialectSQLite,
			// Dates are stored as text. The year is read as written, strftime would shift offset timestamps to UTC.
			yearOf: func(column exp.IdentifierExpression) exp.LiteralExpression {
				return goqu.L("CAST(substr(?, 1, 4) AS INTEGER)", column)
			},
		}, nil

	default:
		return dialect{}, authorstore.ErrUnsupportedDialect
	}
}

func (d dialect) builder() goqu.DialectWrapper {
	return goqu.Dialect(d.name)
}
