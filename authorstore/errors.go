package authorstore

import "errors"

// ErrDataSource marks every failure at the data-source boundary: opening, querying, scanning, closing.
// It is always joined with a more specific sentinel and the cause, so errors.Is works for all three.
var ErrDataSource = errors.New("data source error")

var (
	// ErrNilDatabaseConnection is returned when a store is built over a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when a table name option is empty.
	ErrEmptyTableName = errors.New("table name must not be empty")

	// ErrUnsupportedDialect is returned for an SQL dialect the store cannot build queries for.
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")

	// ErrReplicaRequiresPGXPool is returned when a read replica is configured for a non-pgx connection.
	ErrReplicaRequiresPGXPool = errors.New("a read replica is only supported with a pgx pool")

	// ErrBuildingQueryFailed is returned when the SQL builder fails.
	ErrBuildingQueryFailed = errors.New("building the query failed")

	// ErrQueryingAuthorsFailed is returned when a query against the data source fails.
	ErrQueryingAuthorsFailed = errors.New("querying authors failed")

	// ErrScanningDBRowFailed is returned when a result row cannot be scanned.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")

	// ErrIncompleteAuthorRecord is returned when a required association (account, publisher) is missing.
	// The schema forbids this, so it signals corrupted source data and is NOT a data-source error.
	ErrIncompleteAuthorRecord = errors.New("author record is incomplete")
)

// IsDataSourceError reports whether err originates from the data-source boundary.
func IsDataSourceError(err error) bool {
	return errors.Is(err, ErrDataSource)
}

// NewDataSourceError joins ErrDataSource with a specific sentinel and its cause.
func NewDataSourceError(sentinel error, cause error) error {
	return errors.Join(ErrDataSource, sentinel, cause)
}
