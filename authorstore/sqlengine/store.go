package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/sqlengine/internal/adapters"
)

// Logger is an alias for authorstore.Logger, so callers of this package need no second import.
type Logger = authorstore.Logger

// ContextualLogger is an alias for authorstore.ContextualLogger.
type ContextualLogger = authorstore.ContextualLogger

// MetricsCollector is an alias for authorstore.MetricsCollector.
type MetricsCollector = authorstore.MetricsCollector

// TracingCollector is an alias for authorstore.TracingCollector.
type TracingCollector = authorstore.TracingCollector

// AuthorStore reads authors and books from an SQL database.
// It is safe for concurrent use when the underlying connection pool is.
type AuthorStore struct {
	db               adapters.Querier
	dialect          dialect
	tables           TableNames
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	replicaPool      *pgxpool.Pool
}

// NewAuthorStoreFromPGXPool creates a new AuthorStore for PostgreSQL using a pgx Pool.
// With WithReplicaPool, fetches run on the replica when the context asks for eventual consistency.
func NewAuthorStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*AuthorStore, error) {
	if db == nil {
		return nil, authorstore.ErrNilDatabaseConnection
	}

	store, err := newAuthorStore(nil, DialectPostgres, options)
	if err != nil {
		return nil, err
	}

	if store.replicaPool != nil {
		store.db = adapters.NewPGXAdapterWithReplica(db, store.replicaPool)
	} else {
		store.db = adapters.NewPGXAdapter(db)
	}

	return store, nil
}

// NewAuthorStoreFromSQLDB creates a new AuthorStore for PostgreSQL using a database/sql DB.
func NewAuthorStoreFromSQLDB(db *sql.DB, options ...Option) (*AuthorStore, error) {
	if db == nil {
		return nil, authorstore.ErrNilDatabaseConnection
	}

	return newAuthorStore(adapters.NewSQLAdapter(db), DialectPostgres, options)
}

// NewAuthorStoreFromSQLX creates a new AuthorStore for PostgreSQL using a sqlx DB.
func NewAuthorStoreFromSQLX(db *sqlx.DB, options ...Option) (*AuthorStore, error) {
	if db == nil {
		return nil, authorstore.ErrNilDatabaseConnection
	}

	return newAuthorStore(adapters.NewSQLXAdapter(db), DialectPostgres, options)
}

// NewAuthorStoreFromSQLite creates a new AuthorStore for a SQLite database opened with the sqlite3 driver.
func NewAuthorStoreFromSQLite(db *sql.DB, options ...Option) (*AuthorStore, error) {
	if db == nil {
		return nil, authorstore.ErrNilDatabaseConnection
	}

	return newAuthorStore(adapters.NewSQLAdapter(db), DialectSQLite, options)
}

func newAuthorStore(db adapters.Querier, dialectName string, options []Option) (*AuthorStore, error) {
	d, err := dialectFor(dialectName)
	if err != nil {
		return nil, err
	}

	// The pgx constructor passes no adapter, it wires one after the options are known.
	isPGX := db == nil

	store := &AuthorStore{
		db:      db,
		dialect: d,
		tables:  DefaultTableNames(),
	}

	for _, option := range options {
		if err := option(store); err != nil {
			return nil, err
		}
	}

	if store.replicaPool != nil && !isPGX {
		return nil, authorstore.ErrReplicaRequiresPGXPool
	}

	return store, nil
}

// Dialect returns the name of the SQL dialect the store builds queries for.
func (s *AuthorStore) Dialect() string {
	return s.dialect.name
}

// FetchAllAuthors returns every author with account, account roles, books, and publishers loaded.
//
// No author policy is applied: this is the naive fetch whose cost
// grows with the total number of authors and books. Authors are returned in id order,
// books per author in id order.
//
// Every failure at the data-source boundary is returned as an authorstore.ErrDataSource error.
// An author without account or a book without publisher yields authorstore.ErrIncompleteAuthorRecord.
func (s *AuthorStore) FetchAllAuthors(ctx context.Context) ([]authorstore.Author, error) {
	observer, ctx := s.observeFetch(ctx, spanNameFetchAllAuthors, operationFetchAllAuthors)

	authorsQuery, err := s.buildAllAuthorsQuery()
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrOperation, operationFetchAllAuthors)
		return nil, observer.failure(authorstore.NewDataSourceError(authorstore.ErrBuildingQueryFailed, err))
	}

	rolesQuery, err := s.buildAccountRolesQuery()
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrOperation, operationFetchAllAuthors)
		return nil, observer.failure(authorstore.NewDataSourceError(authorstore.ErrBuildingQueryFailed, err))
	}

	folder := newAuthorGraphFolder()
	if err = s.queryRows(ctx, authorsQuery, operationFetchAllAuthors, folder.scanRow); err != nil {
		return nil, observer.failure(err)
	}

	rolesByAccount := make(map[int64][]authorstore.AccountRole)
	scanRole := func(rows adapters.Rows) error {
		role, scanErr := scanAccountRole(rows)
		if scanErr != nil {
			return scanErr
		}

		rolesByAccount[role.AccountID] = append(rolesByAccount[role.AccountID], role)

		return nil
	}

	if err = s.queryRows(ctx, rolesQuery, operationFetchAllAuthors, scanRole); err != nil {
		return nil, observer.failure(err)
	}

	authors := folder.authors
	bookCount := 0
	for i := range authors {
		authors[i].Account.Roles = rolesByAccount[authors[i].AccountID]
		bookCount += len(authors[i].Books)
	}

	observer.success(len(authors), bookCount)

	return authors, nil
}

// FetchTopAuthorRows returns the projected rows of the top authors and all of their books.
//
// Country, age, the ordering by BooksCount, and the limit are evaluated by the database.
// The book rows carry the publication year derived in SQL; the year threshold is NOT applied,
// so callers must filter the books themselves. Author rows are ordered by BooksCount descending,
// ties are broken by author id. The book query is skipped when no author qualifies.
//
// Every failure at the data-source boundary is returned as an authorstore.ErrDataSource error.
func (s *AuthorStore) FetchTopAuthorRows(ctx context.Context) ([]authorstore.AuthorRow, []authorstore.BookRow, error) {
	observer, ctx := s.observeFetch(ctx, spanNameFetchTopAuthorRows, operationFetchTopAuthorRows)

	authorsQuery, err := s.buildTopAuthorsQuery()
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrOperation, operationFetchTopAuthorRows)
		return nil, nil, observer.failure(authorstore.NewDataSourceError(authorstore.ErrBuildingQueryFailed, err))
	}

	authorRows := make([]authorstore.AuthorRow, 0, authorstore.Limit)
	scanAuthor := func(rows adapters.Rows) error {
		var row authorstore.AuthorRow
		if scanErr := rows.Scan(
			&row.ID,
			&row.FirstName,
			&row.LastName,
			&row.UserName,
			&row.Email,
			&row.Age,
			&row.Country,
		); scanErr != nil {
			return authorstore.NewDataSourceError(authorstore.ErrScanningDBRowFailed, scanErr)
		}

		authorRows = append(authorRows, row)

		return nil
	}

	if err = s.queryRows(ctx, authorsQuery, operationFetchTopAuthorRows, scanAuthor); err != nil {
		return nil, nil, observer.failure(err)
	}

	bookRows := make([]authorstore.BookRow, 0)
	if len(authorRows) == 0 {
		observer.success(0, 0)
		return authorRows, bookRows, nil
	}

	authorIDs := make([]int64, 0, len(authorRows))
	for _, row := range authorRows {
		authorIDs = append(authorIDs, row.ID)
	}

	booksQuery, err := s.buildBooksOfAuthorsQuery(authorIDs)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrOperation, operationFetchTopAuthorRows)
		return nil, nil, observer.failure(authorstore.NewDataSourceError(authorstore.ErrBuildingQueryFailed, err))
	}

	scanBook := func(rows adapters.Rows) error {
		var row authorstore.BookRow
		if scanErr := rows.Scan(&row.AuthorID, &row.Title, &row.PublishedYear); scanErr != nil {
			return authorstore.NewDataSourceError(authorstore.ErrScanningDBRowFailed, scanErr)
		}

		bookRows = append(bookRows, row)

		return nil
	}

	if err = s.queryRows(ctx, booksQuery, operationFetchTopAuthorRows, scanBook); err != nil {
		return nil, nil, observer.failure(err)
	}

	observer.success(len(authorRows), len(bookRows))

	return authorRows, bookRows, nil
}

// queryRows runs sqlQuery and hands every result row to scan.
// Rows are closed on every path, including a failing scan.
func (s *AuthorStore) queryRows(
	ctx context.Context,
	sqlQuery string,
	operation string,
	scan func(rows adapters.Rows) error,
) error {
	queryStart := time.Now()
	rows, err := s.db.Query(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, operation, time.Since(queryStart))

	if err != nil {
		s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		return authorstore.NewDataSourceError(authorstore.ErrQueryingAuthorsFailed, err)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}()

	for rows.Next() {
		if scanErr := scan(rows); scanErr != nil {
			if errors.Is(scanErr, authorstore.ErrIncompleteAuthorRecord) {
				s.logError(ctx, logMsgIncompleteRecord, scanErr)
			} else {
				s.logError(ctx, logMsgScanRowFailed, scanErr)
			}

			return scanErr
		}
	}

	if err = rows.Err(); err != nil {
		s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		return authorstore.NewDataSourceError(authorstore.ErrQueryingAuthorsFailed, err)
	}

	return nil
}
