// Package authorstore provides the core types and the pure shaping logic for the
// "top authors with their old books" query that this repository benchmarks.
//
// The package is storage agnostic. It defines:
//   - the entities read from the data source (Author, Book, Publisher, Account, Role)
//   - the flat rows returned by a projected fetch (AuthorRow, BookRow)
//   - the output shapes in two flavors: reference (AuthorResult, BookResult) and value
//     (AuthorResultValue, BookResultValue)
//   - the fixed selection policy (Country, Age, PublishedBeforeYear, Limit)
//   - the error sentinels, with ErrDataSource marking every failure at the fetch boundary
//   - the observability interfaces used by engines and query handlers
//
// Common usage pattern:
//
//	authors, err := store.FetchAllAuthors(ctx)
//	if err != nil {
//		// authorstore.IsDataSourceError(err) == true for connectivity and query failures
//	}
//
//	top := authorstore.SelectTopAuthors(authors)
//	for _, author := range top {
//		books := authorstore.ShapeBooks(authorstore.BookRowsOf(author))
//		_ = books
//	}
package authorstore
