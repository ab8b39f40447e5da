package topauthorsprojectedvalue

import (
	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

// Project shapes the projected rows into value results.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: The top author rows, already filtered, ordered, and limited by the store
//	AND: All book rows of these authors, with the publication year
//	WHEN: TopAuthors query is executed
//	THEN: One AuthorResultValue per author row, in the order of the rows
//	EXCLUDES: Books published in 1900 or later
func Project(authors []authorstore.AuthorRow, books []authorstore.BookRow) []authorstore.AuthorResultValue {
	booksByAuthor := authorstore.GroupBookRowsByAuthor(books)

	results := make([]authorstore.AuthorResultValue, len(authors))
	for i, author := range authors {
		results[i] = authorstore.NewAuthorResultValue(author)
	}

	// Books are set through the index, a range variable would be a copy.
	for i := range results {
		results[i].Books = authorstore.ShapeBookValues(booksByAuthor[results[i].AuthorID])
	}

	return results
}
