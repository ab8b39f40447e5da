package topauthorsprojected

import (
	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

// Project shapes the projected rows into reference results.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: The top author rows, already filtered, ordered, and limited by the store
//	AND: All book rows of these authors, with the publication year
//	WHEN: TopAuthors query is executed
//	THEN: One AuthorResult per author row, in the order of the rows
//	EXCLUDES: Books published in 1900 or later
func Project(authors []authorstore.AuthorRow, books []authorstore.BookRow) []*authorstore.AuthorResult {
	booksByAuthor := authorstore.GroupBookRowsByAuthor(books)

	results := make([]*authorstore.AuthorResult, 0, len(authors))
	for _, author := range authors {
		results = append(results, authorstore.NewAuthorResult(author, authorstore.ShapeBooks(booksByAuthor[author.ID])))
	}

	return results
}
