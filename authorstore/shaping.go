package authorstore

import (
	"cmp"
	"slices"
	"time"
)

// Qualifies reports whether an author matches the country and age policy.
func Qualifies(author Author) bool {
	return author.Country == Country && author.Age == Age
}

// SelectTopAuthors applies the full author policy in memory: filter, order by BooksCount descending, take Limit.
//
// The sort is stable, so authors with equal BooksCount keep the order in which they were supplied.
// The input slice is never modified.
func SelectTopAuthors(authors []Author) []Author {
	selected := make([]Author, 0, len(authors))
	for _, author := range authors {
		if Qualifies(author) {
			selected = append(selected, author)
		}
	}

	slices.SortStableFunc(selected, func(a, b Author) int {
		return cmp.Compare(b.BooksCount, a.BooksCount)
	})

	if len(selected) > Limit {
		selected = selected[:Limit]
	}

	return selected
}

// PublicationYear extracts the year component of a publication date.
func PublicationYear(published time.Time) int {
	return published.Year()
}

// IsPublishedBeforeThreshold reports whether a publication year is strictly before PublishedBeforeYear.
func IsPublishedBeforeThreshold(year int) bool {
	return year < PublishedBeforeYear
}

// ShapeBooks keeps the rows published before the threshold and reshapes them into reference results.
// It preserves the row order and never returns nil.
func ShapeBooks(rows []BookRow) []*BookResult {
	books := make([]*BookResult, 0, len(rows))
	for _, row := range rows {
		if !IsPublishedBeforeThreshold(row.PublishedYear) {
			continue
		}

		books = append(books, &BookResult{Title: row.Title, PublishedYear: row.PublishedYear})
	}

	return books
}

// ShapeBookValues is ShapeBooks for the value-shaped result.
func ShapeBookValues(rows []BookRow) []BookResultValue {
	books := make([]BookResultValue, 0, len(rows))
	for _, row := range rows {
		if !IsPublishedBeforeThreshold(row.PublishedYear) {
			continue
		}

		books = append(books, BookResultValue{Title: row.Title, PublishedYear: row.PublishedYear})
	}

	return books
}

// GroupBookRowsByAuthor indexes book rows by their author, preserving the row order per author.
func GroupBookRowsByAuthor(rows []BookRow) map[int64][]BookRow {
	grouped := make(map[int64][]BookRow)
	for _, row := range rows {
		grouped[row.AuthorID] = append(grouped[row.AuthorID], row)
	}

	return grouped
}
