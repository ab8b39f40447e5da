package topauthorsunfiltered

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

// Project implements the query logic on fully loaded authors.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: All authors with account, roles, books, and publishers
//	WHEN: TopAuthors query is executed
//	THEN: AuthorDetails are built for every author
//	INCLUDES: Authors from Serbia aged 27, at most 2, highest BooksCount first
//	EXCLUDES: Books published in 1900 or later
//	DETAILS: Authors with equal BooksCount keep their input order
func Project(authors []authorstore.Author) TopAuthors {
	details := make([]AuthorDetails, 0, len(authors))
	for _, author := range authors {
		details = append(details, toAuthorDetails(author))
	}

	qualifying := make([]AuthorDetails, 0)
	for _, author := range details {
		if author.AuthorCountry == authorstore.Country && author.AuthorAge == authorstore.Age {
			qualifying = append(qualifying, author)
		}
	}

	slices.SortStableFunc(qualifying, func(a, b AuthorDetails) int {
		return cmp.Compare(b.BooksCount, a.BooksCount)
	})

	if len(qualifying) > authorstore.Limit {
		qualifying = qualifying[:authorstore.Limit]
	}

	for i := range qualifying {
		books := make([]BookDetails, 0, len(qualifying[i].AllBooks))
		for _, book := range qualifying[i].AllBooks {
			year := authorstore.PublicationYear(book.Published)
			if authorstore.IsPublishedBeforeThreshold(year) {
				book.PublishedYear = year
				books = append(books, book)
			}
		}

		qualifying[i].AllBooks = books
	}

	return TopAuthors{
		Authors: qualifying,
		Count:   len(qualifying),
	}
}

func toAuthorDetails(author authorstore.Author) AuthorDetails {
	books := make([]BookDetails, 0, len(author.Books))
	for _, book := range author.Books {
		var publisherName string
		if book.Publisher != nil {
			publisherName = book.Publisher.Name
		}

		books = append(books, BookDetails{
			ID:            book.ID,
			Name:          book.Name,
			Published:     book.Published,
			ISBN:          book.ISBN,
			PublisherName: publisherName,
		})
	}

	details := AuthorDetails{
		AuthorID:       author.ID,
		BooksCount:     author.BooksCount,
		AllBooks:       books,
		AuthorAge:      author.Age,
		AuthorCountry:  author.Country,
		AuthorNickName: author.NickName,
	}

	if account := author.Account; account != nil {
		details.UserID = account.ID
		details.UserName = account.UserName
		details.UserFirstName = account.FirstName
		details.UserLastName = account.LastName
		details.UserEmail = account.Email
		details.UserEmailConfirmed = account.EmailConfirmed
		details.UserCreated = account.Created
		details.UserLastActivity = account.LastActivity

		if len(account.Roles) > 0 {
			details.RoleID = account.Roles[0].RoleID
		}
	}

	return details
}
