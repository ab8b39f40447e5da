package topauthorsunfiltered

import (
	"time"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

// TopAuthors is the result of the unfiltered query.
type TopAuthors struct {
	Authors []AuthorDetails
	Count   int
}

// AuthorDetails is the rich per-author record of the unfiltered query.
// The User* fields come from the author's account.
type AuthorDetails struct {
	AuthorID           int64
	UserID             int64
	UserName           string
	UserFirstName      string
	UserLastName       string
	UserEmail          string
	UserEmailConfirmed bool
	UserCreated        time.Time
	UserLastActivity   time.Time
	RoleID             int64 // first role of the account, 0 if it has none
	BooksCount         int
	AllBooks           []BookDetails
	AuthorAge          int
	AuthorCountry      string
	AuthorNickName     string
}

// BookDetails is the rich per-book record of the unfiltered query.
type BookDetails struct {
	ID            int64
	Name          string
	Published     time.Time
	PublishedYear int
	ISBN          string
	PublisherName string
}

// Results converts to the common reference-shaped output, for comparison with the other variants.
func (r TopAuthors) Results() []*authorstore.AuthorResult {
	results := make([]*authorstore.AuthorResult, 0, len(r.Authors))

	for _, author := range r.Authors {
		books := make([]*authorstore.BookResult, 0, len(author.AllBooks))
		for _, book := range author.AllBooks {
			books = append(books, &authorstore.BookResult{Title: book.Name, PublishedYear: book.PublishedYear})
		}

		results = append(results, &authorstore.AuthorResult{
			AuthorID:  author.AuthorID,
			FirstName: author.UserFirstName,
			LastName:  author.UserLastName,
			UserName:  author.UserName,
			Email:     author.UserEmail,
			Age:       author.AuthorAge,
			Country:   author.AuthorCountry,
			Books:     books,
		})
	}

	return results
}
