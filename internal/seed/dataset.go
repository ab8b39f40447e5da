package seed

import (
	"cmp"
	"slices"
	"time"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

// Dataset is a complete, consistent set of rows for all author tables.
// Accounts carry their roles, authors carry their books.
type Dataset struct {
	Roles      []authorstore.Role
	Publishers []authorstore.Publisher
	Accounts   []authorstore.Account
	Authors    []authorstore.Author
}

// BookCount returns the number of books over all authors.
func (d Dataset) BookCount() int {
	count := 0
	for _, author := range d.Authors {
		count += len(author.Books)
	}

	return count
}

// LoadedAuthors returns the authors as a complete fetch loads them:
// account with roles ordered by role id, and every book with its publisher.
// The dataset itself is not modified.
func (d Dataset) LoadedAuthors() []authorstore.Author {
	roles := make(map[int64]authorstore.Role, len(d.Roles))
	for _, role := range d.Roles {
		roles[role.ID] = role
	}

	publishers := make(map[int64]authorstore.Publisher, len(d.Publishers))
	for _, publisher := range d.Publishers {
		publishers[publisher.ID] = publisher
	}

	accounts := make(map[int64]authorstore.Account, len(d.Accounts))
	for _, account := range d.Accounts {
		accounts[account.ID] = account
	}

	authors := make([]authorstore.Author, 0, len(d.Authors))
	for _, author := range d.Authors {
		account := accounts[author.AccountID]
		account.Roles = make([]authorstore.AccountRole, 0, len(account.Roles))
		for _, accountRole := range accounts[author.AccountID].Roles {
			role := roles[accountRole.RoleID]
			accountRole.Role = &role
			account.Roles = append(account.Roles, accountRole)
		}

		slices.SortFunc(account.Roles, func(a, b authorstore.AccountRole) int {
			return cmp.Compare(a.RoleID, b.RoleID)
		})

		books := author.Books
		author.Account = &account
		author.Books = make([]authorstore.Book, 0, len(books))
		for _, book := range books {
			publisher := publishers[book.PublisherID]
			book.Publisher = &publisher
			author.Books = append(author.Books, book)
		}

		authors = append(authors, author)
	}

	return authors
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

