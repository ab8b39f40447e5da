package fixtures

import (
	"time"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/internal/seed"
)

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return seed.Date(year, month, day)
}

var (
	exampleCreated      = time.Date(2020, time.March, 14, 9, 30, 0, 0, time.UTC)
	exampleLastActivity = time.Date(2024, time.November, 2, 18, 5, 0, 0, time.UTC)
)

// TopAuthorsExample returns three authors with known results:
//   - A: Serbia, 27, BooksCount 5, books published 1850 and 1920
//   - B: Serbia, 27, BooksCount 3, one book published 1899
//   - C: Serbia, 26, BooksCount 10, excluded by age
//
// The top authors are [A{1850}, B{1899}], see TopAuthorsExampleResult.
// BooksCount differs from the number of stored books.
func TopAuthorsExample() seed.Dataset {
	roles := []authorstore.Role{{ID: 1, Name: "author"}, {ID: 2, Name: "editor"}}
	publishers := []authorstore.Publisher{{ID: 1, Name: "Prosveta"}, {ID: 2, Name: "Matica srpska"}}

	accounts := []authorstore.Account{
		newAccount(1, "jovana.a", "Jovana", "Andrić", true, []int64{2, 1}),
		newAccount(2, "marko.b", "Marko", "Babić", false, nil),
		newAccount(3, "luka.c", "Luka", "Cvijić", true, []int64{1}),
	}

	authors := []authorstore.Author{
		newAuthor(accounts[0], 1, "Serbia", 27, "Joca", 5, []authorstore.Book{
			newBook(1, 1, "Na Drini", Date(1850, time.May, 3), "978-86-001", publishers[0]),
			newBook(2, 1, "Prokleta avlija", Date(1920, time.January, 12), "978-86-002", publishers[1]),
		}),
		newAuthor(accounts[1], 2, "Serbia", 27, "", 3, []authorstore.Book{
			newBook(3, 2, "Seobe", Date(1899, time.December, 31), "978-86-003", publishers[0]),
		}),
		newAuthor(accounts[2], 3, "Serbia", 26, "Lule", 10, []authorstore.Book{
			newBook(4, 3, "Koreni", Date(1880, time.June, 1), "978-86-004", publishers[1]),
		}),
	}

	return seed.Dataset{Roles: roles, Publishers: publishers, Accounts: accounts, Authors: authors}
}

// TopAuthorsExampleResult is the expected top-author result of TopAuthorsExample.
func TopAuthorsExampleResult() []authorstore.AuthorResultValue {
	return []authorstore.AuthorResultValue{
		{
			AuthorID:  1,
			FirstName: "Jovana",
			LastName:  "Andrić",
			UserName:  "jovana.a",
			Email:     "jovana.a@example.org",
			Age:       27,
			Country:   "Serbia",
			Books:     []authorstore.BookResultValue{{Title: "Na Drini", PublishedYear: 1850}},
		},
		{
			AuthorID:  2,
			FirstName: "Marko",
			LastName:  "Babić",
			UserName:  "marko.b",
			Email:     "marko.b@example.org",
			Age:       27,
			Country:   "Serbia",
			Books:     []authorstore.BookResultValue{{Title: "Seobe", PublishedYear: 1899}},
		},
	}
}

// NoMatchExample returns authors of which none matches the country and age policy.
func NoMatchExample() seed.Dataset {
	roles := []authorstore.Role{{ID: 1, Name: "author"}}
	publishers := []authorstore.Publisher{{ID: 1, Name: "Laguna"}}

	accounts := []authorstore.Account{
		newAccount(1, "ana.k", "Ana", "Kovač", true, []int64{1}),
		newAccount(2, "ivan.h", "Ivan", "Horvat", true, nil),
	}

	authors := []authorstore.Author{
		newAuthor(accounts[0], 1, "Croatia", 27, "", 4, []authorstore.Book{
			newBook(1, 1, "Zagorje", Date(1870, time.April, 9), "978-953-01", publishers[0]),
		}),
		newAuthor(accounts[1], 2, "Serbia", 28, "", 9, []authorstore.Book{
			newBook(2, 2, "Dunav", Date(1860, time.August, 20), "978-86-101", publishers[0]),
		}),
	}

	return seed.Dataset{Roles: roles, Publishers: publishers, Accounts: accounts, Authors: authors}
}

func newAccount(id int64, userName, firstName, lastName string, confirmed bool, roleIDs []int64) authorstore.Account {
	account := authorstore.Account{
		ID:             id,
		UserName:       userName,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          userName + "@example.org",
		EmailConfirmed: confirmed,
		Created:        exampleCreated,
		LastActivity:   exampleLastActivity,
	}

	for _, roleID := range roleIDs {
		account.Roles = append(account.Roles, authorstore.AccountRole{AccountID: id, RoleID: roleID})
	}

	return account
}

// newAuthor copies the denormalized name fields from the account, as the data source does.
func newAuthor(
	account authorstore.Account,
	id int64,
	country string,
	age int,
	nickName string,
	booksCount int,
	books []authorstore.Book,
) authorstore.Author {

	return authorstore.Author{
		ID:         id,
		AccountID:  account.ID,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		UserName:   account.UserName,
		Email:      account.Email,
		Age:        age,
		Country:    country,
		NickName:   nickName,
		BooksCount: booksCount,
		Books:      books,
	}
}

func newBook(
	id, authorID int64,
	name string,
	published time.Time,
	isbn string,
	publisher authorstore.Publisher,
) authorstore.Book {

	return authorstore.Book{
		ID:          id,
		AuthorID:    authorID,
		Name:        name,
		Published:   published,
		ISBN:        isbn,
		PublisherID: publisher.ID,
	}
}
