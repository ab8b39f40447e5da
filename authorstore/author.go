package authorstore

import "time"

// Author is an author entity as stored, optionally with its associations loaded.
// BooksCount is maintained by the data source and is never recomputed from Books.
type Author struct {
	ID         int64
	AccountID  int64
	FirstName  string
	LastName   string
	UserName   string
	Email      string
	Age        int
	Country    string
	NickName   string
	BooksCount int
	Account    *Account
	Books      []Book
}

// Book is a book entity, optionally with its publisher loaded.
type Book struct {
	ID          int64
	AuthorID    int64
	Name        string
	Published   time.Time
	ISBN        string
	PublisherID int64
	Publisher   *Publisher
}

// Publisher is only ever used for its name.
type Publisher struct {
	ID   int64
	Name string
}

// Account is the login/profile record linked one-to-one with an Author.
type Account struct {
	ID             int64
	UserName       string
	FirstName      string
	LastName       string
	Email          string
	EmailConfirmed bool
	Created        time.Time
	LastActivity   time.Time
	Roles          []AccountRole
}

// AccountRole assigns a Role to an Account.
type AccountRole struct {
	AccountID int64
	RoleID    int64
	Role      *Role
}

// Role is a named permission set.
type Role struct {
	ID   int64
	Name string
}

// AuthorRow is what a projected fetch returns for an author: only the output fields.
type AuthorRow struct {
	ID        int64
	FirstName string
	LastName  string
	UserName  string
	Email     string
	Age       int
	Country   string
}

// BookRow is what a projected fetch returns for a book.
// PublishedYear is derived from the publication date by the data source.
type BookRow struct {
	AuthorID      int64
	Title         string
	PublishedYear int
}

// BookRowsOf derives the BookRows of a fully loaded Author.
func BookRowsOf(author Author) []BookRow {
	rows := make([]BookRow, 0, len(author.Books))
	for _, book := range author.Books {
		rows = append(rows, BookRow{
			AuthorID:      author.ID,
			Title:         book.Name,
			PublishedYear: PublicationYear(book.Published),
		})
	}

	return rows
}
