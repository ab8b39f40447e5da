package sqlengine

import (
	"database/sql"
	"fmt"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/sqlengine/internal/adapters"
)

// authorGraphRow is one row of the all-authors join.
// Account, book, and publisher columns come from LEFT JOINs and may be NULL.
type authorGraphRow struct {
	author authorstore.Author

	accountID             sql.NullInt64
	accountUserName       sql.NullString
	accountFirstName      sql.NullString
	accountLastName       sql.NullString
	accountEmail          sql.NullString
	accountEmailConfirmed sql.NullBool
	accountCreated        sql.NullTime
	accountLastActivity   sql.NullTime

	bookID          sql.NullInt64
	bookName        sql.NullString
	bookPublished   sql.NullTime
	bookISBN        sql.NullString
	bookPublisherID sql.NullInt64

	publisherID   sql.NullInt64
	publisherName sql.NullString
}

// authorGraphFolder folds the rows of the all-authors join into author graphs.
// It relies on the rows of one author being contiguous.
type authorGraphFolder struct {
	authors []authorstore.Author
}

func newAuthorGraphFolder() *authorGraphFolder {
	return &authorGraphFolder{authors: make([]authorstore.Author, 0)}
}

func (f *authorGraphFolder) scanRow(rows adapters.Rows) error {
	var row authorGraphRow

	if err := rows.Scan(
		&row.author.ID,
		&row.author.AccountID,
		&row.author.FirstName,
		&row.author.LastName,
		&row.author.UserName,
		&row.author.Email,
		&row.author.Age,
		&row.author.Country,
		&row.author.NickName,
		&row.author.BooksCount,
		&row.accountID,
		&row.accountUserName,
		&row.accountFirstName,
		&row.accountLastName,
		&row.accountEmail,
		&row.accountEmailConfirmed,
		&row.accountCreated,
		&row.accountLastActivity,
		&row.bookID,
		&row.bookName,
		&row.bookPublished,
		&row.bookISBN,
		&row.bookPublisherID,
		&row.publisherID,
		&row.publisherName,
	); err != nil {
		return authorstore.NewDataSourceError(authorstore.ErrScanningDBRowFailed, err)
	}

	return f.fold(row)
}

func (f *authorGraphFolder) fold(row authorGraphRow) error {
	last := len(f.authors) - 1

	if last < 0 || f.authors[last].ID != row.author.ID {
		if !row.accountID.Valid {
			return fmt.Errorf("%w: author %d has no account", authorstore.ErrIncompleteAuthorRecord, row.author.ID)
		}

		author := row.author
		author.Account = &authorstore.Account{
			ID:             row.accountID.Int64,
			UserName:       row.accountUserName.String,
			FirstName:      row.accountFirstName.String,
			LastName:       row.accountLastName.String,
			Email:          row.accountEmail.String,
			EmailConfirmed: row.accountEmailConfirmed.Bool,
			Created:        row.accountCreated.Time,
			LastActivity:   row.accountLastActivity.Time,
		}
		author.Books = make([]authorstore.Book, 0)

		f.authors = append(f.authors, author)
		last++
	}

	if !row.bookID.Valid {
		return nil
	}

	if !row.publisherID.Valid {
		return fmt.Errorf("%w: book %d has no publisher", authorstore.ErrIncompleteAuthorRecord, row.bookID.Int64)
	}

	f.authors[last].Books = append(f.authors[last].Books, authorstore.Book{
		ID:          row.bookID.Int64,
		AuthorID:    row.author.ID,
		Name:        row.bookName.String,
		Published:   row.bookPublished.Time,
		ISBN:        row.bookISBN.String,
		PublisherID: row.bookPublisherID.Int64,
		Publisher: &authorstore.Publisher{
			ID:   row.publisherID.Int64,
			Name: row.publisherName.String,
		},
	})

	return nil
}

func scanAccountRole(rows adapters.Rows) (authorstore.AccountRole, error) {
	var (
		role     authorstore.AccountRole
		roleName string
	)

	if err := rows.Scan(&role.AccountID, &role.RoleID, &roleName); err != nil {
		return authorstore.AccountRole{}, authorstore.NewDataSourceError(authorstore.ErrScanningDBRowFailed, err)
	}

	role.Role = &authorstore.Role{ID: role.RoleID, Name: roleName}

	return role, nil
}
