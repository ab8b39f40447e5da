package seed

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
)

const insertBatchSize = 500

// publishedFormat is understood by both PostgreSQL DATE columns and SQLite's date functions.
const publishedFormat = "2006-01-02"

// ErrInsertFailed is returned when a dataset cannot be written.
var ErrInsertFailed = errors.New("inserting the dataset failed")

// Insert writes the dataset in one transaction, parents before children.
// dialect is the goqu dialect of db: "postgres" or "sqlite3".
func Insert(ctx context.Context, db *sql.DB, dialect string, dataset Dataset) error {
	builder := goqu.Dialect(dialect)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrInsertFailed, err)
	}

	if err = insertDataset(ctx, tx, builder, dataset); err != nil {
		_ = tx.Rollback()
		return errors.Join(ErrInsertFailed, err)
	}

	if err = tx.Commit(); err != nil {
		return errors.Join(ErrInsertFailed, err)
	}

	return nil
}

// Reset deletes all rows from the author tables, children before parents.
func Reset(ctx context.Context, db *sql.DB, dialect string) error {
	builder := goqu.Dialect(dialect)

	for _, table := range []string{"books", "authors", "account_roles", "accounts", "publishers", "roles"} {
		query, _, err := builder.Delete(table).ToSQL()
		if err != nil {
			return errors.Join(ErrInsertFailed, err)
		}

		if _, err = db.ExecContext(ctx, query); err != nil {
			return errors.Join(ErrInsertFailed, err)
		}
	}

	return nil
}

func insertDataset(ctx context.Context, tx *sql.Tx, builder goqu.DialectWrapper, dataset Dataset) error {
	roles := make([]any, 0, len(dataset.Roles))
	for _, role := range dataset.Roles {
		roles = append(roles, goqu.Record{"id": role.ID, "name": role.Name})
	}

	publishers := make([]any, 0, len(dataset.Publishers))
	for _, publisher := range dataset.Publishers {
		publishers = append(publishers, goqu.Record{"id": publisher.ID, "name": publisher.Name})
	}

	accounts := make([]any, 0, len(dataset.Accounts))
	accountRoles := make([]any, 0, len(dataset.Accounts))
	for _, account := range dataset.Accounts {
		accounts = append(accounts, goqu.Record{
			"id":              account.ID,
			"user_name":       account.UserName,
			"first_name":      account.FirstName,
			"last_name":       account.LastName,
			"email":           account.Email,
			"email_confirmed": account.EmailConfirmed,
			"created":         account.Created.UTC(),
			"last_activity":   account.LastActivity.UTC(),
		})

		for _, accountRole := range account.Roles {
			accountRoles = append(accountRoles, goqu.Record{
				"account_id": accountRole.AccountID,
				"role_id":    accountRole.RoleID,
			})
		}
	}

	authors := make([]any, 0, len(dataset.Authors))
	books := make([]any, 0, dataset.BookCount())
	for _, author := range dataset.Authors {
		authors = append(authors, goqu.Record{
			"id":          author.ID,
			"account_id":  author.AccountID,
			"first_name":  author.FirstName,
			"last_name":   author.LastName,
			"user_name":   author.UserName,
			"email":       author.Email,
			"age":         author.Age,
			"country":     author.Country,
			"nick_name":   author.NickName,
			"books_count": author.BooksCount,
		})

		for _, book := range author.Books {
			books = append(books, goqu.Record{
				"id":           book.ID,
				"author_id":    author.ID,
				"name":         book.Name,
				"published":    book.Published.Format(publishedFormat),
				"isbn":         book.ISBN,
				"publisher_id": book.PublisherID,
			})
		}
	}

	for _, table := range []struct {
		name string
		rows []any
	}{
		{name: "roles", rows: roles},
		{name: "publishers", rows: publishers},
		{name: "accounts", rows: accounts},
		{name: "account_roles", rows: accountRoles},
		{name: "authors", rows: authors},
		{name: "books", rows: books},
	} {
		if err := insertRows(ctx, tx, builder, table.name, table.rows); err != nil {
			return err
		}
	}

	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, builder goqu.DialectWrapper, table string, rows []any) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))

		query, _, err := builder.Insert(table).Rows(rows[start:end]...).ToSQL()
		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, query); err != nil {
			return err
		}
	}

	return nil
}
