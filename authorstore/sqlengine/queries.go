package sqlengine

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

const (
	colID             = "id"
	colAccountID      = "account_id"
	colRoleID         = "role_id"
	colAuthorID       = "author_id"
	colPublisherID    = "publisher_id"
	colFirstName      = "first_name"
	colLastName       = "last_name"
	colUserName       = "user_name"
	colEmail          = "email"
	colEmailConfirmed = "email_confirmed"
	colCreated        = "created"
	colLastActivity   = "last_activity"
	colAge            = "age"
	colCountry        = "country"
	colNickName       = "nick_name"
	colBooksCount     = "books_count"
	colName           = "name"
	colPublished      = "published"
	colISBN           = "isbn"

	aliasPublishedYear = "published_year"
)

const (
	aliasAuthors      = "a"
	aliasAccounts     = "u"
	aliasBooks        = "b"
	aliasPublishers   = "p"
	aliasAccountRoles = "ur"
	aliasRoles        = "r"
)

func col(alias, column string) exp.IdentifierExpression {
	return goqu.T(alias).Col(column)
}

// buildAllAuthorsQuery selects every author joined with account, books and publisher.
// Rows are ordered by author and book id, so one author's rows are contiguous.
func (s *AuthorStore) buildAllAuthorsQuery() (string, error) {
	sqlQuery, _, err := s.dialect.builder().
		From(goqu.T(s.tables.Authors).As(aliasAuthors)).
		LeftJoin(
			goqu.T(s.tables.Accounts).As(aliasAccounts),
			goqu.On(col(aliasAccounts, colID).Eq(col(aliasAuthors, colAccountID))),
		).
		LeftJoin(
			goqu.T(s.tables.Books).As(aliasBooks),
			goqu.On(col(aliasBooks, colAuthorID).Eq(col(aliasAuthors, colID))),
		).
		LeftJoin(
			goqu.T(s.tables.Publishers).As(aliasPublishers),
			goqu.On(col(aliasPublishers, colID).Eq(col(aliasBooks, colPublisherID))),
		).
		Select(
			col(aliasAuthors, colID),
			col(aliasAuthors, colAccountID),
			col(aliasAuthors, colFirstName),
			col(aliasAuthors, colLastName),
			col(aliasAuthors, colUserName),
			col(aliasAuthors, colEmail),
			col(aliasAuthors, colAge),
			col(aliasAuthors, colCountry),
			col(aliasAuthors, colNickName),
			col(aliasAuthors, colBooksCount),
			col(aliasAccounts, colID),
			col(aliasAccounts, colUserName),
			col(aliasAccounts, colFirstName),
			col(aliasAccounts, colLastName),
			col(aliasAccounts, colEmail),
			col(aliasAccounts, colEmailConfirmed),
			col(aliasAccounts, colCreated),
			col(aliasAccounts, colLastActivity),
			col(aliasBooks, colID),
			col(aliasBooks, colName),
			col(aliasBooks, colPublished),
			col(aliasBooks, colISBN),
			col(aliasBooks, colPublisherID),
			col(aliasPublishers, colID),
			col(aliasPublishers, colName),
		).
		Order(col(aliasAuthors, colID).Asc(), col(aliasBooks, colID).Asc()).
		ToSQL()

	if err != nil {
		return "", errors.Join(authorstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// buildAccountRolesQuery selects all role assignments with their role.
func (s *AuthorStore) buildAccountRolesQuery() (string, error) {
	sqlQuery, _, err := s.dialect.builder().
		From(goqu.T(s.tables.AccountRoles).As(aliasAccountRoles)).
		Join(
			goqu.T(s.tables.Roles).As(aliasRoles),
			goqu.On(col(aliasRoles, colID).Eq(col(aliasAccountRoles, colRoleID))),
		).
		Select(
			col(aliasAccountRoles, colAccountID),
			col(aliasAccountRoles, colRoleID),
			col(aliasRoles, colName),
		).
		Order(col(aliasAccountRoles, colAccountID).Asc(), col(aliasAccountRoles, colRoleID).Asc()).
		ToSQL()

	if err != nil {
		return "", errors.Join(authorstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// buildTopAuthorsQuery pushes the author policy into SQL and projects only the output fields.
// Ties on books_count are broken by id, the order in which FetchAllAuthors returns authors.
func (s *AuthorStore) buildTopAuthorsQuery() (string, error) {
	sqlQuery, _, err := s.dialect.builder().
		From(s.tables.Authors).
		Select(
			goqu.C(colID),
			goqu.C(colFirstName),
			goqu.C(colLastName),
			goqu.C(colUserName),
			goqu.C(colEmail),
			goqu.C(colAge),
			goqu.C(colCountry),
		).
		Where(
			goqu.C(colCountry).Eq(authorstore.Country),
			goqu.C(colAge).Eq(authorstore.Age),
		).
		Order(goqu.C(colBooksCount).Desc(), goqu.C(colID).Asc()).
		Limit(authorstore.Limit).
		ToSQL()

	if err != nil {
		return "", errors.Join(authorstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// buildBooksOfAuthorsQuery selects title and publication year of all books of the given authors.
// The year threshold is not part of the query, callers filter the rows.
func (s *AuthorStore) buildBooksOfAuthorsQuery(authorIDs []int64) (string, error) {
	sqlQuery, _, err := s.dialect.builder().
		From(s.tables.Books).
		Select(
			goqu.C(colAuthorID),
			goqu.C(colName),
			s.dialect.yearOf(goqu.C(colPublished)).As(aliasPublishedYear),
		).
		Where(goqu.C(colAuthorID).In(authorIDs)).
		Order(goqu.C(colAuthorID).Asc(), goqu.C(colID).Asc()).
		ToSQL()

	if err != nil {
		return "", errors.Join(authorstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}
