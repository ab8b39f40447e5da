package authorstore

// AuthorResult is the reference-shaped output record.
// Query handlers return it as []*AuthorResult, so every author and every book is its own heap object.
type AuthorResult struct {
	AuthorID  int64
	FirstName string
	LastName  string
	UserName  string
	Email     string
	Age       int
	Country   string
	Books     []*BookResult
}

// BookResult is the reference-shaped output record for a book.
type BookResult struct {
	Title         string
	PublishedYear int
}

// AuthorResultValue is the value-shaped twin of AuthorResult.
// It is returned as []AuthorResultValue with Books stored inline,
// which needs one allocation per slice instead of one per record.
type AuthorResultValue struct {
	AuthorID  int64
	FirstName string
	LastName  string
	UserName  string
	Email     string
	Age       int
	Country   string
	Books     []BookResultValue
}

// BookResultValue is the value-shaped twin of BookResult.
type BookResultValue struct {
	Title         string
	PublishedYear int
}

// NewAuthorResult builds the reference-shaped result for a row and its already shaped books.
func NewAuthorResult(row AuthorRow, books []*BookResult) *AuthorResult {
	return &AuthorResult{
		AuthorID:  row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		UserName:  row.UserName,
		Email:     row.Email,
		Age:       row.Age,
		Country:   row.Country,
		Books:     books,
	}
}

// NewAuthorResultValue builds the value-shaped result for a row, without books.
func NewAuthorResultValue(row AuthorRow) AuthorResultValue {
	return AuthorResultValue{
		AuthorID:  row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		UserName:  row.UserName,
		Email:     row.Email,
		Age:       row.Age,
		Country:   row.Country,
	}
}

// ToValue copies a reference-shaped result into its value-shaped twin.
func (r *AuthorResult) ToValue() AuthorResultValue {
	books := make([]BookResultValue, 0, len(r.Books))
	for _, book := range r.Books {
		books = append(books, BookResultValue{Title: book.Title, PublishedYear: book.PublishedYear})
	}

	return AuthorResultValue{
		AuthorID:  r.AuthorID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		UserName:  r.UserName,
		Email:     r.Email,
		Age:       r.Age,
		Country:   r.Country,
		Books:     books,
	}
}
