package authorstore

// The selection policy is fixed. It is not runtime configuration.
const (
	// Country is the only country an author may come from to be selected.
	Country = "Serbia"

	// Age is the only age an author may have to be selected.
	Age = 27

	// PublishedBeforeYear is the exclusive upper bound for the publication year of returned books.
	PublishedBeforeYear = 1900

	// Limit is the maximum number of authors returned.
	Limit = 2
)
