package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

// GenerateOptions controls the size and randomness of a generated dataset.
type GenerateOptions struct {
	// Authors is the number of authors, each with its own account.
	Authors int

	// BooksPerAuthor is the mean number of books; each author gets between 0 and 2*BooksPerAuthor.
	BooksPerAuthor int

	// Seed makes the dataset reproducible: equal options yield equal datasets.
	Seed uint64
}

var (
	generatedCountries  = []string{"Serbia", "Croatia", "Slovenia", "Montenegro", "Bosnia and Herzegovina", "North Macedonia"}
	generatedFirstNames = []string{"Milica", "Nikola", "Jelena", "Stefan", "Ana", "Lazar", "Mina", "Vuk", "Teodora", "Đorđe"}
	generatedLastNames  = []string{"Jovanović", "Petrović", "Nikolić", "Marković", "Đorđević", "Stojanović", "Ilić", "Pavlović"}
	generatedRoles      = []string{"author", "editor", "reviewer", "admin"}
	generatedPublishers = []string{"Prosveta", "Laguna", "Vulkan", "Geopoetika", "Matica srpska", "Nolit", "Zavod za udžbenike"}
)

const (
	generatedMinAge        = 20
	generatedMaxAge        = 40
	generatedFirstYear     = 1780
	generatedLastYear      = 2024
	generatedPCGIncrement  = 0x9e3779b97f4a7c15
	generatedMaxRolesCount = 2
)

// Generate builds a deterministic dataset of the requested size.
//
// Countries and ages are spread so that only a small share of the authors qualifies,
// publication years straddle the 1900 threshold, and BooksCount equals the number of generated books.
func Generate(options GenerateOptions) Dataset {
	rng := rand.New(rand.NewPCG(options.Seed, options.Seed^generatedPCGIncrement))

	dataset := Dataset{
		Roles:      make([]authorstore.Role, 0, len(generatedRoles)),
		Publishers: make([]authorstore.Publisher, 0, len(generatedPublishers)),
		Accounts:   make([]authorstore.Account, 0, options.Authors),
		Authors:    make([]authorstore.Author, 0, options.Authors),
	}

	for i, name := range generatedRoles {
		dataset.Roles = append(dataset.Roles, authorstore.Role{ID: int64(i + 1), Name: name})
	}

	for i, name := range generatedPublishers {
		dataset.Publishers = append(dataset.Publishers, authorstore.Publisher{ID: int64(i + 1), Name: name})
	}

	var bookID int64

	for i := range options.Authors {
		id := int64(i + 1)
		firstName := generatedFirstNames[rng.IntN(len(generatedFirstNames))]
		lastName := generatedLastNames[rng.IntN(len(generatedLastNames))]
		userName := fmt.Sprintf("author%06d", id)

		created := time.Date(2015+rng.IntN(8), time.Month(1+rng.IntN(12)), 1+rng.IntN(28), rng.IntN(24), 0, 0, 0, time.UTC)
		account := authorstore.Account{
			ID:             id,
			UserName:       userName,
			FirstName:      firstName,
			LastName:       lastName,
			Email:          userName + "@example.org",
			EmailConfirmed: rng.IntN(4) != 0,
			Created:        created,
			LastActivity:   created.Add(time.Duration(rng.IntN(900)) * 24 * time.Hour),
		}

		for _, roleIndex := range rng.Perm(len(generatedRoles))[:rng.IntN(generatedMaxRolesCount+1)] {
			account.Roles = append(account.Roles, authorstore.AccountRole{AccountID: id, RoleID: int64(roleIndex + 1)})
		}

		bookCount := 0
		if options.BooksPerAuthor > 0 {
			bookCount = rng.IntN(2*options.BooksPerAuthor + 1)
		}

		books := make([]authorstore.Book, 0, bookCount)
		for range bookCount {
			bookID++
			publisher := dataset.Publishers[rng.IntN(len(dataset.Publishers))]
			year := generatedFirstYear + rng.IntN(generatedLastYear-generatedFirstYear+1)

			books = append(books, authorstore.Book{
				ID:          bookID,
				AuthorID:    id,
				Name:        fmt.Sprintf("Book %d", bookID),
				Published:   Date(year, time.Month(1+rng.IntN(12)), 1+rng.IntN(28)),
				ISBN:        fmt.Sprintf("978-86-%07d", bookID),
				PublisherID: publisher.ID,
			})
		}

		dataset.Accounts = append(dataset.Accounts, account)
		dataset.Authors = append(dataset.Authors, authorstore.Author{
			ID:         id,
			AccountID:  id,
			FirstName:  firstName,
			LastName:   lastName,
			UserName:   userName,
			Email:      account.Email,
			Age:        generatedMinAge + rng.IntN(generatedMaxAge-generatedMinAge+1),
			Country:    generatedCountries[rng.IntN(len(generatedCountries))],
			BooksCount: bookCount,
			Books:      books,
		})
	}

	return dataset
}
