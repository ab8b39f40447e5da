package adapters_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/sqlengine/internal/adapters"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/testutil/fixtures"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/testutil/sqlitedb"
)

func Test_Querier_Query(t *testing.T) {
	db := sqlitedb.NewWithDataset(t, fixtures.TopAuthorsExample())

	testCases := []struct {
		name    string
		querier adapters.Querier
	}{
		{name: "sql adapter", querier: adapters.NewSQLAdapter(db)},
		{name: "sqlx adapter", querier: adapters.NewSQLXAdapter(sqlx.NewDb(db, sqlitedb.Dialect))},
	}

	for _, tc := range testCases {
		t.Run(tc.name+" scans every row", func(t *testing.T) {
			// act
			rows, err := tc.querier.Query(context.Background(), "SELECT id, name FROM books ORDER BY id")
			require.NoError(t, err)

			var titles []string
			for rows.Next() {
				var id int64
				var title string
				require.NoError(t, rows.Scan(&id, &title))
				titles = append(titles, title)
			}

			// assert
			require.NoError(t, rows.Err())
			require.NoError(t, rows.Close())
			assert.Equal(t, []string{"Na Drini", "Prokleta avlija", "Seobe", "Koreni"}, titles)
		})

		t.Run(tc.name+" returns no rows on failure", func(t *testing.T) {
			// act
			rows, err := tc.querier.Query(context.Background(), "SELECT id FROM missing_books")

			// assert
			require.Error(t, err)
			assert.Nil(t, rows)
		})
	}
}
