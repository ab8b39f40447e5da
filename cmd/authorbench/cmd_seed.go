package main

import (
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/internal/seed"
)

const logMsgSeeded = "database seeded"

func (a *app) newSeedCommand() *cobra.Command {
	options := seed.GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the database content with a deterministic generated dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			dataset := seed.Generate(options)
			dialect := a.settings.Dialect()

			if err := seed.Reset(cmd.Context(), s.db, dialect); err != nil {
				return err
			}

			if err := seed.Insert(cmd.Context(), s.db, dialect, dataset); err != nil {
				return err
			}

			a.logger.Info(logMsgSeeded,
				"authors", len(dataset.Authors),
				"books", dataset.BookCount(),
				"seed", options.Seed,
			)

			return nil
		},
	}

	cmd.Flags().IntVar(&options.Authors, "authors", 10000, "number of authors")
	cmd.Flags().IntVar(&options.BooksPerAuthor, "books-per-author", 5, "mean number of books per author")
	cmd.Flags().Uint64Var(&options.Seed, "seed", 1, "random seed, equal seeds produce equal datasets")

	return cmd
}
