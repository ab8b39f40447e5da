package main

import (
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/schema"
)

const logMsgMigrated = "schema migrated"

func (a *app) newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the author schema to the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := schema.MigrateUp(s.db, a.settings.Dialect()); err != nil {
				return err
			}

			a.logger.Info(logMsgMigrated, "driver", a.settings.Driver)

			return nil
		},
	}
}
