package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore/sqlengine"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/config"
)

// session is an open database with an author store on top of it.
// db is a database/sql handle on the same database, used for migrations and seeding.
type session struct {
	store   *sqlengine.AuthorStore
	db      *sql.DB
	closers []func()
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func (a *app) openSession(ctx context.Context, options ...sqlengine.Option) (*session, error) {
	if a.logger.Enabled(ctx, slog.LevelDebug) {
		options = append(options, sqlengine.WithLogger(a.logger))
	}

	s := &session{}

	switch a.settings.Driver {
	case config.DriverPGXPool:
		pool, err := config.OpenPostgresPGXPool(ctx, a.settings.DSN)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)

		if a.settings.ReplicaDSN != "" {
			replica, replicaErr := config.OpenPostgresPGXPool(ctx, a.settings.ReplicaDSN)
			if replicaErr != nil {
				s.Close()
				return nil, replicaErr
			}
			s.closers = append(s.closers, replica.Close)
			options = append(options, sqlengine.WithReplicaPool(replica))
		}

		s.db = stdlib.OpenDBFromPool(pool)
		s.closers = append(s.closers, func() { _ = s.db.Close() })

		store, err := sqlengine.NewAuthorStoreFromPGXPool(pool, options...)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.store = store

	case config.DriverSQLDB:
		db, err := config.PostgresSQLDBConfig(ctx, a.settings.DSN)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.closers = append(s.closers, func() { _ = db.Close() })

		store, err := sqlengine.NewAuthorStoreFromSQLDB(db, options...)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.store = store

	case config.DriverSQLXDB:
		db, err := config.PostgresSQLXConfig(ctx, a.settings.DSN)
		if err != nil {
			return nil, err
		}
		s.db = db.DB
		s.closers = append(s.closers, func() { _ = db.Close() })

		store, err := sqlengine.NewAuthorStoreFromSQLX(db, options...)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.store = store

	default:
		db, err := config.OpenSQLite(ctx, a.settings.DSN)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.closers = append(s.closers, func() { _ = db.Close() })

		store, err := sqlengine.NewAuthorStoreFromSQLite(db, options...)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.store = store
	}

	return s, nil
}
