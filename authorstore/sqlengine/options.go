package sqlengine

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/authorstore"
)

// TableNames holds the names of all tables the store reads from.
type TableNames struct {
	Authors      string
	Accounts     string
	Roles        string
	AccountRoles string
	Books        string
	Publishers   string
}

// DefaultTableNames returns the table names created by the schema migrations.
func DefaultTableNames() TableNames {
	return TableNames{
		Authors:      "authors",
		Accounts:     "accounts",
		Roles:        "roles",
		AccountRoles: "account_roles",
		Books:        "books",
		Publishers:   "publishers",
	}
}

func (t TableNames) validate() error {
	for _, name := range []string{t.Authors, t.Accounts, t.Roles, t.AccountRoles, t.Books, t.Publishers} {
		if name == "" {
			return authorstore.ErrEmptyTableName
		}
	}

	return nil
}

// Option defines a functional option for configuring AuthorStore.
type Option func(*AuthorStore) error

// WithTableNames overrides the default table names. No name may be empty.
func WithTableNames(names TableNames) Option {
	return func(s *AuthorStore) error {
		if err := names.validate(); err != nil {
			return err
		}

		s.tables = names

		return nil
	}
}

// WithLogger sets the logger for the AuthorStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: row counts and durations per fetch (production-safe)
// Warn level: Non-critical issues like failures to close rows
// Error level: Critical failures that cause fetch failures.
func WithLogger(logger authorstore.Logger) Option {
	return func(s *AuthorStore) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the AuthorStore.
// It receives the same messages as the Logger, together with the context of the fetch.
func WithContextualLogger(logger authorstore.ContextualLogger) Option {
	return func(s *AuthorStore) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the AuthorStore.
// It receives fetch durations and fetched row counts, plus a counter per database error.
func WithMetrics(collector authorstore.MetricsCollector) Option {
	return func(s *AuthorStore) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the AuthorStore.
// Every fetch is wrapped in one span.
func WithTracing(collector authorstore.TracingCollector) Option {
	return func(s *AuthorStore) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithReplicaPool sets a read replica for a pgx based AuthorStore.
// Fetches go to the replica only when the context carries eventual consistency,
// see authorstore.WithEventualConsistency. Other constructors reject this option.
func WithReplicaPool(replica *pgxpool.Pool) Option {
	return func(s *AuthorStore) error {
		if replica == nil {
			return authorstore.ErrNilDatabaseConnection
		}

		s.replicaPool = replica

		return nil
	}
}
