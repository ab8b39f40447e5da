// Package config provides the settings of the authorbench command and the database connection factories.
//
// Settings are read with viper from an optional authorbench.yaml in the working directory
// and from AUTHORBENCH_* environment variables; command line flags bound by the CLI win over both.
//
// The connection factories create pgx.Pool, sql.DB, and sqlx.DB connections for PostgreSQL
// with tuned pool settings, and sql.DB connections for SQLite.
package config
