package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/config"
)

// app carries what the subcommands share, resolved before any of them runs.
type app struct {
	viper    *viper.Viper
	settings config.Settings
	logger   *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		viper:  config.NewViper(),
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:           "authorbench",
		Short:         "Benchmark fetch strategies for the top Serbian authors aged 27",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve()
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String("driver", config.DriverSQLite, "database driver: pgx.pool, sql.db, sqlx.db or sqlite3")
	flags.String("dsn", "authorbench.db", "postgres DSN or sqlite file path")
	flags.String("replica-dsn", "", "optional postgres read replica DSN, pgx.pool only")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("metrics", config.MetricsNone, "metrics backend: none, otel or prometheus")

	a.bindFlag(root, "driver", config.KeyDriver)
	a.bindFlag(root, "dsn", config.KeyDSN)
	a.bindFlag(root, "replica-dsn", config.KeyReplicaDSN)
	a.bindFlag(root, "log-level", config.KeyLogLevel)
	a.bindFlag(root, "metrics", config.KeyMetrics)

	root.AddCommand(
		a.newMigrateCommand(),
		a.newSeedCommand(),
		a.newRunCommand(),
		a.newQueryCommand(),
	)

	return root
}

// bindFlag lets an explicitly set flag override the environment and the config file.
func (a *app) bindFlag(cmd *cobra.Command, flagName, key string) {
	flag := cmd.PersistentFlags().Lookup(flagName)
	if flag == nil {
		flag = cmd.Flags().Lookup(flagName)
	}

	cobra.CheckErr(a.viper.BindPFlag(key, flag))
}

func (a *app) resolve() error {
	settings, err := config.Load(a.viper)
	if err != nil {
		return err
	}

	level, err := config.ParseLogLevel(settings.LogLevel)
	if err != nil {
		return err
	}

	a.settings = settings
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	return nil
}
