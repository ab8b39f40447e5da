package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Driver names select the database connection kind.
const (
	DriverPGXPool = "pgx.pool"
	DriverSQLDB   = "sql.db"
	DriverSQLXDB  = "sqlx.db"
	DriverSQLite  = "sqlite3"
)

// Metrics backends.
const (
	MetricsNone       = "none"
	MetricsOTel       = "otel"
	MetricsPrometheus = "prometheus"
)

// Setting keys, also used as flag names.
const (
	KeyDriver     = "driver"
	KeyDSN        = "dsn"
	KeyReplicaDSN = "replica_dsn"
	KeyLogLevel   = "log_level"
	KeyMetrics    = "metrics"
	KeyIterations = "iterations"
	KeyWarmup     = "warmup"
	KeyParallel   = "parallel"
)

const (
	envPrefix      = "AUTHORBENCH"
	configFileName = "authorbench"
	configFileType = "yaml"
)

// ErrInvalidSettings is returned when the settings cannot be read or are out of range.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the resolved settings of one authorbench invocation.
type Settings struct {
	Driver     string `mapstructure:"driver"`
	DSN        string `mapstructure:"dsn"`
	ReplicaDSN string `mapstructure:"replica_dsn"`
	LogLevel   string `mapstructure:"log_level"`
	Metrics    string `mapstructure:"metrics"`
	Iterations int    `mapstructure:"iterations"`
	Warmup     int    `mapstructure:"warmup"`
	Parallel   int    `mapstructure:"parallel"`
}

// NewViper returns a viper instance with defaults and env binding.
// An authorbench.yaml in the working directory is read when present.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyDriver, DriverSQLite)
	v.SetDefault(KeyDSN, "authorbench.db")
	v.SetDefault(KeyReplicaDSN, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyMetrics, MetricsNone)
	v.SetDefault(KeyIterations, 100)
	v.SetDefault(KeyWarmup, 10)
	v.SetDefault(KeyParallel, 1)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(".")

	return v
}

// Load reads the optional config file and resolves all settings.
// A missing config file is fine, a broken one is not.
func Load(v *viper.Viper) (Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, errors.Join(ErrInvalidSettings, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, errors.Join(ErrInvalidSettings, err)
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// Validate checks that every setting is in range.
func (s Settings) Validate() error {
	switch {
	case !slices.Contains([]string{DriverPGXPool, DriverSQLDB, DriverSQLXDB, DriverSQLite}, s.Driver):
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidSettings, s.Driver)
	case s.DSN == "":
		return fmt.Errorf("%w: dsn must not be empty", ErrInvalidSettings)
	case s.ReplicaDSN != "" && s.Driver != DriverPGXPool:
		return fmt.Errorf("%w: replica_dsn needs driver %s", ErrInvalidSettings, DriverPGXPool)
	case !slices.Contains([]string{MetricsNone, MetricsOTel, MetricsPrometheus}, s.Metrics):
		return fmt.Errorf("%w: unknown metrics backend %q", ErrInvalidSettings, s.Metrics)
	case s.Iterations < 1:
		return fmt.Errorf("%w: iterations must be at least 1", ErrInvalidSettings)
	case s.Warmup < 0:
		return fmt.Errorf("%w: warmup must not be negative", ErrInvalidSettings)
	case s.Parallel < 1:
		return fmt.Errorf("%w: parallel must be at least 1", ErrInvalidSettings)
	}

	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		return err
	}

	return nil
}

// Dialect returns the SQL dialect of the configured driver.
func (s Settings) Dialect() string {
	if s.Driver == DriverSQLite {
		return "sqlite3"
	}

	return "postgres"
}
