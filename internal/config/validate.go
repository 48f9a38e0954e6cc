package config

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Lookup drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Validate checks the settings a command mode depends on. Modes are
// "ingest" (unify, compare, count) and "lookup" (classify, registry).
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.Ingest.SampleBytes <= 0 {
		errs = append(errs, "ingest.sample_bytes must be > 0")
	}

	switch mode {
	case "ingest":
	case "lookup":
		switch c.Lookup.Driver {
		case DriverPostgres:
			if c.Lookup.DatabaseURL == "" {
				errs = append(errs, "lookup.database_url is required for the postgres driver")
			}
		case DriverSQLite:
			if c.Registry.SQLitePath == "" {
				errs = append(errs, "registry.sqlite_path is required for the sqlite driver")
			}
		default:
			errs = append(errs, "lookup.driver must be postgres or sqlite")
		}
		if c.Lookup.BatchSize <= 0 {
			errs = append(errs, "lookup.batch_size must be > 0")
		}
		if c.Lookup.BatchesPerSecond < 0 {
			errs = append(errs, "lookup.batches_per_second must be >= 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}
