package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reconcile-cli/internal/classify"
	"github.com/sells-group/reconcile-cli/internal/config"
	"github.com/sells-group/reconcile-cli/internal/db"
	"github.com/sells-group/reconcile-cli/internal/registry"
)

// registryBackend is a legal-nature lookup that can also be loaded from a snapshot.
type registryBackend interface {
	classify.Lookup
	Import(ctx context.Context, entries []registry.Entry) (int64, error)
	Replace(ctx context.Context, entries []registry.Entry) (int64, error)
}

// openRegistry connects to the configured lookup driver. The returned func
// releases it.
func openRegistry(ctx context.Context) (registryBackend, func(), error) {
	switch cfg.Lookup.Driver {
	case config.DriverSQLite:
		s, err := registry.NewSQLite(cfg.Registry.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close() //nolint:errcheck
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg.Lookup.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return registry.NewPostgresLookup(pool), pool.Close, nil
	default:
		return nil, nil, eris.Errorf("unsupported lookup driver: %s", cfg.Lookup.Driver)
	}
}

// newResolver builds a classifier over lookup using the configured tables and limits.
func newResolver(lookup classify.Lookup) *classify.Resolver {
	return classify.New(lookup, tables.Rules(),
		classify.WithBatchSize(cfg.Lookup.BatchSize),
		classify.WithRateLimit(cfg.Lookup.BatchesPerSecond),
	)
}
