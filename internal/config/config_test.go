package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "postgres", cfg.Lookup.Driver)
	assert.Empty(t, cfg.Lookup.DatabaseURL)
	assert.Equal(t, 1000, cfg.Lookup.BatchSize)
	assert.InDelta(t, 0, cfg.Lookup.BatchesPerSecond, 0.001)
	assert.Equal(t, 100000, cfg.Ingest.SampleBytes)
	assert.Equal(t, "registry.db", cfg.Registry.SQLitePath)
	assert.Empty(t, cfg.Tables.Path)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
lookup:
  driver: sqlite
  batch_size: 250
  batches_per_second: 2.5
log:
  level: debug
  format: console
registry:
  sqlite_path: /data/cnpj.db
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Lookup.Driver)
	assert.Equal(t, 250, cfg.Lookup.BatchSize)
	assert.InDelta(t, 2.5, cfg.Lookup.BatchesPerSecond, 0.001)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "/data/cnpj.db", cfg.Registry.SQLitePath)
	// Defaults still apply for unset values
	assert.Equal(t, 100000, cfg.Ingest.SampleBytes)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
lookup:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("RECONCILE_LOOKUP_DRIVER", "postgres")
	t.Setenv("RECONCILE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Lookup.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("RECONCILE_LOOKUP_DATABASE_URL", "postgres://localhost/cnpj")
	t.Setenv("RECONCILE_INGEST_SAMPLE_BYTES", "4096")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/cnpj", cfg.Lookup.DatabaseURL)
	assert.Equal(t, 4096, cfg.Ingest.SampleBytes)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Lookup.Driver = DriverPostgres
	cfg.Lookup.BatchSize = 1000
	cfg.Ingest.SampleBytes = 100000
	cfg.Registry.SQLitePath = "registry.db"
	return cfg
}

func TestValidateIngest(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("ingest"))

	cfg.Ingest.SampleBytes = 0
	err := cfg.Validate("ingest")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ingest.sample_bytes must be > 0")
}

func TestValidateLookup_Postgres(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("lookup")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "lookup.database_url is required")

	cfg.Lookup.DatabaseURL = "postgres://localhost/cnpj"
	assert.NoError(t, cfg.Validate("lookup"))
}

func TestValidateLookup_SQLite(t *testing.T) {
	cfg := validDefaults()
	cfg.Lookup.Driver = DriverSQLite
	assert.NoError(t, cfg.Validate("lookup"))

	cfg.Registry.SQLitePath = ""
	err := cfg.Validate("lookup")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "registry.sqlite_path is required")
}

func TestValidateLookup_Bounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Lookup.Driver = "mysql"
	cfg.Lookup.BatchSize = 0
	cfg.Lookup.BatchesPerSecond = -1

	err := cfg.Validate("lookup")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "lookup.driver must be postgres or sqlite")
	assert.Contains(t, err.Error(), "lookup.batch_size must be > 0")
	assert.Contains(t, err.Error(), "lookup.batches_per_second must be >= 0")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
