package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Lookup   LookupConfig   `yaml:"lookup" mapstructure:"lookup"`
	Ingest   IngestConfig   `yaml:"ingest" mapstructure:"ingest"`
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
	Tables   TablesConfig   `yaml:"tables" mapstructure:"tables"`
}

// LookupConfig selects and tunes the legal-nature registry backend.
type LookupConfig struct {
	Driver           string  `yaml:"driver" mapstructure:"driver"`
	DatabaseURL      string  `yaml:"database_url" mapstructure:"database_url"`
	BatchSize        int     `yaml:"batch_size" mapstructure:"batch_size"`
	BatchesPerSecond float64 `yaml:"batches_per_second" mapstructure:"batches_per_second"`
}

// IngestConfig configures raw file decoding.
type IngestConfig struct {
	SampleBytes int `yaml:"sample_bytes" mapstructure:"sample_bytes"`
}

// RegistryConfig configures the local registry snapshot.
type RegistryConfig struct {
	SQLitePath string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// TablesConfig points at an optional YAML file overriding the static tables.
type TablesConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RECONCILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("lookup.driver", "postgres")
	v.SetDefault("lookup.database_url", "")
	v.SetDefault("lookup.batch_size", 1000)
	v.SetDefault("lookup.batches_per_second", 0)
	v.SetDefault("ingest.sample_bytes", 100_000)
	v.SetDefault("registry.sqlite_path", "registry.db")
	v.SetDefault("tables.path", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
