package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type StorageBackend string

const (
	StorageRedis    StorageBackend = "redis"
	StoragePostgres StorageBackend = "postgres"
	StorageMemory   StorageBackend = "memory"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	StorageBackend   StorageBackend `toml:"storage_backend"`
	StoreCacheSizeMB int            `toml:"store_cache_size_mb"`
	RedisHost        string         `toml:"redis_host"`
	RedisPort        string         `toml:"redis_port"`
	PostgresHost     string         `toml:"postgres_host"`
	PostgresPort     string         `toml:"postgres_port"`
	PostgresDBName   string         `toml:"postgres_db_name"`
	PostgresUser     string         `toml:"postgres_user"`
	PostgresMaxConns int32          `toml:"postgres_max_conns"`

	// exercise catalog, the embedded one is used when empty
	CatalogPath string `toml:"catalog_path"`

	// collaborators
	HealthServiceURL   string        `toml:"health_service_url"`
	AnalyzerServiceURL string        `toml:"analyzer_service_url"`
	HeartRatePollEvery time.Duration `toml:"heart_rate_poll_every"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	ApplyRateLimitAllowedPerMin int      `toml:"apply_rate_limit_allowed_per_min"`
	CorsAllowedOrigins          []string `toml:"cors_allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML config file and returns the config of the given environment.
func Load(env, path string) (*Config, error) {
	tomlBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(env, string(tomlBytes))
}

func Parse(env, tomlData string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(tomlData, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: no config for env [%s]", ErrInvalidConfig, env)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.StorageBackend == "" {
		c.StorageBackend = StorageMemory
	}
	if c.StoreCacheSizeMB <= 0 {
		c.StoreCacheSizeMB = 10
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.HeartRatePollEvery <= 0 {
		c.HeartRatePollEvery = 10 * time.Second
	}
	if c.ApplyRateLimitAllowedPerMin <= 0 {
		c.ApplyRateLimitAllowedPerMin = 10
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("%w: port must be set", ErrInvalidConfig)
	}

	switch c.StorageBackend {
	case StorageMemory:
	case StorageRedis:
		if c.RedisHost == "" {
			return fmt.Errorf("%w: redis_host required for redis storage", ErrInvalidConfig)
		}
	case StoragePostgres:
		if c.PostgresHost == "" || c.PostgresDBName == "" {
			return fmt.Errorf("%w: postgres_host and postgres_db_name required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend [%s]", ErrInvalidConfig, c.StorageBackend)
	}

	return nil
}
