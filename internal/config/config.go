package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	AllowedOrigins []string `toml:"allowed_origins"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage: file | redis | postgres | sqlite
	StoreBackend   string `toml:"store_backend"`
	DataDir        string `toml:"data_dir"`
	SQLitePath     string `toml:"sqlite_path"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// training
	CatalogPath        string `toml:"catalog_path"`
	RotationScope      string `toml:"rotation_scope"`
	PlanCacheSizeMB    int    `toml:"plan_cache_size_mb"`
	PlanCacheTTLSec    int    `toml:"plan_cache_ttl_sec"`
	LeaderboardRefresh string `toml:"leaderboard_refresh"`

	// rate limiting (needs redis)
	WriteRateLimitPerMin int `toml:"write_rate_limit_per_min"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

// Secrets are never kept in the TOML file.
type Secrets struct {
	SentryDSN        string `env:"SENTRY_DSN"`
	RedisPassword    string `env:"WORKOUTSCHED_REDIS_PASS"`
	PostgresPassword string `env:"WORKOUTSCHED_DB_PASS"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED, default=false"`
	HoneycombAPIKey  string `env:"HONEYCOMB_API_KEY"`
	OtelServiceName  string `env:"OTEL_SERVICE_NAME, default=workoutsched"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}
	return t.Get(env)
}

// Parse is like Load, but reads TOML from a string.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}
	return t.Get(env)
}

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	var s Secrets
	if err := envconfig.Process(ctx, &s); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}
	return &s, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8501
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{fmt.Sprintf("http://localhost:%d", c.Port)}
	}
	if c.StoreBackend == "" {
		c.StoreBackend = "file"
	}
	if c.DataDir == "" {
		c.DataDir = "user_data"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "workoutsched.db"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.RotationScope == "" {
		c.RotationScope = "team"
	}
	if c.PlanCacheSizeMB <= 0 {
		c.PlanCacheSizeMB = 8
	}
	if c.PlanCacheTTLSec <= 0 {
		c.PlanCacheTTLSec = 600
	}
	if c.LeaderboardRefresh == "" {
		c.LeaderboardRefresh = "@every 10m"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "9091"
	}
}
