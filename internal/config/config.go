package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreSqlite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`
	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// local store
	StoreDriver    string `toml:"store_driver"`
	SqlitePath     string `toml:"sqlite_path"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// 0 keeps the driver default
	PostgresMaxConns int32 `toml:"postgres_max_conns"`
	// redis (sessions, rate limiting)
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// history cache
	HistoryCacheSizeMB int `toml:"history_cache_size_mb"`
	// calendar days are computed in this zone
	Timezone string `toml:"timezone"`
	// remote sync
	RemoteSyncEnabled  bool   `toml:"remote_sync_enabled"`
	FirestoreProjectID string `toml:"firestore_project_id"`
	// empty outside local development
	FirestoreEmulatorHost string `toml:"firestore_emulator_host"`

	AllowedOrigins []string `toml:"allowed_origins"`

	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_allowed_per_min"`
}

// Location resolves the configured time zone, defaulting to the local one.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreSqlite:
		if c.SqlitePath == "" {
			return fmt.Errorf("sqlite_path must be set for the sqlite store")
		}
	case StorePostgres:
		if c.PostgresHost == "" || c.PostgresDBName == "" {
			return fmt.Errorf("postgres_host and postgres_db_name must be set for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store driver: %s", c.StoreDriver)
	}
	if c.RemoteSyncEnabled && c.FirestoreProjectID == "" {
		return fmt.Errorf("firestore_project_id must be set when remote sync is enabled")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.StoreDriver == "" {
		c.StoreDriver = StoreSqlite
	}
	if c.HistoryCacheSizeMB <= 0 {
		c.HistoryCacheSizeMB = 16
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
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
		return nil, fmt.Errorf("config section for env %s missing", env)
	}
	return cfg, nil
}

// Load reads the TOML file and returns the section for the given environment.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load on in-memory TOML.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.Environment = strings.ToLower(env)
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}
	return cfg, nil
}

// Secrets never live in the TOML file.
type Secrets struct {
	UserID                   string `env:"LIFTLOG_USER_ID"`
	PasswordHash             string `env:"LIFTLOG_PASSWORD_HASH"`
	RedisPassword            string `env:"LIFTLOG_REDIS_PASS"`
	PostgresPassword         string `env:"LIFTLOG_POSTGRES_PASS"`
	SentryDSN                string `env:"SENTRY_DSN"`
	HoneycombEnabled         bool   `env:"HONEYCOMB_ENABLED, default=false"`
	HoneycombApiKey          string `env:"HONEYCOMB_API_KEY"`
	FirestoreCredentialsFile string `env:"LIFTLOG_FIRESTORE_CREDENTIALS"`
}

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	return loadSecrets(ctx, envconfig.OsLookuper())
}

func loadSecrets(ctx context.Context, lookuper envconfig.Lookuper) (*Secrets, error) {
	var s Secrets
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}
	return &s, nil
}
