package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Store        StoreConfig
	DB           DBConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyLegacyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"RECEIPTS_APP_ENV" default:"dev"`
	Port            string        `envconfig:"RECEIPTS_APP_PORT"`
	LogLevel        string        `envconfig:"RECEIPTS_LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"RECEIPTS_LOG_FORMAT" default:"json"`
	LogWarnStack    bool          `envconfig:"RECEIPTS_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"RECEIPTS_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Addr returns the listen address for the HTTP server.
func (a AppConfig) Addr() string {
	return ":" + a.Port
}

type StoreConfig struct {
	Driver string `envconfig:"RECEIPTS_STORE_DRIVER" default:"sqlite"`
}

// Persistent reports whether receipts outlive the process.
func (s StoreConfig) Persistent() bool {
	return s.normalized() != StoreDriverMemory
}

func (s StoreConfig) normalized() string {
	return strings.ToLower(strings.TrimSpace(s.Driver))
}

type DBConfig struct {
	DSN  string `envconfig:"RECEIPTS_DB_DSN"`
	Path string `envconfig:"RECEIPTS_DB_PATH"`

	// Driver mirrors Store.Driver for the sql-backed drivers.
	Driver string `ignored:"true"`

	MaxOpenConns    int           `envconfig:"RECEIPTS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RECEIPTS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RECEIPTS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RECEIPTS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite dialector should be used.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, StoreDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"RECEIPTS_REDIS_URL"`
	Address      string        `envconfig:"RECEIPTS_REDIS_ADDR"`
	Password     string        `envconfig:"RECEIPTS_REDIS_PASSWORD"`
	DB           int           `envconfig:"RECEIPTS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RECEIPTS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RECEIPTS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RECEIPTS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RECEIPTS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RECEIPTS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type RateLimitConfig struct {
	ProcessWindow time.Duration `envconfig:"RECEIPTS_RATE_LIMIT_WINDOW" default:"1m"`
	ProcessLimit  int           `envconfig:"RECEIPTS_RATE_LIMIT_LIMIT" default:"120"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"RECEIPTS_AUTO_MIGRATE" default:"true"`
}

// applyLegacyEnv honors the unprefixed PORT and DB_PATH variables the service
// has always been deployed with.
func (c *Config) applyLegacyEnv() {
	if c.App.Port == "" {
		c.App.Port = getenv(EnvLegacyPort, DefaultPort)
	}
	if c.DB.Path == "" {
		c.DB.Path = getenv(EnvLegacyDBPath, DefaultDBPath)
	}
	c.Store.Driver = c.Store.normalized()
	c.DB.Driver = c.Store.Driver
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverSQLite:
	case StoreDriverPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvStoreDriver, StoreDriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStoreDriver, c.Store.Driver)
	}
	if strings.TrimSpace(c.App.Port) == "" {
		return fmt.Errorf("%s is required", EnvPort)
	}
	return nil
}

func getenv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
