package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Rates     RatesConfig     `mapstructure:"rates"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Admin     AdminConfig     `mapstructure:"admin"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

type RatesConfig struct {
	ExpiryMinutes int `mapstructure:"expiry_minutes"`
}

// ExpiryWindow returns the staleness window for the published rate snapshot.
func (r RatesConfig) ExpiryWindow() time.Duration {
	return time.Duration(r.ExpiryMinutes) * time.Minute
}

type LedgerConfig struct {
	ReferenceAttempts int `mapstructure:"reference_attempts"`
	DefaultPageSize   int `mapstructure:"default_page_size"`
	MaxPageSize       int `mapstructure:"max_page_size"`
}

type ArchiveConfig struct {
	Retention time.Duration `mapstructure:"retention"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	LockTTL   time.Duration `mapstructure:"lock_ttl"`
	LockKey   string        `mapstructure:"lock_key"`
}

type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type RateLimitConfig struct {
	OrdersPerMinute int64 `mapstructure:"orders_per_minute"`
	QuotesPerMinute int64 `mapstructure:"quotes_per_minute"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: EXL_ (Exchange Ledger).
// Nested keys use underscore: EXL_DATABASE_HOST, EXL_RATES_EXPIRY_MINUTES, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "exchange_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("rates.expiry_minutes", 1440)
	v.SetDefault("ledger.reference_attempts", 100)
	v.SetDefault("ledger.default_page_size", 50)
	v.SetDefault("ledger.max_page_size", 200)
	v.SetDefault("archive.retention", "720h")
	v.SetDefault("archive.interval", "24h")
	v.SetDefault("archive.batch_size", 500)
	v.SetDefault("archive.lock_ttl", "1h")
	v.SetDefault("archive.lock_key", "exl:archive:lock")
	v.SetDefault("admin.api_key", "")
	v.SetDefault("ratelimit.orders_per_minute", 10)
	v.SetDefault("ratelimit.quotes_per_minute", 120)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: EXL_DATABASE_HOST -> database.host
	v.SetEnvPrefix("EXL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Rates.ExpiryMinutes <= 0 {
		return fmt.Errorf("rates.expiry_minutes must be positive, got %d", c.Rates.ExpiryMinutes)
	}
	if c.Ledger.ReferenceAttempts <= 0 {
		return fmt.Errorf("ledger.reference_attempts must be positive, got %d", c.Ledger.ReferenceAttempts)
	}
	if c.Archive.Retention <= 0 {
		return fmt.Errorf("archive.retention must be positive")
	}
	if c.Archive.BatchSize <= 0 {
		return fmt.Errorf("archive.batch_size must be positive, got %d", c.Archive.BatchSize)
	}
	return nil
}
