// Package config loads runtime settings for the API from the environment,
// an optional config file and command-line flags.
//
// Every key can be supplied as an upper-case environment variable
// (database_url -> DATABASE_URL). Defaults match a local development setup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	minJWTSecretBytes = 32

	defaultBcryptCost = 12
	minBcryptCost     = 4
	maxBcryptCost     = 31
)

// DefaultAllowedOrigins is the CORS allow-list used when none is configured.
var DefaultAllowedOrigins = []string{
	"http://localhost:5174",
	"http://localhost:5173",
	"http://localhost:3000",
	"https://rhythm-registry-five.vercel.app",
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

// Config is the resolved application configuration.
type Config struct {
	Port     int            `mapstructure:"port"`
	GinMode  string         `mapstructure:"gin_mode"`
	LogLevel string         `mapstructure:"log_level"`
	Database DatabaseConfig `mapstructure:",squash"`
	Auth     AuthConfig     `mapstructure:",squash"`

	AllowedOrigins   []string `mapstructure:"cors_allowed_origins"`
	MonitoringAPIKey string   `mapstructure:"monitoring_api_key"`

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the connection address is the client.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// DatabaseConfig controls the shared connection pool.
type DatabaseConfig struct {
	URL                    string `mapstructure:"database_url"`
	MaxOpenConns           int    `mapstructure:"db_max_open_conns"`
	MaxIdleConns           int    `mapstructure:"db_max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"db_conn_max_lifetime_minutes"`
	ConnMaxIdleMinutes     int    `mapstructure:"db_conn_max_idle_minutes"`
	AcquireTimeoutMillis   int    `mapstructure:"db_acquire_timeout_ms"`
}

// AuthConfig holds token, password hashing and login throttling settings.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"`
	BcryptCost         int    `mapstructure:"bcrypt_salt_rounds"`
	RateLimitPerMinute int    `mapstructure:"auth_rate_limit_per_minute"`
}

// AcquireTimeout is how long a request waits for a pooled connection.
func (d DatabaseConfig) AcquireTimeout() time.Duration {
	return time.Duration(d.AcquireTimeoutMillis) * time.Millisecond
}

func (d DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(d.ConnMaxLifetimeMinutes) * time.Minute
}

func (d DatabaseConfig) ConnMaxIdleTime() time.Duration {
	return time.Duration(d.ConnMaxIdleMinutes) * time.Minute
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 3000)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("database_url", "")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 10)
	v.SetDefault("db_conn_max_lifetime_minutes", 30)
	v.SetDefault("db_conn_max_idle_minutes", 1)
	v.SetDefault("db_acquire_timeout_ms", 2000)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("bcrypt_salt_rounds", defaultBcryptCost)
	v.SetDefault("auth_rate_limit_per_minute", 30)
	v.SetDefault("cors_allowed_origins", DefaultAllowedOrigins)
	v.SetDefault("monitoring_api_key", "")
	v.SetDefault("trusted_proxies", []string{})
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path and decodes everything into a
// Config. An empty path skips the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.AllowedOrigins = normalizeOrigins(v.GetStringSlice("cors_allowed_origins"))
	cfg.TrustedProxies = splitList(v.GetStringSlice("trusted_proxies"))
	cfg.normalize()

	return &cfg, nil
}

// normalize trims string values and replaces out-of-range numbers with defaults.
func (c *Config) normalize() {
	c.Database.URL = strings.TrimSpace(c.Database.URL)
	c.Auth.JWTSecret = strings.TrimSpace(c.Auth.JWTSecret)
	c.MonitoringAPIKey = strings.TrimSpace(c.MonitoringAPIKey)

	if c.Auth.BcryptCost < minBcryptCost || c.Auth.BcryptCost > maxBcryptCost {
		c.Auth.BcryptCost = defaultBcryptCost
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns <= 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		c.Database.MaxIdleConns = c.Database.MaxOpenConns
	}
	if c.Database.AcquireTimeoutMillis <= 0 {
		c.Database.AcquireTimeoutMillis = 2000
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if len(c.Auth.JWTSecret) < minJWTSecretBytes {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretBytes)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// normalizeOrigins splits comma separated entries (as they arrive from a
// single env var) and drops trailing slashes, which browsers never send.
func normalizeOrigins(raw []string) []string {
	entries := splitList(raw)
	out := entries[:0]
	for _, origin := range entries {
		if origin = strings.TrimRight(origin, "/"); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

// splitList flattens comma separated entries and drops blanks.
func splitList(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, item := range strings.Split(entry, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
