// Package config holds the application configuration and its viper loader.
package config

import (
	"fmt"
	"time"
)

// Config holds the application's configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Upstream   UpstreamConfig   `mapstructure:"upstream"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Vault      VaultConfig      `mapstructure:"vault"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Collector  CollectorConfig  `mapstructure:"collector"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Log        LogConfig        `mapstructure:"log"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // in minutes
}

// DSN returns the Postgres connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

type RedisConfig struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// UpstreamConfig points at the metrics backend that proxies Microsoft Graph.
type UpstreamConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // in seconds
	// CacheTTL bounds staleness of cached metric payloads, in seconds.
	CacheTTL int `mapstructure:"cache_ttl"`
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *UpstreamConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// MetricCacheTTL returns the metric cache TTL as a duration.
func (c *UpstreamConfig) MetricCacheTTL() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// AuthConfig configures validation of session tokens minted by the SSO
// backend. Credential handling itself is not this service's job.
type AuthConfig struct {
	// SSOLoginURL is where /api/login redirects unauthenticated staff.
	SSOLoginURL string `mapstructure:"sso_login_url"`
	// SessionSecret is the HMAC key shared with the SSO backend.
	SessionSecret string `mapstructure:"session_secret"`
}

type VaultConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Token     string `mapstructure:"token"`
	MountPath string `mapstructure:"mount_path"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// CollectorConfig configures the background snapshot collector.
type CollectorConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Interval int  `mapstructure:"interval"` // in minutes
}

// TickInterval returns the collection interval as a duration.
func (c *CollectorConfig) TickInterval() time.Duration {
	return time.Duration(c.Interval) * time.Minute
}

type RateLimitConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	PerTenantRPM int `mapstructure:"per_tenant_rpm"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	ServiceName    string `mapstructure:"service_name"`
	Environment    string `mapstructure:"environment"`
}

type MonitoringConfig struct {
	PprofEnabled bool `mapstructure:"pprof_enabled"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("auth.session_secret is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers required when kafka.enabled")
	}
	if c.Vault.Enabled && c.Vault.Address == "" {
		return fmt.Errorf("vault.address required when vault.enabled")
	}
	return nil
}
