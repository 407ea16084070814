package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// LoadConfig loads the configuration from file and environment variables.
// File keys can be overridden with RISKBOARD_-prefixed env vars, e.g.
// RISKBOARD_DATABASE_HOST.
func LoadConfig() (*Config, error) {
	v := newViper()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WatchLogLevel re-applies the log level whenever the config file changes.
// Only the log level is hot-reloaded; everything else requires a restart.
func WatchLogLevel(apply func(level string)) error {
	v := newViper()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		return nil // no file to watch
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if l := v.GetString("log.level"); l != "" {
			apply(l)
		}
	})
	v.WatchConfig()
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("upstream.timeout", 30)
	v.SetDefault("upstream.cache_ttl", 900)
	v.SetDefault("collector.interval", 60)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.per_tenant_rpm", 600)
	v.SetDefault("kafka.topic", "riskboard.audit")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("tracing.service_name", "riskboard")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/riskboard/")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RISKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}
