package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. A config.yaml can override
// the defaults; a handful of environment variables override the file
// (deployment platforms mostly speak env).
type Config struct {
	Server ServerConfig `yaml:"server"`
	Cache  CacheConfig  `yaml:"cache"`
	Broker BrokerConfig `yaml:"broker"`
	Sweep  SweepConfig  `yaml:"sweep"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// CacheConfig drives which RoomCache implementation gets built.
// MemcachedHost empty means local-only; Enabled false means no-op.
type CacheConfig struct {
	Enabled       bool   `yaml:"enabled"`
	MaxSize       int64  `yaml:"max_size"`
	TTLSeconds    int    `yaml:"ttl_seconds"`
	MemcachedHost string `yaml:"memcached_host"`
}

// BrokerConfig enables the cross-instance invalidation fan-out when a
// URL is set.
type BrokerConfig struct {
	URL   string `yaml:"url"`
	Queue string `yaml:"queue"`
}

// SweepConfig controls the daily proposal-expiration sweep.
type SweepConfig struct {
	Enabled bool   `yaml:"enabled"`
	RunAt   string `yaml:"run_at"` // HH:MM
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Cache: CacheConfig{
			Enabled:    true,
			MaxSize:    1000,
			TTLSeconds: 300,
		},
		Broker: BrokerConfig{Queue: "room_invalidation_queue"},
		Sweep:  SweepConfig{Enabled: true, RunAt: "03:00"},
	}
}

// Load reads the config file at path (optional) and applies env
// overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Server.Port = v
	}
	if v := strings.TrimSpace(os.Getenv("MEMCACHED_HOST")); v != "" {
		cfg.Cache.MemcachedHost = v
	}
	if v := strings.TrimSpace(os.Getenv("RABBITMQ_URL")); v != "" {
		cfg.Broker.URL = v
	}
	if v := strings.TrimSpace(os.Getenv("CACHE_DISABLED")); strings.EqualFold(v, "true") {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

// CacheTTL returns the configured entry lifetime.
func (c CacheConfig) CacheTTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
}
