// Package config loads server settings from defaults, an optional YAML file
// and the environment, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/seabattle-go/internal/services/directory"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type     string `yaml:"type"`
	RedisURL string `yaml:"redis_url"`
}

// Config holds every server setting
type Config struct {
	HTTPPort  int    `yaml:"http_port"`
	WSPort    int    `yaml:"ws_port"`
	StaticDir string `yaml:"static_dir"`
	LogLevel  string `yaml:"log_level"`

	Storage StorageConfig `yaml:"storage"`

	BcryptCost int `yaml:"bcrypt_cost"`
	SendBuffer int `yaml:"send_buffer"`
	QueueSize  int `yaml:"queue_size"`

	SeedPlayers []directory.Credentials `yaml:"seed_players"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		HTTPPort:  8181,
		WSPort:    3000,
		StaticDir: "front",
		LogLevel:  "info",
		Storage: StorageConfig{
			Type: StorageMemory,
		},
		BcryptCost: directory.DefaultConfig().BcryptCost,
		SendBuffer: 256,
		QueueSize:  1024,
		SeedPlayers: []directory.Credentials{
			{Name: "gamer", Password: "gamer"},
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := env("STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := env("REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := env("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := env("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := env("HTTP_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.HTTPPort = n
	}
	if v := env("WS_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WS_PORT: %w", err)
		}
		c.WSPort = n
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// Validate reports the first inconsistent setting
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory:
	case StorageRedis:
		if c.Storage.RedisURL == "" {
			return errors.New("REDIS_URL required when storage type is redis")
		}
	default:
		return fmt.Errorf("invalid storage type %q: must be %q or %q", c.Storage.Type, StorageMemory, StorageRedis)
	}

	if !validPort(c.HTTPPort) {
		return fmt.Errorf("invalid http port %d", c.HTTPPort)
	}
	if !validPort(c.WSPort) {
		return fmt.Errorf("invalid ws port %d", c.WSPort)
	}
	if c.HTTPPort == c.WSPort {
		return fmt.Errorf("http and ws ports must differ (both %d)", c.HTTPPort)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func validPort(p int) bool {
	return p > 0 && p < 65536
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
