// Package config loads errfix.yaml run configurations.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/errfix/pkg/walk"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "errfix.yaml"

// Config is the structure of errfix.yaml.
type Config struct {
	// Model is the path to the state table.
	Model    string `yaml:"model" json:"model"`
	Start    string `yaml:"start" json:"start"`
	Steps    int    `yaml:"steps" json:"steps"`
	Walks    int    `yaml:"walks" json:"walks"`
	Seed     uint64 `yaml:"seed" json:"seed"`
	LogLevel string `yaml:"log_level" json:"log_level"`

	Redis *RedisConfig `yaml:"redis,omitempty" json:"redis,omitempty"`
}

// RedisConfig selects the Redis walk store.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Steps:    walk.DefaultStepLimit,
		Walks:    1,
		LogLevel: "info",
	}
}

// Load reads the configuration at path on top of Default.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports settings that can never produce a walk.
func (c Config) Validate() error {
	if c.Steps < walk.MinStepLimit {
		return fmt.Errorf("steps must be at least %d, got %d", walk.MinStepLimit, c.Steps)
	}
	if c.Walks < 1 {
		return fmt.Errorf("walks must be at least 1, got %d", c.Walks)
	}
	if c.Redis != nil && c.Redis.Addr == "" {
		return errors.New("redis.addr is required when redis is configured")
	}
	return nil
}
