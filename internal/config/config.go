// Package config loads application settings from defaults, an optional YAML
// file, a .env file and TICTACTOE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TICTACTOE_"

// Config holds every tunable of the CLI and servers.
type Config struct {
	LogLevel    string        `yaml:"log_level" env:"LOG_LEVEL"`
	ThinkDelay  time.Duration `yaml:"think_delay" env:"THINK_DELAY"`
	HopLimit    int           `yaml:"hop_limit" env:"HOP_LIMIT"`
	Addr        string        `yaml:"addr" env:"ADDR"`
	MetricsAddr string        `yaml:"metrics_addr" env:"METRICS_ADDR"`

	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB"`
	SnapshotTTL   time.Duration `yaml:"snapshot_ttl" env:"SNAPSHOT_TTL"`
	KeyPrefix     string        `yaml:"key_prefix" env:"KEY_PREFIX"`

	// SnapshotDir selects the file store when RedisAddr is empty.
	SnapshotDir string `yaml:"snapshot_dir" env:"SNAPSHOT_DIR"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:    "info",
		ThinkDelay:  500 * time.Millisecond,
		HopLimit:    64,
		Addr:        ":8080",
		SnapshotTTL: 24 * time.Hour,
		KeyPrefix:   "tictactoe:snapshot:",
	}
}

// Load builds the configuration. An empty path skips the YAML file; a
// missing .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		Result:           c,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if c.ThinkDelay < 0 {
		errs = append(errs, fmt.Errorf("think_delay must not be negative"))
	}
	if c.HopLimit < 1 {
		errs = append(errs, fmt.Errorf("hop_limit must be at least 1"))
	}
	if c.SnapshotTTL < 0 {
		errs = append(errs, fmt.Errorf("snapshot_ttl must not be negative"))
	}
	return errors.Join(errs...)
}
