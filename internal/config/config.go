// Package config loads server settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr   string `yaml:"listen_addr"`
	CORSOrigin   string `yaml:"cors_origin"`
	RedisAddr    string `yaml:"redis_addr"`
	ClockSeconds int    `yaml:"clock_seconds"`
	Log          Log    `yaml:"log"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaults() *Config {
	return &Config{
		ListenAddr:   ":8080",
		CORSOrigin:   "http://localhost:5173",
		RedisAddr:    "",
		ClockSeconds: 600,
		Log:          Log{Level: "info", Format: "console"},
	}
}

// Load reads path if non-empty, then applies environment overrides.
// A missing file is an error; an empty path is not.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if cfg.ClockSeconds <= 0 {
		return nil, fmt.Errorf("config: clock_seconds must be positive, got %d", cfg.ClockSeconds)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		cfg.CORSOrigin = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("CLOCK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ClockSeconds = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
