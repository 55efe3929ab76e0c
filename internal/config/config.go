// Package config loads settings for the client and the backend server from
// an optional .env file and JSQL_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "JSQL_"

// DefaultEnvFile is loaded when no other file is named.
const DefaultEnvFile = ".env"

// Default configuration values.
const (
	DefaultBackendURL  = "http://localhost:8080"
	DefaultSeedMode    = "client"
	DefaultPort        = "8080"
	DefaultAllowOrigin = "*"
	DefaultLogLevel    = "info"
)

// Config is the merged configuration.
type Config struct {
	BackendURL  string `koanf:"backend_url"`
	SeedMode    string `koanf:"seed_mode"`
	Port        string `koanf:"port"`
	DatabaseURL string `koanf:"database_url"`
	AllowOrigin string `koanf:"allow_origin"`
	LogLevel    string `koanf:"log_level"`
}

// Load reads envFile (a missing file is not an error) into the process
// environment and layers JSQL_ variables over the defaults.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"backend_url":  DefaultBackendURL,
		"seed_mode":    DefaultSeedMode,
		"port":         DefaultPort,
		"database_url": "",
		"allow_origin": DefaultAllowOrigin,
		"log_level":    DefaultLogLevel,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// JSQL_BACKEND_URL -> backend_url
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// ParseLevel maps a level name to a slog.Level. Unknown names are an error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at the named level.
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
