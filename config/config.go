package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Store backends understood by storage.Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// StoreConfig selects where tallies are persisted.
type StoreConfig struct {
	Backend  string `json:"backend" mapstructure:"backend"`
	FilePath string `json:"file_path" mapstructure:"file_path"`
	// Key is the fixed key tallies are stored under; sessions append ":<id>".
	Key string `json:"key" mapstructure:"key"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `json:"addr" mapstructure:"addr"`
	Password string `json:"password" mapstructure:"password"`
	DB       int    `json:"db" mapstructure:"db"`
}

// Config holds all configurable parameters of both surfaces.
type Config struct {
	HTTPPort int    `json:"http_port" mapstructure:"http_port"`
	LogLevel string `json:"log_level" mapstructure:"log_level"`

	Store       StoreConfig `json:"store" mapstructure:"store"`
	Redis       RedisConfig `json:"redis" mapstructure:"redis"`
	DatabaseURL string      `json:"database_url" mapstructure:"database_url"`

	// SessionSecret signs browser session tokens. Empty means a random secret per process.
	SessionSecret     string `json:"session_secret" mapstructure:"session_secret"`
	SessionTTLMinutes int    `json:"session_ttl_minutes" mapstructure:"session_ttl_minutes"`

	// ContinuePauseMS is how long the terminal waits before returning to the menu.
	ContinuePauseMS int `json:"continue_pause_ms" mapstructure:"continue_pause_ms"`
	// PersistTerminal stores the terminal tally in the configured store.
	PersistTerminal bool `json:"persist_terminal" mapstructure:"persist_terminal"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		HTTPPort: 8080,
		LogLevel: "info",
		Store: StoreConfig{
			Backend:  BackendFile,
			FilePath: ".janken/stats.json",
			Key:      "jankenStats",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		SessionTTLMinutes: 60 * 24 * 30,
		ContinuePauseMS:   1000,
	}
}

// Load reads configuration from an optional config file, then applies
// environment variable overrides. path may name a json/yaml/toml file; when
// empty, "config.*" in the working directory is used if present. Fields not
// set in either source retain their default values.
func Load(path string) *Config {
	cfg := Defaults()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			slog.Warn("failed to read config file", "tag", "config", "path", path, "err", err)
		}
	} else if err := v.Unmarshal(cfg); err != nil {
		slog.Warn("failed to parse config file", "tag", "config", "path", v.ConfigFileUsed(), "err", err)
	}

	// Environment variable overrides
	overrideInt(&cfg.HTTPPort, "HTTP_PORT")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.Store.Backend, "STORE_BACKEND")
	overrideString(&cfg.Store.FilePath, "STORE_FILE")
	overrideString(&cfg.Store.Key, "STORE_KEY")
	overrideString(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideString(&cfg.Redis.Password, "REDIS_PASSWORD")
	overrideInt(&cfg.Redis.DB, "REDIS_DB")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.SessionSecret, "SESSION_SECRET")
	overrideInt(&cfg.SessionTTLMinutes, "SESSION_TTL_MIN")
	overrideInt(&cfg.ContinuePauseMS, "CONTINUE_PAUSE_MS")
	overrideBool(&cfg.PersistTerminal, "PERSIST_TERMINAL")

	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	return cfg
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			slog.Warn("invalid integer in environment", "tag", "config", "key", envKey, "value", val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func overrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*field = b
		} else {
			slog.Warn("invalid boolean in environment", "tag", "config", "key", envKey, "value", val)
		}
	}
}
