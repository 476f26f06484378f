// Package config reads the server configuration from the environment,
// loading a .env file first when one is present.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	JWTSecret       string
	JWTTTL          time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CandidateTTL    time.Duration
	LogLevel        slog.Level
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LoadDotEnv loads .env into the process environment. A missing file is not
// an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// Load reads .env and the environment.
func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPAddr:      withDefault(getenv("HTTP_ADDR"), "0.0.0.0:8080"),
		DatabaseURL:   DatabaseURL(getenv),
		JWTSecret:     getenv("JWT_SECRET"),
		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		LogFormat:     strings.ToLower(withDefault(getenv("LOG_FORMAT"), "json")),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database is not configured (set DATABASE_URL or POSTGRES_*)")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	var err error
	if cfg.JWTTTL, err = duration(getenv, "JWT_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.CandidateTTL, err = duration(getenv, "CANDIDATE_CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = duration(getenv, "SHUTDOWN_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}

	if raw := getenv("REDIS_DB"); raw != "" {
		if cfg.RedisDB, err = strconv.Atoi(raw); err != nil {
			return Config{}, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

// DatabaseURL prefers DATABASE_URL and otherwise builds a URL from the
// POSTGRES_* variables.
func DatabaseURL(getenv func(string) string) string {
	if dsn := getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	host := getenv("POSTGRES_HOST")
	if host == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getenv("POSTGRES_USER"), getenv("POSTGRES_PASSWORD")),
		Host:     host + ":" + withDefault(getenv("POSTGRES_PORT"), "5432"),
		Path:     "/" + getenv("POSTGRES_DB"),
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// NewLogger builds the process logger from the configured level and format.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func withDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
