// Package config loads the server configuration from defaults, optional TOML
// files and FAIRSHARE_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone database for minimal images

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Auth    AuthConfig    `toml:"auth"`
	Logging LoggingConfig `toml:"logging"`
	Locale  LocaleConfig  `toml:"locale"`
}

// ServerConfig holds the listener settings.
type ServerConfig struct {
	Port int `toml:"port"`
	// MetricsPort serves /metrics on its own listener. 0 disables it.
	MetricsPort int    `toml:"metrics_port"`
	CORSOrigin  string `toml:"cors_origin"`
}

// StorageConfig holds the database location.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// AuthConfig holds the shared secret of the token issuer.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
}

// LocaleConfig controls how amounts and dates are presented.
type LocaleConfig struct {
	Language       string `toml:"language"`
	CurrencySymbol string `toml:"currency_symbol"`
	Timezone       string `toml:"timezone"`
}

// Tag returns the configured language, falling back to Indian English.
func (c *LocaleConfig) Tag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.MustParse("en-IN")
	}
	return tag
}

// Location returns the configured time zone, falling back to UTC.
func (c *LocaleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			MetricsPort: 9090,
			CORSOrigin:  "*",
		},
		Storage: StorageConfig{
			DBPath: "./data/fairshare.db",
		},
		Auth: AuthConfig{
			TokenExpiry: "24h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Locale: LocaleConfig{
			Language:       "en-IN",
			CurrencySymbol: "₹",
			Timezone:       "Asia/Kolkata",
		},
	}
}

// Load builds the configuration from defaults, then each existing TOML file
// in order (later files override earlier), then environment overrides.
// Missing files are skipped.
func Load(paths ...string) (*Config, error) {
	cfg := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	var err error
	if cfg.Server.Port, err = getEnvInt("FAIRSHARE_PORT", cfg.Server.Port); err != nil {
		return err
	}
	if cfg.Server.MetricsPort, err = getEnvInt("FAIRSHARE_METRICS_PORT", cfg.Server.MetricsPort); err != nil {
		return err
	}
	cfg.Server.CORSOrigin = getEnv("FAIRSHARE_CORS_ORIGIN", cfg.Server.CORSOrigin)
	cfg.Storage.DBPath = getEnv("FAIRSHARE_DB_PATH", cfg.Storage.DBPath)
	cfg.Auth.JWTSecret = getEnv("FAIRSHARE_JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenExpiry = getEnv("FAIRSHARE_TOKEN_EXPIRY", cfg.Auth.TokenExpiry)
	cfg.Logging.Level = getEnv("FAIRSHARE_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("FAIRSHARE_LOG_FORMAT", cfg.Logging.Format)
	cfg.Locale.Language = getEnv("FAIRSHARE_LANGUAGE", cfg.Locale.Language)
	cfg.Locale.CurrencySymbol = getEnv("FAIRSHARE_CURRENCY_SYMBOL", cfg.Locale.CurrencySymbol)
	cfg.Locale.Timezone = getEnv("FAIRSHARE_TIMEZONE", cfg.Locale.Timezone)
	return nil
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Server.Port))
	}
	if c.Server.MetricsPort < 0 || c.Server.MetricsPort > 65535 {
		errs = append(errs, fmt.Sprintf("invalid metrics port %d: must be between 0 and 65535", c.Server.MetricsPort))
	} else if c.Server.MetricsPort == c.Server.Port {
		errs = append(errs, fmt.Sprintf("metrics port %d must differ from the API port", c.Server.MetricsPort))
	}

	if c.Storage.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, "JWT secret is required (FAIRSHARE_JWT_SECRET)")
	}
	if c.Auth.TokenExpiry != "" {
		if _, err := time.ParseDuration(c.Auth.TokenExpiry); err != nil {
			errs = append(errs, fmt.Sprintf("invalid token expiry '%s': %v", c.Auth.TokenExpiry, err))
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of %v", c.Logging.Level, validLevels))
	}
	validFormats := []string{"text", "json"}
	if !slices.Contains(validFormats, strings.ToLower(c.Logging.Format)) {
		errs = append(errs, fmt.Sprintf("invalid log format '%s': must be one of %v", c.Logging.Format, validFormats))
	}

	if _, err := language.Parse(c.Locale.Language); err != nil {
		errs = append(errs, fmt.Sprintf("invalid language '%s': %v", c.Locale.Language, err))
	}
	if _, err := time.LoadLocation(c.Locale.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("invalid timezone '%s': %v", c.Locale.Timezone, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': must be a number", key, value)
	}
	return i, nil
}
