package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all emi-planner configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Storage   StorageConfig   `toml:"storage"`
	Cache     CacheConfig     `toml:"cache"`
	Retention RetentionConfig `toml:"retention"`
	Log       LogConfig       `toml:"log"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Limits    LimitsConfig    `toml:"limits"`
}

type ServerConfig struct {
	Addr                string `toml:"addr"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `toml:"idle_timeout_seconds"`
}

// RateLimitConfig sizes the per-client token bucket.
type RateLimitConfig struct {
	Capacity      int `toml:"capacity"`
	RefillSeconds int `toml:"refill_seconds"`
}

// StorageConfig selects the calculation history backend:
// "memory", "sqlite" or "postgres".
type StorageConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn,omitempty"`
}

// CacheConfig selects the result cache: "memory" or "redis".
type CacheConfig struct {
	Driver     string `toml:"driver"`
	RedisAddr  string `toml:"redis_addr,omitempty"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// RetentionConfig controls the history pruning job. Days <= 0 disables it.
type RetentionConfig struct {
	Days     int    `toml:"days"`
	Schedule string `toml:"schedule"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// CatalogConfig points at an XML scheme catalog; empty uses the built-in one.
type CatalogConfig struct {
	Path string `toml:"path,omitempty"`
}

// LimitsConfig bounds the loan inputs accepted by the service, mirroring the
// ranges offered to students.
type LimitsConfig struct {
	MinPrincipal       float64 `toml:"min_principal"`
	MaxPrincipal       float64 `toml:"max_principal"`
	MaxRatePercent     float64 `toml:"max_rate_percent"`
	MinTenureYears     int     `toml:"min_tenure_years"`
	MaxTenureYears     int     `toml:"max_tenure_years"`
	MaxMoratoriumYears int     `toml:"max_moratorium_years"`
	MinMonthlyPayment  float64 `toml:"min_monthly_payment"`
	MaxMonthlyPayment  float64 `toml:"max_monthly_payment"`
}

// DefaultLimits returns the input domains of the EMI calculator.
func DefaultLimits() LimitsConfig {
	return LimitsConfig{
		MinPrincipal:       100000,
		MaxPrincipal:       5000000,
		MaxRatePercent:     20,
		MinTenureYears:     1,
		MaxTenureYears:     30,
		MaxMoratoriumYears: 6,
		MinMonthlyPayment:  1000,
		MaxMonthlyPayment:  50000,
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
			IdleTimeoutSeconds:  60,
		},
		RateLimit: RateLimitConfig{
			Capacity:      30,
			RefillSeconds: 60,
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTLSeconds: 3600,
		},
		Retention: RetentionConfig{
			Days:     90,
			Schedule: "@daily",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Limits: DefaultLimits(),
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "emi-planner")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "emi-planner")
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path, or the default path when empty, then
// applies environment overrides. A missing default file yields defaults; a
// missing explicit file is an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks driver names and limit ranges.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "sqlite", "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Cache.Driver {
	case "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis cache")
		}
	default:
		return fmt.Errorf("unknown cache driver %q", c.Cache.Driver)
	}

	l := c.Limits
	if l.MinPrincipal <= 0 || l.MaxPrincipal < l.MinPrincipal {
		return fmt.Errorf("invalid principal limits [%v, %v]", l.MinPrincipal, l.MaxPrincipal)
	}
	if l.MinTenureYears <= 0 || l.MaxTenureYears < l.MinTenureYears {
		return fmt.Errorf("invalid tenure limits [%d, %d]", l.MinTenureYears, l.MaxTenureYears)
	}
	if l.MaxRatePercent <= 0 || l.MaxMoratoriumYears < 0 {
		return fmt.Errorf("invalid rate or moratorium limits")
	}
	if l.MinMonthlyPayment <= 0 || l.MaxMonthlyPayment < l.MinMonthlyPayment {
		return fmt.Errorf("invalid monthly payment limits [%v, %v]", l.MinMonthlyPayment, l.MaxMonthlyPayment)
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.RefillSeconds <= 0 {
		return fmt.Errorf("rate limit capacity and refill must be positive")
	}
	return nil
}

// Save writes the config to disk.
func Save(path string, cfg Config) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Server.Addr = getEnv("EMI_ADDR", cfg.Server.Addr)
	cfg.Storage.Driver = getEnv("EMI_STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.DSN = getEnv("EMI_STORAGE_DSN", cfg.Storage.DSN)
	cfg.Cache.Driver = getEnv("EMI_CACHE_DRIVER", cfg.Cache.Driver)
	cfg.Cache.RedisAddr = getEnv("EMI_REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Catalog.Path = getEnv("EMI_CATALOG_PATH", cfg.Catalog.Path)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	if v, ok := os.LookupEnv("EMI_RETENTION_DAYS"); ok {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EMI_RETENTION_DAYS: %w", err)
		}
		cfg.Retention.Days = days
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
