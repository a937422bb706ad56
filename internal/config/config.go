// Package config loads and saves the tripcost TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Cache backends.
const (
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
)

// Config holds all tripcost configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Inputs     model.Inputs     `toml:"inputs"`
	Sources    SourcesConfig    `toml:"sources"`
	Cache      CacheConfig      `toml:"cache"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	BaseCurrency string   `toml:"base_currency"`
	Countries    []string `toml:"countries"`
	LogLevel     string   `toml:"log_level"`
}

// SourcesConfig points at the rate and multiplier providers.
type SourcesConfig struct {
	FXURL       string `toml:"fx_url,omitempty"`
	TeleportURL string `toml:"teleport_url,omitempty"`
	TimeoutSec  int    `toml:"timeout_sec"`
}

// CacheConfig controls caching of fetched rates and multipliers.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr,omitempty"`
	TTLHours  int    `toml:"ttl_hours"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	countries := make([]string, 0, len(model.StartCountries))
	for _, c := range model.StartCountries {
		countries = append(countries, string(c))
	}

	return Config{
		General: GeneralConfig{
			BaseCurrency: "USD",
			Countries:    countries,
			LogLevel:     "info",
		},
		Inputs: model.DefaultInputs(),
		Sources: SourcesConfig{
			TimeoutSec: 10,
		},
		Cache: CacheConfig{
			Backend:  CacheSQLite,
			TTLHours: 12,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8788",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tripcost")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tripcost")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "tripcost")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "tripcost")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// LoadDotEnv loads a .env file from the working directory if one exists.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRIPCOST_FX_URL"); v != "" {
		cfg.Sources.FXURL = v
	}
	if v := os.Getenv("TRIPCOST_TELEPORT_URL"); v != "" {
		cfg.Sources.TeleportURL = v
	}
	if v := os.Getenv("TRIPCOST_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
}

// StartCountries resolves the configured starting list.
// An empty list falls back to the built-in starting countries.
func (c Config) StartCountries() ([]model.Country, error) {
	if len(c.General.Countries) == 0 {
		return model.StartCountries, nil
	}
	countries, err := model.ParseCountries(c.General.Countries)
	if err != nil {
		return nil, fmt.Errorf("config countries: %w", err)
	}
	return countries, nil
}

// Timeout returns the per-request provider timeout.
func (c Config) Timeout() time.Duration {
	if c.Sources.TimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Sources.TimeoutSec) * time.Second
}

// CacheTTL returns how long fetched data stays fresh.
func (c Config) CacheTTL() time.Duration {
	if c.Cache.TTLHours <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.Cache.TTLHours) * time.Hour
}
