package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "txnsift.yaml"

// Environment variables that override file settings.
const (
	EnvImportDir    = "TXNSIFT_IMPORT_DIR"
	EnvDatabasePath = "TXNSIFT_DATABASE_PATH"
	EnvLogLevel     = "TXNSIFT_LOG_LEVEL"
)

// Config represents the top-level txnsift.yaml configuration.
type Config struct {
	Import   ImportConfig   `yaml:"import"`
	Filter   FilterConfig   `yaml:"filter"`
	Export   ExportConfig   `yaml:"export"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// ImportConfig controls where bank exports are read from.
type ImportConfig struct {
	Dir             string `yaml:"dir"`
	DefaultCategory string `yaml:"default_category"`
	DefaultTag      string `yaml:"default_tag"`
}

// FilterConfig holds the memo blocklist, one regular expression per entry.
type FilterConfig struct {
	Patterns []string `yaml:"patterns"`
}

// ExportConfig controls the saved file.
type ExportConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // "csv" or "xlsx"
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a txnsift.yaml file from disk. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault reads path, falling back to Default when it does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the stock memo blocklist.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Dir: ".",
		},
		Filter: FilterConfig{
			Patterns: []string{
				"ONLINE TRANSFER .*",
				"ONLINE PAYMENT THANK YOU",
			},
		},
		Export: ExportConfig{
			Path:   "transactions.csv",
			Format: "csv",
		},
		Database: DatabaseConfig{
			Path: "data/txnsift.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Export.Format {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("invalid export.format %q: must be csv or xlsx", c.Export.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q: must be debug, info, warn or error", c.Log.Level)
	}
	return nil
}

// ApplyEnv loads envFile (if present) into the environment and then
// overrides settings from TXNSIFT_* variables.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	if v := os.Getenv(EnvImportDir); v != "" {
		c.Import.Dir = v
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return c.Validate()
}
