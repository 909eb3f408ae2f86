package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	AppName   = "worklog"
	EnvPrefix = "WORKLOG_"
)

// Config is read from YAML, then overridden by WORKLOG_* environment variables
type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Operator shown on reports
	User UserConfig `yaml:"user"`

	Report   ReportConfig   `yaml:"report"`
	Holidays HolidaysConfig `yaml:"holidays"`
	Sync     SyncConfig     `yaml:"sync"`
	Log      LogConfig      `yaml:"log"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"DB_PATH"` // Path to SQLCipher database
}

type UserConfig struct {
	FullName string `yaml:"full_name" env:"USER_FULL_NAME"`
}

type ReportConfig struct {
	OutputDir     string `yaml:"output_dir" env:"REPORT_DIR"`
	FontPath      string `yaml:"font_path" env:"FONT_PATH"`          // UTF-8 TTF with Japanese glyphs, required for PDF
	DefaultFormat string `yaml:"default_format" env:"REPORT_FORMAT"` // pdf or xlsx
}

type HolidaysConfig struct {
	OverridesFile string `yaml:"overrides_file" env:"HOLIDAYS_FILE"`
}

type SyncConfig struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"` // empty disables cross-process sync
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
}

type LogConfig struct {
	File  string `yaml:"file" env:"LOG_FILE"`
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type DefaultsConfig struct {
	Client string `yaml:"client" env:"CLIENT"` // ID or name used when --client is omitted
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/worklog/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(xdg.DataHome, AppName, AppName+".db"),
		},
		Report: ReportConfig{
			OutputDir:     filepath.Join(xdg.UserDirs.Documents, AppName),
			DefaultFormat: "pdf",
		},
		Holidays: HolidaysConfig{
			OverridesFile: filepath.Join(xdg.ConfigHome, AppName, "holidays.yaml"),
		},
		Log: LogConfig{
			File:  filepath.Join(xdg.StateHome, AppName, AppName+".log"),
			Level: "info",
		},
	}
}

// Load loads config from the given path, or defaults if the file doesn't exist.
// A .env file next to the config is loaded into the environment first, then
// WORKLOG_* variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults
	default:
		return nil, err
	}

	dotenv := filepath.Join(filepath.Dir(path), ".env")
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", dotenv, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// EnsureDirectories creates the database, log and report directories
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{
		filepath.Dir(c.Database.Path),
		filepath.Dir(c.Log.File),
		c.Report.OutputDir,
	} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
