// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for familytree configuration.
	DefaultConfigDir = ".familytree"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default SQLite database file name.
	DefaultDatabaseFile = "familytree.db"
	// DefaultLogFile is the default log file name.
	DefaultLogFile = "familytree.log"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	SQLite  SQLiteConfig  `yaml:"sqlite,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite family store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	Path string `yaml:"path,omitempty"`
}

// LoggingConfig holds configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, or error.
	Level string `yaml:"level,omitempty"`
	// File is the JSON log file path. Empty disables file logging.
	File string `yaml:"file,omitempty"`
}

// Default returns a Config with default values rooted at basePath.
func Default(basePath string) *Config {
	return &Config{
		SQLite: SQLiteConfig{
			Path: filepath.Join(basePath, DefaultConfigDir, DefaultDatabaseFile),
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(basePath, DefaultConfigDir, DefaultLogFile),
		},
	}
}

// Load loads configuration from the .familytree directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'familytree init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default(basePath)

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("FAMILYTREE_DB_PATH"); path != "" {
		c.SQLite.Path = path
	}
	if level := os.Getenv("FAMILYTREE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Save writes the configuration to the config file, creating the
// config directory if needed.
func (c *Config) Save(basePath string) error {
	configDir := ConfigDir(basePath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ConfigFilePath(basePath), data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ConfigDir returns the path to the .familytree config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a familytree config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
