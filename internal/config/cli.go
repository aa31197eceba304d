package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL is the relay address the CLI talks to when nothing else
// is configured.
const DefaultServerURL = "http://localhost:8080"

// DefaultConfigDir returns the default config directory (~/.bancheck).
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".bancheck"), nil
}

// DefaultConfigPath returns the default config file path (~/.bancheck/config.yml).
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// CLIConfig holds the CLI's configuration.
type CLIConfig struct {
	ServerURL      string `yaml:"server_url,omitempty"`
	Lang           string `yaml:"lang,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Validate checks that the configuration has required fields for operation.
func (c *CLIConfig) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server_url is required")
	}
	return nil
}

// IsConfigured returns true if a relay server has been set.
func (c *CLIConfig) IsConfigured() bool {
	return c.ServerURL != ""
}

// Load reads the configuration from the given path.
// If the file does not exist, an empty config is returned.
func Load(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &CLIConfig{}, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads the configuration from the default path.
func LoadDefault() (*CLIConfig, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Save writes the configuration to the given path, creating directories as needed.
func (c *CLIConfig) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Write with restricted permissions (user-only read/write)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// SaveDefault saves the configuration to the default path.
func (c *CLIConfig) SaveDefault() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.Save(path)
}
