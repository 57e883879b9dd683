// Package config handles the giftdesk configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat giftdesk configuration.
type Config struct {
	Version      string `json:"version"`
	EventName    string `json:"event_name,omitempty"`    // display name for the gift event
	DatabasePath string `json:"database_path,omitempty"` // overrides the default db location
	BaseURL      string `json:"base_url,omitempty"`      // public base URL for confirmation links
	ListenAddr   string `json:"listen_addr,omitempty"`   // daemon bind address
	SenderEmail  string `json:"sender_email,omitempty"`  // from-address for confirmation mail
}

// CurrentVersion is written into new config files.
const CurrentVersion = "1.0"

// DefaultListenAddr is used when the config does not set one.
const DefaultListenAddr = ":8090"

// Dir returns the giftdesk state directory, ~/.giftdesk.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".giftdesk"), nil
}

// LoadConfig reads config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory, creating it if needed.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// LoadOrDefault reads the config from dir, falling back to defaults
// when no config file exists yet.
func LoadOrDefault(dir string) *Config {
	cfg, err := LoadConfig(dir)
	if err != nil {
		return &Config{Version: CurrentVersion, ListenAddr: DefaultListenAddr}
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	return cfg
}
