package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// CLIConfig is what treectl remembers between runs.
type CLIConfig struct {
	Server string `toml:"server"`
	User   string `toml:"user"`
	Pass   string `toml:"pass"`
}

// DefaultCLIPath is ~/.config/treectl/config.toml.
func DefaultCLIPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, "treectl", "config.toml"), nil
}

// ReadCLIConfig reads path. A missing file yields the defaults.
func ReadCLIConfig(path string) (*CLIConfig, error) {
	cfg := &CLIConfig{Server: "http://localhost:3002"}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv lets TREECTL_SERVER, TREECTL_USER and TREECTL_PASS override the file.
func (c *CLIConfig) ApplyEnv() {
	if v := os.Getenv("TREECTL_SERVER"); v != "" {
		c.Server = v
	}
	if v := os.Getenv("TREECTL_USER"); v != "" {
		c.User = v
	}
	if v := os.Getenv("TREECTL_PASS"); v != "" {
		c.Pass = v
	}
}

// WriteCLIConfig stores cfg at path, readable by the owner only since it
// holds the admin password.
func WriteCLIConfig(path string, cfg *CLIConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
