package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the CLI and TUI.
type Config struct {
	// Exclude lists names and glob patterns skipped by tree walks.
	Exclude []string `yaml:"exclude"`
	// MaxDepth bounds traversal depth; -1 means unlimited.
	MaxDepth int `yaml:"max_depth"`
	// ShowHidden includes dotfiles in listings.
	ShowHidden bool `yaml:"show_hidden"`
	// PollInterval is the watch polling interval, e.g. "2s".
	PollInterval string `yaml:"poll_interval"`
	// SnapshotDir is where `watch --poll` persists tree snapshots.
	SnapshotDir string `yaml:"snapshot_dir"`
}

func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "." // Fallback to current directory
	}
	return &Config{
		Exclude: []string{
			"node_modules",
			".venv",
			"__pycache__",
			".git",
			"*.pyc",
			".DS_Store",
			".idea",
			".vscode",
			"target",
			"dist",
			"build",
		},
		MaxDepth:     -1,
		ShowHidden:   false,
		PollInterval: "2s",
		SnapshotDir:  filepath.Join(home, ".fskit", "snapshots"),
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".fskit", "config.yaml")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unexpanded if home unavailable
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
