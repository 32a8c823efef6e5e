package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure. It controls
// what the startup scan skips, session behavior, and theme colors.
type Config struct {
	Ignore struct {
		Dirs     []string `yaml:"dirs"`     // Directory names skipped entirely
		Patterns []string `yaml:"patterns"` // Glob patterns matched against entry names
	} `yaml:"ignore"`
	Settings struct {
		ShowHidden   bool `yaml:"show_hidden"`    // Include dotfiles in the listing
		CopyOnToggle bool `yaml:"copy_on_toggle"` // Refresh clipboard after every selection change
		Watch        bool `yaml:"watch"`          // Flag on-disk changes during the session
		Debug        bool `yaml:"debug"`          // Enable debug logging
	} `yaml:"settings"`
	Theme struct {
		Cursor    string `yaml:"cursor"`    // Cursor row background color
		Directory string `yaml:"directory"` // Directory name color
		Selected  string `yaml:"selected"`  // Selection mark color
		Help      string `yaml:"help"`      // Help and status line color
	} `yaml:"theme"`
}

// LoadConfig loads configuration from the default location
// (~/.config/treeclip/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "treeclip", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New returns the default configuration.
func New() *Config {
	cfg := &Config{}
	cfg.Ignore.Dirs = []string{
		".git",
		".hg",
		".svn",
		".idea",
		".vscode",
		"__pycache__",
		"node_modules",
		"vendor",
		"dist",
		"target",
	}
	cfg.Settings.Watch = true
	cfg.Theme.Cursor = "#4F4FB7"
	cfg.Theme.Directory = "#81A1C1"
	cfg.Theme.Selected = "#A3BE8C"
	cfg.Theme.Help = "#959595"
	return cfg
}

// Validate checks that every ignore pattern compiles.
func (c *Config) Validate() error {
	for _, pattern := range c.Ignore.Patterns {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
	}
	return nil
}
