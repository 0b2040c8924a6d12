// Package config loads posh's optional YAML configuration file, trimmed to
// the three knobs the shell actually has: a history path override, an
// audit log path, and the prompt string.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPrompt matches the shell's fixed prompt when no override is set.
const DefaultPrompt = "$ "

// Config holds posh's global configuration.
type Config struct {
	History HistoryConfig `yaml:"history"`
	Audit   AuditConfig   `yaml:"audit"`
	Prompt  string        `yaml:"prompt"`
}

// HistoryConfig controls where command history is persisted.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// AuditConfig controls the optional execution audit log.
type AuditConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{Prompt: DefaultPrompt}
}

// Load reads the config from the standard location
// (~/.config/posh/config.yaml). If the file doesn't exist, returns the
// default config.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(filepath.Join(home, ".config", "posh", "config.yaml"))
}

// LoadFrom reads the config from the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}

	cfg.History.Path = expandHome(cfg.History.Path)
	cfg.Audit.Path = expandHome(cfg.Audit.Path)
	return cfg, nil
}

// expandHome replaces a leading "~" with $HOME, matching the teacher's own
// config path expansion.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// ConfigPath returns the standard config file path.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "posh", "config.yaml")
}
