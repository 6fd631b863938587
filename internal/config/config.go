package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jxview/internal/errors"
)

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config represents the complete configuration for jxview
type Config struct {
	Format   FormatConfig   `yaml:"format" toml:"format"`
	Fixer    FixerConfig    `yaml:"fixer" toml:"fixer"`
	Diagnose DiagnoseConfig `yaml:"diagnose" toml:"diagnose"`
	UI       UIConfig       `yaml:"ui" toml:"ui"`
	Theme    ThemeConfig    `yaml:"theme" toml:"theme"`
	Storage  StorageConfig  `yaml:"storage" toml:"storage"`
	Dev      DevConfig      `yaml:"dev" toml:"dev"`
}

// FormatConfig controls pretty printing
type FormatConfig struct {
	Indent    int    `yaml:"indent" toml:"indent"`
	XMLEngine string `yaml:"xml_engine" toml:"xml_engine"` // builtin or xmlfmt
}

// FixerConfig controls the JSON auto-fixer
type FixerConfig struct {
	// Disabled lists rule IDs to skip, e.g. "single-quotes".
	Disabled []string `yaml:"disabled" toml:"disabled"`
}

// DiagnoseConfig controls the error panel
type DiagnoseConfig struct {
	ContextLines int `yaml:"context_lines" toml:"context_lines"`
	MaxDiffLines int `yaml:"max_diff_lines" toml:"max_diff_lines"`
}

// UIConfig controls the interactive explorer
type UIConfig struct {
	DebounceMS int `yaml:"debounce_ms" toml:"debounce_ms"`
	ToastMS    int `yaml:"toast_ms" toml:"toast_ms"`
}

// ThemeConfig selects the color theme and the chroma styles used by each theme
type ThemeConfig struct {
	Default    string `yaml:"default" toml:"default"`
	DarkStyle  string `yaml:"dark_style" toml:"dark_style"`
	LightStyle string `yaml:"light_style" toml:"light_style"`
}

// StorageConfig controls where the theme preference is persisted
type StorageConfig struct {
	Dir string `yaml:"dir" toml:"dir"` // empty means the user config directory
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool   `yaml:"debug" toml:"debug"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: FormatConfig{
			Indent:    2,
			XMLEngine: "builtin",
		},
		Fixer: FixerConfig{
			Disabled: []string{},
		},
		Diagnose: DiagnoseConfig{
			ContextLines: 2,
			MaxDiffLines: 30,
		},
		UI: UIConfig{
			DebounceMS: 300,
			ToastMS:    2000,
		},
		Theme: ThemeConfig{
			Default:    ThemeDark,
			DarkStyle:  "monokai",
			LightStyle: "github",
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML or TOML file, chosen by extension
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jxview.yml", ".jxview.yaml", ".jxview.toml", "jxview.yml", "jxview.yaml", "jxview.toml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks value ranges and normalizes the disabled rule IDs.
func (c *Config) Validate() error {
	if c.Format.Indent < 0 || c.Format.Indent > 8 {
		return errors.NewConfigError(fmt.Sprintf("indent must be between 0 and 8, got %d", c.Format.Indent), nil)
	}
	switch c.Format.XMLEngine {
	case "builtin", "xmlfmt":
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown xml_engine '%s' (want builtin or xmlfmt)", c.Format.XMLEngine), nil)
	}
	if c.Theme.Default != ThemeDark && c.Theme.Default != ThemeLight {
		return errors.NewConfigError(fmt.Sprintf("unknown theme '%s' (want dark or light)", c.Theme.Default), nil)
	}
	if c.Diagnose.ContextLines < 0 {
		return errors.NewConfigError("context_lines must not be negative", nil)
	}
	if c.Diagnose.MaxDiffLines < 1 {
		return errors.NewConfigError("max_diff_lines must be at least 1", nil)
	}
	if c.UI.DebounceMS < 0 || c.UI.ToastMS < 0 {
		return errors.NewConfigError("durations must not be negative", nil)
	}

	for i, id := range c.Fixer.Disabled {
		c.Fixer.Disabled[i] = strcase.ToKebab(strings.TrimSpace(id))
	}
	return nil
}

// HighlightStyle returns the chroma style name for a theme.
func (c *Config) HighlightStyle(theme string) string {
	if theme == ThemeLight {
		return c.Theme.LightStyle
	}
	return c.Theme.DarkStyle
}

// Debounce returns the input debounce delay.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.UI.DebounceMS) * time.Millisecond
}

// ToastDuration returns how long a toast stays visible.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.UI.ToastMS) * time.Millisecond
}

// Overrides holds values given on the command line. Zero values are unset.
type Overrides struct {
	Indent *int
	Theme  string
	Debug  bool
}

// MergeConfigs merges CLI overrides into a base config
func MergeConfigs(base *Config, override Overrides) *Config {
	merged := *base

	if override.Indent != nil {
		merged.Format.Indent = *override.Indent
	}
	if override.Theme != "" {
		merged.Theme.Default = override.Theme
	}
	if override.Debug {
		merged.Dev.Debug = true
	}
	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, override Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	merged := MergeConfigs(cfg, override)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
