package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, pattern, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), pattern)
	require.NoError(t, err)

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	_ = tmpFile.Close()
	return tmpFile.Name()
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 2, cfg.Format.Indent)
	assert.Equal(t, "builtin", cfg.Format.XMLEngine)
	assert.Empty(t, cfg.Fixer.Disabled)
	assert.Equal(t, 2, cfg.Diagnose.ContextLines)
	assert.Equal(t, 30, cfg.Diagnose.MaxDiffLines)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 2*time.Second, cfg.ToastDuration())
	assert.Equal(t, ThemeDark, cfg.Theme.Default)
	assert.False(t, cfg.Dev.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
format:
  indent: 4
  xml_engine: xmlfmt
fixer:
  disabled: [SingleQuotes, trailing_commas]
diagnose:
  context_lines: 3
ui:
  debounce_ms: 150
theme:
  default: light
  light_style: solarized-light
`
	cfg, err := LoadConfig(writeTemp(t, "config_test_*.yml", yamlContent))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Format.Indent)
	assert.Equal(t, "xmlfmt", cfg.Format.XMLEngine)
	assert.Equal(t, []string{"single-quotes", "trailing-commas"}, cfg.Fixer.Disabled)
	assert.Equal(t, 3, cfg.Diagnose.ContextLines)
	assert.Equal(t, 30, cfg.Diagnose.MaxDiffLines, "unset keys keep their defaults")
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce())
	assert.Equal(t, ThemeLight, cfg.Theme.Default)
	assert.Equal(t, "solarized-light", cfg.HighlightStyle(ThemeLight))
	assert.Equal(t, "monokai", cfg.HighlightStyle(ThemeDark))
}

func TestConfig_LoadFromTOML(t *testing.T) {
	tomlContent := `
[format]
indent = 0

[fixer]
disabled = ["Comments"]

[dev]
debug = true
log_file = "/tmp/jxview.log"
`
	cfg, err := LoadConfig(writeTemp(t, "config_test_*.toml", tomlContent))
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Format.Indent)
	assert.Equal(t, []string{"comments"}, cfg.Fixer.Disabled)
	assert.True(t, cfg.Dev.Debug)
	assert.Equal(t, "/tmp/jxview.log", cfg.Dev.LogFile)
	assert.Equal(t, "builtin", cfg.Format.XMLEngine)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	invalidYAML := `
format:
  indent: [unclosed array
`
	_, err := LoadConfig(writeTemp(t, "invalid_*.yml", invalidYAML))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "indent too large", mutate: func(c *Config) { c.Format.Indent = 9 }, wantErr: "indent must be between 0 and 8"},
		{name: "negative indent", mutate: func(c *Config) { c.Format.Indent = -1 }, wantErr: "indent must be between 0 and 8"},
		{name: "unknown engine", mutate: func(c *Config) { c.Format.XMLEngine = "tidy" }, wantErr: "unknown xml_engine"},
		{name: "unknown theme", mutate: func(c *Config) { c.Theme.Default = "blue" }, wantErr: "unknown theme"},
		{name: "negative context", mutate: func(c *Config) { c.Diagnose.ContextLines = -1 }, wantErr: "context_lines"},
		{name: "zero diff lines", mutate: func(c *Config) { c.Diagnose.MaxDiffLines = 0 }, wantErr: "max_diff_lines"},
		{name: "negative debounce", mutate: func(c *Config) { c.UI.DebounceMS = -5 }, wantErr: "durations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	configPath := filepath.Join(tmpDir, "project", ".jxview.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[format]\nindent = 3\n"), 0o644))

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(nestedDir))

	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	cfg, err := LoadConfig(foundPath)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Format.Indent)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir := t.TempDir()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(tmpDir))

	assert.Empty(t, FindConfigFile())
}

func TestConfig_MergeWithCLI(t *testing.T) {
	base := NewConfig()
	base.Format.Indent = 4

	indent := 0
	merged := MergeConfigs(base, Overrides{Indent: &indent, Theme: ThemeLight, Debug: true})

	assert.Equal(t, 0, merged.Format.Indent)
	assert.Equal(t, ThemeLight, merged.Theme.Default)
	assert.True(t, merged.Dev.Debug)
	assert.Equal(t, 4, base.Format.Indent, "base is not modified")

	kept := MergeConfigs(base, Overrides{})
	assert.Equal(t, 4, kept.Format.Indent)
	assert.Equal(t, ThemeDark, kept.Theme.Default)
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	path := writeTemp(t, "precedence_test_*.yml", "format:\n  indent: 4\ntheme:\n  default: light\n")

	indent := 8
	cfg, err := LoadConfigWithCLI(path, Overrides{Indent: &indent})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Format.Indent)
	assert.Equal(t, ThemeLight, cfg.Theme.Default)

	cfg, err = LoadConfigWithCLI(path, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Format.Indent)

	_, err = LoadConfigWithCLI("", Overrides{Theme: "neon"})
	assert.Error(t, err)
}
