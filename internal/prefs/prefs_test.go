package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	store, err := OpenFileStore(dir)
	require.NoError(t, err)
	_, ok := store.Get(ThemeKey)
	assert.False(t, ok, "missing file is an empty store")

	require.NoError(t, SetTheme(store, ThemeLight))

	reopened, err := OpenFileStore(dir)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, Theme(reopened, ThemeDark))

	data, err := os.ReadFile(reopened.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "json-formatter-theme: light")
}

func TestFileStore_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preferences.yaml"), []byte("{not yaml"), 0o644))

	_, err := OpenFileStore(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestTheme(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		fallback string
		expected string
	}{
		{name: "nothing stored", fallback: "", expected: ThemeDark},
		{name: "fallback light", fallback: ThemeLight, expected: ThemeLight},
		{name: "stored light", stored: ThemeLight, fallback: ThemeDark, expected: ThemeLight},
		{name: "stored dark", stored: ThemeDark, fallback: ThemeLight, expected: ThemeDark},
		{name: "stored garbage", stored: "sepia", fallback: ThemeDark, expected: ThemeDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.stored != "" {
				require.NoError(t, store.Set(ThemeKey, tt.stored))
			}
			assert.Equal(t, tt.expected, Theme(store, tt.fallback))
		})
	}
}

func TestSetTheme_Rejects(t *testing.T) {
	store := NewMemoryStore()
	assert.Error(t, SetTheme(store, "sepia"))
	_, ok := store.Get(ThemeKey)
	assert.False(t, ok)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, ThemeLight, Toggle(ThemeDark))
	assert.Equal(t, ThemeDark, Toggle(ThemeLight))
	assert.Equal(t, ThemeDark, Toggle(Toggle(ThemeDark)))
}
