// Package prefs persists small user preferences, currently only the theme.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jxview/internal/errors"
)

// ThemeKey is the storage key of the theme preference.
const ThemeKey = "json-formatter-theme"

// Theme values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// FileStore keeps preferences in a YAML file. It is safe for concurrent use.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// DefaultDir returns the jxview directory inside the user config directory.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.NewPreferencesError("cannot locate the user config directory", err)
	}
	return filepath.Join(dir, "jxview"), nil
}

// OpenFileStore loads the preferences file in dir, or in DefaultDir when dir
// is empty. A missing file is an empty store.
func OpenFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}

	s := &FileStore{
		path:   filepath.Join(dir, "preferences.yaml"),
		values: make(map[string]string),
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.NewPreferencesError(fmt.Sprintf("failed to read '%s'", s.path), err)
	}
	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, errors.NewPreferencesError(fmt.Sprintf("failed to parse '%s'", s.path), err)
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return s, nil
}

// Path returns the location of the preferences file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores the value and rewrites the file.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return errors.NewPreferencesError("failed to encode preferences", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.NewPreferencesError(fmt.Sprintf("failed to create '%s'", filepath.Dir(s.path)), err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.NewPreferencesError(fmt.Sprintf("failed to write '%s'", s.path), err)
	}
	return nil
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Theme returns the stored theme, or fallback when nothing valid is stored.
func Theme(s Store, fallback string) string {
	if v, ok := s.Get(ThemeKey); ok && (v == ThemeDark || v == ThemeLight) {
		return v
	}
	if fallback == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// SetTheme stores the theme.
func SetTheme(s Store, theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return errors.NewPreferencesError(fmt.Sprintf("unknown theme '%s'", theme), nil)
	}
	return s.Set(ThemeKey, theme)
}

// Toggle returns the other theme.
func Toggle(theme string) string {
	if theme == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
