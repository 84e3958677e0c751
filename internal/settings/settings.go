// Package settings persists user preferences for the launcher shells.
package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Favorite pins an item for top-level access in the tray menu. The
// item is addressed by section and item display name since the config
// document has no stable identifiers.
type Favorite struct {
	Section string `toml:"section" json:"section"`
	Item    string `toml:"item" json:"item"`
}

// Settings represents the settings.toml file.
type Settings struct {
	// Theme sets the color scheme: "dark", "light", or "auto".
	Theme string `toml:"theme" json:"theme"`

	// Columns is the button grid width in the desktop shell. Range
	// 1-8; 0 (or a missing key) means the default of 4.
	Columns int `toml:"columns" json:"columns"`

	// StartHidden keeps the window hidden on startup; the tray icon
	// toggles it.
	StartHidden *bool `toml:"start_hidden" json:"startHidden"`

	// Favorites are pinned items shown at the top of the tray menu.
	Favorites []Favorite `toml:"favorites" json:"favorites"`
}

// Manager loads and saves settings.toml.
type Manager struct {
	path string
}

// NewManager creates a manager for the settings file at path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Defaults returns the settings used when no file exists.
func Defaults() *Settings {
	hidden := true
	return &Settings{
		Theme:       "dark",
		Columns:     4,
		StartHidden: &hidden,
		Favorites:   []Favorite{},
	}
}

// Load reads settings from disk. A missing or unparsable file yields
// defaults; preference files are never a fatal error.
func (m *Manager) Load() (*Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	var loaded Settings
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return s, nil
	}

	if loaded.Theme != "" {
		s.Theme = normalizeTheme(loaded.Theme)
	}
	if loaded.Columns != 0 {
		s.Columns = clampColumns(loaded.Columns)
	}
	if loaded.StartHidden != nil {
		s.StartHidden = loaded.StartHidden
	}
	if loaded.Favorites != nil {
		s.Favorites = loaded.Favorites
	}
	return s, nil
}

// Save writes settings to disk with a comment header.
func (m *Manager) Save(s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("# Launcher preferences\n\n")
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return err
	}
	return os.WriteFile(m.path, buf.Bytes(), 0600)
}

// SetTheme validates and persists the theme preference.
func (m *Manager) SetTheme(theme string) error {
	s, err := m.Load()
	if err != nil {
		s = Defaults()
	}
	s.Theme = normalizeTheme(theme)
	return m.Save(s)
}

// AddFavorite pins an item, updating in place if it is already pinned.
func (m *Manager) AddFavorite(section, item string) error {
	s, err := m.Load()
	if err != nil {
		return err
	}
	for _, f := range s.Favorites {
		if f.Section == section && f.Item == item {
			return nil
		}
	}
	s.Favorites = append(s.Favorites, Favorite{Section: section, Item: item})
	return m.Save(s)
}

// RemoveFavorite unpins an item. Unknown favorites are ignored.
func (m *Manager) RemoveFavorite(section, item string) error {
	s, err := m.Load()
	if err != nil {
		return err
	}
	kept := make([]Favorite, 0, len(s.Favorites))
	for _, f := range s.Favorites {
		if f.Section != section || f.Item != item {
			kept = append(kept, f)
		}
	}
	s.Favorites = kept
	return m.Save(s)
}

func normalizeTheme(theme string) string {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "light":
		return "light"
	case "auto":
		return "auto"
	default:
		return "dark"
	}
}

func clampColumns(n int) int {
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
