package launcher

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// maxBackupGenerations is the number of rolling backups to keep.
const maxBackupGenerations = 3

// Store round-trips the config document between disk and memory.
type Store struct {
	path string
}

// NewStore creates a store for the config file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file location.
func (s *Store) Path() string { return s.path }

// fileDocument is the on-disk shape. Pointer slices distinguish a
// missing key from an empty sequence.
type fileDocument struct {
	Sections *[]Section `yaml:"sections"`
	Items    *[]Item    `yaml:"items"`
}

// Load reads and validates the config file into a fresh document.
// A missing file reports ErrNotFound; a bad shape, unknown item type,
// or missing required field reports MalformedConfigError. On failure
// no previously loaded in-memory state is touched: Load builds a new
// tree and the caller swaps it in only on success.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return s.parse(data)
}

func (s *Store) parse(data []byte) (*Document, error) {
	var raw fileDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedConfigError{Path: s.path, Detail: err.Error()}
	}

	sections := raw.Sections
	if sections == nil {
		// Older configs kept a flat item list at the top level.
		if raw.Items == nil {
			return nil, &MalformedConfigError{Path: s.path, Detail: "missing sections key"}
		}
		sections = &[]Section{{Name: "Default", Items: *raw.Items}}
	}

	doc := &Document{Sections: *sections}
	for si, sec := range doc.Sections {
		if sec.Name == "" {
			return nil, &MalformedConfigError{
				Path:   s.path,
				Detail: fmt.Sprintf("section %d: name is required", si),
			}
		}
		for ii, item := range sec.Items {
			if err := item.Validate(); err != nil {
				return nil, &MalformedConfigError{
					Path:   s.path,
					Detail: fmt.Sprintf("section %q item %d: %v", sec.Name, ii, err),
				}
			}
		}
	}
	return doc, nil
}

// LoadOrRecover loads the config, falling back to the newest readable
// backup when the main file exists but cannot be parsed. A missing
// file still reports ErrNotFound.
func (s *Store) LoadOrRecover() (*Document, error) {
	doc, err := s.Load()
	if err == nil || errors.Is(err, ErrNotFound) {
		return doc, err
	}

	slog.Warn("config corrupted, attempting recovery from backup", "path", s.path, "err", err)
	for _, bakPath := range s.backupPaths() {
		data, readErr := os.ReadFile(bakPath)
		if readErr != nil {
			continue
		}
		doc, parseErr := s.parse(data)
		if parseErr != nil {
			slog.Warn("backup also corrupted", "path", bakPath, "err", parseErr)
			continue
		}
		slog.Info("recovered config from backup", "path", bakPath)
		return doc, nil
	}
	return nil, err
}

// Save serializes the document, preserving section and item order
// exactly as held in memory, and atomically replaces the config file:
// write to a temp file, fsync, rotate backups, then rename into place.
// A crash mid-write therefore never corrupts the previous config.
func (s *Store) Save(doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// fsync so the bytes reach disk before the rename makes them live.
	if err := syncFile(tmpPath); err != nil {
		slog.Warn("fsync failed", "path", tmpPath, "err", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		s.rotateBackups()
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to finalize save: %w", err)
	}
	return nil
}

// syncFile calls fsync on a file to ensure data is written to disk.
func syncFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

// rotateBackups maintains rolling backups: .bak, .bak.1, .bak.2.
func (s *Store) rotateBackups() {
	bakPath := s.path + ".bak"

	for i := maxBackupGenerations - 1; i > 0; i-- {
		oldPath := fmt.Sprintf("%s.%d", bakPath, i-1)
		if i == 1 {
			oldPath = bakPath
		}
		newPath := fmt.Sprintf("%s.%d", bakPath, i)

		if i == maxBackupGenerations-1 {
			os.Remove(newPath)
		}
		if _, err := os.Stat(oldPath); err == nil {
			if err := os.Rename(oldPath, newPath); err != nil {
				slog.Warn("failed to rotate backup", "from", oldPath, "to", newPath, "err", err)
			}
		}
	}

	if err := copyFile(s.path, bakPath); err != nil {
		slog.Warn("failed to create backup", "path", bakPath, "err", err)
	}
}

func (s *Store) backupPaths() []string {
	bakPath := s.path + ".bak"
	paths := []string{bakPath}
	for i := 1; i < maxBackupGenerations; i++ {
		paths = append(paths, fmt.Sprintf("%s.%d", bakPath, i))
	}
	return paths
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// DefaultDocument returns the starter document written on first run.
func DefaultDocument() *Document {
	return &Document{Sections: []Section{
		{Name: "Applications", Items: []Item{
			{Name: "Firefox", Type: TypeApplication, Command: "firefox"},
			{Name: "Terminal", Type: TypeApplication, Command: "x-terminal-emulator"},
		}},
		{Name: "Scripts", Items: []Item{
			{Name: "Update Script", Type: TypeScript, Command: "~/scripts/update.sh"},
		}},
		{Name: "Websites", Items: []Item{
			{Name: "Open GitHub", Type: TypeURL, Command: "https://github.com"},
		}},
	}}
}
