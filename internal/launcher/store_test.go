package launcher

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const exampleConfig = `sections:
  - name: Applications
    items:
      - name: Firefox
        type: application
        command: firefox
      - name: Terminal
        type: application
        command: x-terminal-emulator
  - name: Scripts
    items:
      - name: Update Script
        type: script
        command: ~/scripts/update.sh
  - name: Websites
    items:
      - name: Open GitHub
        type: url
        command: https://github.com
`

func writeConfig(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return NewStore(path)
}

func TestLoadExampleConfig(t *testing.T) {
	store := writeConfig(t, exampleConfig)

	doc, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("Expected 3 sections, got %d", len(doc.Sections))
	}

	counts := []int{2, 1, 1}
	for i, want := range counts {
		if got := len(doc.Sections[i].Items); got != want {
			t.Errorf("Section %d: expected %d items, got %d", i, want, got)
		}
	}
	if doc.Sections[0].Items[0].Name != "Firefox" || doc.Sections[0].Items[0].Command != "firefox" {
		t.Errorf("Unexpected first item: %+v", doc.Sections[0].Items[0])
	}
	if doc.Sections[2].Items[0].Type != TypeURL {
		t.Errorf("Expected url type, got %s", doc.Sections[2].Items[0].Type)
	}
}

func TestLoadNotFound(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := store.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing sections key", "columns: 4\n"},
		{"sections not a sequence", "sections: 5\n"},
		{"items not a sequence", "sections:\n  - name: A\n    items: nope\n"},
		{"unknown item type", "sections:\n  - name: A\n    items:\n      - name: x\n        type: bogus\n        command: x\n"},
		{"missing command", "sections:\n  - name: A\n    items:\n      - name: x\n        type: application\n"},
		{"missing item name", "sections:\n  - name: A\n    items:\n      - type: application\n        command: x\n"},
		{"missing section name", "sections:\n  - items: []\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := writeConfig(t, tc.content)
			_, err := store.Load()
			var malformed *MalformedConfigError
			if !errors.As(err, &malformed) {
				t.Fatalf("Expected MalformedConfigError, got %v", err)
			}
			if malformed.Path != store.Path() {
				t.Errorf("Expected path %s in error, got %s", store.Path(), malformed.Path)
			}
		})
	}
}

func TestLoadLegacyItemsKey(t *testing.T) {
	store := writeConfig(t, `items:
  - name: Firefox
    type: application
    command: firefox
`)

	doc, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Name != "Default" {
		t.Fatalf("Expected single 'Default' section, got %+v", doc.Sections)
	}
	if len(doc.Sections[0].Items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(doc.Sections[0].Items))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))
	doc := DefaultDocument()

	if err := store.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(doc, loaded) {
		t.Errorf("Round trip mismatch:\nsaved:  %+v\nloaded: %+v", doc, loaded)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))
	doc := DefaultDocument()

	if err := store.Save(doc); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	first, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	if err := store.Save(doc); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}
	second, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Saving the same document twice must produce byte-identical files")
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))

	if err := store.Save(DefaultDocument()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(store.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temp file must be renamed away after save")
	}
}

func TestSavePreservesOrder(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))
	doc := &Document{Sections: []Section{*fourItemSection()}}

	// Reorder in memory, then round-trip.
	if err := doc.Sections[0].MoveItem(3, 0); err != nil {
		t.Fatalf("MoveItem failed: %v", err)
	}
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"d", "a", "b", "c"}
	for i, name := range want {
		if loaded.Sections[0].Items[i].Name != name {
			t.Fatalf("Expected order %v, got %+v", want, loaded.Sections[0].Items)
		}
	}
}

func TestSaveRotatesBackups(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))

	doc := &Document{Sections: []Section{{Name: "A", Items: []Item{}}}}
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// First save has nothing to back up yet.
	if _, err := os.Stat(store.Path() + ".bak"); !os.IsNotExist(err) {
		t.Error("No backup expected after first save")
	}

	doc.Sections[0].Name = "B"
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(store.Path() + ".bak"); err != nil {
		t.Errorf("Expected backup after second save: %v", err)
	}
}

func TestLoadOrRecoverFromBackup(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))

	if err := store.Save(DefaultDocument()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Second save creates a backup of the good document.
	if err := store.Save(DefaultDocument()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Corrupt the main file.
	if err := os.WriteFile(store.Path(), []byte("sections: 5\n"), 0644); err != nil {
		t.Fatalf("Failed to corrupt config: %v", err)
	}

	_, err := store.Load()
	var malformed *MalformedConfigError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedConfigError from Load, got %v", err)
	}

	doc, err := store.LoadOrRecover()
	if err != nil {
		t.Fatalf("LoadOrRecover failed: %v", err)
	}
	if len(doc.Sections) != 3 {
		t.Errorf("Expected recovered document with 3 sections, got %d", len(doc.Sections))
	}
}
