// Package launcher holds the config document model, its persistence,
// and the dispatch of launchable items to the operating system.
package launcher

import "fmt"

// ItemType identifies how an item's command is interpreted when launched.
type ItemType string

const (
	// TypeApplication runs the command as a detached process.
	TypeApplication ItemType = "application"
	// TypeScript runs the command the same way as an application;
	// the distinction only matters for display.
	TypeScript ItemType = "script"
	// TypeURL opens the command with the default browser.
	TypeURL ItemType = "url"
)

// Valid reports whether t is one of the recognized item types.
func (t ItemType) Valid() bool {
	switch t {
	case TypeApplication, TypeScript, TypeURL:
		return true
	}
	return false
}

// Item is a single launchable entry: an application, a script, or a URL.
// Command holds an executable line, a script path, or a URL depending
// on Type. Icon is an optional image path used by the shells.
type Item struct {
	Name    string   `yaml:"name" json:"name"`
	Type    ItemType `yaml:"type" json:"type"`
	Command string   `yaml:"command" json:"command"`
	Icon    string   `yaml:"icon,omitempty" json:"icon,omitempty"`
}

// Validate checks the required fields and the type enum.
func (it Item) Validate() error {
	if it.Name == "" {
		return fmt.Errorf("item name is required")
	}
	if it.Command == "" {
		return fmt.Errorf("item %q: command is required", it.Name)
	}
	if !it.Type.Valid() {
		return fmt.Errorf("item %q: unknown type %q", it.Name, it.Type)
	}
	return nil
}

// Section is a named, ordered group of items. Order is meaningful: it
// is both display order and storage order.
type Section struct {
	Name  string `yaml:"name" json:"name"`
	Items []Item `yaml:"items" json:"items"`
}

// Document is the full ordered collection of sections, the unit
// persisted to and loaded from the config file. It owns its sections
// and their items outright; while the app runs, the in-memory tree is
// the single source of truth and disk only changes on Save.
type Document struct {
	Sections []Section `yaml:"sections" json:"sections"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{Sections: make([]Section, len(d.Sections))}
	for i, sec := range d.Sections {
		items := make([]Item, len(sec.Items))
		copy(items, sec.Items)
		out.Sections[i] = Section{Name: sec.Name, Items: items}
	}
	return out
}
