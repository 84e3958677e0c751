// Package history records recent launch attempts for display in the
// shells.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Yefym707/Launcher/internal/launcher"
)

// maxRecords caps the history file size; older records are dropped.
const maxRecords = 100

// Record is a single launch attempt, successful or not.
type Record struct {
	ID         string            `json:"id"`
	Item       string            `json:"item"`
	Type       launcher.ItemType `json:"type"`
	Command    string            `json:"command"`
	LaunchedAt time.Time         `json:"launchedAt"`
	OK         bool              `json:"ok"`
	Error      string            `json:"error,omitempty"`
}

// historyFile represents the history.json file structure.
type historyFile struct {
	Records []Record `json:"records"`
}

// Tracker persists launch records to a JSON file, newest first.
type Tracker struct {
	path string
}

// NewTracker creates a tracker writing to the given file.
func NewTracker(path string) *Tracker {
	return &Tracker{path: path}
}

func (t *Tracker) load() *historyFile {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return &historyFile{Records: []Record{}}
	}

	var file historyFile
	if err := json.Unmarshal(data, &file); err != nil {
		// Corrupt history is not worth recovering; start fresh.
		return &historyFile{Records: []Record{}}
	}
	if file.Records == nil {
		file.Records = []Record{}
	}
	return &file
}

func (t *Tracker) save(file *historyFile) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.path, data, 0600)
}

// Append records a launch attempt. The record gets an ID and timestamp
// if it has none, and the file is trimmed to the newest maxRecords.
func (t *Tracker) Append(rec Record) (*Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.LaunchedAt.IsZero() {
		rec.LaunchedAt = time.Now()
	}

	file := t.load()
	file.Records = append([]Record{rec}, file.Records...)
	if len(file.Records) > maxRecords {
		file.Records = file.Records[:maxRecords]
	}

	if err := t.save(file); err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecordLaunch appends a record built from an item and the launch
// outcome.
func (t *Tracker) RecordLaunch(item launcher.Item, launchErr error) {
	rec := Record{
		Item:    item.Name,
		Type:    item.Type,
		Command: item.Command,
		OK:      launchErr == nil,
	}
	if launchErr != nil {
		rec.Error = launchErr.Error()
	}
	// History is best-effort; a failed write never blocks a launch.
	_, _ = t.Append(rec)
}

// Recent returns up to n records, newest first. A non-positive count
// yields an empty slice.
func (t *Tracker) Recent(n int) []Record {
	if n <= 0 {
		return []Record{}
	}
	file := t.load()
	if n > len(file.Records) {
		n = len(file.Records)
	}
	out := make([]Record, n)
	copy(out, file.Records[:n])
	return out
}

// Clear removes all history.
func (t *Tracker) Clear() error {
	return t.save(&historyFile{Records: []Record{}})
}
