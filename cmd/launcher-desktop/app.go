package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/pkg/browser"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/Yefym707/Launcher/internal/history"
	"github.com/Yefym707/Launcher/internal/launcher"
	"github.com/Yefym707/Launcher/internal/settings"
)

// Version is set at build time via ldflags.
var Version = "0.1.0-dev"

// configChangedEvent is emitted whenever the document tree changes,
// from an edit or from an external file change. The frontend
// re-renders on every emission.
const configChangedEvent = "config:changed"

// App struct holds the application state.
type App struct {
	ctx context.Context

	// mu guards doc: Wails invokes bindings from the JS bridge and the
	// config watcher fires on its own goroutine.
	mu  sync.Mutex
	doc *launcher.Document

	store    *launcher.Store
	dispatch *launcher.Dispatcher
	settings *settings.Manager
	history  *history.Tracker
	watcher  *launcher.Watcher
}

// NewApp creates a new App application struct.
func NewApp() *App {
	return newAppAt(launcher.DefaultConfigDir())
}

func newAppAt(dir string) *App {
	return &App{
		doc:      &launcher.Document{},
		store:    launcher.NewStore(filepath.Join(dir, "config.yaml")),
		dispatch: launcher.NewDispatcher(),
		settings: settings.NewManager(filepath.Join(dir, "settings.toml")),
		history:  history.NewTracker(filepath.Join(dir, "history.json")),
	}
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	if err := a.loadInitial(); err != nil {
		slog.Error("initial config load failed", "err", err)
	}

	w, err := launcher.WatchConfig(a.store.Path(), a.onConfigFileChanged)
	if err != nil {
		slog.Warn("config watch unavailable", "err", err)
	} else {
		a.watcher = w
	}
}

// shutdown is called when the app is closing.
func (a *App) shutdown(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Close()
	}
}

// loadInitial loads the config, writing the starter document on first
// run.
func (a *App) loadInitial() error {
	doc, err := a.store.LoadOrRecover()
	if errors.Is(err, launcher.ErrNotFound) {
		doc = launcher.DefaultDocument()
		if saveErr := a.store.Save(doc); saveErr != nil {
			return fmt.Errorf("failed to write starter config: %w", saveErr)
		}
		err = nil
	}
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.doc = doc
	a.mu.Unlock()
	a.emitChanged()
	return nil
}

// onConfigFileChanged reloads after the file changes on disk, picking
// up hand-edits. A malformed edit keeps the current in-memory tree.
func (a *App) onConfigFileChanged() {
	doc, err := a.store.Load()
	if err != nil {
		slog.Warn("ignoring config change, reload failed", "err", err)
		return
	}

	a.mu.Lock()
	a.doc = doc
	a.mu.Unlock()
	a.emitChanged()
}

func (a *App) emitChanged() {
	if a.ctx != nil {
		wailsRuntime.EventsEmit(a.ctx, configChangedEvent)
	}
}

// commit applies a structural edit, persists it, and notifies the
// frontend. The edit is validated before anything reaches disk.
func (a *App) commit(mutate func(doc *launcher.Document) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := mutate(a.doc); err != nil {
		return err
	}
	if err := a.store.Save(a.doc); err != nil {
		return err
	}
	a.emitChanged()
	return nil
}

// GetVersion returns the application version.
func (a *App) GetVersion() string {
	return Version
}

// GetDocument returns a snapshot of the current document.
func (a *App) GetDocument() *launcher.Document {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc.Clone()
}

// Reload re-reads the config file, replacing the in-memory tree.
func (a *App) Reload() (*launcher.Document, error) {
	doc, err := a.store.Load()
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.doc = doc
	a.mu.Unlock()
	a.emitChanged()
	return doc.Clone(), nil
}

// Save writes the current in-memory tree to disk.
func (a *App) Save() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Save(a.doc)
}

// AddSection appends a new empty section and persists.
func (a *App) AddSection(name string) error {
	return a.commit(func(doc *launcher.Document) error {
		return doc.AddSection(name)
	})
}

// RenameSection changes a section title and persists.
func (a *App) RenameSection(index int, name string) error {
	return a.commit(func(doc *launcher.Document) error {
		return doc.RenameSection(index, name)
	})
}

// RemoveSection deletes a section and persists.
func (a *App) RemoveSection(index int) error {
	return a.commit(func(doc *launcher.Document) error {
		return doc.RemoveSection(index)
	})
}

// MoveSection reorders sections and persists.
func (a *App) MoveSection(from, to int) error {
	return a.commit(func(doc *launcher.Document) error {
		return doc.MoveSection(from, to)
	})
}

// AddItem appends an item to a section and persists.
func (a *App) AddItem(sectionIndex int, item launcher.Item) error {
	return a.commit(func(doc *launcher.Document) error {
		sec, err := doc.Section(sectionIndex)
		if err != nil {
			return err
		}
		return sec.AddItem(item)
	})
}

// EditItem replaces an item in place and persists.
func (a *App) EditItem(sectionIndex, itemIndex int, item launcher.Item) error {
	return a.commit(func(doc *launcher.Document) error {
		sec, err := doc.Section(sectionIndex)
		if err != nil {
			return err
		}
		return sec.EditItem(itemIndex, item)
	})
}

// RemoveItem deletes an item and persists.
func (a *App) RemoveItem(sectionIndex, itemIndex int) error {
	return a.commit(func(doc *launcher.Document) error {
		sec, err := doc.Section(sectionIndex)
		if err != nil {
			return err
		}
		return sec.RemoveItem(itemIndex)
	})
}

// MoveItem reorders items within a section and persists.
func (a *App) MoveItem(sectionIndex, from, to int) error {
	return a.commit(func(doc *launcher.Document) error {
		sec, err := doc.Section(sectionIndex)
		if err != nil {
			return err
		}
		return sec.MoveItem(from, to)
	})
}

// Launch dispatches the item at the given position. Failures are
// recorded in history and returned for display; they never crash the
// launcher.
func (a *App) Launch(sectionIndex, itemIndex int) error {
	a.mu.Lock()
	sec, err := a.doc.Section(sectionIndex)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	if itemIndex < 0 || itemIndex >= len(sec.Items) {
		a.mu.Unlock()
		return &launcher.IndexError{Op: "launch", Index: itemIndex, Len: len(sec.Items)}
	}
	item := sec.Items[itemIndex]
	a.mu.Unlock()

	launchErr := a.dispatch.Launch(item)
	a.history.RecordLaunch(item, launchErr)
	return launchErr
}

// GetSettings returns the current user preferences.
func (a *App) GetSettings() (*settings.Settings, error) {
	return a.settings.Load()
}

// SetTheme persists the theme preference.
func (a *App) SetTheme(theme string) error {
	return a.settings.SetTheme(theme)
}

// AddFavorite pins an item for the tray menu.
func (a *App) AddFavorite(section, item string) error {
	return a.settings.AddFavorite(section, item)
}

// RemoveFavorite unpins an item.
func (a *App) RemoveFavorite(section, item string) error {
	return a.settings.RemoveFavorite(section, item)
}

// GetRecentLaunches returns up to n history records, newest first.
func (a *App) GetRecentLaunches(n int) []history.Record {
	return a.history.Recent(n)
}

// ClearLaunchHistory removes all history records.
func (a *App) ClearLaunchHistory() error {
	return a.history.Clear()
}

// GetConfigPath returns the config file location for display.
func (a *App) GetConfigPath() string {
	return a.store.Path()
}

// OpenConfigFile opens config.yaml with the OS default editor.
func (a *App) OpenConfigFile() error {
	return browser.OpenFile(a.store.Path())
}
