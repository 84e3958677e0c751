// launcher-tray is the tray-resident build of the launcher: the whole
// config document is exposed as a tray menu, one submenu per section.
package main

import (
	_ "embed"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/energye/systray"
	"github.com/pkg/browser"

	"github.com/Yefym707/Launcher/internal/history"
	"github.com/Yefym707/Launcher/internal/launcher"
	"github.com/Yefym707/Launcher/internal/settings"
)

//go:embed icon/icon.png
var trayIcon []byte

var (
	exePath  string
	store    *launcher.Store
	dispatch *launcher.Dispatcher
	prefs    *settings.Manager
	tracker  *history.Tracker
)

func main() {
	exePath, _ = os.Executable()
	dir := launcher.DefaultConfigDir()

	configPath := filepath.Join(dir, "config.yaml")
	flag.StringVar(&configPath, "config", configPath, "config path")
	flag.Parse()

	if err := os.MkdirAll(dir, 0700); err != nil {
		panic(err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "tray.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	store = launcher.NewStore(configPath)
	dispatch = launcher.NewDispatcher()
	prefs = settings.NewManager(filepath.Join(dir, "settings.toml"))
	tracker = history.NewTracker(filepath.Join(dir, "history.json"))

	systray.Run(onReady, onExit)
}

func onReady() {
	systray.SetIcon(trayIcon)
	systray.SetTitle("Launcher")
	systray.SetTooltip("Launcher")
	systray.SetOnRClick(func(menu systray.IMenu) {
		menu.ShowMenu()
	})

	buildMenu()
	buildSystemMenu()
}

func onExit() {
}

func buildMenu() {
	doc, err := store.LoadOrRecover()
	if errors.Is(err, launcher.ErrNotFound) {
		doc = launcher.DefaultDocument()
		if saveErr := store.Save(doc); saveErr != nil {
			slog.Error("failed to write starter config", "err", saveErr)
		}
		err = nil
	}
	if err != nil {
		slog.Error("load config failed", "err", err)
		systray.SetTooltip("Launcher: config error, see tray.log")
		return
	}

	addFavorites(doc)

	for _, section := range doc.Sections {
		menu := systray.AddMenuItem(section.Name, section.Name)
		for _, item := range section.Items {
			item := item
			entry := menu.AddSubMenuItem(item.Name, item.Command)
			entry.Click(func() {
				launchItem(item)
			})
		}
	}
}

// addFavorites puts pinned items at the top level, before the section
// submenus.
func addFavorites(doc *launcher.Document) {
	s, err := prefs.Load()
	if err != nil || len(s.Favorites) == 0 {
		return
	}

	added := false
	for _, fav := range s.Favorites {
		item, ok := findItem(doc, fav.Section, fav.Item)
		if !ok {
			slog.Warn("favorite no longer exists", "section", fav.Section, "item", fav.Item)
			continue
		}
		entry := systray.AddMenuItem(item.Name, item.Command)
		entry.Click(func() {
			launchItem(item)
		})
		added = true
	}
	if added {
		systray.AddSeparator()
	}
}

func findItem(doc *launcher.Document, section, name string) (launcher.Item, bool) {
	for _, sec := range doc.Sections {
		if sec.Name != section {
			continue
		}
		for _, item := range sec.Items {
			if item.Name == name {
				return item, true
			}
		}
	}
	return launcher.Item{}, false
}

func launchItem(item launcher.Item) {
	err := dispatch.Launch(item)
	tracker.RecordLaunch(item, err)
	if err != nil {
		slog.Error("launch failed", "item", item.Name, "err", err)
		systray.SetTooltip("Launch failed: " + item.Name)
	}
}

func buildSystemMenu() {
	systray.AddSeparator()

	reloadMenu := systray.AddMenuItem("Reload", "Restart with a fresh config")
	reloadMenu.Click(func() {
		// Restart the process; the new instance rebuilds the menu
		// from the current config file.
		cmd := exec.Command(exePath, os.Args[1:]...)
		if err := cmd.Start(); err != nil {
			slog.Error("restart failed", "err", err)
			return
		}
		systray.Quit()
	})

	openMenu := systray.AddMenuItem("Open config.yaml", "")
	openMenu.Click(func() {
		if err := browser.OpenFile(store.Path()); err != nil {
			slog.Error("open config failed", "err", err)
		}
	})

	quitMenu := systray.AddMenuItem("Quit", "")
	quitMenu.Click(func() {
		systray.Quit()
	})
}
