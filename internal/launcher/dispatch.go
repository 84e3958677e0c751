package launcher

import (
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/pkg/browser"
)

// Package-level hooks for testing. In production, these use the real
// implementations.
var (
	spawnProcess = defaultSpawnProcess
	openURL      = browser.OpenURL
)

// Dispatcher turns an item's declared type and command into an
// OS-level launch action.
type Dispatcher struct{}

// NewDispatcher creates a dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Launch runs the item's command. Applications and scripts are spawned
// as detached processes that keep running after the launcher exits;
// URLs are handed to the default browser. Launch never waits on the
// child and never retries: a failure is reported as a LaunchError for
// the shell to display, and the user retries manually.
func (d *Dispatcher) Launch(item Item) error {
	if item.Command == "" {
		return &LaunchError{Item: item.Name, Kind: item.Type, Err: fmt.Errorf("empty command")}
	}

	switch item.Type {
	case TypeApplication, TypeScript:
		if err := spawnProcess(item.Command); err != nil {
			slog.Error("launch failed", "item", item.Name, "command", item.Command, "err", err)
			return &LaunchError{Item: item.Name, Kind: item.Type, Err: err}
		}
	case TypeURL:
		if err := openURL(item.Command); err != nil {
			slog.Error("open url failed", "item", item.Name, "url", item.Command, "err", err)
			return &LaunchError{Item: item.Name, Kind: item.Type, Err: err}
		}
	default:
		return &LaunchError{Item: item.Name, Kind: item.Type, Err: fmt.Errorf("unknown item type")}
	}

	slog.Info("launched", "item", item.Name, "type", item.Type)
	return nil
}

// defaultSpawnProcess starts command through the platform shell in its
// own session and releases the handle, so the child survives the
// launcher's own exit or crash.
func defaultSpawnProcess(command string) error {
	shell, flag := platformShell()
	cmd := exec.Command(shell, flag, command)
	cmd.SysProcAttr = detachAttr()
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
