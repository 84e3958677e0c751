package launcher

import (
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the directory holding config.yaml,
// settings.toml, and history.json.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".launcher")
	}
	return filepath.Join(home, ".launcher")
}
