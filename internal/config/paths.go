package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user config directory.
const AppName = "insight"

// DefaultConfigPath returns the OS-specific config file location.
// Linux: $XDG_CONFIG_HOME/insight/config.yaml  macOS: ~/Library/Application Support/insight/config.yaml
// Windows: %AppData%/insight/config.yaml
func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config dir: %w", err)
	}
	return filepath.Join(base, AppName, "config.yaml"), nil
}

// ensureFile creates path and its parent directories if they do not exist.
// The file holds the API key, so it is created owner read/write only.
func ensureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("creating config file: %w", err)
	}
	return f.Close()
}
