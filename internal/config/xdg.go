package config

import (
	"os"
	"path/filepath"
)

const appName = "adaptype"

// xdgBase resolves an XDG base directory: the env var when set, otherwise
// fallback under the home directory, otherwise the working directory.
func xdgBase(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// XDGConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func XDGConfigHome() string {
	return xdgBase("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome returns $XDG_DATA_HOME or ~/.local/share.
func XDGDataHome() string {
	return xdgBase("XDG_DATA_HOME", ".local", "share")
}

func dataPath(name string) string {
	return filepath.Join(XDGDataHome(), appName, name)
}

// DefaultDBPath is the session store.
func DefaultDBPath() string {
	return dataPath(appName + ".db")
}

// DefaultLogPath is where the interactive UI writes its log.
func DefaultLogPath() string {
	return dataPath(appName + ".log")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
