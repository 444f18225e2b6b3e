// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the directory created under the platform config and data
// roots.
const appDirName = "mangekyou"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "MANGEKYOU_CONFIG_DIR"
	EnvDataDir   = "MANGEKYOU_DATA_DIR"
)

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/mangekyou (fallback ~/.config/mangekyou)
// macOS:   ~/Library/Application Support/mangekyou
// Windows: %APPDATA%/mangekyou
func DefaultConfigDir() (string, error) {
	return platformDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory, where
// the watchlist lives unless data_dir or a flag says otherwise.
//
// Linux:   $XDG_DATA_HOME/mangekyou (fallback ~/.local/share/mangekyou)
// macOS and Windows: the same directory as DefaultConfigDir
func DefaultDataDir() (string, error) {
	return platformDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// platformDir applies the XDG rule on Linux: xdgEnv when set, otherwise
// homeRel under the home directory. Other platforms use os.UserConfigDir.
func platformDir(xdgEnv, homeRel string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appDirName), nil
}

// ResolveConfigDir returns the configuration directory:
// flag > MANGEKYOU_CONFIG_DIR > DefaultConfigDir(). Explicit values are made
// absolute.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the data directory:
// flag > data_dir from config.yaml > MANGEKYOU_DATA_DIR > DefaultDataDir().
// Explicit values are made absolute.
func ResolveDataDir(flag, configValue string) (string, error) {
	return firstAbs(DefaultDataDir, flag, configValue, os.Getenv(EnvDataDir))
}

func firstAbs(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}
