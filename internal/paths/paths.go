// Package paths resolves the configuration and data directories of the
// scene migrator.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the platform base directories.
const AppName = "math3d-scenes"

// DefaultDataDirName is the CWD-relative data directory used when no
// override is set. Migration runs are usually started inside a working copy
// that keeps the JSONL files under version control.
const DefaultDataDirName = ".scenes-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SCENES_CONFIG_DIR"
	EnvDataDir   = "SCENES_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// linuxBase describes where a base directory lives on Linux: the XDG
// variable and the fallback below $HOME.
type linuxBase struct {
	xdgVar   string
	fallback []string
}

var (
	configBase = linuxBase{xdgVar: "XDG_CONFIG_HOME", fallback: []string{".config"}}
	dataBase   = linuxBase{xdgVar: "XDG_DATA_HOME", fallback: []string{".local", "share"}}
)

func platformPath(base linuxBase) (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv(base.xdgVar); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		parts := append([]string{home}, base.fallback...)
		return filepath.Join(append(parts, AppName)...), nil
	}
	// os.UserConfigDir is ~/Library/Application Support on macOS and
	// %APPDATA% on Windows; config and data share it.
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/math3d-scenes (fallback ~/.config/math3d-scenes)
// macOS:   ~/Library/Application Support/math3d-scenes
// Windows: %APPDATA%/math3d-scenes
func DefaultConfigDir() (string, error) {
	return platformPath(configBase)
}

// DefaultDataDir returns the platform-specific data directory.
//
// Linux:   $XDG_DATA_HOME/math3d-scenes (fallback ~/.local/share/math3d-scenes)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	return platformPath(dataBase)
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SCENES_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > data_dir from config.yaml > SCENES_DATA_DIR > $(CWD)/.scenes-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, candidate := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if candidate != "" {
			return filepath.Abs(candidate)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
