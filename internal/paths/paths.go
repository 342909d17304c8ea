// Package paths resolves the configuration and data directories used by the
// propai CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Working-directory names checked before the platform default.
const (
	LocalConfigDirName = ".propai"
	LocalDataDirName   = ".propai-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PROPAI_CONFIG_DIR"
	EnvDataDir   = "PROPAI_DATA_DIR"
)

const appName = "propai"

// platformDir holds platform lookups that tests override.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// PlatformConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/propai (fallback ~/.config/propai)
// Others:  os.UserConfigDir()/propai
func PlatformConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir picks the configuration directory: flag, then
// PROPAI_CONFIG_DIR, then ./.propai when it exists, then the platform
// directory.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	local := filepath.Join(cwd, LocalConfigDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}
	return PlatformConfigDir()
}

// ResolveDataDir picks the data directory for the sqlite backend: flag,
// then the config file value, then PROPAI_DATA_DIR, then ./.propai-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, dir := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, LocalDataDirName), nil
}
