package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appDir = "farmbot"

// baseDir resolves an XDG base directory, falling back to fallback under the
// home directory when the variable is unset or relative
func baseDir(env, fallback string) string {
	if dir := os.Getenv(env); filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(homeDir(), fallback)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return string(filepath.Separator)
	}
	return home
}

// GetConfigDir returns $XDG_CONFIG_HOME/farmbot, ~/.config/farmbot by default
func GetConfigDir() string {
	return filepath.Join(baseDir("XDG_CONFIG_HOME", ".config"), appDir)
}

// GetCacheDir returns $XDG_CACHE_HOME/farmbot, ~/.cache/farmbot by default.
// The debug log lives here.
func GetCacheDir() string {
	return filepath.Join(baseDir("XDG_CACHE_HOME", ".cache"), appDir)
}

func GetSettingsFilePath() string {
	return filepath.Join(GetConfigDir(), "settings.toml")
}

// ExpandPath expands a leading ~ and environment variables in a --config
// argument
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir(), strings.TrimPrefix(path[1:], "/"))
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// EnsureDir creates path with user-only access
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0700)
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
