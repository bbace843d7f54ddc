package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/iconrules/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for iconrules
	EnvConfigDir = "ICONRULES_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for iconrules
	EnvStateDir = "ICONRULES_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directory and file names
const (
	// AppDirName is the directory name below each XDG base directory
	AppDirName = "iconrules"

	// ConfigFileName is the name of the user config file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "iconrules.log"
)

// ConfigDir returns the iconrules config directory
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	// xdg caches the environment at init; pick up changes made since then
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the iconrules state directory
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	xdg.Reload()
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ConfigFilePath returns the path of the user config file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFilePath returns the path of the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// GetHomeDirectory returns the user's home directory
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// ExpandHome expands a leading ~ to the home directory. Paths it cannot
// expand are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is not expanded
	return path
}

// ResolveDir expands and cleans a user supplied directory and checks that
// it exists
func ResolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(ExpandHome(dir))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid directory %s", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNotFound, "directory %s not found", dir).
			WithDetail("path", abs)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is not a directory", dir).
			WithDetail("path", abs)
	}
	return abs, nil
}
