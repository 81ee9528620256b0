package app

import (
	"os"
	"path/filepath"
)

// AppDirName is the per-user directory holding every data file.
const AppDirName = "TabTime"

// DefaultDataDir resolves the data directory: TABTIME_DATA_DIR if set, else
// the user config directory, else the working directory.
func DefaultDataDir() string {
	if dir := os.Getenv("TABTIME_DATA_DIR"); dir != "" {
		return dir
	}
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, AppDirName)
	}
	return AppDirName
}
