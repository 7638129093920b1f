package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/kjk/memo/u"
)

// AppName is the name of data directory
const AppName = "memo"

// DataDir returns the directory where memo keeps its data.
// It uses $MEMO_PATH if set, then $XDG_DATA_HOME/memo, then
// the OS convention for per-user application data.
func DataDir() string {
	if v := os.Getenv("MEMO_PATH"); v != "" {
		return u.ExpandTildeInPath(v)
	}
	if v := os.Getenv("XDG_DATA_HOME"); v != "" && filepath.IsAbs(v) {
		return filepath.Join(v, AppName)
	}
	return filepath.Join(systemDataDir(), AppName)
}

func systemDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	switch runtime.GOOS {
	case "windows":
		if v := os.Getenv("APPDATA"); v != "" {
			return v
		}
		return filepath.Join(home, "AppData", "Roaming")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support")
	}
	return filepath.Join(home, ".local", "share")
}

// ConfigPath returns path of optional config file in dir
func ConfigPath(dir string) string {
	return filepath.Join(dir, "config.jsonc")
}
