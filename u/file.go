package u

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PathExists returns true if path exists
func PathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CloseNoError is like io.Closer Close() but ignores an error
// use as: defer CloseNoError(f)
func CloseNoError(f io.Closer) {
	_ = f.Close()
}

// ExpandTildeInPath replaces leading ~ with user's home directory.
// Returns s unchanged if home directory can't be determined.
func ExpandTildeInPath(s string) string {
	if s != "~" && !strings.HasPrefix(s, "~/") && !strings.HasPrefix(s, `~\`) {
		return s
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return s
	}
	return filepath.Join(dir, s[1:])
}
