// Package fs provides filesystem helpers for crawl output.
package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/spiderkit"
)

// EnsureDir creates a directory and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return spiderkit.Errorf(spiderkit.EINTERNAL, "cannot create directory %q: %v", dir, err)
	}
	return nil
}

// EnsureParentDir creates the parent directory of a file path if it
// does not exist yet, so the file can be written without further
// checks. A path without a parent component is a no-op.
func EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "" || dir == "." {
		return nil
	}
	return EnsureDir(dir)
}
