// Package filex contains small filesystem helpers used by the local
// file store.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates the directory (and any missing parents) if it does not
// exist and returns its path.
func EnsureDir(elem ...string) (string, error) {
	dir := filepath.Join(elem...)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// Ext returns the extension of name including the leading dot, or an empty
// string when the name has none.
func Ext(name string) string {
	return filepath.Ext(name)
}
