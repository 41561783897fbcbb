package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ensureDir creates the parent directory of a database file path.
func ensureDir(path string) error {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
