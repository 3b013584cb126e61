// Package output writes transcript files to disk.
package output

import (
	"os"
	"path/filepath"

	"github.com/ytget/yttext/internal/logger"
)

const temporaryFileSuffix = ".tmp"

var log = logger.WithComponent(logger.ComponentOutput)

// WriteFile writes content to path as UTF-8 text, creating parent
// directories as needed. The data goes to a temporary file first and is
// renamed into place, so an interrupted run never leaves a truncated
// transcript behind.
func WriteFile(path string, content string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := path + temporaryFileSuffix
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	log.Debug("transcript written", map[string]interface{}{"path": path, "bytes": len(content)})
	return nil
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
