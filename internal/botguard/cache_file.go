package botguard

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileCache stores attestation outputs on disk, one file per key, so tokens
// survive between CLI invocations. Expired entries are treated as missing.
type FileCache struct {
	rootDir string
	mu      sync.Mutex
}

// NewFileCache creates a file-backed cache under rootDir, creating the
// directory if needed.
func NewFileCache(rootDir string) (*FileCache, error) {
	if rootDir == "" {
		return nil, errors.New("rootDir is required")
	}
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{rootDir: rootDir}, nil
}

func (c *FileCache) filenameForKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.rootDir, fmt.Sprintf("%x.json", sum[:]))
}

type fileEntry struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Get reads an output from disk, removing entries that are expired or corrupt.
func (c *FileCache) Get(key string) (Output, bool) {
	fn := c.filenameForKey(key)

	b, err := os.ReadFile(fn)
	if err != nil {
		return Output{}, false
	}
	var e fileEntry
	if err := json.Unmarshal(b, &e); err != nil {
		_ = os.Remove(fn)
		return Output{}, false
	}
	if !e.ExpiresAt.IsZero() && time.Until(e.ExpiresAt) <= 0 {
		_ = os.Remove(fn)
		return Output{}, false
	}
	return Output{Token: e.Token, ExpiresAt: e.ExpiresAt}, true
}

// Set writes an output to disk via a temporary file and rename.
func (c *FileCache) Set(key string, value Output) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn := c.filenameForKey(key)
	tmp := fn + ".tmp"
	b, _ := json.Marshal(fileEntry{Token: value.Token, ExpiresAt: value.ExpiresAt})
	_ = os.WriteFile(tmp, b, 0o644)
	_ = os.Rename(tmp, fn)
}
