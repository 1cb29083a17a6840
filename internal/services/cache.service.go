package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// DefaultCacheDir returns the per-user cache directory for generated
// report images.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "zhuangtai")
}

// PrepareCacheDir creates the cache directory if needed and removes
// image artifacts left over from previous renders, so only the most
// recent report image ever sits on disk.
func PrepareCacheDir(dir string) (string, error) {
	if dir == "" {
		dir = DefaultCacheDir()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			// A busy file is not fatal, the new artifact gets a fresh name
			log.Printf("Warning: Could not remove stale cache file %s: %v", path, err)
		}
	}

	return dir, nil
}
