package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPrepareCacheDirCreates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")

	got, err := PrepareCacheDir(dir)
	if err != nil {
		t.Fatalf("PrepareCacheDir: %v", err)
	}
	if got != dir {
		t.Errorf("expected %s, got %s", dir, got)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("cache directory not created: %v", err)
	}
}

func TestPrepareCacheDirPurgesStaleFiles(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "status_old.png")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := PrepareCacheDir(dir); err != nil {
		t.Fatalf("PrepareCacheDir: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale image artifact should have been removed")
	}
}

func TestPrepareCacheDirKeepsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "keep")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := PrepareCacheDir(dir); err != nil {
		t.Fatalf("PrepareCacheDir: %v", err)
	}

	if info, err := os.Stat(sub); err != nil || !info.IsDir() {
		t.Error("subdirectories must survive a purge")
	}
}
