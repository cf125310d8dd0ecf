package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "downloads")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Expected directory to exist, got %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}

	// Idempotent on an existing directory
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Errorf("Expected no error for existing directory, got %v", err)
	}
}

func TestOpenFile_MissingFile(t *testing.T) {
	err := OpenFile(filepath.Join(t.TempDir(), "does-not-exist.mp3"))
	if err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestOpenFolder_EmptyPath(t *testing.T) {
	if err := OpenFolder(""); err == nil {
		t.Error("Expected an error for an empty path")
	}
}
