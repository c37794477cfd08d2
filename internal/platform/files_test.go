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
		t.Fatalf("Expected directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}

	// Idempotent on an existing directory.
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Errorf("Expected no error on existing directory, got %v", err)
	}
}

func TestRemoveStaleArtifacts(t *testing.T) {
	dir := t.TempDir()

	files := map[string]bool{ // name -> should survive
		"video.mp4":           true,
		"video.mp4.part":      false,
		"video.mp4.ytdl":      false,
		"other.webm":          true,
		"unrelated.part.txt":  true,
		"fragment.f137.part":  false,
	}
	for name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.part"), 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	removed, err := RemoveStaleArtifacts(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if removed != 3 {
		t.Errorf("Expected 3 removed artifacts, got %d", removed)
	}

	for name, survives := range files {
		_, err := os.Stat(filepath.Join(dir, name))
		if survives && err != nil {
			t.Errorf("Expected %s to survive: %v", name, err)
		}
		if !survives && !os.IsNotExist(err) {
			t.Errorf("Expected %s to be removed", name)
		}
	}

	// Directories are never touched, even with a matching name.
	if _, err := os.Stat(filepath.Join(dir, "sub.part")); err != nil {
		t.Errorf("Expected directory to survive: %v", err)
	}
}

func TestRemoveStaleArtifacts_MissingDir(t *testing.T) {
	if _, err := RemoveStaleArtifacts(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing directory")
	}
}
