package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Extensions of partial artifacts the external tool leaves after an
// interrupted run
var StaleExtensions = []string{".part", ".ytdl"}

// CreateDirectoryIfNotExists ensures the directory exists
func CreateDirectoryIfNotExists(path string) error {
	return os.MkdirAll(path, DefaultDirPermissions)
}

// RemoveStaleArtifacts deletes leftover partial-download files from dir and
// returns how many were removed. Unreadable entries are skipped.
func RemoveStaleArtifacts(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !isStaleArtifact(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

func isStaleArtifact(name string) bool {
	for _, ext := range StaleExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
