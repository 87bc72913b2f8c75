package config

import (
	"os"
	"path/filepath"
)

// HistoryPath returns the history directory for a given workspace root.
func HistoryPath(root string) string {
	return filepath.Join(root, AppDir, HistoryDir)
}

// IndexPath returns the path of the index document for a workspace root.
func IndexPath(root string) string {
	return filepath.Join(HistoryPath(root), IndexFile)
}

// BookmarksPath returns the path of the bookmark document for a workspace root.
func BookmarksPath(root string) string {
	return filepath.Join(HistoryPath(root), BookmarksFile)
}

// ResolveWorkspaceRoot determines the workspace root by walking up.
// It traverses up the directory tree until it finds an .illusions directory.
// Returns the current working directory when no workspace is found.
func ResolveWorkspaceRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	dir := cwd
	for {
		if fi, err := os.Stat(filepath.Join(dir, AppDir)); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return cwd
}
