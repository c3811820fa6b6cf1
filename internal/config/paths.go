// ABOUTME: Standard filesystem paths for supportbot configuration and catalogs
// ABOUTME: Resolves ~/.supportbot/ for global and .supportbot/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".supportbot"
	projectDirName = ".supportbot"
)

// GlobalDir returns the user-global config directory (~/.supportbot/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.supportbot/ in cwd).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalSettingsFile returns the path to the user settings file.
func GlobalSettingsFile() string {
	return filepath.Join(GlobalDir(), "settings.json")
}

// ProjectSettingsFile returns the path to the project settings file.
func ProjectSettingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "settings.json")
}

// CatalogDirs returns the directories scanned for catalog files, global
// first so that project catalogs override them.
func CatalogDirs(projectRoot string) []string {
	return []string{
		filepath.Join(GlobalDir(), "catalogs"),
		filepath.Join(ProjectDir(projectRoot), "catalogs"),
	}
}
