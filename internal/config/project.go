package config

import (
	"os"
	"path/filepath"
)

// ProjectFileName is the project-local configuration overlay.
const ProjectFileName = ".tablectl.yaml"

// FindProjectFile walks up from startDir looking for ProjectFileName and
// returns its absolute path, or "" when none exists.
// Does NOT create anything (read-only operation).
func FindProjectFile(startDir string) string {
	if startDir == "" {
		return ""
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
