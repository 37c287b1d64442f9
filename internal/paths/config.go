// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
)

// LocalConfig is the project-local config file, relative to the working directory.
const LocalConfig = ".filterql/config.yaml"

// UserConfig returns ~/.config/filterql/config.yaml, or an empty string if
// the home directory is unavailable.
func UserConfig() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "filterql", "config.yaml")
}

// ResolveConfig picks the config file to load.
//
// Lookup order:
//   - explicit, when non-empty (returned even if it does not exist)
//   - .filterql/config.yaml under dir
//   - ~/.config/filterql/config.yaml
//
// found is false when no candidate exists; path is then the user config,
// which is where a default file should be written.
func ResolveConfig(explicit, dir string) (path string, found bool) {
	if explicit != "" {
		return explicit, fileExists(explicit)
	}

	local := filepath.Join(dir, LocalConfig)
	if fileExists(local) {
		return local, true
	}

	user := UserConfig()
	if user != "" && fileExists(user) {
		return user, true
	}
	return user, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
