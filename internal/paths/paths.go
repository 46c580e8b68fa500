package paths

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "kiln"

	// File name of a recipe manifest.
	ManifestName = "kiln.yaml"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Returned when no recipe manifest can be located.
var ErrNoManifest = errors.New("no recipe manifest found")

// Path to the user-level fallback recipe.
//
//	Linux:   $XDG_CONFIG_HOME/kiln/kiln.yaml or ~/.config/kiln/kiln.yaml
//	macOS:   ~/Library/Application Support/kiln/kiln.yaml
func UserManifest() string {
	return filepath.Join(xdg.ConfigHome, toolName, ManifestName)
}

// Locates the recipe manifest.
//
// The working directory is checked first, then the user-level fallback.
// Returns [ErrNoManifest] when neither exists.
func FindManifest() (string, error) {
	for _, path := range []string{ManifestName, UserManifest()} {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNoManifest
}
