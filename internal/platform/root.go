package platform

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/librarian/pkg/config"
)

// MarkerName is a file or directory that pins the project root explicitly.
const MarkerName = ".librarian"

// ErrRootNotFound is returned by FindRoot when no indicator exists up to the filesystem root.
var ErrRootNotFound = errors.New("root not found")

// FindRoot recursively looks upwards for a project root indicator.
// Indicators are: a .librarian file or directory, or configs/config.toml.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, MarkerName) || hasFile(dir, config.DefaultPath) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

// ResolveRoot returns FindRoot(startDir), falling back to startDir itself
// when no indicator is found.
func ResolveRoot(startDir string) (string, error) {
	root, err := FindRoot(startDir)
	if errors.Is(err, ErrRootNotFound) {
		return filepath.Abs(startDir)
	}
	return root, err
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, filepath.FromSlash(name))
	_, err := os.Stat(path)
	return err == nil
}
