package fs

import (
	"fmt"
	"os"
	"runtime"

	"github.com/aretw0/librarian/pkg/core"
)

// OwnerOnly is the mode for files that must be readable and writable by their owner alone.
const OwnerOnly os.FileMode = 0600

// CheckOwnerOnly reports whether filename exists with exactly rw------- permissions.
// The observed mode is returned alongside so callers can log it.
// Windows has no unix permission bits, so an existing file is always PermissionOK there.
func CheckOwnerOnly(filename string) (core.PermissionStatus, os.FileMode, error) {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return core.PermissionMissing, 0, nil
	}
	if err != nil {
		return core.PermissionMissing, 0, fmt.Errorf("failed to stat %s: %w", filename, err)
	}

	mode := info.Mode()
	if runtime.GOOS == "windows" {
		return core.PermissionOK, mode, nil
	}
	if !mode.IsRegular() || mode.Perm() != OwnerOnly {
		return core.PermissionWrong, mode, nil
	}
	return core.PermissionOK, mode, nil
}
