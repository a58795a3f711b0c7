// Package fileutil provides file permission constants and small filesystem
// helpers shared by the CLI. Everything operates through afero so tests can
// run against an in-memory filesystem.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Standard file permission constants
const (
	// ReadWriteUserPermission represents read/write permissions for the file owner only (0600 in octal)
	ReadWriteUserPermission = 0o600
	// ReadWriteExecuteUserPermission represents read/write/execute for the directory owner only (0700 in octal)
	ReadWriteExecuteUserPermission = 0o700
)

// FileExists checks if a regular file exists at the given path.
func FileExists(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return !info.IsDir(), nil
}

// DirExists checks if a directory exists at the given path.
func DirExists(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.IsDir(), nil
}

// EnsureParentDir creates the parent directory of path if it does not exist,
// so output files can be written to not-yet-existing directories.
func EnsureParentDir(fs afero.Fs, path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	exists, err := DirExists(fs, dir)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := fs.MkdirAll(dir, ReadWriteExecuteUserPermission); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
