// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// OwnerReadWrite restricts a file to its owner.
const OwnerReadWrite os.FileMode = 0o600

// TempContext holds state for an atomic file replacement.
type TempContext struct {
	TmpFile *os.File
	TmpName string

	target string
}

// NewTempContext creates a temp file next to target so that the final rename stays on one filesystem.
// Caller must defer CleanupOnError.
func NewTempContext(target string) (*TempContext, error) {
	dir := filepath.Dir(target)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating directory %q: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &TempContext{
		TmpFile: tmpFile,
		TmpName: tmpFile.Name(),
		target:  target,
	}, nil
}

// CleanupOnError closes the temp file, unless Commit already did, and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	if tc.TmpFile != nil {
		tc.TmpFile.Close() //nolint:gosec // best-effort cleanup
	}

	if *errp != nil {
		os.Remove(tc.TmpName) //nolint:gosec // best-effort cleanup
	}
}

// Commit flushes the temp file, applies perm and renames it over the target.
func (tc *TempContext) Commit(perm os.FileMode) error {
	if err := tc.TmpFile.Sync(); err != nil {
		return fmt.Errorf("syncing temporary file: %w", err)
	}

	if err := RestrictPermissions(tc.TmpName, perm); err != nil {
		return err
	}

	err := tc.TmpFile.Close()
	tc.TmpFile = nil

	if err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(tc.TmpName, tc.target); err != nil {
		return fmt.Errorf("renaming output file: %w", err)
	}

	// The target may have been pre-created with wider permissions on platforms where rename keeps them.
	return RestrictPermissions(tc.target, perm)
}

// WriteFile atomically replaces target with data and restricts it to perm.
func WriteFile(target string, data []byte, perm os.FileMode) (err error) {
	tc, err := NewTempContext(target)
	if err != nil {
		return fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	if _, err = tc.TmpFile.Write(data); err != nil {
		return fmt.Errorf("writing temporary file: %w", err)
	}

	if err = tc.Commit(perm); err != nil {
		return err
	}

	return nil
}

// RestrictPermissions sets perm on path where the platform has permission bits.
func RestrictPermissions(path string, perm os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}

	return nil
}
