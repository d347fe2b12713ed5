package fs

import (
	"fmt"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
)

// BackupSuffix is appended to a file name to form its backup path
const BackupSuffix = ".backup"

// CreateWithBackup creates a new file while preserving the old one as a backup.
// The backup has the same name as the original with ".backup" appended.
// Returns:
// - temporary file for writing
// - cleanup function to remove temporary file
// - commit function to save changes and create backup
// - error if any
func CreateWithBackup(path string) (*os.File, func(), func() error, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create temporary file: %w", err)
	}

	cleanup := func() {
		name := temp.Name()
		_ = temp.Close()
		_ = os.Remove(name)
	}

	commit := func() error {
		name := temp.Name()
		if err := temp.Sync(); err != nil {
			return fmt.Errorf("failed to sync temporary file: %w", err)
		}
		if err := temp.Close(); err != nil {
			return fmt.Errorf("failed to close temporary file: %w", err)
		}

		// The original stays in place until the rename below, so the file
		// at path is never missing.
		if _, err := os.Stat(path); err == nil {
			if err := cp.Copy(path, path+BackupSuffix); err != nil {
				return fmt.Errorf("failed to create backup: %w", err)
			}
		}

		if err := os.Rename(name, path); err != nil {
			return fmt.Errorf("failed to move temporary file: %w", err)
		}

		return nil
	}

	return temp, cleanup, commit, nil
}

// WriteFile replaces the contents of path atomically, keeping the previous
// contents at path+BackupSuffix.
func WriteFile(path string, data []byte) error {
	f, cleanup, commit, err := CreateWithBackup(path)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	return commit()
}

// RestoreBackup moves path+BackupSuffix back to path when path is missing.
// It reports whether a backup was restored.
func RestoreBackup(path string) (bool, error) {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return false, nil
	}
	backup := path + BackupSuffix
	if _, err := os.Stat(backup); err != nil {
		return false, nil
	}
	if err := cp.Copy(backup, path); err != nil {
		return false, fmt.Errorf("failed to restore from backup: %w", err)
	}
	return true, nil
}
