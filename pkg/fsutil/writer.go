package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrEmptyOutputPath is returned when a write target is empty.
var ErrEmptyOutputPath = errors.New("output path cannot be empty")

// WriteFileAtomic replaces path with data. The content is written to a
// temporary file in the same directory, given perm and renamed over path, so
// readers see either the old or the new file. The parent directory must exist.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyOutputPath
	}

	path = filepath.Clean(path)

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tmpPath := tmp.Name()

	defer func() {
		_ = os.Remove(tmpPath)
	}()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(perm)
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}

	err = os.Rename(tmpPath, path)
	if err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
