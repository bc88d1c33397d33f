package format

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes rendered content to path, creating parent directories.
func WriteFile(path string, content []byte) error {
	err := os.MkdirAll(filepath.Dir(path), dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	err = os.WriteFile(path, content, filePerm)
	if err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	return nil
}
