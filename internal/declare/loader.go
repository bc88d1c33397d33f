package declare

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sheet-mapper/schema"
)

// ErrUnknownFormat is returned for files that are neither YAML nor HCL.
var ErrUnknownFormat = errors.New("unknown declaration format")

// LoadFile loads and parses a declaration file, choosing the format by
// extension: .yaml/.yml or .hcl.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".hcl":
		return ParseHCL(data, path)
	default:
		return nil, fmt.Errorf("%s: %w (want .yaml, .yml or .hcl)", path, ErrUnknownFormat)
	}
}

// LoadSchema loads a declaration file and builds its schema tree.
func LoadSchema(path string) (*schema.Node, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	root, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid declaration %s: %w", path, err)
	}

	return root, nil
}
