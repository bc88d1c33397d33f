package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sheet-mapper/header"
	"sheet-mapper/internal/common"
	"sheet-mapper/sheet"
)

// namedSheet is a loaded worksheet and the name it is reported under.
type namedSheet struct {
	name string
	ws   sheet.Worksheet
}

// loadSheets reads the requested worksheets of an .xlsx or .csv file into
// memory. An empty name selects the first sheet. A CSV file is a single
// sheet named after the file.
func loadSheets(path string, names []string, all bool) ([]namedSheet, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return loadCSV(path)
	}

	wb, err := sheet.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if all {
		names = wb.Sheets()
	}

	out := make([]namedSheet, 0, len(names))

	for _, name := range names {
		g, err := wb.Sheet(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load sheet from %s: %w", path, err)
		}

		if name == "" {
			name, _ = common.First(wb.Sheets())
		}

		out = append(out, namedSheet{name: name, ws: g})
	}

	if common.IsEmpty(out) {
		return nil, fmt.Errorf("%s: %w", path, sheet.ErrNoSheets)
	}

	return out, nil
}

func loadCSV(path string) ([]namedSheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	g, err := sheet.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return []namedSheet{{name: name, ws: g}}, nil
}

// isHeaderFailure reports whether err means the worksheet header does not
// match the schema.
func isHeaderFailure(err error) bool {
	var mismatch *header.HeaderMismatchError

	return errors.As(err, &mismatch) || errors.Is(err, header.ErrNothingLeft)
}
