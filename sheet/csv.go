package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV loads a CSV document into a grid. Records may have different
// numbers of fields; empty fields are blank.
func ReadCSV(r io.Reader) (*Grid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return GridFromStrings(rows), nil
}
