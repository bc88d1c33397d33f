package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"sheet-mapper/internal/format"
	"sheet-mapper/sheet"
)

// emit writes data to path, or to stdout when path is empty.
func (a *app) emit(path string, data []byte) error {
	if path == "" {
		_, err := a.out.Write(data)
		return err
	}

	err := format.WriteFile(path, data)
	if err != nil {
		return err
	}

	a.log.Info("output written", "path", path, "bytes", len(data))

	return nil
}

func jsonEncoder(buf *bytes.Buffer) *json.Encoder {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	return enc
}

// encodeJSON renders v as indented JSON.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := jsonEncoder(&buf)
	enc.SetIndent("", "  ")

	err := enc.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}

	return buf.Bytes(), nil
}

// encodeJSONLines renders one compact JSON value per line.
func encodeJSONLines[T any](values []T) ([]byte, error) {
	var buf bytes.Buffer

	enc := jsonEncoder(&buf)

	for _, v := range values {
		err := enc.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// encodeCSV renders a grid as CSV, padding rows to the widest.
func encodeCSV(g *sheet.Grid) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	width := g.Cols()

	for row := range g.Rows() {
		record := make([]string, width)

		for col := range width {
			v, err := g.Cell(row, col)
			if err != nil {
				return nil, err
			}

			record[col] = sheet.Normalize(v)
		}

		err := w.Write(record)
		if err != nil {
			return nil, fmt.Errorf("encoding CSV: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encoding CSV: %w", err)
	}

	return buf.Bytes(), nil
}
