package sheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Value is a raw cell value. nil means blank.
type Value = any

// Worksheet is a readable grid of cells.
type Worksheet interface {
	// Cell returns the value at (row, col). Cells outside the used range
	// are blank.
	Cell(row, col int) (Value, error)
	// Rows returns the number of used rows.
	Rows() int
}

// MergedWorksheet is a worksheet that knows its merged ranges.
type MergedWorksheet interface {
	Worksheet
	// MergedCell returns the top-left value of the merged range covering
	// (row, col), or the cell itself when it is not merged.
	MergedCell(row, col int) (Value, error)
}

// HeaderCell returns the label shown at (row, col). Cells of a merged range
// read the value of its top-left cell.
func HeaderCell(ws Worksheet, row, col int) (Value, error) {
	if m, ok := ws.(MergedWorksheet); ok {
		return m.MergedCell(row, col)
	}

	return ws.Cell(row, col)
}

// ErrOutOfRange is returned for negative coordinates.
var ErrOutOfRange = errors.New("cell coordinates out of range")

// Normalize returns the comparable text of a cell value: surrounding
// whitespace trimmed and inner runs of whitespace collapsed to one space.
// Floats are rendered without exponent or trailing zeros.
// Returns "" for blank values.
func Normalize(v Value) string {
	var s string

	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}

	return strings.Join(strings.Fields(s), " ")
}

// IsBlank reports whether v is nil or whitespace-only text.
func IsBlank(v Value) bool {
	if v == nil {
		return true
	}

	s, ok := v.(string)

	return ok && strings.TrimSpace(s) == ""
}

// CellName returns the A1 name of a 0-based cell, e.g. (2, 0) -> "A3".
func CellName(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d", row+1, col+1)
	}

	return name
}

// ParseCellName returns the 0-based coordinates of an A1 name.
func ParseCellName(name string) (row, col int, err error) {
	col, row, err = excelize.CellNameToCoordinates(strings.TrimSpace(name))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse cell name %q: %w", name, err)
	}

	return row - 1, col - 1, nil
}
