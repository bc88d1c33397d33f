package sheet

import (
	"fmt"
)

// Grid is an in-memory worksheet.
type Grid struct {
	cells  [][]Value
	merges []mergeRange
}

type mergeRange struct {
	top, left, bottom, right int
}

func (m mergeRange) contains(row, col int) bool {
	return row >= m.top && row <= m.bottom && col >= m.left && col <= m.right
}

// NewGrid returns a grid holding rows. Rows may differ in length.
func NewGrid(rows ...[]Value) *Grid {
	return &Grid{cells: rows}
}

// GridFromStrings returns a grid of text cells. Empty strings are blank.
func GridFromStrings(rows [][]string) *Grid {
	g := &Grid{cells: make([][]Value, len(rows))}

	for r, row := range rows {
		cells := make([]Value, len(row))
		for c, s := range row {
			if s != "" {
				cells[c] = s
			}
		}

		g.cells[r] = cells
	}

	return g
}

// Cell returns the value at (row, col).
func (g *Grid) Cell(row, col int) (Value, error) {
	if row < 0 || col < 0 {
		return nil, fmt.Errorf("cell (%d, %d): %w", row, col, ErrOutOfRange)
	}

	if row >= len(g.cells) || col >= len(g.cells[row]) {
		return nil, nil
	}

	return g.cells[row][col], nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return len(g.cells)
}

// Cols returns the length of the longest row.
func (g *Grid) Cols() int {
	width := 0
	for _, row := range g.cells {
		width = max(width, len(row))
	}

	return width
}

// Set stores v at (row, col), growing the grid as needed.
func (g *Grid) Set(row, col int, v Value) {
	if row < 0 || col < 0 {
		return
	}

	for len(g.cells) <= row {
		g.cells = append(g.cells, nil)
	}

	for len(g.cells[row]) <= col {
		g.cells[row] = append(g.cells[row], nil)
	}

	g.cells[row][col] = v
}

// Merge records the cells from (top, left) to (bottom, right) as one merged
// range anchored at its top-left cell.
func (g *Grid) Merge(top, left, bottom, right int) error {
	if top < 0 || left < 0 || bottom < top || right < left {
		return fmt.Errorf("merge (%d, %d)-(%d, %d): %w", top, left, bottom, right, ErrOutOfRange)
	}

	g.merges = append(g.merges, mergeRange{top: top, left: left, bottom: bottom, right: right})

	return nil
}

// MergedCell returns the value of the merged range covering (row, col), or
// the cell itself when it is not merged.
func (g *Grid) MergedCell(row, col int) (Value, error) {
	for _, m := range g.merges {
		if m.contains(row, col) {
			return g.Cell(m.top, m.left)
		}
	}

	return g.Cell(row, col)
}
