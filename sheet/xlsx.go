package sheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotExist is returned by Workbook.Sheet for unknown sheet names.
type ErrSheetNotExist = excelize.ErrSheetNotExist

// ErrNoSheets is returned when a workbook has no worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// Workbook is an open xlsx file.
type Workbook struct {
	f *excelize.File
}

// Open opens the xlsx file at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	return &Workbook{f: f}, nil
}

// OpenReader reads an xlsx workbook from r.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	return &Workbook{f: f}, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheets returns the worksheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.f.GetSheetList()
}

// Sheet loads the named worksheet. An empty name selects the first sheet.
func (w *Workbook) Sheet(name string) (*Grid, error) {
	if name == "" {
		sheets := w.Sheets()
		if len(sheets) == 0 {
			return nil, ErrNoSheets
		}

		name = sheets[0]
	}

	if idx, err := w.f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, ErrSheetNotExist{SheetName: name}
	}

	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	g := GridFromStrings(rows)

	merges, err := w.f.GetMergeCells(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read merged cells of %q: %w", name, err)
	}

	for _, m := range merges {
		err := merge(g, m)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
	}

	return g, nil
}

// merge records an excelize merged range on g.
func merge(g *Grid, m excelize.MergeCell) error {
	top, left, err := ParseCellName(m.GetStartAxis())
	if err != nil {
		return err
	}

	bottom, right, err := ParseCellName(m.GetEndAxis())
	if err != nil {
		return err
	}

	return g.Merge(top, left, bottom, right)
}
