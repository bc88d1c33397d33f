// Package header checks a resolved layout against the header cells of a
// worksheet.
package header

import (
	"fmt"

	"sheet-mapper/layout"
	"sheet-mapper/sheet"
)

// HeaderMismatchError is returned when a header cell does not hold the
// expected text.
type HeaderMismatchError struct {
	// Key is the dotted output key of the node.
	Key string
	// Expected is the node's input name.
	Expected string
	// Found is the normalized cell text, "" for a blank cell.
	Found string
	// Row and Col locate the cell, 0-based.
	Row int
	Col int
}

// Cell returns the A1 name of the mismatching cell.
func (e *HeaderMismatchError) Cell() string {
	return sheet.CellName(e.Row, e.Col)
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("header mismatch at %s for %q: expected %q, found %q",
		e.Cell(), e.Key, e.Expected, e.Found)
}

// Option configures validation.
type Option func(*options)

type options struct {
	allowBlank bool
}

// AllowBlank tolerates blank header cells, as left by merged or drifted
// labels. Cells holding other text still fail.
func AllowBlank() Option {
	return func(o *options) {
		o.allowBlank = true
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Validate checks every header cell of l in traversal order and returns the
// first *HeaderMismatchError. Group labels are read at the start of their
// span. Skipped nodes are not checked.
func Validate(l *layout.Layout, ws sheet.Worksheet, opts ...Option) error {
	o := newOptions(opts)

	for _, p := range l.Nodes() {
		_, err := check(p, ws, o)
		if err != nil {
			return err
		}
	}

	return nil
}

// check validates one placement. The first result is true if the cell was
// blank and tolerated.
func check(p *layout.Placement, ws sheet.Worksheet, o options) (bool, error) {
	if p.Skipped {
		return false, nil
	}

	v, err := sheet.HeaderCell(ws, p.Row, p.Col)
	if err != nil {
		return false, fmt.Errorf("failed to read header cell %s: %w", sheet.CellName(p.Row, p.Col), err)
	}

	found := sheet.Normalize(v)
	if found == sheet.Normalize(p.Node.InputName) {
		return false, nil
	}

	if found == "" && o.allowBlank {
		return true, nil
	}

	return false, &HeaderMismatchError{
		Key:      p.Key,
		Expected: p.Node.InputName,
		Found:    found,
		Row:      p.Row,
		Col:      p.Col,
	}
}
