// Package infer derives a schema from the header block of an existing
// worksheet.
//
// Each column of the block is read top to bottom into a path of labels.
// Repeated labels in a column (a label merged across rows) collapse into
// one. Paths are merged left to right into a tree: a label equal to the
// last sibling on the same row continues that group. Columns that add no
// new node, blank or fully repeated, become a horizontal offset on the
// next node. Labels below their expected row get a vertical offset.
package infer

import (
	"errors"
	"fmt"

	"sheet-mapper/internal/common"
	"sheet-mapper/internal/diagnostic"
	"sheet-mapper/schema"
	"sheet-mapper/sheet"
)

// ErrNoHeader is returned when the block holds no labels.
var ErrNoHeader = errors.New("no header labels found")

// unnamedStem names columns whose label yields no identifier.
const unnamedStem = "Column"

// Options describe where the header block is.
type Options struct {
	// Name is the declared name of the root.
	Name string
	// Height is the number of header rows.
	Height int
	// Width is the number of columns to read. Zero reads until the first
	// blank column.
	Width int
	// Origin is the top-left cell of the block.
	Origin schema.Offset
}

// Result is an inferred schema.
type Result struct {
	Root        *schema.Node
	Diagnostics diagnostic.Diagnostics
}

type label struct {
	text string
	row  int
}

type inode struct {
	label
	col      int
	gap      int
	children []*inode
}

// Infer reads the header block of ws and returns a schema that matches it.
func Infer(ws sheet.Worksheet, opts Options) (*Result, error) {
	switch {
	case opts.Name == "":
		return nil, fmt.Errorf("root: %w", schema.ErrEmptyName)
	case opts.Height < 1:
		return nil, fmt.Errorf("invalid header height %d", opts.Height)
	case opts.Width < 0:
		return nil, fmt.Errorf("invalid header width %d", opts.Width)
	case opts.Origin.Rows < 0 || opts.Origin.Cols < 0:
		return nil, fmt.Errorf("invalid origin (%d, %d): %w", opts.Origin.Rows, opts.Origin.Cols, sheet.ErrOutOfRange)
	}

	res := &Result{}
	root := &inode{label: label{row: opts.Origin.Rows - 1}}
	gap := 0

	for i := 0; opts.Width == 0 || i < opts.Width; i++ {
		col := opts.Origin.Cols + i

		levels, err := readColumn(ws, opts.Origin.Rows, opts.Height, col)
		if err != nil {
			return nil, err
		}

		if len(levels) == 0 && opts.Width == 0 {
			break
		}

		if len(levels) > 0 && merge(root, levels, col, gap) {
			gap = 0
			continue
		}

		gap++
	}

	if len(root.children) == 0 {
		return nil, ErrNoHeader
	}

	if gap > 0 {
		res.Diagnostics.AddInfo(diagnostic.CodeGap,
			fmt.Sprintf("%d trailing column(s) without a new label ignored", gap), "", "")
	}

	decl := schema.Group(opts.Name, declsOf(root, &res.Diagnostics)...)
	if !opts.Origin.IsZero() {
		decl = decl.WithOffset(opts.Origin.Rows, opts.Origin.Cols)
	}

	node, err := schema.BuildRoot(decl)
	if err != nil {
		return nil, fmt.Errorf("failed to build inferred schema: %w", err)
	}

	res.Root = node

	return res, nil
}

// readColumn returns the non-blank labels of one column, top to bottom,
// with vertical repeats collapsed.
func readColumn(ws sheet.Worksheet, top, height, col int) ([]label, error) {
	var levels []label

	for row := top; row < top+height; row++ {
		v, err := sheet.HeaderCell(ws, row, col)
		if err != nil {
			return nil, fmt.Errorf("failed to read header cell %s: %w", sheet.CellName(row, col), err)
		}

		text := sheet.Normalize(v)
		if text == "" {
			continue
		}

		if last, ok := common.Last(levels); ok && last.text == text {
			continue
		}

		levels = append(levels, label{text: text, row: row})
	}

	return levels, nil
}

// merge adds the label path of one column to the tree. It returns false if
// the path is already fully present, so the column adds nothing.
// gap becomes the horizontal offset of the first new node.
func merge(parent *inode, levels []label, col, gap int) bool {
	for i, lv := range levels {
		last, ok := common.Last(parent.children)
		final := i == len(levels)-1

		if ok && last.label == lv && (len(last.children) > 0 || final) {
			parent = last
			continue
		}

		first := &inode{label: lv, col: col, gap: gap}
		node := first

		for _, rest := range levels[i+1:] {
			child := &inode{label: rest, col: col}
			node.children = append(node.children, child)
			node = child
		}

		parent.children = append(parent.children, first)

		return true
	}

	return false
}

func declsOf(parent *inode, diags *diagnostic.Diagnostics) []schema.Decl {
	ns := NewNamespace()
	decls := make([]schema.Decl, 0, len(parent.children))

	for _, n := range parent.children {
		cell := sheet.CellName(n.row, n.col)

		name := schema.TypeName(n.text)
		if name == "" {
			name = ns.Stem(unnamedStem).Next()
			diags.AddWarning(diagnostic.CodeUnnamed,
				fmt.Sprintf("label %q yields no identifier, named %s", n.text, name), cell, "")
		} else if claimed := ns.Claim(name); claimed != name {
			diags.AddWarning(diagnostic.CodeRenamed,
				fmt.Sprintf("duplicate name %s renamed to %s", name, claimed), cell, "")
			name = claimed
		}

		var d schema.Decl

		if len(n.children) > 0 {
			d = schema.Group(name, declsOf(n, diags)...)
		} else {
			d = schema.Field(name)
		}

		if schema.HeaderName(name) != n.text {
			d = d.WithInputName(n.text)
		}

		rows := n.row - (parent.row + 1)
		if rows != 0 || n.gap != 0 {
			d = d.WithOffset(rows, n.gap)
		}

		if n.gap > 0 {
			diags.AddInfo(diagnostic.CodeGap,
				fmt.Sprintf("%d column(s) without a new label before %q", n.gap, n.text), cell, "")
		}

		decls = append(decls, d)
	}

	return decls
}
