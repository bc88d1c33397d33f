package header

import (
	"sheet-mapper/layout"
	"sheet-mapper/sheet"
)

// Template returns a grid holding exactly the header cells of l, each at its
// resolved position with its input name. Skipped nodes are written as well.
// The grid validates against l.
func Template(l *layout.Layout) *sheet.Grid {
	g := sheet.NewGrid()

	for _, p := range l.Nodes() {
		g.Set(p.Row, p.Col, p.Node.InputName)
	}

	return g
}
