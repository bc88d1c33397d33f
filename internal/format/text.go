package format

import (
	"fmt"
	"strings"

	"sheet-mapper/layout"
	"sheet-mapper/schema"
	"sheet-mapper/sheet"
)

const indent = "  "

// Pretty renders an indented dump of every node with its header cell,
// input and output names. Offsets and flags follow on "++" lines.
//
//	Node<Hardware (N/A) -- ROOT>
//	  Node<Category (A1) 'Category' -> 'category'>
//	    Node<GroupA (A2) 'Group A' -> 'group_a'>
func Pretty(l *layout.Layout) string {
	var b strings.Builder

	root := l.Root()
	fmt.Fprintf(&b, "Node<%s (N/A) -- ROOT>\n", root.DeclaredName)
	details(&b, root, indent)

	for _, p := range l.Nodes() {
		pad := strings.Repeat(indent, p.Depth+1)
		n := p.Node

		fmt.Fprintf(&b, "%sNode<%s (%s) '%s' -> '%s'>\n",
			pad, n.DeclaredName, sheet.CellName(p.Row, p.Col), n.InputName, n.OutputName)
		details(&b, n, pad+indent)
	}

	return b.String()
}

func details(b *strings.Builder, n *schema.Node, pad string) {
	if !n.Offset.IsZero() {
		fmt.Fprintf(b, "%s++ offset=(%d, %d)\n", pad, n.Offset.Rows, n.Offset.Cols)
	}

	if n.Optional {
		fmt.Fprintf(b, "%s++ optional\n", pad)
	}

	if n.Skip {
		fmt.Fprintf(b, "%s++ skip\n", pad)
	}
}

// Flat renders one line per extracted leaf: its header cell and record key.
//
//	A3 -> category.group_a.a
func Flat(l *layout.Layout) string {
	var b strings.Builder

	for _, p := range l.Fields() {
		fmt.Fprintf(&b, "%s -> %s\n", sheet.CellName(p.Row, p.Col), p.Key)
	}

	return b.String()
}
