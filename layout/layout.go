package layout

import (
	"errors"

	"sheet-mapper/schema"
)

// Span is the inclusive column range a node covers.
type Span struct {
	Start int
	End   int
}

// Width returns the number of columns in the span.
func (s Span) Width() int {
	return s.End - s.Start + 1
}

// Placement is the resolved position of one node.
type Placement struct {
	// Node is the placed schema node.
	Node *schema.Node
	// Path holds the node's ancestors below the root, outermost first.
	Path []*schema.Node
	// Depth is the nesting level, 0 for top-level nodes.
	Depth int
	// Row and Col locate the header cell. For groups Col == Span.Start.
	Row int
	Col int
	// Span is the column range of the node's leaves. Leaves span one column.
	Span Span
	// Key is the dotted output key, e.g. "category.group_a.a".
	Key string
	// Skipped is true for skipped nodes and for descendants of skipped groups.
	Skipped bool
}

// Names returns the output names along the path, the node's own name last.
func (p *Placement) Names() []string {
	names := make([]string, 0, len(p.Path)+1)
	for _, n := range p.Path {
		names = append(names, n.OutputName)
	}

	return append(names, p.Node.OutputName)
}

// Layout is a resolved schema.
type Layout struct {
	root   *schema.Node
	nodes  []*Placement
	leaves []*Placement
	byNode map[*schema.Node]*Placement
	byKey  map[string]*Placement

	dataStart int
	maxCol    int
}

// Root returns the schema root this layout was resolved from.
func (l *Layout) Root() *schema.Node {
	return l.root
}

// Nodes returns every placement except the root's, in traversal order.
func (l *Layout) Nodes() []*Placement {
	return l.nodes
}

// Leaves returns leaf placements left to right, skipped leaves included.
func (l *Layout) Leaves() []*Placement {
	return l.leaves
}

// Fields returns the leaf placements that produce record values.
func (l *Layout) Fields() []*Placement {
	out := make([]*Placement, 0, len(l.leaves))
	for _, p := range l.leaves {
		if !p.Skipped {
			out = append(out, p)
		}
	}

	return out
}

// Lookup returns the placement of node.
func (l *Layout) Lookup(node *schema.Node) (*Placement, bool) {
	p, ok := l.byNode[node]
	return p, ok
}

// Leaf returns the leaf placement with the dotted output key.
func (l *Layout) Leaf(key string) (*Placement, bool) {
	p, ok := l.byKey[key]
	if !ok || !p.Node.IsLeaf() {
		return nil, false
	}

	return p, true
}

// Origin returns the top-left cell of the header block.
func (l *Layout) Origin() (row, col int) {
	return l.root.Offset.Rows, l.root.Offset.Cols
}

// Height returns the number of header rows, vertical gaps included.
func (l *Layout) Height() int {
	row, _ := l.Origin()
	return l.dataStart - row
}

// Width returns the number of columns from the origin to the last leaf.
func (l *Layout) Width() int {
	_, col := l.Origin()
	return l.maxCol - col + 1
}

// DataStart returns the first row below the header block.
func (l *Layout) DataStart() int {
	return l.dataStart
}

// Resolve computes the position of every node under root.
// Returns *PositionConflictError if offsets make positions negative, leaf
// columns non-increasing, or two nodes share a cell, and *DuplicateKeyError
// if two nodes share an output key.
func Resolve(root *schema.Node) (*Layout, error) {
	if root == nil {
		return nil, errors.New("nil schema root")
	}

	r := &resolver{
		layout: &Layout{
			root:   root,
			byNode: make(map[*schema.Node]*Placement, root.Count()),
			byKey:  make(map[string]*Placement, root.Count()),
			maxCol: root.Offset.Cols - 1,
		},
		cells:   make(map[[2]int]*Placement),
		cursor:  root.Offset.Cols,
		lastCol: -1,
	}

	for _, child := range root.Children {
		err := r.visit(child, nil, root.Offset.Rows, false)
		if err != nil {
			return nil, err
		}
	}

	if r.layout.dataStart < root.Offset.Rows {
		r.layout.dataStart = root.Offset.Rows
	}

	return r.layout, nil
}

type resolver struct {
	layout  *Layout
	cells   map[[2]int]*Placement
	cursor  int
	lastCol int
	lastKey string
}

func (r *resolver) visit(n *schema.Node, path []*schema.Node, rowBase int, skipped bool) error {
	r.cursor += n.Offset.Cols
	rowBase += n.Offset.Rows

	p := &Placement{
		Node:    n,
		Path:    path,
		Depth:   len(path),
		Row:     rowBase + len(path),
		Col:     r.cursor,
		Key:     keyOf(path, n),
		Skipped: skipped || n.Skip,
	}

	err := r.place(p)
	if err != nil {
		return err
	}

	if n.IsLeaf() {
		if p.Col <= r.lastCol {
			return &PositionConflictError{Key: p.Key, Row: p.Row, Col: p.Col, Reason: ConflictOrder, Other: r.lastKey}
		}

		r.lastCol, r.lastKey = p.Col, p.Key
		r.cursor++
		p.Span = Span{Start: p.Col, End: p.Col}
		r.layout.leaves = append(r.layout.leaves, p)
		r.grow(p)

		return nil
	}

	childPath := append(path[:len(path):len(path)], n)
	for _, child := range n.Children {
		err := r.visit(child, childPath, rowBase, p.Skipped)
		if err != nil {
			return err
		}
	}

	p.Span = Span{Start: p.Col, End: r.cursor - 1}
	r.grow(p)

	return nil
}

func (r *resolver) place(p *Placement) error {
	if p.Row < 0 || p.Col < 0 {
		return &PositionConflictError{Key: p.Key, Row: p.Row, Col: p.Col, Reason: ConflictNegative}
	}

	cell := [2]int{p.Row, p.Col}
	if other, ok := r.cells[cell]; ok {
		return &PositionConflictError{Key: p.Key, Row: p.Row, Col: p.Col, Reason: ConflictOverlap, Other: other.Key}
	}

	if _, ok := r.layout.byKey[p.Key]; ok {
		return &DuplicateKeyError{Key: p.Key}
	}

	r.cells[cell] = p
	r.layout.nodes = append(r.layout.nodes, p)
	r.layout.byNode[p.Node] = p
	r.layout.byKey[p.Key] = p

	return nil
}

func (r *resolver) grow(p *Placement) {
	if p.Row+1 > r.layout.dataStart {
		r.layout.dataStart = p.Row + 1
	}

	if p.Span.End > r.layout.maxCol {
		r.layout.maxCol = p.Span.End
	}
}

func keyOf(path []*schema.Node, n *schema.Node) string {
	names := make([]string, 0, len(path)+1)
	for _, a := range path {
		names = append(names, a.OutputName)
	}

	return schema.JoinKey(append(names, n.OutputName)...)
}
