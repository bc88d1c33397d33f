package schema

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind tells leaves from groups.
type Kind int

const (
	_ Kind = iota // skip zero value, an undeclared node is neither a leaf nor a group

	KindLeaf
	KindGroup
)

// Offset is a (vertical, horizontal) displacement relative to the position
// strict gapless placement would assign.
type Offset struct {
	Rows int
	Cols int
}

// IsZero returns true if the offset does not move the node.
func (o Offset) IsZero() bool {
	return o.Rows == 0 && o.Cols == 0
}

// Attribute names a declarable node attribute. Used to track which attributes
// were set explicitly rather than derived.
type Attribute string

const (
	AttrInputName  Attribute = "input_name"
	AttrOutputName Attribute = "output_name"
	AttrOffset     Attribute = "offset"
	AttrOptional   Attribute = "optional"
	AttrSkip       Attribute = "skip"
)

// Attributes lists every declarable attribute in canonical order.
var Attributes = []Attribute{AttrInputName, AttrOutputName, AttrOffset, AttrOptional, AttrSkip}

// Node is one declared field or group of a schema tree.
// Nodes are created by Build and must not be modified afterwards.
type Node struct {
	// Kind is KindLeaf or KindGroup.
	Kind Kind
	// DeclaredName is the identifier used in the declaration.
	DeclaredName string
	// InputName is the header cell text this node is matched against.
	InputName string
	// OutputName is the key of this node in extracted records.
	OutputName string
	// Offset displaces the node from its default position.
	Offset Offset
	// Optional nodes are dropped when the worksheet does not have them.
	Optional bool
	// Skip nodes keep their column but are neither validated nor extracted.
	Skip bool
	// Children in declaration order. Empty for leaves.
	Children []*Node

	overrides map[Attribute]struct{}
}

// IsLeaf returns true for leaf nodes.
func (n *Node) IsLeaf() bool {
	return n.Kind == KindLeaf
}

// IsGroup returns true for group nodes.
func (n *Node) IsGroup() bool {
	return n.Kind == KindGroup
}

// Overrides reports whether attr was declared explicitly.
func (n *Node) Overrides(attr Attribute) bool {
	_, ok := n.overrides[attr]
	return ok
}

// Overridden returns the explicitly declared attributes in canonical order.
func (n *Node) Overridden() []Attribute {
	var out []Attribute

	for _, attr := range Attributes {
		if n.Overrides(attr) {
			out = append(out, attr)
		}
	}

	return out
}

// Walk visits n and its descendants depth first, parents before children.
// The path holds the ancestors of the visited node, root first.
// Returning false from fn skips the node's descendants.
func (n *Node) Walk(fn func(node *Node, path []*Node) bool) {
	n.walk(nil, fn)
}

func (n *Node) walk(path []*Node, fn func(*Node, []*Node) bool) {
	if !fn(n, path) {
		return
	}

	path = append(path, n)
	for _, child := range n.Children {
		child.walk(path[:len(path):len(path)], fn)
	}
}

// Leaves returns the leaves under n in declaration order.
func (n *Node) Leaves() []*Node {
	var leaves []*Node

	n.Walk(func(node *Node, _ []*Node) bool {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}

		return true
	})

	return leaves
}

// Last returns the rightmost leaf under n, or n itself for a leaf.
func (n *Node) Last() *Node {
	if len(n.Children) == 0 {
		return n
	}

	return n.Children[len(n.Children)-1].Last()
}

// Count returns the number of nodes under n, n excluded.
func (n *Node) Count() int {
	total := len(n.Children)
	for _, child := range n.Children {
		total += child.Count()
	}

	return total
}

// Clone returns a deep copy of the tree rooted at n.
func (n *Node) Clone() *Node {
	return n.cloneWithout(nil)
}

// Without returns a deep copy of the tree rooted at n with target and its
// descendants removed. Groups left without children are removed as well.
// The second result is false if target is not in the tree.
func (n *Node) Without(target *Node) (*Node, bool) {
	found := false

	n.Walk(func(node *Node, _ []*Node) bool {
		if node == target {
			found = true
		}

		return !found
	})

	if !found || target == n {
		return n.Clone(), false
	}

	return n.cloneWithout(target), true
}

func (n *Node) cloneWithout(target *Node) *Node {
	c := *n
	c.overrides = make(map[Attribute]struct{}, len(n.overrides))

	for k := range n.overrides {
		c.overrides[k] = struct{}{}
	}

	c.Children = nil

	for _, child := range n.Children {
		if child == target {
			continue
		}

		cc := child.cloneWithout(target)
		if cc.IsGroup() && len(cc.Children) == 0 {
			continue
		}

		c.Children = append(c.Children, cc)
	}

	return &c
}
