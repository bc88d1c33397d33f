package schema

import (
	"fmt"
	"strings"
)

// Decl is the declaration of one field or group, before it is built into a
// Node. Decl values are immutable; the With methods return modified copies.
type Decl struct {
	name     string
	kind     Kind
	children []Decl

	inputName  string
	outputName string
	offset     Offset
	optional   bool
	skip       bool
	overrides  map[Attribute]struct{}
}

// Field declares a leaf.
func Field(name string) Decl {
	return Decl{name: name, kind: KindLeaf}
}

// Group declares a group with children in column order.
func Group(name string, children ...Decl) Decl {
	return Decl{name: name, kind: KindGroup, children: children}
}

// Name returns the declared name.
func (d Decl) Name() string {
	return d.name
}

// WithInputName overrides the header text the node is matched against.
func (d Decl) WithInputName(name string) Decl {
	d = d.override(AttrInputName)
	d.inputName = name

	return d
}

// WithOutputName overrides the record key of the node.
func (d Decl) WithOutputName(name string) Decl {
	d = d.override(AttrOutputName)
	d.outputName = name

	return d
}

// WithOffset displaces the node by rows and cols.
func (d Decl) WithOffset(rows, cols int) Decl {
	d = d.override(AttrOffset)
	d.offset = Offset{Rows: rows, Cols: cols}

	return d
}

// AsOptional marks a node that may be missing from a worksheet.
func (d Decl) AsOptional() Decl {
	d = d.override(AttrOptional)
	d.optional = true

	return d
}

// AsSkipped marks a node that holds a column but is not validated or extracted.
func (d Decl) AsSkipped() Decl {
	d = d.override(AttrSkip)
	d.skip = true

	return d
}

func (d Decl) override(attr Attribute) Decl {
	m := make(map[Attribute]struct{}, len(d.overrides)+1)
	for k := range d.overrides {
		m[k] = struct{}{}
	}

	m[attr] = struct{}{}
	d.overrides = m

	return d
}

// Build turns a declaration into a node tree. The root is a group named
// rootName holding decls; it labels no header cell itself.
// An offset on the root moves the whole header block.
func Build(rootName string, decls ...Decl) (*Node, error) {
	return BuildRoot(Group(rootName, decls...))
}

// BuildRoot is Build for a root declared as a Decl, which allows a root offset.
func BuildRoot(root Decl) (*Node, error) {
	if root.kind != KindGroup {
		return nil, fmt.Errorf("root %q must be a group", root.name)
	}

	return build(root, nil)
}

func build(d Decl, parents []string) (*Node, error) {
	if strings.TrimSpace(d.name) == "" {
		return nil, fmt.Errorf("%s: %w", strings.Join(append(parents, "?"), "."), ErrEmptyName)
	}

	n := &Node{
		Kind:         d.kind,
		DeclaredName: d.name,
		InputName:    HeaderName(d.name),
		OutputName:   OutputKey(d.name),
		Offset:       d.offset,
		Optional:     d.optional,
		Skip:         d.skip,
		overrides:    make(map[Attribute]struct{}, len(d.overrides)),
	}

	for k := range d.overrides {
		n.overrides[k] = struct{}{}
	}

	if n.Overrides(AttrInputName) {
		n.InputName = d.inputName
	}

	if n.Overrides(AttrOutputName) {
		n.OutputName = d.outputName
	}

	if d.kind == KindLeaf {
		return n, nil
	}

	path := append(parents[:len(parents):len(parents)], d.name)
	if len(d.children) == 0 {
		return nil, &EmptyGroupError{Path: strings.Join(path, ".")}
	}

	seen := make(map[string]struct{}, len(d.children))

	for _, cd := range d.children {
		if _, dup := seen[cd.name]; dup {
			return nil, &DuplicateFieldError{Parent: strings.Join(path, "."), Name: cd.name}
		}

		seen[cd.name] = struct{}{}

		child, err := build(cd, path)
		if err != nil {
			return nil, err
		}

		n.Children = append(n.Children, child)
	}

	return n, nil
}
