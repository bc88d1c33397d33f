package declare

import (
	"fmt"

	"sheet-mapper/schema"
)

// File is a parsed declaration file.
type File struct {
	// Name is the declared name of the root.
	Name string `yaml:"name"`
	// Offset moves the whole header block.
	Offset *Offset `yaml:"offset,omitempty"`
	// Fields are the top-level nodes in column order.
	Fields FieldList `yaml:"fields"`
}

// Offset is a (rows, cols) displacement, written as [rows, cols].
type Offset [2]int

// Field declares one leaf or group.
type Field struct {
	Name       string
	InputName  *string
	OutputName *string
	Offset     *Offset
	Optional   bool
	Skip       bool
	// Fields holds the children of a group. Nil for leaves.
	Fields FieldList
	// Group is true when children were declared, even an empty list.
	Group bool
}

// FieldList is an ordered list of field declarations.
type FieldList []Field

// Decl converts the field to a schema declaration.
func (f Field) Decl() schema.Decl {
	var d schema.Decl

	if f.Group {
		children := make([]schema.Decl, len(f.Fields))
		for i, c := range f.Fields {
			children[i] = c.Decl()
		}

		d = schema.Group(f.Name, children...)
	} else {
		d = schema.Field(f.Name)
	}

	if f.InputName != nil {
		d = d.WithInputName(*f.InputName)
	}

	if f.OutputName != nil {
		d = d.WithOutputName(*f.OutputName)
	}

	if f.Offset != nil {
		d = d.WithOffset(f.Offset[0], f.Offset[1])
	}

	if f.Optional {
		d = d.AsOptional()
	}

	if f.Skip {
		d = d.AsSkipped()
	}

	return d
}

// Build turns the declaration into a schema tree.
func (f *File) Build() (*schema.Node, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("root: %w", schema.ErrEmptyName)
	}

	children := make([]schema.Decl, len(f.Fields))
	for i, c := range f.Fields {
		children[i] = c.Decl()
	}

	root := schema.Group(f.Name, children...)
	if f.Offset != nil {
		root = root.WithOffset(f.Offset[0], f.Offset[1])
	}

	return schema.BuildRoot(root)
}

// FromSchema converts a schema tree back to a declaration. Only explicitly
// declared attributes are carried over.
func FromSchema(root *schema.Node) *File {
	f := &File{Name: root.DeclaredName, Fields: fieldsOf(root.Children)}
	if root.Overrides(schema.AttrOffset) || !root.Offset.IsZero() {
		f.Offset = &Offset{root.Offset.Rows, root.Offset.Cols}
	}

	return f
}

func fieldsOf(nodes []*schema.Node) FieldList {
	out := make(FieldList, 0, len(nodes))

	for _, n := range nodes {
		f := Field{
			Name:     n.DeclaredName,
			Optional: n.Optional,
			Skip:     n.Skip,
			Group:    n.IsGroup(),
		}

		if n.Overrides(schema.AttrInputName) {
			f.InputName = &n.InputName
		}

		if n.Overrides(schema.AttrOutputName) {
			f.OutputName = &n.OutputName
		}

		if n.Overrides(schema.AttrOffset) {
			f.Offset = &Offset{n.Offset.Rows, n.Offset.Cols}
		}

		if n.IsGroup() {
			f.Fields = fieldsOf(n.Children)
		}

		out = append(out, f)
	}

	return out
}
