package format

import (
	"bytes"
	"fmt"
	gofmt "go/format"
	"strconv"
	"strings"
	"text/template"

	"sheet-mapper/schema"
)

// SchemaImport is the import path of the schema package in generated code.
const SchemaImport = "sheet-mapper/schema"

// GoOptions configure generated Go source.
type GoOptions struct {
	// Package is the package clause. Defaults to "schemas".
	Package string
	// Func is the name of the generated constructor. Defaults to the root's
	// declared name followed by "Schema".
	Func string
}

func (o GoOptions) withDefaults(root *schema.Node) GoOptions {
	if o.Package == "" {
		o.Package = "schemas"
	}

	if o.Func == "" {
		o.Func = typeName(root) + "Schema"
	}

	return o
}

type goData struct {
	Package string
	Import  string
	Func    string
	Root    string
	Decl    string
}

var goTemplate = template.Must(template.New("schema").Parse(`// Code generated by sheet-mapper. DO NOT EDIT.

package {{.Package}}

import "{{.Import}}"

// {{.Func}} builds the {{.Root}} header schema.
func {{.Func}}() (*schema.Node, error) {
	return schema.BuildRoot(
		{{.Decl}},
	)
}
`))

// Go renders a Go source file with a constructor that rebuilds root
// through the schema builder. Only explicitly declared attributes are set.
func Go(root *schema.Node, opts GoOptions) ([]byte, error) {
	opts = opts.withDefaults(root)

	data := goData{
		Package: opts.Package,
		Import:  SchemaImport,
		Func:    opts.Func,
		Root:    root.DeclaredName,
		Decl:    declExpr(root),
	}

	var buf bytes.Buffer
	if err := goTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := gofmt.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting code: %w", err)
	}

	return formatted, nil
}

// declExpr returns the builder expression declaring n.
func declExpr(n *schema.Node) string {
	var b strings.Builder

	if n.IsLeaf() {
		fmt.Fprintf(&b, "schema.Field(%s)", strconv.Quote(n.DeclaredName))
	} else {
		fmt.Fprintf(&b, "schema.Group(%s,\n", strconv.Quote(n.DeclaredName))

		for _, c := range n.Children {
			b.WriteString(declExpr(c))
			b.WriteString(",\n")
		}

		b.WriteString(")")
	}

	if n.Overrides(schema.AttrInputName) {
		fmt.Fprintf(&b, ".WithInputName(%s)", strconv.Quote(n.InputName))
	}

	if n.Overrides(schema.AttrOutputName) {
		fmt.Fprintf(&b, ".WithOutputName(%s)", strconv.Quote(n.OutputName))
	}

	if n.Overrides(schema.AttrOffset) {
		fmt.Fprintf(&b, ".WithOffset(%d, %d)", n.Offset.Rows, n.Offset.Cols)
	}

	if n.Optional {
		b.WriteString(".AsOptional()")
	}

	if n.Skip {
		b.WriteString(".AsSkipped()")
	}

	return b.String()
}
