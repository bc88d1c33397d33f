// Package mapper ties a schema to worksheets: it resolves the layout once
// and reuses it to validate headers and extract rows from any number of
// worksheets.
//
//	m, err := mapper.Define("Hardware",
//		schema.Group("Category",
//			schema.Group("GroupA", schema.Field("A"), schema.Field("B")),
//		),
//		schema.Field("LoneField"),
//	)
//	if err != nil {
//		return err
//	}
//
//	it, err := m.Rows(ws, mapper.AfterHeader)
//	if err != nil {
//		return err
//	}
//
//	for it.Next() {
//		fmt.Println(it.Record())
//	}
package mapper

import (
	"fmt"
	"sync"

	"sheet-mapper/extract"
	"sheet-mapper/header"
	"sheet-mapper/layout"
	"sheet-mapper/schema"
	"sheet-mapper/sheet"
)

// AfterHeader as a start row makes Rows begin right below the header block.
const AfterHeader = -1

// Mapper holds a schema and its lazily resolved layout.
// It is safe for concurrent use.
type Mapper struct {
	root *schema.Node

	once   sync.Once
	layout *layout.Layout
	err    error
}

// New returns a mapper for root.
func New(root *schema.Node) *Mapper {
	return &Mapper{root: root}
}

// Define builds a schema and returns a mapper for it.
func Define(name string, decls ...schema.Decl) (*Mapper, error) {
	root, err := schema.Build(name, decls...)
	if err != nil {
		return nil, fmt.Errorf("failed to build schema %q: %w", name, err)
	}

	return New(root), nil
}

// Schema returns the schema root.
func (m *Mapper) Schema() *schema.Node {
	return m.root
}

// Resolve returns the layout, resolving it on first use.
func (m *Mapper) Resolve() (*layout.Layout, error) {
	m.once.Do(func() {
		l, err := layout.Resolve(m.root)
		if err != nil {
			m.err = fmt.Errorf("failed to resolve schema %q: %w", m.root.DeclaredName, err)
			return
		}

		m.layout = l
	})

	return m.layout, m.err
}

// Validate checks the header of ws against the schema.
func (m *Mapper) Validate(ws sheet.Worksheet, opts ...header.Option) error {
	l, err := m.Resolve()
	if err != nil {
		return err
	}

	return header.Validate(l, ws, opts...)
}

// Bind validates the header of ws, pruning missing optional nodes.
func (m *Mapper) Bind(ws sheet.Worksheet, opts ...header.Option) (*header.Binding, error) {
	l, err := m.Resolve()
	if err != nil {
		return nil, err
	}

	return header.Bind(l, ws, opts...)
}

// Option configures Rows.
type Option func(*rowsOptions)

type rowsOptions struct {
	validate bool
	header   []header.Option
	extract  extract.Options
}

// WithoutValidation skips the header check.
func WithoutValidation() Option {
	return func(o *rowsOptions) {
		o.validate = false
	}
}

// WithHeaderOptions passes options to the header check.
func WithHeaderOptions(opts ...header.Option) Option {
	return func(o *rowsOptions) {
		o.header = append(o.header, opts...)
	}
}

// WithMode selects the record shape.
func WithMode(mode extract.Mode) Option {
	return func(o *rowsOptions) {
		o.extract.Mode = mode
	}
}

// WithStop sets the stop policy.
func WithStop(stop extract.StopPolicy) Option {
	return func(o *rowsOptions) {
		o.extract.Stop = stop
	}
}

// Rows returns an iterator over the data rows of ws from startAt, or from
// the row below the header if startAt is AfterHeader. The header is bound
// first unless WithoutValidation is given, so missing optional nodes are
// left out of the records.
func (m *Mapper) Rows(ws sheet.Worksheet, startAt int, opts ...Option) (*extract.Iterator, error) {
	o := rowsOptions{validate: true}
	for _, opt := range opts {
		opt(&o)
	}

	l, err := m.Resolve()
	if err != nil {
		return nil, err
	}

	if o.validate {
		b, err := header.Bind(l, ws, o.header...)
		if err != nil {
			return nil, err
		}

		l = b.Layout
	}

	if startAt == AfterHeader {
		startAt = l.DataStart()
	}

	return extract.New(l, ws, startAt, o.extract)
}

// Map is Rows followed by extract.Collect.
func (m *Mapper) Map(ws sheet.Worksheet, startAt int, opts ...Option) ([]extract.Record, error) {
	it, err := m.Rows(ws, startAt, opts...)
	if err != nil {
		return nil, err
	}

	return extract.Collect(it)
}
