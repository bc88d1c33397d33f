package header

import (
	"errors"
	"fmt"
	"slices"

	"sheet-mapper/internal/diagnostic"
	"sheet-mapper/layout"
	"sheet-mapper/schema"
	"sheet-mapper/sheet"
)

// ErrNothingLeft is returned by Bind when every field was optional and missing.
var ErrNothingLeft = errors.New("no fields left after pruning optional nodes")

// Binding is a layout adjusted to one worksheet.
type Binding struct {
	// Layout is the resolved layout with missing optional nodes removed.
	// It is the input layout itself when nothing was pruned.
	Layout *layout.Layout
	// Pruned lists the output keys of removed optional nodes.
	Pruned []string
	// Diagnostics reports pruned nodes and tolerated blank cells.
	Diagnostics diagnostic.Diagnostics
}

// Bind validates l against ws like Validate, except that a mismatching
// optional node is removed: the tree is copied without it, re-resolved,
// and validation starts over on the new layout.
func Bind(l *layout.Layout, ws sheet.Worksheet, opts ...Option) (*Binding, error) {
	o := newOptions(opts)
	b := &Binding{Layout: l}

	for {
		pruned, err := b.pass(ws, o)
		if err != nil {
			return nil, err
		}

		if !pruned {
			return b, nil
		}
	}
}

// pass runs one validation over the current layout. It returns true if a
// node was pruned and the layout replaced.
func (b *Binding) pass(ws sheet.Worksheet, o options) (bool, error) {
	var blanks diagnostic.Diagnostics

	for _, p := range b.Layout.Nodes() {
		tolerated, err := check(p, ws, o)
		if tolerated {
			blanks.AddInfo(diagnostic.CodeBlankHeader,
				fmt.Sprintf("blank header cell tolerated, expected %q", p.Node.InputName),
				sheet.CellName(p.Row, p.Col), p.Key)
		}

		if err == nil {
			continue
		}

		var mismatch *HeaderMismatchError
		if !p.Node.Optional || !errors.As(err, &mismatch) {
			return false, err
		}

		return true, b.prune(p, mismatch)
	}

	b.Diagnostics.Merge(blanks)

	return false, nil
}

func (b *Binding) prune(p *layout.Placement, mismatch *HeaderMismatchError) error {
	root, ok := b.Layout.Root().Without(p.Node)
	if !ok {
		return fmt.Errorf("failed to prune %q: node not in tree", p.Key)
	}

	if len(root.Children) == 0 {
		return ErrNothingLeft
	}

	l, err := layout.Resolve(root)
	if err != nil {
		return fmt.Errorf("failed to resolve layout without %q: %w", p.Key, err)
	}

	b.Layout = l
	b.Pruned = append(b.Pruned, p.Key)
	b.Diagnostics.AddWarning(diagnostic.CodeOptionalPruned,
		fmt.Sprintf("optional %s %s not found: expected %q, found %q",
			kindName(p.Node), schema.DeclaredPath(slices.Concat(p.Path, []*schema.Node{p.Node})...),
			mismatch.Expected, mismatch.Found),
		mismatch.Cell(), p.Key)

	return nil
}

func kindName(n *schema.Node) string {
	if n.IsGroup() {
		return "group"
	}

	return "field"
}
