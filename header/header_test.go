package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheet-mapper/internal/diagnostic"
	"sheet-mapper/layout"
	"sheet-mapper/schema"
	"sheet-mapper/sheet"
)

func resolve(t *testing.T, decls ...schema.Decl) *layout.Layout {
	t.Helper()

	root, err := schema.Build("Hardware", decls...)
	require.NoError(t, err)

	l, err := layout.Resolve(root)
	require.NoError(t, err)

	return l
}

func scenario() []schema.Decl {
	return []schema.Decl{
		schema.Group("Category",
			schema.Group("GroupA", schema.Field("A"), schema.Field("B")),
			schema.Group("GroupB", schema.Field("C"), schema.Field("D")),
		),
		schema.Field("LoneField"),
	}
}

// scenarioGrid is the scenario header as it looks in a spreadsheet with
// merged labels repeated in every cell.
func scenarioGrid() *sheet.Grid {
	return sheet.GridFromStrings([][]string{
		{"Category", "Category", "Category", "Category", "Lone Field"},
		{"Group A", "Group A", "Group B", "Group B", ""},
		{"A", "B", "C", "D", ""},
		{"1", "2", "3", "4", "x"},
	})
}

func TestValidateScenario(t *testing.T) {
	l := resolve(t, scenario()...)
	require.NoError(t, Validate(l, scenarioGrid()))
}

func TestValidateMergedLabels(t *testing.T) {
	g := sheet.GridFromStrings([][]string{
		{"Category", "", "", "", "Lone Field"},
		{"Group A", "", "Group B", "", ""},
		{"A", "B", "C", "D", ""},
		{"1", "2", "3", "4", "x"},
	})
	require.NoError(t, g.Merge(0, 0, 0, 3))
	require.NoError(t, g.Merge(1, 0, 1, 1))
	require.NoError(t, g.Merge(1, 2, 1, 3))
	require.NoError(t, g.Merge(0, 4, 2, 4))

	l := resolve(t, scenario()...)
	require.NoError(t, Validate(l, g))
}

func TestValidateTemplate(t *testing.T) {
	l := resolve(t,
		schema.Group("Category",
			schema.Field("A").WithOffset(1, 0),
			schema.Field("B").WithOffset(0, 2),
		),
		schema.Field("LoneField").WithInputName("Lone\nfield  (misc)"),
	)

	g := Template(l)
	require.NoError(t, Validate(l, g))

	v, err := g.Cell(2, 0)
	require.NoError(t, err)
	assert.Equal(t, "A", v)
}

func TestValidateMismatch(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		value    sheet.Value
		key      string
		expected string
		found    string
		cell     string
	}{
		{"leaf renamed", 2, 3, "Dee", "category.group_b.d", "D", "Dee", "D3"},
		{"group renamed", 1, 2, "Group C", "category.group_b", "Group B", "Group C", "C2"},
		{"top level blank", 0, 4, nil, "lone_field", "Lone Field", "", "E1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := resolve(t, scenario()...)
			g := scenarioGrid()
			g.Set(tt.row, tt.col, tt.value)

			err := Validate(l, g)

			var mismatch *HeaderMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, tt.key, mismatch.Key)
			assert.Equal(t, tt.expected, mismatch.Expected)
			assert.Equal(t, tt.found, mismatch.Found)
			assert.Equal(t, tt.row, mismatch.Row)
			assert.Equal(t, tt.col, mismatch.Col)
			assert.Equal(t, tt.cell, mismatch.Cell())
			assert.Contains(t, err.Error(), tt.cell)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestValidateFailFast(t *testing.T) {
	l := resolve(t, scenario()...)
	g := scenarioGrid()
	g.Set(2, 3, "wrong")
	g.Set(0, 0, "wrong too")

	err := Validate(l, g)

	var mismatch *HeaderMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "category", mismatch.Key, "pre-order reports the group first")
}

func TestValidateWhitespace(t *testing.T) {
	l := resolve(t, scenario()...)
	g := scenarioGrid()
	g.Set(0, 4, "  Lone \n Field ")

	require.NoError(t, Validate(l, g))
}

func TestValidateAllowBlank(t *testing.T) {
	l := resolve(t, scenario()...)
	g := scenarioGrid()
	g.Set(1, 2, nil)

	var mismatch *HeaderMismatchError
	require.ErrorAs(t, Validate(l, g), &mismatch)
	require.NoError(t, Validate(l, g, AllowBlank()))

	g.Set(1, 2, "Other")
	require.ErrorAs(t, Validate(l, g, AllowBlank()), &mismatch)
}

func TestValidateSkipped(t *testing.T) {
	l := resolve(t,
		schema.Field("A"),
		schema.Field("Internal").AsSkipped(),
		schema.Field("B"),
	)

	g := sheet.GridFromStrings([][]string{{"A", "whatever", "B"}})
	require.NoError(t, Validate(l, g))
}

func TestValidateReadError(t *testing.T) {
	l := resolve(t, schema.Field("A"))

	err := Validate(l, failing{})
	require.Error(t, err)
	assert.ErrorIs(t, err, sheet.ErrOutOfRange)
}

type failing struct{}

func (failing) Cell(int, int) (sheet.Value, error) { return nil, sheet.ErrOutOfRange }
func (failing) Rows() int                          { return 0 }

func TestBindNoChanges(t *testing.T) {
	l := resolve(t, scenario()...)

	b, err := Bind(l, scenarioGrid())
	require.NoError(t, err)
	assert.Same(t, l, b.Layout)
	assert.Empty(t, b.Pruned)
	assert.Empty(t, b.Diagnostics.All())
}

func TestBindPrunesOptional(t *testing.T) {
	l := resolve(t,
		schema.Field("Name"),
		schema.Field("Notes").AsOptional(),
		schema.Group("Price", schema.Field("Net"), schema.Field("Gross")),
	)

	// The worksheet has no Notes column.
	b, err := Bind(l, sheet.GridFromStrings([][]string{
		{"Name", "Price", "Price"},
		{"", "Net", "Gross"},
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"notes"}, b.Pruned)
	assert.NotSame(t, l, b.Layout)

	net, ok := b.Layout.Leaf("price.net")
	require.True(t, ok)
	assert.Equal(t, 1, net.Col)

	_, ok = b.Layout.Leaf("notes")
	assert.False(t, ok)

	require.Len(t, b.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeOptionalPruned, b.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "B1", b.Diagnostics.Warnings[0].Cell)
	assert.Empty(t, b.Diagnostics.Infos)

	_, ok = l.Leaf("notes")
	assert.True(t, ok, "input layout is untouched")
}

func TestBindPrunesOptionalGroup(t *testing.T) {
	l := resolve(t,
		schema.Field("A"),
		schema.Group("Extra", schema.Field("X"), schema.Field("Y")).AsOptional(),
		schema.Field("B"),
	)

	b, err := Bind(l, sheet.GridFromStrings([][]string{{"A", "B"}}))
	require.NoError(t, err)
	assert.Equal(t, []string{"extra"}, b.Pruned)
	assert.Len(t, b.Layout.Leaves(), 2)
}

func TestBindPrunesRepeatedly(t *testing.T) {
	l := resolve(t,
		schema.Field("A"),
		schema.Field("X").AsOptional(),
		schema.Field("Y").AsOptional(),
		schema.Field("B"),
	)

	b, err := Bind(l, sheet.GridFromStrings([][]string{{"A", "Y", "B"}}))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, b.Pruned)

	b, err = Bind(l, sheet.GridFromStrings([][]string{{"A", "B"}}))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, b.Pruned)
	assert.Len(t, b.Diagnostics.Warnings, 2)
}

func TestBindRequiredMismatch(t *testing.T) {
	l := resolve(t, schema.Field("A"), schema.Field("B").AsOptional(), schema.Field("C"))

	_, err := Bind(l, sheet.GridFromStrings([][]string{{"A", "Z"}}))

	var mismatch *HeaderMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "c", mismatch.Key)
	assert.Equal(t, "Z", mismatch.Found)
}

func TestBindNothingLeft(t *testing.T) {
	l := resolve(t, schema.Field("A").AsOptional())

	_, err := Bind(l, sheet.GridFromStrings([][]string{{"Z"}}))
	require.ErrorIs(t, err, ErrNothingLeft)
}

func TestBindBlankDiagnostics(t *testing.T) {
	l := resolve(t, scenario()...)
	g := scenarioGrid()
	g.Set(1, 0, nil)

	b, err := Bind(l, g, AllowBlank())
	require.NoError(t, err)
	require.Len(t, b.Diagnostics.Infos, 1)
	assert.Equal(t, "A2", b.Diagnostics.Infos[0].Cell)
	assert.Equal(t, "category.group_a", b.Diagnostics.Infos[0].Key)
}
