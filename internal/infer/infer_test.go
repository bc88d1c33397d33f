package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheet-mapper/header"
	"sheet-mapper/internal/diagnostic"
	"sheet-mapper/layout"
	"sheet-mapper/schema"
	"sheet-mapper/sheet"
)

type shape struct {
	Name   string
	Input  string
	Offset schema.Offset
	Kids   []shape
}

func shapeOf(nodes []*schema.Node) []shape {
	out := make([]shape, 0, len(nodes))
	for _, n := range nodes {
		s := shape{Name: n.DeclaredName, Offset: n.Offset}
		if n.Overrides(schema.AttrInputName) {
			s.Input = n.InputName
		}

		if n.IsGroup() {
			s.Kids = shapeOf(n.Children)
		}

		out = append(out, s)
	}

	return out
}

// validates checks that the inferred schema matches the worksheet it came from.
func validates(t *testing.T, root *schema.Node, ws sheet.Worksheet) {
	t.Helper()

	l, err := layout.Resolve(root)
	require.NoError(t, err)
	require.NoError(t, header.Validate(l, ws))
}

func TestInferScenario(t *testing.T) {
	ws := sheet.GridFromStrings([][]string{
		{"Category", "Category", "Category", "Category", "Lone Field"},
		{"Group A", "Group A", "Group B", "Group B", "Lone Field"},
		{"A", "B", "C", "D", "Lone Field"},
		{"1", "2", "3", "4", "x"},
	})

	res, err := Infer(ws, Options{Name: "Hardware", Height: 3})
	require.NoError(t, err)

	assert.Equal(t, []shape{
		{Name: "Category", Kids: []shape{
			{Name: "GroupA", Kids: []shape{{Name: "A"}, {Name: "B"}}},
			{Name: "GroupB", Kids: []shape{{Name: "C"}, {Name: "D"}}},
		}},
		{Name: "LoneField"},
	}, shapeOf(res.Root.Children))

	assert.Empty(t, res.Diagnostics.All())
	validates(t, res.Root, ws)
}

func TestInferMergedLabels(t *testing.T) {
	ws := sheet.GridFromStrings([][]string{
		{"Category", "", "", "", "Lone Field"},
		{"Group A", "", "Group B", "", ""},
		{"A", "B", "C", "D", ""},
		{"1", "", "3", "4", "x"},
	})
	require.NoError(t, ws.Merge(0, 0, 0, 3))
	require.NoError(t, ws.Merge(1, 0, 1, 1))
	require.NoError(t, ws.Merge(1, 2, 1, 3))
	require.NoError(t, ws.Merge(0, 4, 2, 4))
	require.NoError(t, ws.Merge(3, 0, 3, 1))

	res, err := Infer(ws, Options{Name: "Hardware", Height: 3})
	require.NoError(t, err)

	assert.Equal(t, []shape{
		{Name: "Category", Kids: []shape{
			{Name: "GroupA", Kids: []shape{{Name: "A"}, {Name: "B"}}},
			{Name: "GroupB", Kids: []shape{{Name: "C"}, {Name: "D"}}},
		}},
		{Name: "LoneField"},
	}, shapeOf(res.Root.Children))

	validates(t, res.Root, ws)

	v, err := ws.Cell(3, 1)
	require.NoError(t, err)
	assert.Nil(t, v, "merged data cell keeps its stored value")
}

func TestInferLabels(t *testing.T) {
	ws := sheet.GridFromStrings([][]string{
		{"USB 2.0 header", "4-pin  RGB 12V", "#"},
	})

	res, err := Infer(ws, Options{Name: "Board", Height: 1})
	require.NoError(t, err)

	assert.Equal(t, []shape{
		{Name: "USB20Header", Input: "USB 2.0 header"},
		{Name: "FourPinRGB12V", Input: "4-pin RGB 12V"},
		{Name: "Column1", Input: "#"},
	}, shapeOf(res.Root.Children))

	require.Len(t, res.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnnamed, res.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "C1", res.Diagnostics.Warnings[0].Cell)

	validates(t, res.Root, ws)
}

func TestInferGaps(t *testing.T) {
	ws := sheet.GridFromStrings([][]string{
		{"Id", "", "Price", "Price", "Price", "Notes"},
		{"", "", "Net", "Net", "Gross", ""},
	})

	res, err := Infer(ws, Options{Name: "Parts", Height: 2, Width: 6})
	require.NoError(t, err)

	assert.Equal(t, []shape{
		{Name: "Id"},
		{Name: "Price", Offset: schema.Offset{Cols: 1}, Kids: []shape{
			{Name: "Net"},
			{Name: "Gross", Offset: schema.Offset{Cols: 1}},
		}},
		{Name: "Notes"},
	}, shapeOf(res.Root.Children))

	assert.Len(t, res.Diagnostics.Infos, 2)
	validates(t, res.Root, ws)

	l, err := layout.Resolve(res.Root)
	require.NoError(t, err)

	gross, ok := l.Leaf("price.gross")
	require.True(t, ok)
	assert.Equal(t, 4, gross.Col)
}

func TestInferAutoWidthStopsAtBlank(t *testing.T) {
	ws := sheet.GridFromStrings([][]string{
		{"Id", "Name", "", "Ignored"},
	})

	res, err := Infer(ws, Options{Name: "Parts", Height: 1})
	require.NoError(t, err)
	assert.Equal(t, []shape{{Name: "Id"}, {Name: "Name"}}, shapeOf(res.Root.Children))
}

func TestInferVerticalOffset(t *testing.T) {
	ws := sheet.GridFromStrings([][]string{
		{"Report", "Report", ""},
		{"", "", ""},
		{"Id", "Name", "Notes"},
	})

	res, err := Infer(ws, Options{Name: "Parts", Height: 3})
	require.NoError(t, err)

	assert.Equal(t, []shape{
		{Name: "Report", Kids: []shape{
			{Name: "Id", Offset: schema.Offset{Rows: 1}},
			{Name: "Name", Offset: schema.Offset{Rows: 1}},
		}},
		{Name: "Notes", Offset: schema.Offset{Rows: 2}},
	}, shapeOf(res.Root.Children))

	validates(t, res.Root, ws)
}

func TestInferOrigin(t *testing.T) {
	ws := sheet.GridFromStrings([][]string{
		{"title"},
		{"", "", ""},
		{"", "Id", "Name"},
		{"", "1", "bolt"},
	})

	res, err := Infer(ws, Options{Name: "Parts", Height: 1, Origin: schema.Offset{Rows: 2, Cols: 1}})
	require.NoError(t, err)

	assert.Equal(t, schema.Offset{Rows: 2, Cols: 1}, res.Root.Offset)
	assert.Equal(t, []shape{{Name: "Id"}, {Name: "Name"}}, shapeOf(res.Root.Children))
	validates(t, res.Root, ws)
}

func TestInferDuplicates(t *testing.T) {
	ws := sheet.GridFromStrings([][]string{
		{"Total", "Other", "Total", "Total"},
		{"A", "", "", "B"},
	})

	res, err := Infer(ws, Options{Name: "Sums", Height: 2})
	require.NoError(t, err)

	// A leaf "Total" followed by a group "Total" cannot merge into one node.
	assert.Equal(t, []shape{
		{Name: "Total", Kids: []shape{{Name: "A"}}},
		{Name: "Other"},
		{Name: "Total1", Input: "Total"},
		{Name: "Total2", Input: "Total", Kids: []shape{{Name: "B"}}},
	}, shapeOf(res.Root.Children))

	require.Len(t, res.Diagnostics.Warnings, 2)
	assert.Equal(t, diagnostic.CodeRenamed, res.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "C1", res.Diagnostics.Warnings[0].Cell)
	validates(t, res.Root, ws)
}

func TestInferErrors(t *testing.T) {
	ws := sheet.GridFromStrings([][]string{{"", "A"}})

	_, err := Infer(ws, Options{Name: "X", Height: 1})
	require.ErrorIs(t, err, ErrNoHeader)

	_, err = Infer(ws, Options{Height: 1})
	require.ErrorIs(t, err, schema.ErrEmptyName)

	_, err = Infer(ws, Options{Name: "X"})
	require.Error(t, err)

	_, err = Infer(ws, Options{Name: "X", Height: 1, Origin: schema.Offset{Cols: -1}})
	require.ErrorIs(t, err, sheet.ErrOutOfRange)
}
