package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func scenarioGrid() *sheet.Grid {
	return sheet.NewGrid(
		[]sheet.Value{"Category", "Category", "Category", "Category", "Lone Field"},
		[]sheet.Value{"Group A", "Group A", "Group B", "Group B"},
		[]sheet.Value{"A", "B", "C", "D"},
		[]sheet.Value{1.0, 2.0, 3.0, 4.0, "x"},
		[]sheet.Value{5.0, nil, 7.0, "  ", "y"},
	)
}

func TestNested(t *testing.T) {
	l := resolve(t, scenario()...)

	it, err := New(l, scenarioGrid(), l.DataStart(), Options{})
	require.NoError(t, err)

	records, err := Collect(it)
	require.NoError(t, err)

	want := []Record{
		{
			"category": Record{
				"group_a": Record{"a": 1.0, "b": 2.0},
				"group_b": Record{"c": 3.0, "d": 4.0},
			},
			"lone_field": "x",
		},
		{
			"category": Record{
				"group_a": Record{"a": 5.0, "b": nil},
				"group_b": Record{"c": 7.0, "d": nil},
			},
			"lone_field": "y",
		},
	}

	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestFlat(t *testing.T) {
	l := resolve(t, scenario()...)

	it, err := New(l, scenarioGrid(), 3, Options{Mode: ModeFlat})
	require.NoError(t, err)

	require.True(t, it.Next())
	assert.Equal(t, 3, it.Row())
	assert.Equal(t, Record{
		"category.group_a.a": 1.0,
		"category.group_a.b": 2.0,
		"category.group_b.c": 3.0,
		"category.group_b.d": 4.0,
		"lone_field":         "x",
	}, it.Record())
}

func TestFlatMatchesNested(t *testing.T) {
	l := resolve(t, scenario()...)

	nested, err := New(l, scenarioGrid(), l.DataStart(), Options{Mode: ModeNested})
	require.NoError(t, err)

	flat, err := New(l, scenarioGrid(), l.DataStart(), Options{Mode: ModeFlat})
	require.NoError(t, err)

	for nested.Next() {
		require.True(t, flat.Next())

		if diff := cmp.Diff(flat.Record(), Flatten(nested.Record())); diff != "" {
			t.Errorf("row %d mismatch (-flat +nested):\n%s", nested.Row(), diff)
		}

		for _, p := range l.Fields() {
			assert.Contains(t, flat.Record(), p.Key)
		}
	}

	assert.False(t, flat.Next())
	assert.Equal(t, 2, nested.Count())
}

func TestSkippedFieldsAreNotEmitted(t *testing.T) {
	l := resolve(t,
		schema.Field("A"),
		schema.Field("Internal").AsSkipped(),
		schema.Field("B"),
	)

	g := sheet.NewGrid(
		[]sheet.Value{"A", "Internal", "B"},
		[]sheet.Value{"a", "secret", "b"},
	)

	it, err := New(l, g, 1, Options{})
	require.NoError(t, err)

	records, err := Collect(it)
	require.NoError(t, err)
	assert.Equal(t, []Record{{"a": "a", "b": "b"}}, records)
}

func TestStopPolicy(t *testing.T) {
	grid := func() *sheet.Grid {
		return sheet.NewGrid(
			[]sheet.Value{"Id", "Name"},
			[]sheet.Value{"1", "one"},
			[]sheet.Value{nil, "two"},
			[]sheet.Value{nil, nil},
			[]sheet.Value{"4", "four"},
		)
	}

	tests := []struct {
		name string
		stop StopPolicy
		ids  []any
	}{
		{"worksheet end", StopPolicy{}, []any{"1", nil, nil, "4"}},
		{"blank row", StopPolicy{OnBlank: true}, []any{"1", nil}},
		{"blank key", StopPolicy{OnBlank: true, Keys: []string{"id"}}, []any{"1"}},
		{"max rows", StopPolicy{MaxRows: 3}, []any{"1", nil, nil}},
		{"max rows before blank", StopPolicy{OnBlank: true, MaxRows: 1}, []any{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := resolve(t, schema.Field("Id"), schema.Field("Name"))

			it, err := New(l, grid(), 1, Options{Stop: tt.stop})
			require.NoError(t, err)

			records, err := Collect(it)
			require.NoError(t, err)

			var ids []any
			for _, r := range records {
				ids = append(ids, r["id"])
			}

			assert.Equal(t, tt.ids, ids)
			assert.False(t, it.Next(), "exhausted iterators stay exhausted")
		})
	}
}

func TestStopOnNestedKeys(t *testing.T) {
	l := resolve(t, scenario()...)

	it, err := New(l, scenarioGrid(), l.DataStart(), Options{
		Mode: ModeFlat,
		Stop: StopPolicy{OnBlank: true, Keys: []string{"category.group_a.b", "category.group_b.d"}},
	})
	require.NoError(t, err)

	records, err := Collect(it)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2.0, records[0]["category.group_a.b"])

	_, err = New(l, scenarioGrid(), l.DataStart(), Options{
		Stop: StopPolicy{OnBlank: true, Keys: []string{"category.group_a"}},
	})
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestAllAbandon(t *testing.T) {
	l := resolve(t, schema.Field("Id"))
	g := sheet.NewGrid(
		[]sheet.Value{"Id"},
		[]sheet.Value{"1"},
		[]sheet.Value{"2"},
		[]sheet.Value{"3"},
	)

	it, err := New(l, g, 1, Options{})
	require.NoError(t, err)

	var rows []int
	for row := range it.All() {
		rows = append(rows, row)
		if row == 2 {
			break
		}
	}

	assert.Equal(t, []int{1, 2}, rows)

	require.True(t, it.Next())
	assert.Equal(t, "3", it.Record()["id"])
}

func TestNewErrors(t *testing.T) {
	l := resolve(t, schema.Field("Id"), schema.Field("Internal").AsSkipped())
	g := sheet.NewGrid()

	_, err := New(l, g, -1, Options{})
	require.ErrorIs(t, err, sheet.ErrOutOfRange)

	_, err = New(l, g, 0, Options{Stop: StopPolicy{Keys: []string{"missing"}}})
	require.ErrorIs(t, err, ErrUnknownKey)

	_, err = New(l, g, 0, Options{Stop: StopPolicy{Keys: []string{"internal"}}})
	require.ErrorIs(t, err, ErrUnknownKey)

	_, err = New(l, g, 0, Options{Stop: StopPolicy{MaxRows: -1}})
	require.Error(t, err)

	_, err = New(l, g, 0, Options{Mode: Mode(7)})
	require.Error(t, err)
}

func TestStartBeyondEnd(t *testing.T) {
	l := resolve(t, schema.Field("Id"))

	it, err := New(l, sheet.NewGrid([]sheet.Value{"Id"}), 10, Options{})
	require.NoError(t, err)

	records, err := Collect(it)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, -1, it.Row())
}

type brokenSheet struct{ *sheet.Grid }

func (b brokenSheet) Cell(row, col int) (sheet.Value, error) {
	if row == 2 {
		return nil, sheet.ErrOutOfRange
	}

	return b.Grid.Cell(row, col)
}

func TestReadError(t *testing.T) {
	l := resolve(t, schema.Field("Id"))
	g := sheet.NewGrid([]sheet.Value{"Id"}, []sheet.Value{"1"}, []sheet.Value{"2"})

	it, err := New(l, brokenSheet{g}, 1, Options{})
	require.NoError(t, err)

	records, err := Collect(it)
	require.ErrorIs(t, err, sheet.ErrOutOfRange)
	assert.Contains(t, err.Error(), "A3")
	assert.Len(t, records, 1)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Flat")
	require.NoError(t, err)
	assert.Equal(t, ModeFlat, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeNested, m)

	_, err = ParseMode("tree")
	require.Error(t, err)

	assert.Equal(t, "ModeFlat", ModeFlat.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestFlatten(t *testing.T) {
	got := Flatten(Record{
		"a": Record{"b": Record{"c": 1}, "d": nil},
		"e": "x",
	})

	assert.Equal(t, Record{"a.b.c": 1, "a.d": nil, "e": "x"}, got)
}
