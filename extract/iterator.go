package extract

import (
	"errors"
	"fmt"
	"iter"

	"sheet-mapper/layout"
	"sheet-mapper/sheet"
)

// ErrUnknownKey is returned when a stop key does not name a field.
var ErrUnknownKey = errors.New("unknown field key")

// StopPolicy decides where extraction ends. The worksheet end always stops.
type StopPolicy struct {
	// OnBlank stops at the first row whose designated fields are all blank.
	OnBlank bool
	// Keys are the dotted output keys of the designated fields.
	// Empty means every field.
	Keys []string
	// MaxRows caps the number of records. Zero means no cap.
	MaxRows int
}

// Options configures an Iterator.
type Options struct {
	Mode Mode
	Stop StopPolicy
}

// Iterator walks data rows forward, one record per row.
//
//	it, err := extract.New(l, ws, l.DataStart(), extract.Options{})
//	if err != nil {
//		return err
//	}
//
//	for it.Next() {
//		use(it.Record())
//	}
//
//	if err := it.Err(); err != nil {
//		return err
//	}
type Iterator struct {
	ws     sheet.Worksheet
	fields []*layout.Placement
	stopOn []int
	opts   Options

	next   int
	row    int
	count  int
	record Record
	values []any
	err    error
	done   bool
}

// New returns an iterator over the rows of ws starting at row startAt.
func New(l *layout.Layout, ws sheet.Worksheet, startAt int, opts Options) (*Iterator, error) {
	if startAt < 0 {
		return nil, fmt.Errorf("start row %d: %w", startAt, sheet.ErrOutOfRange)
	}

	if opts.Stop.MaxRows < 0 {
		return nil, fmt.Errorf("invalid max rows %d", opts.Stop.MaxRows)
	}

	if opts.Mode != ModeNested && opts.Mode != ModeFlat {
		return nil, fmt.Errorf("invalid mode %s", opts.Mode)
	}

	it := &Iterator{
		ws:     ws,
		fields: l.Fields(),
		opts:   opts,
		next:   startAt,
		row:    -1,
	}

	index := make(map[string]int, len(it.fields))
	for i, p := range it.fields {
		index[p.Key] = i
	}

	keys := opts.Stop.Keys
	if len(keys) == 0 {
		it.stopOn = make([]int, len(it.fields))
		for i := range it.fields {
			it.stopOn[i] = i
		}
	}

	for _, key := range keys {
		i, ok := index[key]
		if !ok {
			return nil, fmt.Errorf("stop key %q: %w", key, ErrUnknownKey)
		}

		it.stopOn = append(it.stopOn, i)
	}

	it.values = make([]any, len(it.fields))

	return it, nil
}

// Next advances to the next record. It returns false at the end of the data
// or on error; check Err afterwards.
func (it *Iterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}

	if it.next >= it.ws.Rows() || (it.opts.Stop.MaxRows > 0 && it.count >= it.opts.Stop.MaxRows) {
		return it.finish()
	}

	for i, p := range it.fields {
		v, err := it.ws.Cell(it.next, p.Col)
		if err != nil {
			it.err = fmt.Errorf("failed to read %s: %w", sheet.CellName(it.next, p.Col), err)
			return it.finish()
		}

		if sheet.IsBlank(v) {
			v = nil
		}

		it.values[i] = v
	}

	if it.opts.Stop.OnBlank && it.allBlank() {
		return it.finish()
	}

	it.record = it.build()
	it.row = it.next
	it.next++
	it.count++

	return true
}

func (it *Iterator) allBlank() bool {
	for _, i := range it.stopOn {
		if it.values[i] != nil {
			return false
		}
	}

	return true
}

func (it *Iterator) build() Record {
	rec := make(Record, len(it.fields))

	for i, p := range it.fields {
		if it.opts.Mode == ModeFlat {
			rec[p.Key] = it.values[i]
			continue
		}

		rec.set(p.Names(), it.values[i])
	}

	return rec
}

func (it *Iterator) finish() bool {
	it.done = true
	it.record = nil

	return false
}

// Record returns the current record. Each call to Next produces a new map.
func (it *Iterator) Record() Record {
	return it.record
}

// Row returns the worksheet row of the current record, -1 before the first.
func (it *Iterator) Row() int {
	return it.row
}

// Count returns the number of records produced so far.
func (it *Iterator) Count() int {
	return it.count
}

// Err returns the first error met while reading.
func (it *Iterator) Err() error {
	return it.err
}

// All returns the remaining records keyed by worksheet row. Breaking out of
// the loop leaves the iterator positioned after the last yielded record.
func (it *Iterator) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for it.Next() {
			if !yield(it.row, it.record) {
				return
			}
		}
	}
}

// Collect drains the iterator.
func Collect(it *Iterator) ([]Record, error) {
	var out []Record

	for it.Next() {
		out = append(out, it.Record())
	}

	return out, it.Err()
}
