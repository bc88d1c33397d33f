package extract

import (
	"fmt"
	"strings"

	"sheet-mapper/schema"
)

//go:generate go tool stringer -type=Mode -output=mode_string.go

// Mode selects the record shape.
type Mode int

const (
	// ModeNested builds one nested map per group, keyed by output names.
	ModeNested Mode = iota
	// ModeFlat builds a single map keyed by dotted output keys.
	ModeFlat
)

// ParseMode parses "nested" or "flat".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nested":
		return ModeNested, nil
	case "flat":
		return ModeFlat, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want nested or flat)", s)
	}
}

// Record is one extracted data row. In nested mode group values are Records.
type Record map[string]any

// Flatten converts a nested record to its flat form with dotted keys.
// Flat records are returned as an equal copy.
func Flatten(r Record) Record {
	out := make(Record, len(r))
	flattenInto(out, "", r)

	return out
}

func flattenInto(out Record, prefix string, r Record) {
	for k, v := range r {
		key := k
		if prefix != "" {
			key = schema.JoinKey(prefix, k)
		}

		if sub, ok := v.(Record); ok {
			flattenInto(out, key, sub)
			continue
		}

		out[key] = v
	}
}

// set stores v under the path of output names, creating groups as needed.
func (r Record) set(names []string, v any) {
	cur := r

	for _, name := range names[:len(names)-1] {
		sub, ok := cur[name].(Record)
		if !ok {
			sub = Record{}
			cur[name] = sub
		}

		cur = sub
	}

	cur[names[len(names)-1]] = v
}
