package layout

import (
	"fmt"
)

// Conflict tells why a position was rejected.
type Conflict string

const (
	// ConflictNegative means the node lands before the first row or column.
	ConflictNegative Conflict = "negative position"
	// ConflictOrder means a leaf column does not advance past the previous leaf.
	ConflictOrder Conflict = "column out of order"
	// ConflictOverlap means two nodes label the same cell.
	ConflictOverlap Conflict = "cell already taken"
)

// PositionConflictError is returned when offsets produce an invalid layout.
type PositionConflictError struct {
	// Key is the dotted output key of the offending node.
	Key string
	// Row and Col are where the node would land.
	Row int
	Col int
	// Reason is the kind of conflict.
	Reason Conflict
	// Other is the key of the node already at that position, for overlaps,
	// or of the previous leaf, for ordering conflicts.
	Other string
}

func (e *PositionConflictError) Error() string {
	msg := fmt.Sprintf("node %q at (%d, %d): %s", e.Key, e.Row, e.Col, e.Reason)
	if e.Other != "" {
		msg += fmt.Sprintf(" (conflicts with %q)", e.Other)
	}

	return msg
}

// DuplicateKeyError is returned when two nodes resolve to the same output key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("output key %q is used by more than one node", e.Key)
}
