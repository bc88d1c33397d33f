package schema

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a field or group is declared without a name.
var ErrEmptyName = errors.New("declared name is empty")

// EmptyGroupError is returned when a group is declared without children.
type EmptyGroupError struct {
	// Path is the dotted declared path of the group.
	Path string
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("group %q has no fields", e.Path)
}

// DuplicateFieldError is returned when two siblings share a declared name.
type DuplicateFieldError struct {
	// Parent is the dotted declared path of the enclosing group.
	Parent string
	// Name is the repeated declared name.
	Name string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field %q in %q", e.Name, e.Parent)
}
