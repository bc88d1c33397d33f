package schema

import (
	"errors"
	"fmt"
	"strings"
)

// KeySeparator joins output names into a flat record key.
const KeySeparator = "."

// JoinKey builds a flat record key from output names, top level first.
func JoinKey(names ...string) string {
	return strings.Join(names, KeySeparator)
}

// SplitKey parses a flat record key like "category.group_a.a" into its
// output names.
func SplitKey(key string) ([]string, error) {
	if key == "" {
		return nil, errors.New("empty key")
	}

	var names []string

	for part := range strings.SplitSeq(key, KeySeparator) {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("invalid key %q: empty segment", key)
		}

		names = append(names, part)
	}

	return names, nil
}

// DeclaredPath renders the declared names of a node path for messages,
// e.g. "Hardware.Category.GroupA".
func DeclaredPath(path ...*Node) string {
	names := make([]string, len(path))
	for i, n := range path {
		names[i] = n.DeclaredName
	}

	return strings.Join(names, ".")
}
