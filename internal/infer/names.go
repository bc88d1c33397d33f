package infer

import (
	"strconv"

	"sheet-mapper/schema"
)

// Stem hands out numbered variants of a name, stem1, stem2 and so on,
// skipping those the namespace rejects.
type Stem struct {
	ns   *Namespace
	stem string
	last int
}

// Next returns the next free variant and claims it.
func (s *Stem) Next() string {
	for {
		s.last++
		name := s.stem + strconv.Itoa(s.last)

		if s.ns.Free(name) {
			s.ns.add(name)
			return name
		}
	}
}

// Namespace tracks the declared names of one sibling set. Two names clash
// if they are equal or derive the same output key.
type Namespace struct {
	names map[string]struct{}
	keys  map[string]struct{}
}

// NewNamespace returns a namespace holding taken.
func NewNamespace(taken ...string) *Namespace {
	ns := &Namespace{
		names: make(map[string]struct{}),
		keys:  make(map[string]struct{}),
	}

	for _, name := range taken {
		ns.add(name)
	}

	return ns
}

// Free reports whether name can be claimed.
func (ns *Namespace) Free(name string) bool {
	_, taken := ns.names[name]
	if taken {
		return false
	}

	_, taken = ns.keys[schema.OutputKey(name)]

	return !taken
}

// Claim returns name if it is free, otherwise the first free numbered
// variant. The result is taken afterwards.
func (ns *Namespace) Claim(name string) string {
	if ns.Free(name) {
		ns.add(name)
		return name
	}

	return ns.Stem(name).Next()
}

// Stem returns a numbering stem in this namespace.
func (ns *Namespace) Stem(stem string) *Stem {
	return &Stem{ns: ns, stem: stem}
}

func (ns *Namespace) add(name string) {
	ns.names[name] = struct{}{}
	ns.keys[schema.OutputKey(name)] = struct{}{}
}
