package tree

import (
	"errors"
	"fmt"

	"roundtrip-verifier/internal/path"
)

// ErrPathCollision is the sentinel matched by every PathCollisionError.
var ErrPathCollision = errors.New("path collision")

// PathCollisionError reports two leaves addressed by the same path.
type PathCollisionError struct {
	Path     path.Path
	Existing string
	Value    string
}

func (e *PathCollisionError) Error() string {
	return fmt.Sprintf("path collision at %s: %q already recorded, got %q", e.Path, e.Existing, e.Value)
}

func (e *PathCollisionError) Unwrap() error {
	return ErrPathCollision
}

// Leaf is a terminal position of a tree.
type Leaf struct {
	Path  path.Path
	Value string
}

// Leaves is a Path -> value mapping that remembers discovery order.
// The zero value is an empty, usable set.
type Leaves struct {
	order  []path.Path
	values map[string]string
}

// NewLeaves creates an empty leaf set with room for n entries.
func NewLeaves(n int) *Leaves {
	return &Leaves{
		order:  make([]path.Path, 0, n),
		values: make(map[string]string, n),
	}
}

// Set records a leaf. Recording the same path twice is a PathCollisionError.
func (l *Leaves) Set(p path.Path, value string) error {
	if l.values == nil {
		l.values = make(map[string]string)
	}

	key := p.Key()
	if existing, ok := l.values[key]; ok {
		return &PathCollisionError{Path: p, Existing: existing, Value: value}
	}

	l.values[key] = value
	l.order = append(l.order, p)

	return nil
}

// Get returns the value at p.
func (l *Leaves) Get(p path.Path) (string, bool) {
	if l == nil {
		return "", false
	}

	v, ok := l.values[p.Key()]

	return v, ok
}

// Has returns true if a leaf exists at p.
func (l *Leaves) Has(p path.Path) bool {
	_, ok := l.Get(p)

	return ok
}

// Len returns the number of leaves.
func (l *Leaves) Len() int {
	if l == nil {
		return 0
	}

	return len(l.order)
}

// Paths returns the leaf paths in discovery order.
func (l *Leaves) Paths() []path.Path {
	if l == nil {
		return nil
	}

	out := make([]path.Path, len(l.order))
	copy(out, l.order)

	return out
}

// All returns the leaves in discovery order.
func (l *Leaves) All() []Leaf {
	out := make([]Leaf, 0, l.Len())
	l.Each(func(p path.Path, v string) {
		out = append(out, Leaf{Path: p, Value: v})
	})

	return out
}

// Each calls fn for every leaf in discovery order.
func (l *Leaves) Each(fn func(p path.Path, value string)) {
	if l == nil {
		return
	}

	for _, p := range l.order {
		fn(p, l.values[p.Key()])
	}
}
