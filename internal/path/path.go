package path

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// AttrPrefix marks a step addressing an attribute of its parent node.
const AttrPrefix = "@"

// Escape makes the following reserved character literal in the canonical form.
const Escape = '\\'

// reserved characters are escaped when they occur inside a step name.
const reserved = ".[]\\"

// Step is one element of a Path.
type Step struct {
	// Name is the field name (or "@attr" for attributes).
	Name string
	// Index is the repetition index. Only meaningful when Indexed is true.
	Index int
	// Indexed is true when the field repeats under its parent.
	Indexed bool
}

// Field returns an unindexed step.
func Field(name string) Step {
	return Step{Name: name}
}

// Indexed returns a step carrying a repetition index.
func Indexed(name string, index int) Step {
	return Step{Name: name, Index: index, Indexed: true}
}

// IsAttr returns true if the step addresses an attribute.
func (s Step) IsAttr() bool {
	return strings.HasPrefix(s.Name, AttrPrefix)
}

// String returns the canonical form of the step.
func (s Step) String() string {
	if !s.Indexed {
		return escapeName(s.Name)
	}

	return escapeName(s.Name) + "[" + strconv.Itoa(s.Index) + "]"
}

func escapeName(name string) string {
	if !strings.ContainsAny(name, reserved) {
		return name
	}

	var sb strings.Builder

	sb.Grow(len(name) + 2)

	for i := range len(name) {
		if isReserved(name[i]) {
			sb.WriteByte(Escape)
		}

		sb.WriteByte(name[i])
	}

	return sb.String()
}

func isReserved(c byte) bool {
	return strings.IndexByte(reserved, c) >= 0
}

func (s Step) validate() error {
	if s.Name == "" {
		return fmt.Errorf("empty step name")
	}

	if s.Name == AttrPrefix {
		return fmt.Errorf("empty attribute name")
	}

	if s.Indexed && s.Index < 0 {
		return fmt.Errorf("step %q has negative index %d", s.Name, s.Index)
	}

	if s.Indexed && s.IsAttr() {
		return fmt.Errorf("attribute step %q cannot be indexed", s.Name)
	}

	return nil
}

func compareSteps(a, b Step) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}

	switch {
	case a.Indexed == b.Indexed:
		if !a.Indexed {
			return 0
		}

		return cmp.Compare(a.Index, b.Index)
	case !a.Indexed:
		return -1
	default:
		return 1
	}
}

// Path is an immutable location within a tree.
// The zero value is the invalid empty path; use New, Parse or Root.
type Path struct {
	steps []Step
}

// New builds a path from the given steps.
func New(steps ...Step) (Path, error) {
	if len(steps) == 0 {
		return Path{}, fmt.Errorf("path must have at least one step")
	}

	normalized := make([]Step, len(steps))

	for i, s := range steps {
		if !s.Indexed {
			s.Index = 0
		}

		if err := s.validate(); err != nil {
			return Path{}, fmt.Errorf("step %d: %w", i, err)
		}

		if s.IsAttr() && i != len(steps)-1 {
			return Path{}, fmt.Errorf("step %d: attribute step %q must be last", i, s.Name)
		}

		normalized[i] = s
	}

	return Path{steps: normalized}, nil
}

// MustNew is like New but panics on invalid steps. Intended for tests and
// package-level fixtures.
func MustNew(steps ...Step) Path {
	p, err := New(steps...)
	if err != nil {
		panic(err)
	}

	return p
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return p
}

// Root returns a single-step path.
func Root(name string) Path {
	return Path{steps: []Step{{Name: name}}}
}

func (p Path) with(s Step) Path {
	steps := make([]Step, len(p.steps), len(p.steps)+1)
	copy(steps, p.steps)

	return Path{steps: append(steps, s)}
}

// Child returns a new path with an unindexed step appended.
func (p Path) Child(name string) Path {
	return p.with(Field(name))
}

// IndexedChild returns a new path with an indexed step appended.
func (p Path) IndexedChild(name string, index int) Path {
	return p.with(Indexed(name, index))
}

// Attr returns a new path addressing the named attribute of p.
func (p Path) Attr(name string) Path {
	return p.with(Field(AttrPrefix + name))
}

// IsZero returns true for the empty (invalid) path.
func (p Path) IsZero() bool {
	return len(p.steps) == 0
}

// Len returns the number of steps.
func (p Path) Len() int {
	return len(p.steps)
}

// Steps returns a copy of the step sequence.
func (p Path) Steps() []Step {
	return slices.Clone(p.steps)
}

// Last returns the final step.
func (p Path) Last() Step {
	if len(p.steps) == 0 {
		return Step{}
	}

	return p.steps[len(p.steps)-1]
}

// Parent returns the path without its final step, and false for single-step paths.
func (p Path) Parent() (Path, bool) {
	if len(p.steps) < 2 {
		return Path{}, false
	}

	return Path{steps: p.steps[: len(p.steps)-1 : len(p.steps)-1]}, true
}

// IsAttr returns true if the path addresses an attribute.
func (p Path) IsAttr() bool {
	return p.Last().IsAttr()
}

// String returns the canonical string form.
func (p Path) String() string {
	var sb strings.Builder

	for i, s := range p.steps {
		if i > 0 {
			sb.WriteByte('.')
		}

		sb.WriteString(s.String())
	}

	return sb.String()
}

// Key returns a hashable key identifying the path. Two paths have the same key
// iff they are Equal.
func (p Path) Key() string {
	return p.String()
}

// Equal returns true if both paths have the same step sequence.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.steps, other.steps)
}

// Compare orders paths by their step sequences. An unindexed step sorts before
// an indexed one with the same name, and a proper prefix sorts first.
func (p Path) Compare(other Path) int {
	return slices.CompareFunc(p.steps, other.steps, compareSteps)
}

// IsPrefixedBy reports whether prefix's canonical form leads p's and ends at
// a step boundary. An unindexed final prefix step covers every repetition of
// that field, so "doc.party" prefixes both "doc.party.id" and
// "doc.party[1].id", while "doc.party[1]" prefixes only the second.
// Every path is prefixed by itself.
func (p Path) IsPrefixedBy(prefix Path) bool {
	n := len(prefix.steps)
	if n == 0 || n > len(p.steps) {
		return false
	}

	if !slices.Equal(p.steps[:n-1], prefix.steps[:n-1]) {
		return false
	}

	last, got := prefix.steps[n-1], p.steps[n-1]
	if last.Name != got.Name {
		return false
	}

	return !last.Indexed || got == last
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// Sort sorts paths in place by Compare.
func Sort(paths []Path) {
	slices.SortFunc(paths, Path.Compare)
}

// ValidateName reports whether name can be used as a step name.
func ValidateName(name string) error {
	return Field(name).validate()
}
