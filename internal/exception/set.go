package exception

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"roundtrip-verifier/internal/path"
)

// Set is an immutable collection of exact paths, prefixes and globs.
// A nil *Set is empty.
type Set struct {
	exact    map[string]path.Path
	paths    []path.Path
	prefixes []path.Path
	globs    []glob
}

type glob struct {
	raw     string
	pattern string
}

// NewSet builds a set of exact paths.
func NewSet(paths ...path.Path) *Set {
	s := &Set{exact: make(map[string]path.Path, len(paths))}
	for _, p := range paths {
		s.addExact(p)
	}

	return s
}

func (s *Set) addExact(p path.Path) {
	key := p.Key()
	if _, ok := s.exact[key]; ok {
		return
	}

	s.exact[key] = p
	s.paths = append(s.paths, p)
}

// Contains reports exact membership.
func (s *Set) Contains(p path.Path) bool {
	if s == nil {
		return false
	}

	_, ok := s.exact[p.Key()]

	return ok
}

// Matches reports whether p is an exact member, lies under a prefix entry, or
// matches a glob.
func (s *Set) Matches(p path.Path) bool {
	if s == nil {
		return false
	}

	if s.Contains(p) {
		return true
	}

	for _, prefix := range s.prefixes {
		if p.IsPrefixedBy(prefix) {
			return true
		}
	}

	if len(s.globs) == 0 {
		return false
	}

	name := slashForm(p)

	for _, g := range s.globs {
		// patterns are validated in Build, so Match cannot fail here
		if ok, _ := doublestar.Match(g.pattern, name); ok {
			return true
		}
	}

	return false
}

// Len returns the total number of entries of all kinds.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return len(s.paths) + len(s.prefixes) + len(s.globs)
}

// IsEmpty returns true if the set has no entries.
func (s *Set) IsEmpty() bool {
	return s.Len() == 0
}

// Paths returns the exact entries in insertion order.
func (s *Set) Paths() []path.Path {
	if s == nil {
		return nil
	}

	return append([]path.Path(nil), s.paths...)
}

// Prefixes returns the prefix entries in insertion order.
func (s *Set) Prefixes() []path.Path {
	if s == nil {
		return nil
	}

	return append([]path.Path(nil), s.prefixes...)
}

// Globs returns the glob entries as written.
func (s *Set) Globs() []string {
	if s == nil {
		return nil
	}

	out := make([]string, len(s.globs))
	for i, g := range s.globs {
		out[i] = g.raw
	}

	return out
}

// Union returns a set holding the entries of all given sets.
func Union(sets ...*Set) *Set {
	out := NewSet()

	for _, s := range sets {
		if s == nil {
			continue
		}

		for _, p := range s.paths {
			out.addExact(p)
		}

		out.prefixes = append(out.prefixes, s.prefixes...)
		out.globs = append(out.globs, s.globs...)
	}

	return out
}

// Builder assembles a Set. Errors from the string helpers are collected and
// returned by Build.
type Builder struct {
	set  *Set
	errs []error
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{set: NewSet()}
}

// Exact adds exact paths.
func (b *Builder) Exact(paths ...path.Path) *Builder {
	for _, p := range paths {
		b.set.addExact(p)
	}

	return b
}

// ExactStrings parses and adds exact paths.
func (b *Builder) ExactStrings(ss ...string) *Builder {
	for _, s := range ss {
		p, err := path.Parse(s)
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("exact entry: %w", err))

			continue
		}

		b.set.addExact(p)
	}

	return b
}

// Prefix adds prefix entries.
func (b *Builder) Prefix(paths ...path.Path) *Builder {
	b.set.prefixes = append(b.set.prefixes, paths...)

	return b
}

// PrefixStrings parses and adds prefix entries.
func (b *Builder) PrefixStrings(ss ...string) *Builder {
	for _, s := range ss {
		p, err := path.Parse(s)
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("prefix entry: %w", err))

			continue
		}

		b.set.prefixes = append(b.set.prefixes, p)
	}

	return b
}

// Glob adds glob patterns.
func (b *Builder) Glob(patterns ...string) *Builder {
	for _, raw := range patterns {
		pattern := globToSlashForm(raw)
		if raw == "" || !doublestar.ValidatePattern(pattern) {
			b.errs = append(b.errs, fmt.Errorf("invalid glob %q", raw))

			continue
		}

		b.set.globs = append(b.set.globs, glob{raw: raw, pattern: pattern})
	}

	return b
}

// Build returns the set, or the joined errors of every rejected entry.
func (b *Builder) Build() (*Set, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	out := b.set
	b.set = NewSet()

	return out, nil
}

// slashStandIn replaces '/' inside step names so doublestar never splits a
// single step in two.
const slashStandIn = "\u2215"

// slashForm renders p with one doublestar segment per step and names taken
// literally.
func slashForm(p path.Path) string {
	steps := p.Steps()
	parts := make([]string, len(steps))

	for i, st := range steps {
		seg := strings.ReplaceAll(st.Name, "/", slashStandIn)
		if st.Indexed {
			seg += "[" + strconv.Itoa(st.Index) + "]"
		}

		parts[i] = seg
	}

	return strings.Join(parts, "/")
}

// globToSlashForm converts a dotted glob into a doublestar pattern. Brackets
// are literal, and a backslash-escaped '.' stays inside its step.
func globToSlashForm(s string) string {
	var sb strings.Builder

	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == path.Escape && i+1 < len(s):
			i++

			switch s[i] {
			case '.':
				sb.WriteByte('.')
			case '/':
				sb.WriteString(slashStandIn)
			default:
				sb.WriteByte(path.Escape)
				sb.WriteByte(s[i])
			}
		case c == '.':
			sb.WriteByte('/')
		case c == '/':
			sb.WriteString(slashStandIn)
		case c == '[':
			sb.WriteString(`\[`)
		case c == ']':
			sb.WriteString(`\]`)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}
