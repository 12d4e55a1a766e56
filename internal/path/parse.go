package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedPath is the sentinel matched by every MalformedPathError.
var ErrMalformedPath = errors.New("malformed path")

// MalformedPathError reports a canonical path string that cannot be parsed.
type MalformedPathError struct {
	// Input is the string that failed to parse.
	Input string
	// Offset is the byte offset where parsing stopped.
	Offset int
	// Reason describes what was wrong.
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path %q at offset %d: %s", e.Input, e.Offset, e.Reason)
}

func (e *MalformedPathError) Unwrap() error {
	return ErrMalformedPath
}

func malformed(input string, offset int, reason string) error {
	return &MalformedPathError{Input: input, Offset: offset, Reason: reason}
}

// Parse parses a canonical path string such as "header.party[1].@id".
func Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, malformed(s, 0, "empty path")
	}

	var steps []Step

	pos := 0

	for {
		step, next, err := parseStep(s, pos)
		if err != nil {
			return Path{}, err
		}

		if step.IsAttr() && next < len(s) {
			return Path{}, malformed(s, next, fmt.Sprintf("attribute step %q must be last", step.Name))
		}

		steps = append(steps, step)

		if next == len(s) {
			break
		}

		if s[next] != '.' {
			return Path{}, malformed(s, next, fmt.Sprintf("unexpected %q after step %q", s[next], step.Name))
		}

		pos = next + 1
	}

	return Path{steps: steps}, nil
}

// parseStep reads one step starting at pos and returns it with the offset of
// the first byte after it.
func parseStep(s string, pos int) (Step, int, error) {
	var sb strings.Builder

	end := pos

scan:
	for end < len(s) {
		switch c := s[end]; {
		case c == Escape:
			if end+1 == len(s) || !isReserved(s[end+1]) {
				return Step{}, 0, malformed(s, end, "invalid escape")
			}

			sb.WriteByte(s[end+1])
			end += 2
		case c == '.' || c == '[' || c == ']':
			break scan
		default:
			sb.WriteByte(c)
			end++
		}
	}

	name := sb.String()

	if end < len(s) && s[end] == ']' {
		return Step{}, 0, malformed(s, end, "unbalanced ']'")
	}

	if name == "" {
		return Step{}, 0, malformed(s, pos, "empty step")
	}

	if name == AttrPrefix {
		return Step{}, 0, malformed(s, pos, "empty attribute name")
	}

	if end == len(s) || s[end] != '[' {
		return Step{Name: name}, end, nil
	}

	if strings.HasPrefix(name, AttrPrefix) {
		return Step{}, 0, malformed(s, end, fmt.Sprintf("attribute step %q cannot be indexed", name))
	}

	open := end

	closing := strings.IndexByte(s[open:], ']')
	if closing < 0 {
		return Step{}, 0, malformed(s, open, "unbalanced '['")
	}

	closing += open

	digits := s[open+1 : closing]
	if digits == "" {
		return Step{}, 0, malformed(s, open, "empty index")
	}

	for i := range len(digits) {
		if digits[i] < '0' || digits[i] > '9' {
			return Step{}, 0, malformed(s, open+1+i, fmt.Sprintf("non-numeric index %q", digits))
		}
	}

	index, err := strconv.Atoi(digits)
	if err != nil {
		return Step{}, 0, malformed(s, open+1, fmt.Sprintf("index %q out of range", digits))
	}

	return Step{Name: name, Index: index, Indexed: true}, closing + 1, nil
}

// ParseAll parses every string, stopping at the first malformed one.
func ParseAll(ss []string) ([]Path, error) {
	result := make([]Path, 0, len(ss))

	for _, s := range ss {
		p, err := Parse(s)
		if err != nil {
			return nil, err
		}

		result = append(result, p)
	}

	return result, nil
}
