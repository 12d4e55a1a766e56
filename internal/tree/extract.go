package tree

import (
	"errors"
	"fmt"
	"strings"

	"roundtrip-verifier/internal/path"
)

// Extract walks the document depth-first and returns every terminal value
// keyed by its path, in document order.
//
// Sibling names that occur more than once are indexed from 0 in document
// order; unique names carry no index. Attributes become leaves at
// "<node>.@<attr>" and are emitted before the node's own text or children.
// A terminal that has attributes but no text contributes only its attribute
// leaves. Values are captured verbatim.
func Extract(root *Node) (*Leaves, error) {
	if root == nil {
		return nil, errors.New("extract: nil document root")
	}

	if err := checkName(root.Name); err != nil {
		return nil, err
	}

	x := extractor{leaves: NewLeaves(0)}
	if err := x.walk(path.Root(root.Name), root); err != nil {
		return nil, err
	}

	return x.leaves, nil
}

type extractor struct {
	leaves *Leaves
}

func (x *extractor) walk(p path.Path, n *Node) error {
	for _, a := range n.Attrs {
		if err := path.ValidateName(path.AttrPrefix + a.Name); err != nil {
			return fmt.Errorf("extract: attribute of %s: %w", p, err)
		}

		if err := x.leaves.Set(p.Attr(a.Name), a.Value); err != nil {
			return err
		}
	}

	if n.IsTerminal() {
		if n.Text == "" && len(n.Attrs) > 0 {
			return nil
		}

		return x.leaves.Set(p, n.Text)
	}

	counts := make(map[string]int, len(n.Children))
	for _, c := range n.Children {
		if c != nil {
			counts[c.Name]++
		}
	}

	next := make(map[string]int, len(counts))

	for _, c := range n.Children {
		if c == nil {
			continue
		}

		if err := checkName(c.Name); err != nil {
			return fmt.Errorf("extract: child of %s: %w", p, err)
		}

		child := p.Child(c.Name)
		if counts[c.Name] > 1 {
			child = p.IndexedChild(c.Name, next[c.Name])
			next[c.Name]++
		}

		if err := x.walk(child, c); err != nil {
			return err
		}
	}

	return nil
}

func checkName(name string) error {
	if strings.HasPrefix(name, path.AttrPrefix) {
		return fmt.Errorf("node name %q uses the reserved attribute prefix", name)
	}

	return path.ValidateName(name)
}
