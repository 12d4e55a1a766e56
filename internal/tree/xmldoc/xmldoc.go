// Package xmldoc parses XML wire documents into the generic node tree.
//
// Element names are reduced to their local part. Namespaced attributes keep
// the prefix they were declared with ("xsi:type"), so they never collide with
// an unqualified attribute of the same local name. Namespace declarations,
// comments and processing instructions are dropped. Character data is kept
// verbatim on terminal elements and ignored on containers.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"maps"
	"strings"

	"roundtrip-verifier/internal/tree"
)

const format = "xml"

// xmlURI is the namespace bound to the reserved "xml" prefix.
const xmlURI = "http://www.w3.org/XML/1998/namespace"

type frame struct {
	node *tree.Node
	text strings.Builder
	// prefixes maps namespace URIs in scope to the prefix declaring them.
	prefixes map[string]string
}

// ParseBytes parses an XML document held in memory.
func ParseBytes(data []byte) (*tree.Node, error) {
	return Parse(bytes.NewReader(data))
}

// Parse reads a single XML document from r.
func Parse(r io.Reader) (*tree.Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var (
		root  *tree.Node
		stack []*frame
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, malformed(dec.InputOffset(), err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, malformed(dec.InputOffset(), errors.New("multiple root elements"))
			}

			n := &tree.Node{Name: t.Name.Local}

			var inherited map[string]string
			if len(stack) > 0 {
				inherited = stack[len(stack)-1].prefixes
			}

			prefixes := scope(inherited, t.Attr)

			for _, a := range t.Attr {
				if isNamespaceDecl(a.Name) {
					continue
				}

				n.Attrs = append(n.Attrs, tree.Attr{Name: attrName(a.Name, prefixes), Value: a.Value})
			}

			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1].node
				parent.Children = append(parent.Children, n)
			}

			stack = append(stack, &frame{node: n, prefixes: prefixes})

		case xml.EndElement:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if top.node.IsTerminal() {
				top.node.Text = top.text.String()
			}

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, malformed(dec.InputOffset(), errors.New("character data outside root element"))
				}

				continue
			}

			stack[len(stack)-1].text.Write(t)
		}
	}

	if root == nil {
		return nil, malformed(-1, errors.New("no root element"))
	}

	if len(stack) > 0 {
		return nil, malformed(dec.InputOffset(), errors.New("unterminated element "+stack[len(stack)-1].node.Name))
	}

	return root, nil
}

// scope returns the URI to prefix bindings visible on an element. When one
// element binds several prefixes to the same URI the smallest prefix wins.
func scope(inherited map[string]string, attrs []xml.Attr) map[string]string {
	declared := make(map[string]string)

	for _, a := range attrs {
		if a.Name.Space != "xmlns" {
			continue
		}

		if p, ok := declared[a.Value]; !ok || a.Name.Local < p {
			declared[a.Value] = a.Name.Local
		}
	}

	if len(declared) == 0 {
		return inherited
	}

	out := make(map[string]string, len(inherited)+len(declared))
	maps.Copy(out, inherited)
	maps.Copy(out, declared)

	return out
}

// attrName qualifies a namespaced attribute with its declared prefix. The
// decoder reports the namespace URI; an undeclared prefix is reported as is.
func attrName(name xml.Name, prefixes map[string]string) string {
	switch {
	case name.Space == "":
		return name.Local
	case name.Space == xmlURI:
		return "xml:" + name.Local
	}

	if p, ok := prefixes[name.Space]; ok {
		return p + ":" + name.Local
	}

	return name.Space + ":" + name.Local
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}

func malformed(offset int64, err error) error {
	return &tree.MalformedDocumentError{Format: format, Offset: offset, Err: err}
}
