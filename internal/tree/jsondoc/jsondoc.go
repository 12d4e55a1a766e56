// Package jsondoc parses JSON wire documents into the generic node tree.
//
// Objects become container nodes whose children are named by key. An array
// held under key k becomes repeated children named k, so the extractor indexes
// them like repeated XML elements; an array nested directly inside another
// array becomes a container named k holding its own elements. The document
// root is named "$", and elements of a top-level array are named "item".
// Scalars keep their literal text: numbers are not reformatted, booleans are
// "true"/"false" and null is the empty string.
package jsondoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"roundtrip-verifier/internal/path"
	"roundtrip-verifier/internal/tree"
)

const (
	format = "json"

	// RootName names the document root node.
	RootName = "$"
	// ItemName names elements of a top-level array.
	ItemName = "item"
)

// ParseBytes parses a JSON document held in memory.
func ParseBytes(data []byte) (*tree.Node, error) {
	return Parse(bytes.NewReader(data))
}

// Parse reads a single JSON document from r.
func Parse(r io.Reader) (*tree.Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	p := &parser{dec: dec}

	tok, err := dec.Token()
	if err != nil {
		return nil, malformed(err)
	}

	var root *tree.Node

	if d, ok := tok.(json.Delim); ok && d == '[' {
		items, err := p.array(ItemName)
		if err != nil {
			return nil, err
		}

		root = tree.NewNode(RootName, items...)
	} else {
		nodes, err := p.fromToken(RootName, tok)
		if err != nil {
			return nil, err
		}

		root = nodes[0]
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("trailing data after document")
		}

		return nil, malformed(err)
	}

	return root, nil
}

type parser struct {
	dec *json.Decoder
}

func (p *parser) next() (json.Token, error) {
	tok, err := p.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, malformed(err)
	}

	return tok, nil
}

// fromToken converts the value starting at tok into nodes named name. Arrays
// yield one node per element; everything else yields exactly one node.
func (p *parser) fromToken(name string, tok json.Token) ([]*tree.Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			n, err := p.object(name)
			if err != nil {
				return nil, err
			}

			return []*tree.Node{n}, nil
		case '[':
			return p.array(name)
		default:
			return nil, malformed(fmt.Errorf("unexpected delimiter %q", rune(v)))
		}
	case string:
		return []*tree.Node{tree.NewText(name, v)}, nil
	case json.Number:
		return []*tree.Node{tree.NewText(name, string(v))}, nil
	case float64:
		return []*tree.Node{tree.NewText(name, strconv.FormatFloat(v, 'g', -1, 64))}, nil
	case bool:
		return []*tree.Node{tree.NewText(name, strconv.FormatBool(v))}, nil
	case nil:
		return []*tree.Node{tree.NewText(name, "")}, nil
	default:
		return nil, malformed(fmt.Errorf("unexpected token %v", tok))
	}
}

func (p *parser) object(name string) (*tree.Node, error) {
	n := tree.NewNode(name)

	for p.dec.More() {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, malformed(fmt.Errorf("expected object key, got %v", tok))
		}

		if err := checkKey(key); err != nil {
			return nil, err
		}

		tok, err = p.next()
		if err != nil {
			return nil, err
		}

		children, err := p.fromToken(key, tok)
		if err != nil {
			return nil, err
		}

		n.Add(children...)
	}

	if _, err := p.next(); err != nil {
		return nil, err
	}

	return n, nil
}

func (p *parser) array(name string) ([]*tree.Node, error) {
	var items []*tree.Node

	for p.dec.More() {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok && d == '[' {
			inner, err := p.array(name)
			if err != nil {
				return nil, err
			}

			items = append(items, tree.NewNode(name, inner...))

			continue
		}

		nodes, err := p.fromToken(name, tok)
		if err != nil {
			return nil, err
		}

		items = append(items, nodes...)
	}

	if _, err := p.next(); err != nil {
		return nil, err
	}

	return items, nil
}

func checkKey(key string) error {
	if strings.HasPrefix(key, path.AttrPrefix) {
		return malformed(fmt.Errorf("key %q uses the reserved attribute prefix", key))
	}

	if err := path.ValidateName(key); err != nil {
		return malformed(fmt.Errorf("key %q cannot be addressed: %w", key, err))
	}

	return nil
}

func malformed(err error) error {
	var mde *tree.MalformedDocumentError
	if errors.As(err, &mde) {
		return err
	}

	return &tree.MalformedDocumentError{Format: format, Offset: -1, Err: err}
}
