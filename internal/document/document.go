// Package document loads wire documents from disk and dispatches to the
// format adapter matching the file.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"roundtrip-verifier/internal/tree"
	"roundtrip-verifier/internal/tree/jsondoc"
	"roundtrip-verifier/internal/tree/xmldoc"
)

// Format is a supported wire format.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// FormatOf guesses the format from a file extension, falling back to the
// first non-space byte of data.
func FormatOf(name string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml":
		return FormatXML, nil
	case ".json":
		return FormatJSON, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '<':
			return FormatXML, nil
		case '{', '[':
			return FormatJSON, nil
		}
	}

	return "", fmt.Errorf("cannot determine wire format of %s", name)
}

// Parse parses data in the given format.
func Parse(format Format, data []byte) (*tree.Node, error) {
	switch format {
	case FormatXML:
		return xmldoc.ParseBytes(data)
	case FormatJSON:
		return jsondoc.ParseBytes(data)
	default:
		return nil, fmt.Errorf("unsupported wire format %q", format)
	}
}

// LoadFile reads and parses a wire document.
func LoadFile(path string) (*tree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	format, err := FormatOf(path, data)
	if err != nil {
		return nil, err
	}

	root, err := Parse(format, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}

	return root, nil
}

// LoadLeaves reads a wire document and extracts its leaves.
func LoadLeaves(path string) (*tree.Leaves, error) {
	root, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	leaves, err := tree.Extract(root)
	if err != nil {
		return nil, fmt.Errorf("failed to extract leaves from %s: %w", path, err)
	}

	return leaves, nil
}
