// Package tree holds the generic tree-of-named-nodes document model and the
// leaf extractor that flattens a document into its (Path, value) pairs.
//
// Parsing a wire format into a Node tree is done by the format adapters in
// the xmldoc and jsondoc subpackages; Extract assumes a well-formed tree.
package tree
