// Package match suggests where a lost value went.
//
// A leaf that reconciliation marks Failed is often not lost at all: the
// projector wrote the same value under a renamed element or a different
// parent. Relocations pairs each such failure with the projected-only path
// carrying the same value whose name is most similar.
//
// Key functions:
//   - NormalizeName: folds an element name for fuzzy comparison
//   - Similarity: normalized edit-distance similarity of two names
//   - Relocations: ranks projected-only paths for each failure
package match
