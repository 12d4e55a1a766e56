// Package report holds the outcome of a reconciliation: one MappingResult per
// leaf of the original document, in the original document's discovery order,
// plus per-verdict counts.
//
// Only Failed results count against a document. Excluded and ExpectedGap are
// accounted for separately and never contribute to the failed count.
package report
