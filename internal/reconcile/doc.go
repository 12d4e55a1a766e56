// Package reconcile joins the leaves of an original and a projected document
// under an exception policy and produces a MappingReport.
//
// # Verdict Rules
//
// For each original leaf, in discovery order:
//  1. a path matched by the excluded set is Excluded, whatever the projection holds;
//  2. a path whose projected value equals the original after trimming
//     surrounding whitespace is Matched, even if it is also expected-unmapped;
//  3. a missing or different value on an expected-unmapped path is ExpectedGap;
//  4. anything else is Failed.
//
// Values are compared as literal strings: "1.0" and "1" differ. Paths present
// only in the projection are reported as added paths and never as results.
//
// Reconcile is a pure function of its inputs and safe to call concurrently.
package reconcile
