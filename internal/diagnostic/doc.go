// Package diagnostic provides structured errors, warnings and notes raised
// while running a fidelity suite.
//
// Key capabilities:
//   - Mapping-failure count mismatches against a case's expectation
//   - Expected and unexpected projection failures
//   - Projected-only (added) paths as informational notes
package diagnostic
