package suite

import "roundtrip-verifier/internal/common"

// Status is the outcome of one suite case.
type Status int

const (
	_ Status = iota
	// StatusPassed means the case matched every expectation.
	StatusPassed
	// StatusFailed means reconciliation found a different number of failures.
	StatusFailed
	// StatusSkipped means projection failed on a case expected to fail.
	StatusSkipped
	// StatusError means the case could not be evaluated.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	default:
		return common.UnknownStr
	}
}
