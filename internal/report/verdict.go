package report

import "fmt"

//go:generate go tool stringer -type=Verdict -output=verdict_string.go

// Verdict classifies one original leaf after reconciliation.
type Verdict int

const (
	_ Verdict = iota // zero value is invalid

	// Matched means the projected document holds the same trimmed value.
	Matched
	// Excluded means the path is deliberately ignored.
	Excluded
	// ExpectedGap means the value was lost, but ingestion already reported it.
	ExpectedGap
	// Failed means the value was lost or changed without explanation.
	Failed

	// VerdictTotal is the number of verdict kinds plus the invalid zero value.
	VerdictTotal = int(iota)
)

// Verdicts lists every valid verdict in declaration order.
var Verdicts = []Verdict{Matched, Excluded, ExpectedGap, Failed}

// IsValid returns true for the four defined verdicts.
func (v Verdict) IsValid() bool {
	return v > 0 && int(v) < VerdictTotal
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("invalid verdict %d", int(v))
	}

	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verdict) UnmarshalText(text []byte) error {
	for _, candidate := range Verdicts {
		if candidate.String() == string(text) {
			*v = candidate

			return nil
		}
	}

	return fmt.Errorf("unknown verdict %q", text)
}
