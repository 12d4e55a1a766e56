package reconcile

import (
	"strings"

	"roundtrip-verifier/internal/exception"
	"roundtrip-verifier/internal/path"
	"roundtrip-verifier/internal/report"
	"roundtrip-verifier/internal/tree"
)

// Policy is the pair of exception sets applied to one reconciliation.
type Policy struct {
	// ExpectedUnmapped holds paths lost on ingestion. Only exact membership counts.
	ExpectedUnmapped *exception.Set
	// Excluded holds ignored paths, matched exactly, by prefix or by glob.
	Excluded *exception.Set
}

// Reconcile produces one verdict per original leaf. Nil sets are empty.
func Reconcile(original, projected *tree.Leaves, expectedUnmapped, excluded *exception.Set) *report.MappingReport {
	b := report.NewBuilder(original.Len())

	original.Each(func(p path.Path, value string) {
		b.Add(report.MappingResult{
			Path:    p,
			Value:   value,
			Verdict: verdictFor(p, value, projected, expectedUnmapped, excluded),
		})
	})

	projected.Each(func(p path.Path, _ string) {
		if !original.Has(p) && !excluded.Matches(p) {
			b.AddAdded(p)
		}
	})

	return b.Build()
}

// ReconcileWith is Reconcile with the exception sets taken from a Policy.
func ReconcileWith(original, projected *tree.Leaves, policy Policy) *report.MappingReport {
	return Reconcile(original, projected, policy.ExpectedUnmapped, policy.Excluded)
}

func verdictFor(p path.Path, value string, projected *tree.Leaves, expectedUnmapped, excluded *exception.Set) report.Verdict {
	if excluded.Matches(p) {
		return report.Excluded
	}

	if got, ok := projected.Get(p); ok && normalize(got) == normalize(value) {
		return report.Matched
	}

	if expectedUnmapped.Contains(p) {
		return report.ExpectedGap
	}

	return report.Failed
}

func normalize(v string) string {
	return strings.TrimSpace(v)
}
