package report

import (
	"fmt"

	"roundtrip-verifier/internal/path"
)

// MappingResult is the verdict for one leaf of the original document.
type MappingResult struct {
	// Path of the leaf in the original document.
	Path path.Path `json:"path"`
	// Value is the original value, untrimmed.
	Value string `json:"value"`
	// Verdict is the reconciliation outcome.
	Verdict Verdict `json:"verdict"`
}

// IsSuccess returns true for every verdict except Failed.
func (r MappingResult) IsSuccess() bool {
	return r.Verdict != Failed
}

// String returns "<path> ---> <value> (<verdict>)".
func (r MappingResult) String() string {
	return fmt.Sprintf("%s ---> %s (%s)", r.Path, r.Value, r.Verdict)
}

// Counts holds per-verdict totals.
type Counts struct {
	Total       int `json:"total"`
	Matched     int `json:"matched"`
	Excluded    int `json:"excluded"`
	ExpectedGap int `json:"expected_gap"`
	Failed      int `json:"failed"`
}

// Of returns the count for a single verdict.
func (c Counts) Of(v Verdict) int {
	switch v {
	case Matched:
		return c.Matched
	case Excluded:
		return c.Excluded
	case ExpectedGap:
		return c.ExpectedGap
	case Failed:
		return c.Failed
	default:
		return 0
	}
}

func (c *Counts) add(v Verdict) {
	c.Total++

	switch v {
	case Matched:
		c.Matched++
	case Excluded:
		c.Excluded++
	case ExpectedGap:
		c.ExpectedGap++
	case Failed:
		c.Failed++
	}
}

// MappingReport is the read-only outcome of reconciling one document pair.
type MappingReport struct {
	results []MappingResult
	counts  Counts
	added   []path.Path
	index   map[string]int
}

// Results returns every result in the original document's discovery order.
func (r *MappingReport) Results() []MappingResult {
	return append([]MappingResult(nil), r.results...)
}

// Len returns the number of results.
func (r *MappingReport) Len() int {
	return len(r.results)
}

// Counts returns the per-verdict totals.
func (r *MappingReport) Counts() Counts {
	return r.counts
}

// Failures returns all Failed results in discovery order.
func (r *MappingReport) Failures() []MappingResult {
	return r.ByVerdict(Failed)
}

// ByVerdict returns the results carrying verdict v in discovery order.
func (r *MappingReport) ByVerdict(v Verdict) []MappingResult {
	out := make([]MappingResult, 0, r.counts.Of(v))

	for _, res := range r.results {
		if res.Verdict == v {
			out = append(out, res)
		}
	}

	return out
}

// IsFullyReconciled returns true when no result Failed.
func (r *MappingReport) IsFullyReconciled() bool {
	return r.counts.Failed == 0
}

// Lookup returns the result for an original path.
func (r *MappingReport) Lookup(p path.Path) (MappingResult, bool) {
	i, ok := r.index[p.Key()]
	if !ok {
		return MappingResult{}, false
	}

	return r.results[i], true
}

// AddedPaths lists paths present only in the projected document. They are a
// diagnostic and take no part in the verdict counts.
func (r *MappingReport) AddedPaths() []path.Path {
	return append([]path.Path(nil), r.added...)
}

// Builder accumulates results. A Builder must not be reused after Build.
type Builder struct {
	report *MappingReport
}

// NewBuilder creates a builder sized for n results.
func NewBuilder(n int) *Builder {
	return &Builder{report: &MappingReport{
		results: make([]MappingResult, 0, n),
		index:   make(map[string]int, n),
	}}
}

// Add appends a result. Adding a second result for the same path panics,
// since every original leaf must yield exactly one result.
func (b *Builder) Add(res MappingResult) *Builder {
	key := res.Path.Key()
	if _, dup := b.report.index[key]; dup {
		panic(fmt.Sprintf("report: duplicate result for %s", res.Path))
	}

	if !res.Verdict.IsValid() {
		panic(fmt.Sprintf("report: invalid verdict %d for %s", int(res.Verdict), res.Path))
	}

	b.report.index[key] = len(b.report.results)
	b.report.results = append(b.report.results, res)
	b.report.counts.add(res.Verdict)

	return b
}

// AddAdded records a projected-only path.
func (b *Builder) AddAdded(p path.Path) *Builder {
	b.report.added = append(b.report.added, p)

	return b
}

// Build returns the finished report.
func (b *Builder) Build() *MappingReport {
	out := b.report
	b.report = nil

	return out
}
