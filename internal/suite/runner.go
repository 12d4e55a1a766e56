package suite

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"roundtrip-verifier/internal/diagnostic"
	"roundtrip-verifier/internal/document"
	"roundtrip-verifier/internal/exception"
	"roundtrip-verifier/internal/logger"
	"roundtrip-verifier/internal/match"
	"roundtrip-verifier/internal/projection"
	"roundtrip-verifier/internal/reconcile"
	"roundtrip-verifier/internal/report"
	"roundtrip-verifier/internal/tree"
)

// Runner executes manifest cases.
type Runner struct {
	// Workers bounds concurrent case loading and reconciliation.
	// Zero or less means one goroutine per case.
	Workers int

	// Logger receives per-case progress and every mapping failure.
	// Nil uses the package default.
	Logger *logger.Logger
}

// CaseResult is the evaluated outcome of one case.
type CaseResult struct {
	Name   string
	Status Status

	// Report is nil unless reconciliation ran.
	Report *report.MappingReport

	// ExpectedFailures is the manifest's mapping_failures.
	ExpectedFailures int

	// Err is set for StatusError and StatusSkipped.
	Err error
}

// Summary collects the results of a suite run in manifest order.
type Summary struct {
	// Manifest is the manifest file the cases came from, if any.
	Manifest    string
	Cases       []CaseResult
	Diagnostics diagnostic.Diagnostics
}

// OK returns true when no case failed or errored.
func (s *Summary) OK() bool {
	return !s.Diagnostics.HasErrors()
}

// Count returns the number of cases with the given status.
func (s *Summary) Count(st Status) int {
	n := 0

	for _, c := range s.Cases {
		if c.Status == st {
			n++
		}
	}

	return n
}

// prepared is a case whose inputs are loaded and ready to reconcile.
type prepared struct {
	result CaseResult
	diags  diagnostic.Diagnostics
	pair   reconcile.Pair
	ready  bool
}

// Run loads every case, reconciles the ones with a projected document and
// checks each against its expectations. The returned error is non-nil only
// when the manifest-level exception config cannot be loaded or ctx is done;
// case problems are reported through the summary.
func (r *Runner) Run(ctx context.Context, m *Manifest) (*Summary, error) {
	base, err := m.policy()
	if err != nil {
		return nil, err
	}

	log := r.logger()
	log.Infof("running %d cases", len(m.Cases))

	cases := make([]prepared, len(m.Cases))

	p := pool.New()
	if r.Workers > 0 {
		p = p.WithMaxGoroutines(r.Workers)
	}

	for i, c := range m.Cases {
		p.Go(func() {
			cases[i] = m.prepare(ctx, c, base, log.With("case", c.Name))
		})
	}

	p.Wait()

	var (
		pairs []reconcile.Pair
		slots []int
	)

	for i := range cases {
		if cases[i].ready {
			pairs = append(pairs, cases[i].pair)
			slots = append(slots, i)
		}
	}

	for j, out := range reconcile.Batch(ctx, pairs, r.Workers) {
		pc := &cases[slots[j]]
		if out.Err != nil {
			pc.fail(diagnostic.CodeLoad, out.Err)

			continue
		}

		pc.evaluate(out.Report, log.With("case", pc.result.Name))
	}

	summary := &Summary{Manifest: m.File(), Cases: make([]CaseResult, len(cases))}

	for i, pc := range cases {
		summary.Cases[i] = pc.result
		summary.Diagnostics.Merge(pc.diags)
	}

	log.Infof("passed=%d failed=%d skipped=%d errors=%d",
		summary.Count(StatusPassed), summary.Count(StatusFailed),
		summary.Count(StatusSkipped), summary.Count(StatusError))

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	return summary, nil
}

func (r *Runner) logger() *logger.Logger {
	if r.Logger != nil {
		return r.Logger
	}

	return logger.With()
}

// policy builds the exception sets shared by every case.
func (m *Manifest) policy() (reconcile.Policy, error) {
	if m.Exceptions == "" {
		return reconcile.Policy{}, nil
	}

	cfg, err := exception.LoadFile(m.resolve(m.Exceptions))
	if err != nil {
		return reconcile.Policy{}, err
	}

	expected, excluded, err := cfg.Sets()
	if err != nil {
		return reconcile.Policy{}, fmt.Errorf("invalid exception config %s: %w", m.Exceptions, err)
	}

	return reconcile.Policy{ExpectedUnmapped: expected, Excluded: excluded}, nil
}

func (m *Manifest) prepare(ctx context.Context, c Case, base reconcile.Policy, log *logger.Logger) prepared {
	pc := prepared{result: CaseResult{Name: c.Name, ExpectedFailures: c.MappingFailures}}

	if err := ctx.Err(); err != nil {
		pc.fail(diagnostic.CodeLoad, err)

		return pc
	}

	outcome, err := m.projectionOutcome(c)
	if err != nil {
		pc.fail(diagnostic.CodeLoad, err)

		return pc
	}

	switch {
	case !outcome.OK() && outcome.IsUnsupported() && !c.ExpectPass():
		log.Warningf("expected projection error: %v", outcome.Err)
		pc.result.Status = StatusSkipped
		pc.result.Err = outcome.Err
		pc.diags.AddWarning(diagnostic.CodeProjectionSkipped, outcome.Err.Error(), c.Name, "")

		return pc
	case !outcome.OK():
		pc.fail(diagnostic.CodeProjectionFailed, outcome.Err)

		return pc
	case !c.ExpectPass():
		log.Warning("projection succeeded on a case expected to fail")
		pc.diags.AddWarning(diagnostic.CodeUnexpectedPass,
			"projection succeeded on a case expected to fail", c.Name, "")
	}

	original, err := document.LoadLeaves(m.resolve(c.Original))
	if err != nil {
		pc.fail(diagnostic.CodeLoad, err)

		return pc
	}

	projected, err := projectedLeaves(c.Projected, outcome)
	if err != nil {
		pc.fail(diagnostic.CodeLoad, err)

		return pc
	}

	policy, err := m.casePolicy(c, base)
	if err != nil {
		pc.fail(diagnostic.CodeLoad, err)

		return pc
	}

	log.Debugf("loaded %d original and %d projected leaves", original.Len(), projected.Len())

	pc.pair = reconcile.Pair{Name: c.Name, Original: original, Projected: projected, Policy: policy}
	pc.ready = true

	return pc
}

func projectedLeaves(name string, outcome projection.Outcome) (*tree.Leaves, error) {
	format, err := document.FormatOf(name, outcome.Document)
	if err != nil {
		return nil, err
	}

	root, err := document.Parse(format, outcome.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to parse projected document %s: %w", name, err)
	}

	leaves, err := tree.Extract(root)
	if err != nil {
		return nil, fmt.Errorf("failed to extract leaves from %s: %w", name, err)
	}

	return leaves, nil
}

// casePolicy merges the case's ingestion report into the shared policy.
func (m *Manifest) casePolicy(c Case, base reconcile.Policy) (reconcile.Policy, error) {
	if c.Ingestion == "" {
		return base, nil
	}

	ing, err := projection.LoadIngestionReport(m.resolve(c.Ingestion))
	if err != nil {
		return reconcile.Policy{}, err
	}

	expected, err := ing.ExpectedUnmapped()
	if err != nil {
		return reconcile.Policy{}, fmt.Errorf("invalid ingestion report %s: %w", c.Ingestion, err)
	}

	excluded, err := ing.Excluded()
	if err != nil {
		return reconcile.Policy{}, fmt.Errorf("invalid ingestion report %s: %w", c.Ingestion, err)
	}

	return reconcile.Policy{
		ExpectedUnmapped: exception.Union(base.ExpectedUnmapped, expected),
		Excluded:         exception.Union(base.Excluded, excluded),
	}, nil
}

func (pc *prepared) fail(code string, err error) {
	pc.result.Status = StatusError
	pc.result.Err = err
	pc.diags.AddError(code, err.Error(), pc.result.Name, "")
}

func (pc *prepared) evaluate(rep *report.MappingReport, log *logger.Logger) {
	pc.result.Report = rep

	for _, f := range rep.Failures() {
		log.Infof("Failed to map: %s ---> %s", f.Path, f.Value)
	}

	if added := rep.AddedPaths(); len(added) > 0 {
		pc.diags.AddInfo(diagnostic.CodeAddedPaths,
			fmt.Sprintf("%d paths present only in the projection", len(added)), pc.result.Name, "")
	}

	for _, r := range match.Relocations(rep, pc.pair.Projected, match.DefaultMinScore) {
		pc.diags.AddInfo(diagnostic.CodeRelocated,
			fmt.Sprintf("value %q possibly moved to %s (score %.2f)", r.Value, r.To, r.Score),
			pc.result.Name, r.From.String())
	}

	got := rep.Counts().Failed
	if got != pc.result.ExpectedFailures {
		pc.result.Status = StatusFailed
		pc.diags.AddError(diagnostic.CodeFailureCount,
			fmt.Sprintf("expected %d mapping failures, got %d", pc.result.ExpectedFailures, got),
			pc.result.Name, "")

		return
	}

	pc.result.Status = StatusPassed
}
