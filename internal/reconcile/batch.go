package reconcile

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"roundtrip-verifier/internal/report"
	"roundtrip-verifier/internal/tree"
)

// Pair is one document pair to reconcile in a batch.
type Pair struct {
	Name      string
	Original  *tree.Leaves
	Projected *tree.Leaves
	Policy    Policy
}

// Outcome is the result of one Pair. Err is set only when the batch context
// was done before the pair started.
type Outcome struct {
	Name   string
	Report *report.MappingReport
	Err    error
}

// Batch reconciles independent pairs on at most workers goroutines
// (unbounded when workers <= 0). Outcomes are returned in input order.
func Batch(ctx context.Context, pairs []Pair, workers int) []Outcome {
	out := make([]Outcome, len(pairs))

	p := pool.New()
	if workers > 0 {
		p = p.WithMaxGoroutines(workers)
	}

	for i, pair := range pairs {
		p.Go(func() {
			out[i].Name = pair.Name

			if err := ctx.Err(); err != nil {
				out[i].Err = err

				return
			}

			out[i].Report = ReconcileWith(pair.Original, pair.Projected, pair.Policy)
		})
	}

	p.Wait()

	return out
}
