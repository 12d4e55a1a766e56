package match

import (
	"strings"

	"roundtrip-verifier/internal/path"
	"roundtrip-verifier/internal/report"
	"roundtrip-verifier/internal/tree"
)

// DefaultMinScore is the lowest combined score reported as a relocation.
const DefaultMinScore = 0.5

// Relocation suggests that the value of a failed original leaf was written
// to a different path in the projection.
type Relocation struct {
	From  path.Path
	To    path.Path
	Value string

	// NameScore is the similarity of the two leaf names.
	NameScore float64
	// ParentScore is the fraction of shared leading steps, ignoring indices.
	ParentScore float64
	// Score combines both; higher is better.
	Score float64
}

// Relocations returns, for each failure of rep that is absent from the
// projection, the best projected-only path with the same trimmed value, if
// it scores at least minScore. Each projected path is suggested at most once.
// Results follow the order of rep's failures.
func Relocations(rep *report.MappingReport, projected *tree.Leaves, minScore float64) []Relocation {
	added := rep.AddedPaths()
	if len(added) == 0 {
		return nil
	}

	used := make(map[string]bool, len(added))

	var out []Relocation

	for _, f := range rep.Failures() {
		if projected.Has(f.Path) {
			continue
		}

		best, ok := bestCandidate(f, added, projected, used)
		if !ok || best.Score < minScore {
			continue
		}

		used[best.To.Key()] = true
		out = append(out, best)
	}

	return out
}

func bestCandidate(f report.MappingResult, added []path.Path, projected *tree.Leaves, used map[string]bool) (Relocation, bool) {
	want := strings.TrimSpace(f.Value)

	var (
		best  Relocation
		found bool
	)

	for _, to := range added {
		if used[to.Key()] {
			continue
		}

		v, _ := projected.Get(to)
		if strings.TrimSpace(v) != want {
			continue
		}

		c := score(f.Path, to)
		c.Value = f.Value

		if !found || c.Score > best.Score || (c.Score == best.Score && to.Compare(best.To) < 0) {
			best, found = c, true
		}
	}

	return best, found
}

func score(from, to path.Path) Relocation {
	fromLast, toLast := from.Last(), to.Last()

	name := max(Similarity(fromLast.Name, toLast.Name), TokenOverlap(fromLast.Name, toLast.Name))
	if fromLast.IsAttr() != toLast.IsAttr() {
		name /= 2
	}

	parent := sharedPrefix(from.Steps(), to.Steps())

	return Relocation{
		From:        from,
		To:          to,
		NameScore:   name,
		ParentScore: parent,
		Score:       0.7*name + 0.3*parent,
	}
}

// sharedPrefix returns the fraction of leading element names a and b share,
// measured against the longer parent chain.
func sharedPrefix(a, b []path.Step) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	pa, pb := a[:len(a)-1], b[:len(b)-1]

	longest := max(len(pa), len(pb))
	if longest == 0 {
		return 1.0
	}

	n := 0
	for n < len(pa) && n < len(pb) && pa[n].Name == pb[n].Name {
		n++
	}

	return float64(n) / float64(longest)
}
