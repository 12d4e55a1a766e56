package report

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"roundtrip-verifier/internal/path"
)

// WriteText writes one "Failed to map" line per failure followed by a
// summary of the counts.
func (r *MappingReport) WriteText(w io.Writer, showAdded bool) error {
	for _, f := range r.Failures() {
		if _, err := fmt.Fprintf(w, "Failed to map: %s ---> %s\n", f.Path, f.Value); err != nil {
			return err
		}
	}

	if showAdded {
		for _, p := range r.added {
			if _, err := fmt.Fprintf(w, "Added in projection: %s\n", p); err != nil {
				return err
			}
		}
	}

	c := r.counts

	_, err := fmt.Fprintf(w, "total=%d matched=%d excluded=%d expected_gap=%d failed=%d added=%d reconciled=%t\n",
		c.Total, c.Matched, c.Excluded, c.ExpectedGap, c.Failed, len(r.added), r.IsFullyReconciled())

	return err
}

type jsonReport struct {
	Reconciled bool            `json:"reconciled"`
	Counts     Counts          `json:"counts"`
	Results    []MappingResult `json:"results"`
	Added      []path.Path     `json:"added,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r *MappingReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonReport{
		Reconciled: r.IsFullyReconciled(),
		Counts:     r.counts,
		Results:    r.results,
		Added:      r.added,
	})
}

// WriteJSON writes the report as indented JSON.
func (r *MappingReport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}
