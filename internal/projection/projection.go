package projection

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"roundtrip-verifier/internal/exception"
	"roundtrip-verifier/internal/path"
)

// ErrUnsupportedProjectionTarget is matched by every UnsupportedTargetError.
var ErrUnsupportedProjectionTarget = errors.New("unsupported projection target")

// UnsupportedTargetError reports that the projector cannot build the
// requested target document from the canonical model.
type UnsupportedTargetError struct {
	// Target names the requested document type (e.g. "RequestClearing").
	Target string
	// Reason is the projector's explanation.
	Reason string
}

func (e *UnsupportedTargetError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot project to %s", e.Target)
	}

	return fmt.Sprintf("cannot project to %s: %s", e.Target, e.Reason)
}

func (e *UnsupportedTargetError) Unwrap() error {
	return ErrUnsupportedProjectionTarget
}

// Outcome is the typed result of a projection attempt. Exactly one of
// Document and Err is set.
type Outcome struct {
	Document []byte
	Err      error
}

// Succeeded wraps a projected document.
func Succeeded(doc []byte) Outcome {
	return Outcome{Document: doc}
}

// Unsupported builds a failed outcome for the given target.
func Unsupported(target, reason string) Outcome {
	return Outcome{Err: &UnsupportedTargetError{Target: target, Reason: reason}}
}

// OK returns true when a document was produced.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// IsUnsupported returns true when the projector rejected the target.
func (o Outcome) IsUnsupported() bool {
	return errors.Is(o.Err, ErrUnsupportedProjectionTarget)
}

// Failure is one field ingestion could not map into the canonical model.
type Failure struct {
	// ExternalPath locates the field in the original wire document.
	ExternalPath string `yaml:"external_path"`
	// Value is the original value.
	Value string `yaml:"value,omitempty"`
	// Reason is optional free text from the mapper.
	Reason string `yaml:"reason,omitempty"`
}

// IngestionReport is the slice of an ingestion run consumed here.
type IngestionReport struct {
	// Failures lists fields that did not survive ingestion.
	Failures []Failure `yaml:"failures,omitempty"`
	// ExcludedPaths lists paths ingestion deliberately skips.
	ExcludedPaths []string `yaml:"excluded_paths,omitempty"`
}

// ExpectedUnmapped returns the failure paths as an exact-match set.
func (r *IngestionReport) ExpectedUnmapped() (*exception.Set, error) {
	if r == nil {
		return exception.NewSet(), nil
	}

	paths := make([]path.Path, 0, len(r.Failures))

	for i, f := range r.Failures {
		p, err := path.Parse(f.ExternalPath)
		if err != nil {
			return nil, fmt.Errorf("failure %d: %w", i, err)
		}

		paths = append(paths, p)
	}

	return exception.NewSet(paths...), nil
}

// Excluded returns the excluded paths as an exact-match set.
func (r *IngestionReport) Excluded() (*exception.Set, error) {
	if r == nil {
		return exception.NewSet(), nil
	}

	set, err := exception.NewBuilder().ExactStrings(r.ExcludedPaths...).Build()
	if err != nil {
		return nil, fmt.Errorf("excluded paths: %w", err)
	}

	return set, nil
}

// LoadIngestionReport reads a YAML ingestion report.
func LoadIngestionReport(file string) (*IngestionReport, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read ingestion report %s: %w", file, err)
	}

	return ParseIngestionReport(data)
}

// ParseIngestionReport parses YAML data into an IngestionReport.
func ParseIngestionReport(data []byte) (*IngestionReport, error) {
	var r IngestionReport

	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse ingestion report YAML: %w", err)
	}

	return &r, nil
}
