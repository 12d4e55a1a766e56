package suite

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"roundtrip-verifier/internal/projection"
)

// Manifest is a list of fidelity cases sharing one exception config.
type Manifest struct {
	// Version of the manifest schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Exceptions is an optional exception config applied to every case.
	Exceptions string `yaml:"exceptions,omitempty"`

	// Cases lists the document pairs to verify.
	Cases []Case `yaml:"cases"`

	// file is the manifest's path when loaded from disk.
	file string

	// dir is the directory relative paths resolve against.
	dir string
}

// Case is one original document and its expected round-trip outcome.
type Case struct {
	// Name identifies the case; defaults to the original file's base name.
	Name string `yaml:"name,omitempty"`

	// Original is the source wire document.
	Original string `yaml:"original"`

	// Projected is the re-projected wire document. Empty means projection failed.
	Projected string `yaml:"projected,omitempty"`

	// Target names the projected document type.
	Target string `yaml:"target,omitempty"`

	// ProjectionError is the projector's message when Projected is empty.
	ProjectionError string `yaml:"projection_error,omitempty"`

	// Ingestion is an optional ingestion report for the original document.
	Ingestion string `yaml:"ingestion,omitempty"`

	// Pass is whether projection is expected to succeed. Defaults to true.
	Pass *bool `yaml:"pass,omitempty"`

	// MappingFailures is the expected number of Failed verdicts.
	MappingFailures int `yaml:"mapping_failures"`
}

// ExpectPass returns the effective pass expectation.
func (c Case) ExpectPass() bool {
	return c.Pass == nil || *c.Pass
}

// LoadManifest loads and parses a manifest file. Relative paths in the
// manifest resolve against its directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}

	m.file = path
	m.dir = filepath.Dir(path)

	return m, nil
}

// ParseManifest parses YAML data into a Manifest. Relative paths resolve
// against the working directory.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest

	err := yaml.Unmarshal(data, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&m)

	if err := validate(&m); err != nil {
		return nil, err
	}

	return &m, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(m *Manifest) {
	if m.Version == "" {
		m.Version = "1"
	}

	for i := range m.Cases {
		c := &m.Cases[i]
		if c.Name == "" && c.Original != "" {
			c.Name = filepath.Base(c.Original)
		}
	}
}

func validate(m *Manifest) error {
	seen := make(map[string]int, len(m.Cases))

	for i, c := range m.Cases {
		if c.Original == "" {
			return fmt.Errorf("case %d: original is required", i)
		}

		if c.MappingFailures < 0 {
			return fmt.Errorf("case %s: mapping_failures must not be negative", c.Name)
		}

		if prev, ok := seen[c.Name]; ok {
			return fmt.Errorf("case %d: duplicate name %q (first used by case %d)", i, c.Name, prev)
		}

		seen[c.Name] = i
	}

	return nil
}

// File returns the path the manifest was loaded from, or "" when parsed
// from memory.
func (m *Manifest) File() string {
	return m.file
}

// resolve makes a manifest-relative path usable from the working directory.
func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.dir == "" {
		return p
	}

	return filepath.Join(m.dir, p)
}

// projectionOutcome reads the projected document, or reports the projector
// failure recorded in the manifest.
func (m *Manifest) projectionOutcome(c Case) (projection.Outcome, error) {
	if c.Projected == "" {
		return projection.Unsupported(c.Target, c.ProjectionError), nil
	}

	data, err := os.ReadFile(m.resolve(c.Projected))
	if err != nil {
		return projection.Outcome{}, fmt.Errorf("failed to read projected document: %w", err)
	}

	return projection.Succeeded(data), nil
}
