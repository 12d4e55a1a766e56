package exception

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"roundtrip-verifier/internal/path"
)

// Config is the on-disk form of the exception policy for one schema pair.
//
//	version: "1"
//	excluded:
//	  paths:
//	    - dataDocument.@fpmlVersion
//	  prefixes:
//	    - dataDocument.party[0].partyName
//	  globs:
//	    - "**.@xsi:schemaLocation"
//	expected_unmapped:
//	  - dataDocument.trade.tradeHeader.tradeDate.@id
type Config struct {
	// Version of the config schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Excluded lists paths ignored by the fidelity check.
	Excluded Rules `yaml:"excluded,omitempty"`

	// ExpectedUnmapped lists exact paths known to be lost on ingestion.
	ExpectedUnmapped []string `yaml:"expected_unmapped,omitempty"`
}

// Rules groups entries by match kind.
type Rules struct {
	Paths    []string `yaml:"paths,omitempty"`
	Prefixes []string `yaml:"prefixes,omitempty"`
	Globs    []string `yaml:"globs,omitempty"`
}

// IsEmpty returns true if no rule of any kind is present.
func (r Rules) IsEmpty() bool {
	return len(r.Paths) == 0 && len(r.Prefixes) == 0 && len(r.Globs) == 0
}

// Set builds the rules into a Set.
func (r Rules) Set() (*Set, error) {
	return NewBuilder().
		ExactStrings(r.Paths...).
		PrefixStrings(r.Prefixes...).
		Glob(r.Globs...).
		Build()
}

// LoadFile loads and parses an exception config file.
func LoadFile(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read exception config %s: %w", file, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse exception config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}
}

// Sets validates the config and returns the expected-unmapped and excluded sets.
func (c *Config) Sets() (expectedUnmapped, excluded *Set, err error) {
	paths, err := path.ParseAll(c.ExpectedUnmapped)
	if err != nil {
		return nil, nil, fmt.Errorf("expected_unmapped: %w", err)
	}

	expectedUnmapped = NewSet(paths...)

	excluded, err = c.Excluded.Set()
	if err != nil {
		return nil, nil, fmt.Errorf("excluded: %w", err)
	}

	return expectedUnmapped, excluded, nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path.
func WriteFile(cfg *Config, file string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal exception config: %w", err)
	}

	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write exception config %s: %w", file, err)
	}

	return nil
}
