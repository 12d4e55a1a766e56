package exception

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtrip-verifier/internal/path"
)

func TestParseConfig(t *testing.T) {
	yaml := `
version: "1"
excluded:
  paths:
    - dataDocument.@fpmlVersion
  prefixes:
    - dataDocument.party[1]
  globs:
    - "**.@xsi:schemaLocation"
expected_unmapped:
  - dataDocument.trade.tradeHeader.tradeDate
  - dataDocument.trade.swap.swapStream[0].@id
`

	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, []string{"dataDocument.@fpmlVersion"}, cfg.Excluded.Paths)
	assert.Len(t, cfg.ExpectedUnmapped, 2)

	expected, excluded, err := cfg.Sets()
	require.NoError(t, err)

	assert.True(t, expected.Contains(path.MustParse("dataDocument.trade.swap.swapStream[0].@id")))
	assert.True(t, excluded.Matches(path.MustParse("dataDocument.party[1].partyId")))
	assert.True(t, excluded.Matches(path.MustParse("dataDocument.@xsi:schemaLocation")))
	assert.False(t, excluded.Matches(path.MustParse("dataDocument.trade.tradeHeader.tradeDate")))
}

func TestParseConfigMinimal(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version) // Default version
	assert.True(t, cfg.Excluded.IsEmpty())

	expected, excluded, err := cfg.Sets()
	require.NoError(t, err)
	assert.True(t, expected.IsEmpty())
	assert.True(t, excluded.IsEmpty())
}

func TestConfigSetsRejectsMalformedPaths(t *testing.T) {
	cfg, err := Parse([]byte("expected_unmapped: ['a[x]']"))
	require.NoError(t, err)

	_, _, err = cfg.Sets()
	require.ErrorIs(t, err, path.ErrMalformedPath)
	assert.Contains(t, err.Error(), "expected_unmapped")
}

func TestParseConfigInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("excluded: [unclosed"))
	require.Error(t, err)
}

func TestWriteAndLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "exceptions.yaml")

	cfg := &Config{
		Excluded:         Rules{Globs: []string{"**.@id"}},
		ExpectedUnmapped: []string{"a.b"},
	}

	require.NoError(t, WriteFile(cfg, file))

	loaded, err := LoadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "1", loaded.Version)
	assert.Equal(t, cfg.Excluded, loaded.Excluded)
	assert.Equal(t, cfg.ExpectedUnmapped, loaded.ExpectedUnmapped)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
