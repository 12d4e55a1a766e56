package exception

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtrip-verifier/internal/path"
)

func TestContainsIsExact(t *testing.T) {
	s := NewSet(path.MustParse("a.b"), path.MustParse("a.c[1]"))

	assert.True(t, s.Contains(path.MustParse("a.b")))
	assert.True(t, s.Contains(path.MustParse("a.c[1]")))
	assert.False(t, s.Contains(path.MustParse("a.c")))
	assert.False(t, s.Contains(path.MustParse("a.b.x")))
	assert.Equal(t, 2, s.Len())
}

func TestNilSetIsEmpty(t *testing.T) {
	var s *Set

	assert.False(t, s.Contains(path.Root("a")))
	assert.False(t, s.Matches(path.Root("a")))
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.Paths())
}

func TestMatches(t *testing.T) {
	s, err := NewBuilder().
		ExactStrings("doc.@fpmlVersion").
		PrefixStrings("doc.party[0]").
		Glob("**.@schemaLocation", "doc.trade.leg[*].notional", "doc.*Header.**").
		Build()
	require.NoError(t, err)

	tests := []struct {
		path     string
		expected bool
	}{
		{path: "doc.@fpmlVersion", expected: true},
		{path: "doc.party[0]", expected: true},
		{path: "doc.party[0].partyId", expected: true},
		{path: "doc.party[0].partyId.@scheme", expected: true},
		{path: "doc.party[1].partyId", expected: false},
		{path: "doc.@schemaLocation", expected: true},
		{path: "doc.a.b.c.@schemaLocation", expected: true},
		{path: "doc.trade.leg[0].notional", expected: true},
		{path: "doc.trade.leg[17].notional", expected: true},
		{path: "doc.trade.leg.notional", expected: false},
		{path: "doc.tradeHeader.tradeDate", expected: true},
		{path: "doc.trade.tradeDate", expected: false},
		{path: "doc.other", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Matches(path.MustParse(tt.path)))
		})
	}
}

func TestUnindexedPrefixCoversRepetitions(t *testing.T) {
	s, err := NewBuilder().PrefixStrings("doc.party").Build()
	require.NoError(t, err)

	assert.True(t, s.Matches(path.MustParse("doc.party.id")))
	assert.True(t, s.Matches(path.MustParse("doc.party[0].id")))
	assert.True(t, s.Matches(path.MustParse("doc.party[1].id")))
	assert.False(t, s.Matches(path.MustParse("doc.partyId")))
	assert.False(t, s.Matches(path.MustParse("doc.trade.party.id")))
}

func TestGlobReservedCharactersInNames(t *testing.T) {
	s, err := NewBuilder().Glob(`$.config.com\.example`, "$.links.*", "**.a/b").Build()
	require.NoError(t, err)

	assert.True(t, s.Matches(path.MustParse(`$.config.com\.example`)))
	assert.False(t, s.Matches(path.MustParse("$.config.com.example")))
	assert.True(t, s.Matches(path.MustParse("$.links.http://x/y")), "a slash inside a name stays in one step")
	assert.True(t, s.Matches(path.MustParse("$.deep.a/b")))
	assert.False(t, s.Matches(path.MustParse("$.deep.a.b")))

	_, err = NewBuilder().Glob(`a\`).Build()
	require.Error(t, err)
}

func TestLiteralIndexGlob(t *testing.T) {
	s, err := NewBuilder().Glob("doc.leg[1].*").Build()
	require.NoError(t, err)

	assert.True(t, s.Matches(path.MustParse("doc.leg[1].rate")))
	assert.False(t, s.Matches(path.MustParse("doc.leg[0].rate")))
	assert.False(t, s.Matches(path.MustParse("doc.leg1.rate")))
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder().
		ExactStrings("a[").
		PrefixStrings("").
		Glob("a.{b").
		Build()
	require.Error(t, err)
	require.ErrorIs(t, err, path.ErrMalformedPath)
	assert.Contains(t, err.Error(), "exact entry")
	assert.Contains(t, err.Error(), "prefix entry")
	assert.Contains(t, err.Error(), `invalid glob "a.{b"`)
}

func TestUnion(t *testing.T) {
	a := NewSet(path.MustParse("a"))
	b, err := NewBuilder().Exact(path.MustParse("a"), path.MustParse("b")).PrefixStrings("c").Build()
	require.NoError(t, err)

	u := Union(a, nil, b)
	assert.Equal(t, []string{"a", "b"}, pathStrings(u.Paths()))
	assert.True(t, u.Matches(path.MustParse("c.d")))
	assert.Equal(t, 3, u.Len())
}

func TestNewSetDeduplicates(t *testing.T) {
	s := NewSet(path.MustParse("a.b"), path.Root("a").Child("b"))
	assert.Equal(t, 1, s.Len())
}

func pathStrings(paths []path.Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}

	return out
}
