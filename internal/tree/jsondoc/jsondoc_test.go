package jsondoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtrip-verifier/internal/path"
	"roundtrip-verifier/internal/tree"
)

func extract(t *testing.T, doc string) []string {
	t.Helper()

	root, err := ParseBytes([]byte(doc))
	require.NoError(t, err)

	leaves, err := tree.Extract(root)
	require.NoError(t, err)

	var out []string
	leaves.Each(func(p path.Path, v string) {
		out = append(out, p.String()+"="+v)
	})

	return out
}

func TestParse(t *testing.T) {
	doc := `{
  "trade": {
    "tradeDate": "2024-01-02",
    "notional": 1.50,
    "cleared": true,
    "comment": null,
    "party": [
      {"id": "A"},
      {"id": "B"}
    ],
    "single": ["only"],
    "matrix": [[1, 2], [3]]
  }
}`

	assert.Equal(t, []string{
		"$.trade.tradeDate=2024-01-02",
		"$.trade.notional=1.50",
		"$.trade.cleared=true",
		"$.trade.comment=",
		"$.trade.party[0].id=A",
		"$.trade.party[1].id=B",
		"$.trade.single=only",
		"$.trade.matrix[0].matrix[0]=1",
		"$.trade.matrix[0].matrix[1]=2",
		"$.trade.matrix[1].matrix=3",
	}, extract(t, doc))
}

func TestParseTopLevelArray(t *testing.T) {
	assert.Equal(t, []string{"$.item[0]=1", "$.item[1]=x"}, extract(t, `[1, "x"]`))
}

func TestParseScalarRoot(t *testing.T) {
	assert.Equal(t, []string{"$=42"}, extract(t, `42`))
}

func TestReservedCharactersInKeys(t *testing.T) {
	got := extract(t, `{"config": {"com.example": "on", "a/b": "x", "list[0]": "y"}}`)

	assert.Equal(t, []string{
		`$.config.com\.example=on`,
		`$.config.a/b=x`,
		`$.config.list\[0\]=y`,
	}, got)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ``},
		{name: "unterminated object", input: `{"a": 1`},
		{name: "trailing data", input: `{"a": 1} {"b": 2}`},
		{name: "attribute key", input: `{"@a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.input))
			require.Error(t, err)
			require.ErrorIs(t, err, tree.ErrMalformedDocument)
		})
	}
}
