package xmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtrip-verifier/internal/path"
	"roundtrip-verifier/internal/tree"
)

const sample = `<?xml version="1.0" encoding="utf-8"?>
<!-- sample confirmation -->
<dataDocument xmlns="http://www.fpml.org/FpML-5/confirmation"
              xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
              xsi:schemaLocation="http://www.fpml.org/FpML-5/confirmation ../fpml-main-5-10.xsd"
              fpmlVersion="5-10">
  <trade>
    <tradeHeader>
      <partyTradeIdentifier>
        <partyReference href="party1"/>
        <tradeId tradeIdScheme="http://www.partyA.com/swaps/trade-id">TW9235</tradeId>
      </partyTradeIdentifier>
      <tradeDate>1994-12-12</tradeDate>
    </tradeHeader>
  </trade>
  <party id="party1">
    <partyId>  PARTYA  </partyId>
  </party>
  <party id="party2">
    <partyId><![CDATA[PARTYB]]></partyId>
  </party>
</dataDocument>
`

func TestParse(t *testing.T) {
	root, err := ParseBytes([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "dataDocument", root.Name)
	require.Len(t, root.Attrs, 2)
	assert.Equal(t, tree.Attr{Name: "xsi:schemaLocation", Value: "http://www.fpml.org/FpML-5/confirmation ../fpml-main-5-10.xsd"}, root.Attrs[0])
	assert.Equal(t, tree.Attr{Name: "fpmlVersion", Value: "5-10"}, root.Attrs[1])
	assert.Len(t, root.Children, 3)

	leaves, err := tree.Extract(root)
	require.NoError(t, err)

	get := func(s string) string {
		v, ok := leaves.Get(path.MustParse(s))
		require.True(t, ok, s)

		return v
	}

	assert.Equal(t, "party1", get("dataDocument.trade.tradeHeader.partyTradeIdentifier.partyReference.@href"))
	assert.Equal(t, "TW9235", get("dataDocument.trade.tradeHeader.partyTradeIdentifier.tradeId"))
	assert.Equal(t, "1994-12-12", get("dataDocument.trade.tradeHeader.tradeDate"))
	assert.Equal(t, "  PARTYA  ", get("dataDocument.party[0].partyId"))
	assert.Equal(t, "PARTYB", get("dataDocument.party[1].partyId"))
	assert.Equal(t, "party2", get("dataDocument.party[1].@id"))
	assert.False(t, leaves.Has(path.MustParse("dataDocument.trade")))
}

func TestNamespacedAttributesStayDistinct(t *testing.T) {
	doc := `<a xmlns:x="urn:x" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" x:href="1" href="2">
  <b xsi:type="T" type="plain" xml:lang="en"/>
  <c xmlns:y="urn:x" y:href="3"/>
</a>`

	root, err := ParseBytes([]byte(doc))
	require.NoError(t, err)

	leaves, err := tree.Extract(root)
	require.NoError(t, err)

	var got []string
	leaves.Each(func(p path.Path, v string) {
		got = append(got, p.String()+"="+v)
	})

	assert.Equal(t, []string{
		"a.@x:href=1",
		"a.@href=2",
		"a.b.@xsi:type=T",
		"a.b.@type=plain",
		"a.b.@xml:lang=en",
		"a.c.@y:href=3",
	}, got)
}

func TestDottedElementNames(t *testing.T) {
	root, err := ParseBytes([]byte(`<a><b.c>1</b.c></a>`))
	require.NoError(t, err)

	leaves, err := tree.Extract(root)
	require.NoError(t, err)

	v, ok := leaves.Get(path.MustParse(`a.b\.c`))
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "unterminated", input: "<a><b>1</b>"},
		{name: "mismatched", input: "<a><b>1</c></a>"},
		{name: "two roots", input: "<a/><b/>"},
		{name: "text outside root", input: "<a/>junk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.input))
			require.Error(t, err)
			require.ErrorIs(t, err, tree.ErrMalformedDocument)

			var mde *tree.MalformedDocumentError
			require.ErrorAs(t, err, &mde)
			assert.Equal(t, "xml", mde.Format)
		})
	}
}
