package match

import (
	"strings"
	"unicode"

	"roundtrip-verifier/internal/path"
)

// NormalizeName lowercases an element or attribute name and drops the
// attribute marker and separators, so "@href", "HREF" and "h-ref" compare
// equal.
func NormalizeName(s string) string {
	s = strings.TrimPrefix(s, path.AttrPrefix)

	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Tokens splits a camelCase element name into lowercase words.
//
//	"adjustedPaymentDate" -> ["adjusted", "payment", "date"]
//	"partyReference"      -> ["party", "reference"]
//	"FpML"                -> ["fp", "ml"]
func Tokens(s string) []string {
	s = strings.TrimPrefix(s, path.AttrPrefix)

	var (
		tokens []string
		cur    []rune
	)

	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case isSeparator(r):
			flush()

			continue
		case unicode.IsUpper(r) && i > 0:
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				flush()
			}
		}

		cur = append(cur, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
