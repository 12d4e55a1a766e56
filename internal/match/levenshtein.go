package match

// Levenshtein returns the edit distance between a and b counted in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(ra); i++ {
			up := row[i]

			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			row[i] = min(up+1, row[i-1]+1, diag+cost)
			diag = up
		}
	}

	return row[len(ra)]
}

// Similarity returns 1 - distance/maxlen over normalized names, in [0, 1].
func Similarity(a, b string) float64 {
	na, nb := NormalizeName(a), NormalizeName(b)

	longest := max(len([]rune(na)), len([]rune(nb)))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(na, nb))/float64(longest)
}

// TokenOverlap returns the share of camelCase words the two names have in
// common, relative to the name with more words.
func TokenOverlap(a, b string) float64 {
	ta, tb := Tokens(a), Tokens(b)

	longest := max(len(ta), len(tb))
	if longest == 0 {
		return 1.0
	}

	seen := make(map[string]int, len(ta))
	for _, t := range ta {
		seen[t]++
	}

	shared := 0

	for _, t := range tb {
		if seen[t] > 0 {
			seen[t]--
			shared++
		}
	}

	return float64(shared) / float64(longest)
}
