// loader/tokenizer.go
package loader

import "unicode"

// tokenizeRow splits one data line of the telemetry log into field tokens.
//
// At each position it tries a double-quoted run (shortest one that works,
// quotes kept) or else a maximal run of characters that are neither '"', ','
// nor whitespace. A run is kept only when it is followed by optional
// whitespace and then a ',' or the end of the line. When nothing is kept the
// scan moves on by one character, so "a b,c" yields "b" and "c": the ground
// station writes free text quoted, and unquoted text with spaces loses words.
func tokenizeRow(line string) []string {
	rs := []rune(line)
	var tokens []string
	for i := 0; i < len(rs); {
		if end, ok := matchToken(rs, i); ok {
			tokens = append(tokens, string(rs[i:end]))
			i = end
			continue
		}
		i++
	}
	return tokens
}

// matchToken returns the end of the token starting at i, if any.
func matchToken(rs []rune, i int) (int, bool) {
	if rs[i] == '"' {
		for j := i + 1; j < len(rs); j++ {
			if isLineTerminator(rs[j]) {
				return 0, false
			}
			if rs[j] == '"' && atFieldEnd(rs, j+1) {
				return j + 1, true
			}
		}
		return 0, false
	}

	if !isBare(rs[i]) {
		return 0, false
	}
	j := i
	for j < len(rs) && isBare(rs[j]) {
		j++
	}
	// A shorter run would be followed by a bare character, so only the
	// maximal run can sit before a field end.
	if atFieldEnd(rs, j) {
		return j, true
	}
	return 0, false
}

// atFieldEnd reports whether position i is followed by optional whitespace
// and then a comma or the end of the line.
func atFieldEnd(rs []rune, i int) bool {
	for i < len(rs) && isSpace(rs[i]) {
		i++
	}
	return i == len(rs) || rs[i] == ','
}

func isBare(r rune) bool {
	return r != '"' && r != ',' && !isSpace(r)
}

// isSpace matches the whitespace class of the ground station's row pattern:
// ASCII controls, the Zs spaces, line and paragraph separators and the BOM.
// U+0085 is not included.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}
