package contact

import (
	"strings"
	"unicode"
)

// foldTable maps the accented vowels and ñ seen in real-world contact
// headers to their unaccented equivalents. Runes outside the table pass
// through unchanged; lowercasing happens before folding, so only
// lowercase entries are needed.
var foldTable = map[rune]rune{
	'á': 'a',
	'é': 'e',
	'í': 'i',
	'ó': 'o',
	'ú': 'u',
	'ü': 'u',
	'ñ': 'n',
}

// NormalizeColumn reduces a raw header label to its canonical comparable
// form: surrounding whitespace trimmed, lowercased, accents folded,
// internal whitespace removed. Two raw labels name the same column iff
// their normalized forms are equal. The function is pure and idempotent.
func NormalizeColumn(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		if folded, ok := foldTable[r]; ok {
			return folded
		}
		return r
	}, label)
}
