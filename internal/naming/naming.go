// Package naming holds the single normalization rule shared by logo file names
// and category lookups. Both sides must go through Key or lookups miss.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key canonicalizes a label: Unicode normalization, accent folding, ASCII only,
// lower case, whitespace runs collapsed to a single underscore.
//
//	"Universidad de Chile" -> "universidad_de_chile"
//	"Unión Española"       -> "union_espanola"
func Key(label string) string {
	folded, _, err := transform.String(folder(), label)
	if err != nil {
		folded = norm.NFC.String(label)
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r) || r == '_':
			pendingSep = b.Len() > 0
		case r > unicode.MaxASCII || !unicode.IsPrint(r):
			// dropped
		default:
			if pendingSep {
				b.WriteByte('_')
				pendingSep = false
			}
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// folder is rebuilt per call; transform chains carry state and are not safe to share.
func folder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// FileName returns the canonical logo file name for a label.
func FileName(label string) string {
	return Key(label) + ".png"
}
