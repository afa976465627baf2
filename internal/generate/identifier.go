package generate

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold strips diacritics so accented document names still yield plain
// ASCII identifiers (Résumé -> Resume).
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var titleCaser = cases.Title(language.English, cases.NoLower)

// Identifier derives an exported entry-function name from a document name
// (usually the file name without extension). Words are split on any
// non-alphanumeric rune and title-cased; a name that would start with a digit
// gets a "Page" prefix, and an empty result falls back to "Page".
func Identifier(name string) string {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}

	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(titleCaser.String(w))
	}

	out := sb.String()
	// Drop any non-ASCII leftovers the fold could not translate.
	out = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, out)

	if out == "" {
		return "Page"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "Page" + out
	}
	return out
}
