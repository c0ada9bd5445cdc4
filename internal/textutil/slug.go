package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent decomposes characters and drops combining marks, so that
// "Almodóvar" slugs to "almodovar".
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug converts a name into a lowercase hyphenated tag token. Diacritics are
// stripped, letters and digits are kept, and every other run of characters
// collapses into a single hyphen. Returns "" for input with no usable
// characters.
func Slug(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if plain, _, err := transform.String(deaccent, value); err == nil {
		value = plain
	}

	var b strings.Builder
	b.Grow(len(value))
	pendingHyphen := false
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}
