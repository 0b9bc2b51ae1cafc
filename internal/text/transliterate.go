package text

import "github.com/mozillazg/go-unidecode"

// Transliterate renders s as plain ASCII. Unlike Fold, which only removes
// accents from Latin and Greek letters, it collapses any script
// unidecode has a table for (Cyrillic, Han, Arabic, ...) to an ASCII
// approximation. It is for ASCII-only display surfaces, not matching: the
// linker works from Fold, never from Transliterate.
func Transliterate(s string) string {
	return unidecode.Unidecode(s)
}
