package text

import (
	"regexp"
	"strings"
	"unicode"
)

var minorEN = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "en": true, "for": true, "from": true, "how": true, "if": true,
	"in": true, "neither": true, "nor": true, "of": true, "on": true,
	"only": true, "onto": true, "out": true, "or": true, "per": true,
	"so": true, "than": true, "that": true, "the": true, "to": true,
	"until": true, "up": true, "upon": true, "v": true, "v.": true,
	"versus": true, "vs": true, "vs.": true, "via": true, "when": true,
	"with": true, "without": true, "yet": true,
}

var majorEN = map[string]bool{"us": true, "dc": true}

var minorDE = map[string]bool{"du": true}

var reCardinalDots = regexp.MustCompile(`(?i)(^|\s)(n\.w\.|nw|n\.e\.|ne|s\.w\.|sw|s\.e\.|se)(\s|$)`)

var cardinalCanon = map[string]string{
	"nw": "NW", "n.w.": "NW",
	"ne": "NE", "n.e.": "NE",
	"sw": "SW", "s.w.": "SW",
	"se": "SE", "s.e.": "SE",
}

// Titlecase renders display for presentation: words are split on spaces
// only, and each hyphen-separated segment of a word is capitalized (so
// "abra-cada-bra" becomes "Abra-Cada-Bra"); other punctuation does not start
// a new capitalized segment. Each segment's first grapheme is uppercased and
// the remainder lowercased, with country/language exceptions
// for minor words, "US"/"DC", and a single cardinal-direction normalization
// pass.
func Titlecase(display string, country, region string) string {
	s := collapseSpace(display)
	words := splitKeepingHyphens(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		if (country == "US" || country == "CA") && majorEN[lower] {
			words[i] = strings.ToUpper(w)
			continue
		}
		if i > 0 && (country == "US" || country == "CA") && minorEN[lower] {
			words[i] = lower
			continue
		}
		if i > 0 && country == "DE" && minorDE[lower] {
			words[i] = lower
			continue
		}
		words[i] = titleWord(w)
	}
	out := strings.Join(words, " ")
	if country == "US" || country == "CA" {
		out = normalizeCardinalsOnce(out)
	}
	return out
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitKeepingHyphens splits on spaces only; hyphen-containing words are
// title-cased hyphen-segment by hyphen-segment by titleWord itself.
func splitKeepingHyphens(s string) []string {
	return strings.Split(s, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	segments := strings.Split(w, "-")
	for i, seg := range segments {
		segments[i] = titleSegment(seg)
	}
	return strings.Join(segments, "-")
}

func titleSegment(seg string) string {
	if seg == "" {
		return seg
	}
	runes := []rune(seg)
	first := unicode.ToUpper(runes[0])
	rest := strings.ToLower(string(runes[1:]))
	return string(first) + rest
}

// normalizeCardinalsOnce replaces only the first whitespace-delimited
// cardinal-direction token (with or without dots) with its unpunctuated
// uppercase form, matching the single-replace behavior of the reference
// generator this is ported from.
func normalizeCardinalsOnce(s string) string {
	loc := reCardinalDots.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	matchedWord := s[loc[4]:loc[5]]
	canon, ok := cardinalCanon[strings.ToLower(matchedWord)]
	if !ok {
		return s
	}
	return s[:loc[4]] + canon + s[loc[5]:]
}
