package text

import "regexp"

var (
	reNumbered  = regexp.MustCompile(`^(?:[0-9]+)?(?:1st|2nd|3rd|[0-9]th)$`)
	reRoutish   = regexp.MustCompile(`^\d+$`)
	reDriveEN   = regexp.MustCompile(`(?i)drive.?(in|through|thru)$`)
	reEinfahrt  = regexp.MustCompile(`(?i) einfahrt$`)
	reRemoveOcto = regexp.MustCompile(`(?i)^(HWY |HIGHWAY |RTE |ROUTE |US )#(\d+\s?.*)$`)
)

// undesirableTokens holds the unit-type words ext, connector, unit, apt,
// apts, suite and lot. They are compared against the canonical tokens
// AbbreviationTable.Process produces, so a word the table canonicalizes to a
// different spelling (suite to "ste", connector to "conn") does not match.
var undesirableTokens = map[string]bool{
	"ext": true, "connector": true, "unit": true, "apt": true,
	"apts": true, "suite": true, "lot": true,
}

// IsNumbered returns the first token matching an ordinal-numeral pattern
// (e.g. "21st", "11th", "351235th") and true, or "", false.
func IsNumbered(tokens []Token) (string, bool) {
	for _, t := range tokens {
		if reNumbered.MatchString(t.Token) {
			return t.Token, true
		}
	}
	return "", false
}

// IsRoutish returns the first purely-numeric token and true, or "", false.
func IsRoutish(tokens []Token) (string, bool) {
	for _, t := range tokens {
		if reRoutish.MatchString(t.Token) {
			return t.Token, true
		}
	}
	return "", false
}

var drivethroughCountries = map[string]bool{
	"US": true, "CA": true, "GB": true, "DE": true, "CH": true, "AT": true,
}

// IsDrivethrough reports whether text names a drive-through/drive-in
// business entrance, which conflation treats as a non-road feature.
func IsDrivethrough(text, country string) bool {
	if drivethroughCountries[country] && reDriveEN.MatchString(text) {
		return true
	}
	if country == "DE" && reEinfahrt.MatchString(text) {
		return true
	}
	return false
}

// IsUndesireable reports whether tokens contains a unit/extension-style
// token that should never anchor a match on its own.
func IsUndesireable(tokens []Token) bool {
	for _, t := range tokens {
		if undesirableTokens[t.Token] {
			return true
		}
	}
	return false
}

// StrRemoveOcto strips a literal "#" placed between a US highway-type prefix
// and its number, e.g. "Highway #12 West" -> "Highway 12 West".
func StrRemoveOcto(text string) string {
	return reRemoveOcto.ReplaceAllString(text, "$1$2")
}
