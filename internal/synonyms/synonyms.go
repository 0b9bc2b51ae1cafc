// Package synonyms implements the pure (Name, Context) -> []Name generator
// functions that expand a network-sourced street name into the aliases a
// matching candidate might actually use.
package synonyms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/roadlink/conflate/internal/types"
)

// displayPriority is the priority assigned to the primary generated display
// form: input.Priority+1 when non-negative, else -1.
func displayPriority(input types.Name) int {
	if input.Priority >= 0 {
		return input.Priority + 1
	}
	return -1
}

// priorityOffset is the base for secondary/alias synonyms: never above 0,
// and never above the input's own priority.
func priorityOffset(input types.Name) int {
	if input.Priority < 0 {
		return input.Priority
	}
	return 0
}

func gen(display string, priority int, ctx *types.Context) types.Name {
	return types.New(display, priority, types.SourceGenerated, ctx)
}

var reNumberSuffix = regexp.MustCompile(`(?i)^(\d+)\s+(\w.*)$`)

// NumberSuffix turns "1 Avenue" into "1st Avenue", etc.
func NumberSuffix(input types.Name, ctx *types.Context) []types.Name {
	m := reNumberSuffix.FindStringSubmatch(input.Display)
	if m == nil {
		return nil
	}
	num, _ := strconv.Atoi(m[1])
	suffix := ordinalSuffix(num)
	display := fmt.Sprintf("%d%s %s", num, suffix, m[2])
	return []types.Name{gen(display, -1, ctx)}
}

func ordinalSuffix(n int) string {
	if n%100 >= 10 && n%100 <= 20 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

var reWrittenNumeric = regexp.MustCompile(`(?i)^(.*)(Twenty|Thirty|Fourty|Fifty|Sixty|Seventy|Eighty|Ninety)-(First|Second|Third|Fourth|Fifth|Sixth|Seventh|Eighth|Ninth)(.*)$`)

// numericTensMap preserves the nonstandard "fourty" spelling on purpose: it
// matches existing production data and must not be "corrected" to "forty".
var numericTensMap = map[string]string{
	"twenty": "2", "thirty": "3", "fourty": "4", "fifty": "5",
	"sixty": "6", "seventy": "7", "eighty": "8", "ninety": "9",
}

var numericOrdinalMap = map[string]string{
	"first": "1st", "second": "2nd", "third": "3rd", "fourth": "4th",
	"fifth": "5th", "sixth": "6th", "seventh": "7th", "eighth": "8th",
	"ninth": "9th",
}

// WrittenNumeric turns "Twenty-Third Avenue" into "23rd Avenue".
func WrittenNumeric(input types.Name, ctx *types.Context) []types.Name {
	m := reWrittenNumeric.FindStringSubmatch(input.Display)
	if m == nil {
		return nil
	}
	tens := numericTensMap[strings.ToLower(m[2])]
	ones := numericOrdinalMap[strings.ToLower(m[3])]
	display := m[1] + tens + ones + m[4]
	return []types.Name{gen(display, -1, ctx)}
}

var reUsCr = regexp.MustCompile(`(?i)^(CR |County Road )(\d+)$`)

// UsCr turns "CR 5" / "County Road 5" into both forms.
func UsCr(input types.Name, ctx *types.Context) []types.Name {
	m := reUsCr.FindStringSubmatch(input.Display)
	if m == nil {
		return nil
	}
	num := m[2]
	dp := displayPriority(input)
	po := priorityOffset(input)
	return []types.Name{
		gen("County Road "+num, dp, ctx),
		gen("CR "+num, po-1, ctx),
	}
}

var reUsHwy = regexp.MustCompile(`(?i)^(U\.?S\.?|United States)(\s|-)(Rte |Route |Hwy |Highway )?(\d+)$`)

// UsHwy expands any US-route spelling to the canonical "US Route N" plus
// four aliases.
func UsHwy(input types.Name, ctx *types.Context) []types.Name {
	m := reUsHwy.FindStringSubmatch(input.Display)
	if m == nil {
		return nil
	}
	num := m[4]
	dp := displayPriority(input)
	po := priorityOffset(input)
	return []types.Name{
		gen("US Route "+num, dp, ctx),
		gen("US "+num, po-1, ctx),
		gen("US Highway "+num, po-1, ctx),
		gen("United States Route "+num, po-1, ctx),
		gen("United States Highway "+num, po-1, ctx),
	}
}

var rePreHwy = regexp.MustCompile(`(?i)^(?:(St\.?|State)\s+(?:Highway|Hwy)\.?\s+(\d+)|(St\.?|State)\s+(?:Route|Rte)\.?\s+(\d+)|([A-Za-z ]+?)\s+(?:Highway|Hwy|hwy)\.?\s+(\d+)|([A-Za-z ]+?)\s+(?:Route|Rte|rte)\.?\s+(\d+)|(?:US-)?([A-Za-z]{2})\s+(?:Highway|Hwy|Route|Rte)\.?\s+(\d+))$`)
var rePostHwy = regexp.MustCompile(`(?i)^(Highway|Hwy|Route|Rte)\s+(\d+)$`)

// StateHwy requires a region context; it accepts a wide range of state
// highway spellings and produces the region's canonical display form plus
// six lower-priority aliases.
func StateHwy(input types.Name, ctx *types.Context) []types.Name {
	regionName, ok := ctx.RegionName()
	if !ok {
		return nil
	}
	num := extractStateHwyNumber(input.Display)
	if num == "" {
		return nil
	}
	dp := displayPriority(input)
	po := priorityOffset(input)
	abbr := ctx.Region
	return []types.Name{
		gen(regionName+" Highway "+num, dp, ctx),
		gen(abbr+" "+num+" Highway", po-2, ctx),
		gen(abbr+" "+num, po-1, ctx),
		gen("Highway "+num, po-2, ctx),
		gen("SR "+num, po-1, ctx),
		gen("State Highway "+num, po-1, ctx),
		gen("State Route "+num, po-1, ctx),
	}
}

func extractStateHwyNumber(display string) string {
	if m := rePreHwy.FindStringSubmatch(display); m != nil {
		for _, num := range []string{m[2], m[4], m[6], m[8], m[10]} {
			if num != "" {
				return num
			}
		}
	}
	if m := rePostHwy.FindStringSubmatch(display); m != nil {
		return m[2]
	}
	return ""
}

var reJFK = regexp.MustCompile(`(?i)^(?P<pre>.*\s)?(?:JFK|John F\.? Kennedy)(?P<post>\s.*|)$`)
var reMLKJR = regexp.MustCompile(`(?i)^(?P<pre>.*\s)?(?:MLK|M\.?\s?L\.?\s?K\.?|Martin Luther King)(?:\s+(?:Jr\.?|Junior))?(?P<post>\s.*|)$`)

// UsFamous expands JFK and Martin Luther King Jr name families.
func UsFamous(input types.Name, ctx *types.Context) []types.Name {
	var out []types.Name
	if m := reJFK.FindStringSubmatch(input.Display); m != nil {
		pre, post := namedGroups(reJFK, m, "pre", "post")
		dp := displayPriority(input)
		po := priorityOffset(input)
		out = append(out,
			gen(pre+"John F Kennedy"+post, dp, ctx),
			gen(pre+"JFK"+post, po-1, ctx),
		)
	}
	if m := reMLKJR.FindStringSubmatch(input.Display); m != nil {
		pre, post := namedGroups(reMLKJR, m, "pre", "post")
		dp := displayPriority(input)
		po := priorityOffset(input)
		out = append(out,
			gen(pre+"Martin Luther King Jr"+post, dp, ctx),
			gen(pre+"MLK"+post, po-1, ctx),
			gen(pre+"M L K"+post, po-1, ctx),
			gen(pre+"Martin Luther King"+post, po-1, ctx),
			gen(pre+"MLK Jr"+post, po-1, ctx),
			gen(pre+"M L K Jr"+post, po-1, ctx),
		)
	}
	return out
}

func namedGroups(re *regexp.Regexp, m []string, names ...string) (string, string) {
	out := make([]string, len(names))
	for i, name := range names {
		idx := re.SubexpIndex(name)
		if idx >= 0 && idx < len(m) {
			out[i] = m[idx]
		}
	}
	return out[0], out[1]
}

var reCaHwyNum = regexp.MustCompile(`(?i)^\d+[a-z]?$`)
var reCaHwyProvDash = regexp.MustCompile(`(?i)^(ON|QC|NS|NB|MB|BC|PE|PEI|SK|AB|NL|NT|YT|NU)-(\d+[a-z]?)$`)
var reCaHwyWord = regexp.MustCompile(`(?i)^(?:Highway|hwy|Route|rte|King's Highway)\.?\s+(\d+[a-z]?)$`)
var reCaHwyFull = regexp.MustCompile(`(?i)^([A-Za-z ]+)\s+(?:Highway|hwy|Route|rte)\.?\s+(\d+[a-z]?)$`)

// CaHwy requires a region context and suppresses the Trans-Canada "1".
func CaHwy(input types.Name, ctx *types.Context) []types.Name {
	regionName, ok := ctx.RegionName()
	if !ok {
		return nil
	}
	if input.Display == "1" {
		return nil
	}
	num := extractCaHwyNumber(input.Display)
	if num == "" {
		return nil
	}
	hwyType := "Route"
	switch ctx.Region {
	case "NB", "NL", "PE", "QC":
		hwyType = "Highway"
	}
	dp := displayPriority(input)
	po := priorityOffset(input)
	return []types.Name{
		gen(regionName+" "+hwyType+" "+num, dp, ctx),
		gen("Highway "+num, po-1, ctx),
		gen("Route "+num, po-1, ctx),
		gen(ctx.Region+" "+num, po-2, ctx),
	}
}

func extractCaHwyNumber(display string) string {
	if reCaHwyNum.MatchString(display) {
		return display
	}
	if m := reCaHwyProvDash.FindStringSubmatch(display); m != nil {
		return m[2]
	}
	if m := reCaHwyWord.FindStringSubmatch(display); m != nil {
		return m[1]
	}
	if m := reCaHwyFull.FindStringSubmatch(display); m != nil {
		return m[2]
	}
	return ""
}

var caFrenchStandalone = map[string]bool{"r": true, "ch": true, "av": true, "bd": true}
var caFrenchEliminator = map[string]bool{"du": true, "des": true, "de": true}

// CaFrench strips a bare street-type prefix from Quebec names, e.g. "r
// principale" -> "principale".
func CaFrench(input types.Name, ctx *types.Context) []types.Name {
	if len(input.Tokenized) <= 1 {
		return nil
	}
	first := input.Tokenized[0].Token
	second := input.Tokenized[1].Token
	if !caFrenchStandalone[first] || caFrenchEliminator[second] {
		return nil
	}
	var rest []string
	for _, t := range input.Tokenized[1:] {
		rest = append(rest, t.Token)
	}
	return []types.Name{gen(strings.Join(rest, " "), -1, ctx)}
}

var reNyBeach = regexp.MustCompile(`(?i)^b(?:each|ch)(?P<number>\s\d+(?:st|nd|rd|th))(?P<post>\s.*)?$`)

// NyBeach expands the Rockaway, NY "Beach"/"Bch" abbreviation. It
// deliberately does not match a bare leading "B" since we can't be certain
// "B" means "Beach" in that case.
func NyBeach(input types.Name, ctx *types.Context) []types.Name {
	m := reNyBeach.FindStringSubmatch(input.Display)
	if m == nil {
		return nil
	}
	number, post := namedGroups(reNyBeach, m, "number", "post")
	dp := displayPriority(input)
	po := priorityOffset(input)
	return []types.Name{
		gen("Beach"+number+post, dp, ctx),
		gen("B"+number+post, po-1, ctx),
	}
}
