package text

import (
	"embed"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"
)

// processedCacheSize bounds the L0 cache of already-tokenized display
// strings; well past the distinct street names any one run is likely to
// see repeated.
const processedCacheSize = 4096

//go:embed abbrev/*.yaml
var abbrevFS embed.FS

// abbrevGroup mirrors one entry of a language's abbreviation YAML file.
// Regex groups (regex: true) are not loaded into the lookup table; they
// exist in upstream language files for documentation only, the same way the
// reference grammar keeps them alongside plain groups.
type abbrevGroup struct {
	Canonical string        `yaml:"canonical"`
	TokenType TokenCategory `yaml:"token_type"`
	Tokens    []string      `yaml:"tokens"`
	Regex     bool          `yaml:"regex"`
}

type abbrevFile struct {
	Groups []abbrevGroup `yaml:"groups"`
}

// AbbreviationEntry is the canonicalization target for one surface form.
type AbbreviationEntry struct {
	Canonical string
	Category  TokenCategory
}

// AbbreviationTable maps a diacritic-folded lowercase surface form to its
// canonical token and category. It is built once per language set and
// shared read-only thereafter.
type AbbreviationTable struct {
	entries   map[string]AbbreviationEntry
	processed *lru.Cache[string, []Token]
}

// LoadAbbreviationTable builds a table from the embedded language files
// named by languages (e.g. "en"). Unknown languages are skipped rather than
// erroring, since a Context may be asked for languages this build does not
// ship yet.
func LoadAbbreviationTable(languages ...string) (*AbbreviationTable, error) {
	cache, err := lru.New[string, []Token](processedCacheSize)
	if err != nil {
		return nil, fmt.Errorf("building processed-token cache: %w", err)
	}
	t := &AbbreviationTable{entries: make(map[string]AbbreviationEntry), processed: cache}
	for _, lang := range languages {
		path := fmt.Sprintf("abbrev/%s.yaml", lang)
		raw, err := abbrevFS.ReadFile(path)
		if err != nil {
			continue
		}
		var f abbrevFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parsing abbreviation file %s: %w", path, err)
		}
		for _, g := range f.Groups {
			if g.Regex {
				continue
			}
			canonical := FoldLower(g.Canonical)
			for _, surface := range g.Tokens {
				key := FoldLower(surface)
				t.entries[key] = AbbreviationEntry{Canonical: canonical, Category: g.TokenType}
			}
		}
	}
	return t, nil
}

// NewAbbreviationTable builds a table directly from a caller-supplied
// surface-form lookup, bypassing the embedded language files. It exists for
// tests that need a small, self-contained abbreviation set instead of the
// full shipped language data.
func NewAbbreviationTable(entries map[string]AbbreviationEntry) (*AbbreviationTable, error) {
	cache, err := lru.New[string, []Token](processedCacheSize)
	if err != nil {
		return nil, fmt.Errorf("building processed-token cache: %w", err)
	}
	t := &AbbreviationTable{entries: make(map[string]AbbreviationEntry, len(entries)), processed: cache}
	for k, v := range entries {
		t.entries[FoldLower(k)] = v
	}
	return t, nil
}

// Lookup returns the canonicalization for a raw, already-folded-lowercase
// surface token, and whether it was found.
func (t *AbbreviationTable) Lookup(surface string) (AbbreviationEntry, bool) {
	if t == nil {
		return AbbreviationEntry{}, false
	}
	e, ok := t.entries[surface]
	return e, ok
}

// Process canonicalizes the raw tokens of display into categorized Tokens,
// then applies the US "st" disambiguator: of every raw "st" occurrence, only
// the last is eligible to mean "Street"; the earlier ones are uncategorized
// first, then the last gets CategoryWay unless some other token in the
// sequence carries CategoryWay (in which case every "st" means "Saint" and
// stays uncategorized).
func (t *AbbreviationTable) Process(display string) []Token {
	if t.processed != nil {
		if cached, ok := t.processed.Get(display); ok {
			return cached
		}
	}

	raw := Tokenize(display)
	out := make([]Token, len(raw))
	for i, r := range raw {
		if e, ok := t.Lookup(r); ok {
			out[i] = Token{Token: e.Canonical, Category: e.Category}
		} else {
			out[i] = Token{Token: r, Category: CategoryNone}
		}
	}
	applyStDisambiguator(raw, out)

	if t.processed != nil {
		t.processed.Add(display, out)
	}
	return out
}

func applyStDisambiguator(raw []string, out []Token) {
	var stIndexes []int
	for i, r := range raw {
		if r == "st" {
			stIndexes = append(stIndexes, i)
		}
	}
	if len(stIndexes) == 0 {
		return
	}
	lastSt := stIndexes[len(stIndexes)-1]
	for _, idx := range stIndexes {
		if idx == lastSt {
			continue
		}
		out[idx].Category = CategoryNone
	}
	hasOtherWay := false
	for i, tok := range out {
		if i == lastSt {
			continue
		}
		if tok.Category == CategoryWay {
			hasOtherWay = true
		}
	}
	if hasOtherWay {
		out[lastSt].Category = CategoryNone
	} else {
		out[lastSt].Category = CategoryWay
	}
}
