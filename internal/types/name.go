package types

import (
	"strings"

	"github.com/roadlink/conflate/internal/text"
)

// Source identifies where a Name came from.
type Source string

const (
	SourceNone      Source = ""
	SourceAddress   Source = "address"
	SourceNetwork   Source = "network"
	SourceGenerated Source = "generated"
)

// Name is a single street-name value: its display form, priority, source,
// frequency, and canonicalized tokenization.
type Name struct {
	Display   string
	Priority  int
	Source    Source
	Freq      int
	Tokenized []text.Token
}

// New strips quote/comma characters from display, titlecases it unless
// source is Generated, tokenizes it through ctx's abbreviation table, and
// for US/CA applies the "#"-removal cosmetic cleanup and the
// undesirable-token priority penalty.
func New(display string, priority int, source Source, ctx *Context) Name {
	display = strings.NewReplacer(`"`, "", ",", "").Replace(display)
	if source != SourceGenerated {
		display = text.Titlecase(display, ctx.Country, ctx.Region)
	}
	tokenized := ctx.Table.Process(display)

	if ctx.Country == "US" || ctx.Country == "CA" {
		display = text.StrRemoveOcto(display)
		if text.IsUndesireable(tokenized) {
			priority--
		}
	}

	return Name{
		Display:   display,
		Priority:  priority,
		Source:    source,
		Freq:      1,
		Tokenized: tokenized,
	}
}

// TokenizedString joins every token, regardless of category, with single
// spaces. It is the NameSet dedup key.
func (n Name) TokenizedString() string {
	parts := make([]string, len(n.Tokenized))
	for i, t := range n.Tokenized {
		parts[i] = t.Token
	}
	return strings.Join(parts, " ")
}

// TokenlessString joins only the tokens that carry no category, the
// "distinctive" remainder of a name once way-types and cardinals are set
// aside.
func (n Name) TokenlessString() string {
	var parts []string
	for _, t := range n.Tokenized {
		if t.Category == text.CategoryNone {
			parts = append(parts, t.Token)
		}
	}
	return strings.Join(parts, " ")
}

// RemoveTypeString joins every token whose category is not cat.
func (n Name) RemoveTypeString(cat text.TokenCategory) string {
	var parts []string
	for _, t := range n.Tokenized {
		if t.Category != cat {
			parts = append(parts, t.Token)
		}
	}
	return strings.Join(parts, " ")
}

// HasType reports whether any token carries category cat.
func (n Name) HasType(cat text.TokenCategory) bool {
	for _, t := range n.Tokenized {
		if t.Category == cat {
			return true
		}
	}
	return false
}

// IsNumbered and IsRoutish project the text-package predicates onto this
// name's tokenized form.
func (n Name) IsNumbered() (string, bool) { return text.IsNumbered(n.Tokenized) }
func (n Name) IsRoutish() (string, bool)  { return text.IsRoutish(n.Tokenized) }
