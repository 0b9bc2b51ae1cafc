// Package nameset builds and normalizes the ordered collection of Names
// attached to one feature: synonym expansion, empty-pruning, stable
// priority/frequency sort, and tokenized-key deduplication.
package nameset

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/roadlink/conflate/internal/synonyms"
	"github.com/roadlink/conflate/internal/types"
)

// NameSet is an ordered, normalized collection of Names.
type NameSet struct {
	Names []types.Name
}

// ErrPriorityCollision is the precondition-violation error: a network
// feature carries two or more names whose first two priorities are equal,
// which the matcher's display-priority convention cannot resolve.
type ErrPriorityCollision struct {
	Names []types.Name
}

func (e *ErrPriorityCollision) Error() string {
	return fmt.Sprintf("network synonym must have greater priority: %+v", e.Names)
}

type rawName struct {
	Display  string `json:"display"`
	Priority int    `json:"priority"`
}

// FromValue builds a NameSet from a raw names payload, which is either a
// bare JSON string (one name at priority 0) or a JSON array of
// {display,priority} objects. Network features with 2+ names sharing the
// first two priorities are a precondition violation. Address-sourced
// priorities are all decremented by 1 before Name construction.
func FromValue(raw json.RawMessage, source types.Source, ctx *types.Context) (NameSet, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		n := types.New(asString, 0, source, ctx)
		return NameSet{Names: []types.Name{n}}, nil
	}

	var entries []rawName
	if err := json.Unmarshal(raw, &entries); err != nil {
		return NameSet{}, fmt.Errorf("parsing names payload: %w", err)
	}

	if source == types.SourceNetwork && len(entries) >= 2 && entries[0].Priority == entries[1].Priority {
		built := make([]types.Name, len(entries))
		for i, e := range entries {
			built[i] = types.New(e.Display, e.Priority, source, ctx)
		}
		return NameSet{}, &ErrPriorityCollision{Names: built}
	}

	names := make([]types.Name, len(entries))
	for i, e := range entries {
		priority := e.Priority
		if source == types.SourceAddress {
			priority--
		}
		names[i] = types.New(e.Display, priority, source, ctx)
	}
	return NameSet{Names: names}, nil
}

// New builds a normalized NameSet from raw Names: conditional synonym
// expansion for Network sources, empty-pruning, stable sort, and
// tokenized-key dedup.
func New(raw []types.Name, source types.Source, ctx *types.Context) NameSet {
	names := append([]types.Name(nil), raw...)

	if source == types.SourceNetwork {
		var expanded []types.Name
		for _, n := range names {
			expanded = append(expanded, applicableGenerators(ctx)(n, ctx)...)
		}
		names = append(names, expanded...)
	}

	names = pruneEmpty(names)
	names = stableSortByPriorityThenFreq(names)
	names = dedupeByTokenizedKey(names)

	return NameSet{Names: names}
}

type generatorFunc func(types.Name, *types.Context) []types.Name

// applicableGenerators returns the combined generator for ctx's
// country/region, matching the component-design table: US always runs
// number-suffix/written-numeric/state-hwy/us-hwy/us-cr/us-famous, with NY
// adding ny-beach; CA runs ca-hwy, with QC adding ca-french.
func applicableGenerators(ctx *types.Context) generatorFunc {
	var fns []generatorFunc
	switch ctx.Country {
	case "US":
		fns = append(fns,
			synonyms.NumberSuffix, synonyms.WrittenNumeric, synonyms.StateHwy,
			synonyms.UsHwy, synonyms.UsCr, synonyms.UsFamous,
		)
		if ctx.Region == "NY" {
			fns = append(fns, synonyms.NyBeach)
		}
	case "CA":
		fns = append(fns, synonyms.CaHwy)
		if ctx.Region == "QC" {
			fns = append(fns, synonyms.CaFrench)
		}
	}
	return func(n types.Name, c *types.Context) []types.Name {
		var out []types.Name
		for _, fn := range fns {
			out = append(out, fn(n, c)...)
		}
		return out
	}
}

func pruneEmpty(names []types.Name) []types.Name {
	out := names[:0]
	for _, n := range names {
		if strings.TrimSpace(n.Display) == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}

func stableSortByPriorityThenFreq(names []types.Name) []types.Name {
	sort.SliceStable(names, func(i, j int) bool {
		if names[i].Priority != names[j].Priority {
			return names[i].Priority > names[j].Priority
		}
		return names[i].Freq > names[j].Freq
	})
	return names
}

func dedupeByTokenizedKey(names []types.Name) []types.Name {
	kept := make(map[string]int) // key -> index into result
	var result []types.Name

	for _, n := range names {
		key := n.TokenizedString()
		idx, exists := kept[key]
		if !exists {
			kept[key] = len(result)
			result = append(result, n)
			continue
		}
		existing := result[idx]
		if existing.Source == types.SourceGenerated {
			continue
		}
		if n.Source == types.SourceGenerated || len(n.Display) > len(existing.Display) {
			existing.Display = n.Display
			existing.Source = n.Source
			existing.Tokenized = n.Tokenized
			result[idx] = existing
		}
	}
	return result
}

// Concat appends other's names without deduplication.
func (s NameSet) Concat(other NameSet) NameSet {
	return NameSet{Names: append(append([]types.Name(nil), s.Names...), other.Names...)}
}

// HasDiff reports whether other has any tokenized key absent from s.
func (s NameSet) HasDiff(other NameSet) bool {
	have := make(map[string]bool, len(s.Names))
	for _, n := range s.Names {
		have[n.TokenizedString()] = true
	}
	for _, n := range other.Names {
		if !have[n.TokenizedString()] {
			return true
		}
	}
	return false
}

// SetSource overwrites the source of every Name currently lacking one.
func (s NameSet) SetSource(source types.Source) NameSet {
	for i, n := range s.Names {
		if n.Source == types.SourceNone {
			s.Names[i].Source = source
		}
	}
	return s
}
