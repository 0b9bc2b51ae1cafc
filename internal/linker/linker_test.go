package linker

import (
	"testing"

	"github.com/roadlink/conflate/internal/nameset"
	"github.com/roadlink/conflate/internal/text"
	"github.com/roadlink/conflate/internal/types"
)

// mustCtx builds a context from a small, self-contained token table instead
// of the shipped en.yaml: the same way the matcher's own ground-truth
// fixtures are defined, independent of how the full language data happens to
// be tuned.
func mustCtx(t *testing.T) *types.Context {
	t.Helper()
	tbl, err := text.NewAbbreviationTable(map[string]text.AbbreviationEntry{
		"saint":     {Canonical: "st", Category: text.CategoryNone},
		"street":    {Canonical: "st", Category: text.CategoryWay},
		"st":        {Canonical: "st", Category: text.CategoryWay},
		"lake":      {Canonical: "lk", Category: text.CategoryNone},
		"lk":        {Canonical: "lk", Category: text.CategoryNone},
		"road":      {Canonical: "rd", Category: text.CategoryWay},
		"rd":        {Canonical: "rd", Category: text.CategoryWay},
		"avenue":    {Canonical: "ave", Category: text.CategoryWay},
		"ave":       {Canonical: "ave", Category: text.CategoryWay},
		"west":      {Canonical: "w", Category: text.CategoryCardinal},
		"east":      {Canonical: "e", Category: text.CategoryCardinal},
		"south":     {Canonical: "s", Category: text.CategoryCardinal},
		"north":     {Canonical: "n", Category: text.CategoryCardinal},
		"northwest": {Canonical: "nw", Category: text.CategoryCardinal},
		"nw":        {Canonical: "nw", Category: text.CategoryCardinal},
		"n":         {Canonical: "n", Category: text.CategoryCardinal},
		"s":         {Canonical: "s", Category: text.CategoryCardinal},
		"w":         {Canonical: "w", Category: text.CategoryCardinal},
		"e":         {Canonical: "e", Category: text.CategoryCardinal},
	})
	if err != nil {
		t.Fatalf("NewAbbreviationTable: %v", err)
	}
	return types.NewContext("US", "", tbl)
}

func oneName(t *testing.T, ctx *types.Context, display string) nameset.NameSet {
	t.Helper()
	n := types.New(display, 0, types.SourceAddress, ctx)
	return nameset.New([]types.Name{n}, types.SourceAddress, ctx)
}

func candidate(id int64, ns nameset.NameSet) Candidate {
	return Candidate{ID: id, Names: ns}
}

func TestLinkExactMatch(t *testing.T) {
	ctx := mustCtx(t)
	primary := candidate(0, oneName(t, ctx, "Main Street"))
	potentials := []Candidate{candidate(1, oneName(t, ctx, "Main Street"))}
	res, ok := Link(primary, potentials, false)
	if !ok || res.ID != 1 || res.Score != 100.0 {
		t.Fatalf("got %+v, %v", res, ok)
	}
}

func TestLinkFuzzyMainMaim(t *testing.T) {
	ctx := mustCtx(t)
	primary := candidate(0, oneName(t, ctx, "Main Street"))
	potentials := []Candidate{candidate(1, oneName(t, ctx, "Maim Street"))}
	res, ok := Link(primary, potentials, false)
	if !ok {
		t.Fatalf("expected match")
	}
	if res.Score != 85.71 {
		t.Errorf("score = %v, want 85.71", res.Score)
	}
}

func TestLinkNumberedMismatchNoMatch(t *testing.T) {
	ctx := mustCtx(t)
	primary := candidate(0, oneName(t, ctx, "11th Street West"))
	potentials := []Candidate{candidate(1, oneName(t, ctx, "21st Street West"))}
	_, ok := Link(primary, potentials, false)
	if ok {
		t.Fatalf("expected no match for numbered mismatch")
	}
}

func TestLinkUsRouteNonStrictVsStrict(t *testing.T) {
	ctx := mustCtx(t)
	primary := candidate(0, oneName(t, ctx, "US Route 50 East"))
	potentials := []Candidate{candidate(1, oneName(t, ctx, "US Route 50 West"))}

	res, ok := Link(primary, potentials, false)
	if !ok {
		t.Fatalf("expected non-strict match")
	}
	if res.Score != 98.08 {
		t.Errorf("non-strict score = %v, want 98.08", res.Score)
	}

	_, ok = Link(primary, potentials, true)
	if ok {
		t.Fatalf("expected strict mode to reject cardinal mismatch")
	}
}

func TestLinkCardinalDropExact(t *testing.T) {
	ctx := mustCtx(t)
	primary := candidate(0, oneName(t, ctx, "N Umpqua St"))
	potentials := []Candidate{
		candidate(1, oneName(t, ctx, "Umpqua Street")),
		candidate(2, oneName(t, ctx, "South Umpqua Street")),
	}
	res, ok := Link(primary, potentials, false)
	if !ok || res.ID != 1 || res.Score != 100.0 {
		t.Fatalf("got %+v, %v, want id=1 score=100", res, ok)
	}
}

func TestLinkNoCandidatesReturnsNone(t *testing.T) {
	ctx := mustCtx(t)
	primary := candidate(0, oneName(t, ctx, "Main Street"))
	_, ok := Link(primary, nil, false)
	if ok {
		t.Fatalf("expected no match with zero candidates")
	}
}

func TestLinkLowSimilarityNoMatch(t *testing.T) {
	ctx := mustCtx(t)
	primary := candidate(0, oneName(t, ctx, "Main Street"))
	potentials := []Candidate{candidate(1, oneName(t, ctx, "Anne Boulevard"))}
	_, ok := Link(primary, potentials, false)
	if ok {
		t.Fatalf("expected no match for dissimilar names")
	}
}
