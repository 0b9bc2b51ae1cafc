package types

import (
	"testing"

	"github.com/roadlink/conflate/internal/text"
)

func testCtx(t *testing.T, country, region string) *Context {
	t.Helper()
	tbl, err := text.LoadAbbreviationTable("en")
	if err != nil {
		t.Fatalf("LoadAbbreviationTable: %v", err)
	}
	return NewContext(country, region, tbl)
}

func TestNewStripsQuotesAndTitlecases(t *testing.T) {
	ctx := testCtx(t, "US", "")
	n := New(`"main street"`, 0, SourceAddress, ctx)
	if n.Display != "Main Street" {
		t.Errorf("Display = %q, want Main Street", n.Display)
	}
}

func TestNewGeneratedSkipsTitlecase(t *testing.T) {
	ctx := testCtx(t, "US", "")
	n := New("main street", 0, SourceGenerated, ctx)
	if n.Display != "main street" {
		t.Errorf("Display = %q, want untouched main street", n.Display)
	}
}

func TestNewPenalizesUndesirableToken(t *testing.T) {
	ctx := testCtx(t, "US", "")
	n := New("Apt 4", 0, SourceAddress, ctx)
	if n.Priority != -1 {
		t.Errorf("Priority = %d, want -1 for undesirable token", n.Priority)
	}
}

func TestTokenlessStringOnlyNoneCategory(t *testing.T) {
	ctx := testCtx(t, "US", "")
	n := New("North Umpqua Street", 0, SourceAddress, ctx)
	if got := n.TokenlessString(); got != "umpqua" {
		t.Errorf("TokenlessString = %q, want umpqua", got)
	}
}

func TestRemoveTypeString(t *testing.T) {
	ctx := testCtx(t, "US", "")
	n := New("North Umpqua Street", 0, SourceAddress, ctx)
	if got := n.RemoveTypeString(text.CategoryCardinal); got != "umpqua st" {
		t.Errorf("RemoveTypeString(Cardinal) = %q, want 'umpqua st'", got)
	}
}

func TestHasType(t *testing.T) {
	ctx := testCtx(t, "US", "")
	n := New("North Umpqua Street", 0, SourceAddress, ctx)
	if !n.HasType(text.CategoryCardinal) {
		t.Errorf("expected HasType(Cardinal) true")
	}
	if n.HasType(text.CategoryPostalBox) {
		t.Errorf("expected HasType(PostalBox) false")
	}
}

func TestContextRegionName(t *testing.T) {
	ctx := testCtx(t, "US", "or")
	name, ok := ctx.RegionName()
	if !ok || name != "Oregon" {
		t.Errorf("RegionName = %q, %v, want Oregon, true", name, ok)
	}

	ctx2 := testCtx(t, "CA", "qc")
	name2, ok2 := ctx2.RegionName()
	if !ok2 || name2 != "Quebec" {
		t.Errorf("RegionName = %q, %v, want Quebec, true", name2, ok2)
	}

	ctx3 := testCtx(t, "US", "")
	if _, ok3 := ctx3.RegionName(); ok3 {
		t.Errorf("expected RegionName false for empty region")
	}
}
