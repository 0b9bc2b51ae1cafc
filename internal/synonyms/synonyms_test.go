package synonyms

import (
	"testing"

	"github.com/roadlink/conflate/internal/text"
	"github.com/roadlink/conflate/internal/types"
)

func ctxFor(t *testing.T, country, region string) *types.Context {
	t.Helper()
	tbl, err := text.LoadAbbreviationTable("en")
	if err != nil {
		t.Fatalf("LoadAbbreviationTable: %v", err)
	}
	return types.NewContext(country, region, tbl)
}

func input(ctx *types.Context, display string, priority int) types.Name {
	return types.New(display, priority, types.SourceNetwork, ctx)
}

func TestNumberSuffix(t *testing.T) {
	ctx := ctxFor(t, "US", "")
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1st Avenue", "", false},
		{"1 Avenue", "1st Avenue", true},
		{"2 Avenue", "2nd Avenue", true},
		{"3 Street", "3rd Street", true},
		{"4 Street", "4th Street", true},
		{"20 Street", "20th Street", true},
		{"21 Street", "21st Street", true},
	}
	for _, tc := range cases {
		out := NumberSuffix(input(ctx, tc.in, 0), ctx)
		if !tc.ok {
			if len(out) != 0 {
				t.Errorf("NumberSuffix(%q) = %v, want none", tc.in, out)
			}
			continue
		}
		if len(out) != 1 || out[0].Display != tc.want {
			t.Errorf("NumberSuffix(%q) = %v, want %q", tc.in, out, tc.want)
		}
	}
}

func TestWrittenNumeric(t *testing.T) {
	ctx := ctxFor(t, "US", "")
	cases := []struct{ in, want string }{
		{"Twenty-third Avenue NW", "23rd Avenue NW"},
		{"North twenty-Third Avenue", "North 23rd Avenue"},
		{"TWENTY-THIRD Avenue", "23rd Avenue"},
	}
	for _, tc := range cases {
		out := WrittenNumeric(input(ctx, tc.in, 0), ctx)
		if len(out) != 1 || out[0].Display != tc.want {
			t.Errorf("WrittenNumeric(%q) = %v, want %q", tc.in, out, tc.want)
		}
	}
}

func TestUsCr(t *testing.T) {
	ctx := ctxFor(t, "US", "")
	out := UsCr(input(ctx, "CR 5", 0), ctx)
	if len(out) != 2 || out[0].Display != "County Road 5" || out[1].Display != "CR 5" {
		t.Errorf("UsCr = %v", out)
	}
}

func TestUsHwySpellings(t *testing.T) {
	ctx := ctxFor(t, "US", "")
	spellings := []string{
		"us-81", "US 81", "U.S. Route 81", "US Route 81", "US Rte 81",
		"US Hwy 81", "US Highway 81", "United States 81",
		"United States Route 81", "United States Highway 81",
	}
	for _, s := range spellings {
		out := UsHwy(input(ctx, s, 0), ctx)
		if len(out) != 5 {
			t.Errorf("UsHwy(%q) produced %d names, want 5: %v", s, len(out), out)
			continue
		}
		if out[0].Display != "US Route 81" {
			t.Errorf("UsHwy(%q) display = %q, want US Route 81", s, out[0].Display)
		}
	}
}

func TestCaFrenchStripsEligiblePrefix(t *testing.T) {
	ctx := ctxFor(t, "CA", "QC")
	out := CaFrench(input(ctx, "r principale", 0), ctx)
	if len(out) != 1 || out[0].Display != "principale" {
		t.Errorf("CaFrench(r principale) = %v", out)
	}
}

func TestCaFrenchSkipsEliminator(t *testing.T) {
	ctx := ctxFor(t, "CA", "QC")
	for _, in := range []string{"r des peupliers", "ch des hauteurs", "r du blizzard"} {
		out := CaFrench(input(ctx, in, 0), ctx)
		if len(out) != 0 {
			t.Errorf("CaFrench(%q) = %v, want none", in, out)
		}
	}
}

func TestNyBeachMatchesButNotBareB(t *testing.T) {
	ctx := ctxFor(t, "US", "NY")
	out := NyBeach(input(ctx, "Beach 31st St", 0), ctx)
	if len(out) != 2 || out[0].Display != "Beach 31st St" || out[1].Display != "B 31st St" {
		t.Errorf("NyBeach(Beach 31st St) = %v", out)
	}

	none := NyBeach(input(ctx, "B 31st St", 0), ctx)
	if len(none) != 0 {
		t.Errorf("NyBeach(B 31st St) = %v, want none (bare B must not match)", none)
	}
}
