package text

import "testing"

func mustTable(t *testing.T) *AbbreviationTable {
	t.Helper()
	tbl, err := LoadAbbreviationTable("en")
	if err != nil {
		t.Fatalf("LoadAbbreviationTable: %v", err)
	}
	return tbl
}

func TestProcessCanonicalizesWayAndCardinal(t *testing.T) {
	tbl := mustTable(t)
	toks := tbl.Process("Main St NW")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %#v", toks)
	}
	if toks[0].Token != "main" || toks[0].Category != CategoryNone {
		t.Errorf("token 0 = %#v", toks[0])
	}
	if toks[1].Token != "st" || toks[1].Category != CategoryWay {
		t.Errorf("token 1 = %#v", toks[1])
	}
	if toks[2].Token != "nw" || toks[2].Category != CategoryCardinal {
		t.Errorf("token 2 = %#v", toks[2])
	}
}

func TestStDisambiguatorMeansSaintWhenAnotherWayExists(t *testing.T) {
	tbl := mustTable(t)
	// "St Francis St" has two raw "st" occurrences; only the last is
	// eligible to mean Street, so the first must fall back to Saint.
	toks := tbl.Process("St Francis St")
	if toks[0].Token != "st" || toks[0].Category != CategoryNone {
		t.Errorf("first st should mean saint, got %#v", toks[0])
	}
	if toks[2].Token != "st" || toks[2].Category != CategoryWay {
		t.Errorf("last st should mean street, got %#v", toks[2])
	}
}

func TestStDisambiguatorAllSaintWhenOtherWayPresent(t *testing.T) {
	tbl := mustTable(t)
	toks := tbl.Process("St Francis Road")
	if toks[0].Token != "st" || toks[0].Category != CategoryNone {
		t.Errorf("st before a different way token should mean saint, got %#v", toks[0])
	}
}

func TestStDisambiguatorSingleStMeansStreet(t *testing.T) {
	tbl := mustTable(t)
	toks := tbl.Process("Main St")
	last := toks[len(toks)-1]
	if last.Token != "st" || last.Category != CategoryWay {
		t.Errorf("lone trailing st should mean street, got %#v", last)
	}
}

func TestProcessIsStableAcrossRepeatedCachedCalls(t *testing.T) {
	tbl := mustTable(t)
	first := tbl.Process("Main St NW")
	second := tbl.Process("Main St NW")
	if len(first) != len(second) {
		t.Fatalf("cached call returned different length: %#v vs %#v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("token %d differs between calls: %#v vs %#v", i, first[i], second[i])
		}
	}
}
