package text

import "testing"

func TestFold(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "Main Street", "Main Street"},
		{"french e acute", "Café", "Cafe"},
		{"german umlaut", "Königstrasse", "Konigstrasse"},
		{"latin extended", "Łódź", "Lodz"},
		{"han passthrough", "北京路", "北京路"},
		{"arabic passthrough", "شارع", "شارع"},
		{"devanagari passthrough", "सड़क", "सड़क"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Fold(tc.input)
			if got != tc.want {
				t.Errorf("Fold(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestFoldIdempotent(t *testing.T) {
	inputs := []string{"Café du Nord", "Łódź", "北京路", "naïve façade"}
	for _, s := range inputs {
		once := Fold(s)
		twice := Fold(once)
		if once != twice {
			t.Errorf("Fold not idempotent for %q: Fold(s)=%q Fold(Fold(s))=%q", s, once, twice)
		}
	}
}

func TestFoldLower(t *testing.T) {
	if got := FoldLower("CAFÉ"); got != "cafe" {
		t.Errorf("FoldLower(CAFÉ) = %q, want cafe", got)
	}
}
