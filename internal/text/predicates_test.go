package text

import "testing"

func TestIsNumbered(t *testing.T) {
	cases := []struct {
		tokens []string
		want   string
		ok     bool
	}{
		{[]string{"351235th", "av"}, "351235th", true},
		{[]string{"main", "st"}, "", false},
		{[]string{"1st", "st"}, "1st", true},
	}
	for _, tc := range cases {
		toks := toTokens(tc.tokens)
		got, ok := IsNumbered(toks)
		if ok != tc.ok || got != tc.want {
			t.Errorf("IsNumbered(%v) = (%q,%v), want (%q,%v)", tc.tokens, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIsRoutish(t *testing.T) {
	cases := []struct {
		tokens []string
		want   string
		ok     bool
	}{
		{[]string{"nc", "124"}, "124", true},
		{[]string{"us", "route", "50", "east"}, "50", true},
		{[]string{"321"}, "321", true},
		{[]string{"124", "nc"}, "124", true},
		{[]string{"main", "st"}, "", false},
		{[]string{"1st", "st"}, "", false},
		{[]string{"351235th", "av"}, "", false},
	}
	for _, tc := range cases {
		toks := toTokens(tc.tokens)
		got, ok := IsRoutish(toks)
		if ok != tc.ok || got != tc.want {
			t.Errorf("IsRoutish(%v) = (%q,%v), want (%q,%v)", tc.tokens, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIsDrivethrough(t *testing.T) {
	cases := []struct {
		text    string
		country string
		want    bool
	}{
		{"Main St NE", "US", false},
		{"McDonalds einfahrt", "US", false},
		{"McDonalds einfahrt", "DE", true},
		{"Burger King Drive-through", "US", true},
		{"McDonalds Drivethrough", "US", true},
		{"McDonalds Drive through", "US", true},
		{"McDonalds Drivethru", "US", true},
	}
	for _, tc := range cases {
		if got := IsDrivethrough(tc.text, tc.country); got != tc.want {
			t.Errorf("IsDrivethrough(%q,%q) = %v, want %v", tc.text, tc.country, got, tc.want)
		}
	}
}

func TestStrRemoveOcto(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Highway #12 West", "Highway 12 West"},
		{"RTe #1", "RTe 1"},
	}
	for _, tc := range cases {
		if got := StrRemoveOcto(tc.in); got != tc.want {
			t.Errorf("StrRemoveOcto(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func toTokens(ss []string) []Token {
	out := make([]Token, len(ss))
	for i, s := range ss {
		out[i] = Token{Token: s}
	}
	return out
}
