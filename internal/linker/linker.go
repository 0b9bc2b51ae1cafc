// Package linker implements the street-name matcher: given a primary
// name-set and a list of geometrically-nearby candidates, it scores every
// name pair and returns the best-matching candidate id, or none.
package linker

import (
	"math"

	"github.com/roadlink/conflate/internal/nameset"
	"github.com/roadlink/conflate/internal/text"
	"github.com/roadlink/conflate/internal/types"
)

// Candidate is one potential match: an opaque id plus its name-set.
type Candidate struct {
	ID    int64
	Names nameset.NameSet
}

// Result is the winning candidate id and its score (0..100).
type Result struct {
	ID    int64
	Score float64
}

type link struct {
	id       int64
	names    nameset.NameSet
	maxscore float64
}

// Link scores primary against potentials and returns the best match whose
// score exceeds 70, or (Result{}, false) if none qualifies. strict enables
// the stricter cardinal/way-type gate described in the matcher's design.
func Link(primary Candidate, potentials []Candidate, strict bool) (Result, bool) {
	links := make([]*link, len(potentials))
	for i, p := range potentials {
		links[i] = &link{id: p.ID, names: p.Names}
	}

	for _, pname := range primary.Names.Names {
		T := pname.TokenizedString()
		L := pname.TokenlessString()

		for _, lk := range links {
			for _, cname := range lk.names.Names {
				Tp := cname.TokenizedString()
				Lp := cname.TokenlessString()

				if T == Tp {
					return Result{ID: lk.id, Score: 100}, true
				}

				if strict {
					if strictGateRejects(pname, cname) {
						continue
					}
				} else if cardinalDropExactMatch(pname, T, Tp) {
					return Result{ID: lk.id, Score: 100}, true
				}

				if L != "" && Lp != "" && firstRune(L) != firstRune(Lp) {
					continue
				}

				if numberedOrRoutishMismatch(pname, cname) {
					continue
				}

				score := scorePair(T, Tp, L, Lp, pname, cname)
				if score > lk.maxscore {
					lk.maxscore = score
				}
			}
		}
	}

	var best *link
	for _, lk := range links {
		if best == nil || lk.maxscore > best.maxscore {
			best = lk
		}
	}
	if best == nil || best.maxscore <= 70.0 {
		return Result{}, false
	}
	return Result{ID: best.id, Score: math.Round(best.maxscore*100) / 100}, true
}

// strictGateRejects reports whether any Cardinal/Way token in primary meets,
// in candidate, a token of the same category that isn't exactly this token
// — meaning this candidate name must be skipped.
func strictGateRejects(primary, candidate types.Name) bool {
	for _, t := range primary.Tokenized {
		if t.Category != text.CategoryCardinal && t.Category != text.CategoryWay {
			continue
		}
		if candidateHasCategoryButNotToken(candidate, t) {
			return true
		}
	}
	return false
}

func candidateHasCategoryButNotToken(candidate types.Name, t text.Token) bool {
	hasCategory := false
	hasExact := false
	for _, ct := range candidate.Tokenized {
		if ct.Category == t.Category {
			hasCategory = true
			if ct.Token == t.Token {
				hasExact = true
			}
		}
	}
	return hasCategory && !hasExact
}

// cardinalDropExactMatch reports whether primary has a Cardinal token,
// candidate's tokenized form matches primary's tokenized form with all
// Cardinals removed, and candidate itself has no Cardinal.
func cardinalDropExactMatch(primary types.Name, T, Tp string) bool {
	if !primary.HasType(text.CategoryCardinal) {
		return false
	}
	dropped := primary.RemoveTypeString(text.CategoryCardinal)
	return dropped == Tp
}

func numberedOrRoutishMismatch(primary, candidate types.Name) bool {
	pNum, pOk := primary.IsNumbered()
	if pOk {
		cNum, cOk := candidate.IsNumbered()
		if !cOk || cNum != pNum {
			return true
		}
	}
	pRoute, rOk := primary.IsRoutish()
	if rOk {
		cRoute, cOk := candidate.IsRoutish()
		if !cOk || cRoute != pRoute {
			return true
		}
	}
	return false
}

func scorePair(T, Tp, L, Lp string, primary, candidate types.Name) float64 {
	var lev float64
	switch {
	case L != "" && Lp != "":
		lev = 0.25*float64(text.Distance(T, Tp)) + 0.75*float64(text.Distance(L, Lp))
	case L == "" && Lp == "":
		if matched, ok := tokenSetOverlapScore(primary, candidate); ok {
			lev = matched
		} else {
			lev = float64(text.Distance(T, Tp))
		}
	default:
		lev = float64(text.Distance(T, Tp))
	}
	denom := float64(runeLen(Tp) + runeLen(T))
	if denom == 0 {
		return 100
	}
	return 100 - (2*lev/denom)*100
}

// tokenSetOverlapScore consumes candidate's tokens at most once per match
// and returns matched/|candidate tokens| when it exceeds 0.66, else false.
func tokenSetOverlapScore(primary, candidate types.Name) (float64, bool) {
	pool := make([]string, len(candidate.Tokenized))
	for i, t := range candidate.Tokenized {
		pool[i] = t.Token
	}
	matched := 0
	for _, t := range primary.Tokenized {
		for i, p := range pool {
			if p == t.Token {
				matched++
				pool[i] = "\x00"
				break
			}
		}
	}
	if len(candidate.Tokenized) == 0 {
		return 0, false
	}
	ratio := float64(matched) / float64(len(candidate.Tokenized))
	if ratio > 0.66 {
		return ratio, true
	}
	return 0, false
}

func runeLen(s string) int {
	return len([]rune(s))
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
