// SPDX-License-Identifier: MIT
// Package text implements the language-aware string pipeline that feeds the
// road-name linker: diacritic folding, titlecasing, tokenization and
// canonicalization, synonym generation, and the small set of utility
// predicates the linker and generators share.
package text

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// foldableBlocks holds the Unicode range tables whose accented forms are
// folded to their base letter. Scripts outside this set (Han, Hiragana,
// Katakana, Devanagari, Arabic, Cyrillic, ...) pass through untouched even
// though NFD would happily decompose some of them.
var foldableBlocks = []*unicode.RangeTable{
	unicode.Latin,
	unicode.Greek,
}

func inFoldableBlock(r rune) bool {
	for _, tbl := range foldableBlocks {
		if unicode.Is(tbl, r) {
			return true
		}
	}
	return false
}

// Fold normalizes s by decomposing accented Latin and Greek letters to their
// base form and dropping the combining mark; the stroked letters Ł/ł and
// Đ/đ, which do not decompose, become L/l and D/d. Every other script is left
// exactly as given. Fold is deterministic and idempotent: Fold(Fold(s)) ==
// Fold(s).
func Fold(s string) string {
	return foldRunes(norm.NFD.String(s))
}

// foldRunes walks an NFD-decomposed string and drops a combining mark only
// when the base letter immediately preceding it belongs to a foldable
// script block.
func foldRunes(decomposed string) string {
	runes := []rune(decomposed)
	out := make([]rune, 0, len(runes))
	lastBaseFoldable := false
	for _, r := range runes {
		if unicode.Is(unicode.Mn, r) {
			if lastBaseFoldable {
				continue
			}
			out = append(out, r)
			continue
		}
		// Stroked letters have no NFD decomposition; map them directly.
		switch r {
		case 'Ł':
			r = 'L'
		case 'ł':
			r = 'l'
		case 'Đ':
			r = 'D'
		case 'đ':
			r = 'd'
		}
		lastBaseFoldable = inFoldableBlock(r)
		out = append(out, r)
	}
	return norm.NFC.String(string(out))
}

// FoldLower folds diacritics and lowercases, the form used as an
// abbreviation-table lookup key and as the tokenizer's first step.
func FoldLower(s string) string {
	return toLower(Fold(s))
}

func toLower(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}
