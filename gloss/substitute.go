// Copyright 2025 The VSL-NLP authors
//   This file is part of VSL-NLP.
//
//  VSL-NLP is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  VSL-NLP is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with VSL-NLP.  If not, see <https://www.gnu.org/licenses/>.

package gloss

import (
	"fmt"
	"strings"
)

// Lexicon is a read-only word-to-gloss mapping
type Lexicon interface {

	// Normalize converts a surface word into a lookup key
	Normalize(word string) string

	// Lookup searches for an already normalized word
	Lookup(normalized string) (string, bool)

	// Ready tells whether the mapping has been loaded
	Ready() bool
}

// WordDetail describes dictionary resolution of a single
// input word
type WordDetail struct {
	Index            int    `json:"index"`
	OriginalWord     string `json:"originalWord"`
	Tag              Tag    `json:"posTag"`
	InDictionary     bool   `json:"hasDictionaryDefinition"`
	DictionaryAction string `json:"dictionaryAction"`
} // @name WordDetail

func fallbackGloss(lex Lexicon, word string) string {
	return strings.ToUpper(lex.Normalize(word))
}

// taggedFallbackGloss keeps the word as written (only uppercased)
func taggedFallbackGloss(tok Token) string {
	return fmt.Sprintf("%s[%s]", strings.ToUpper(strings.TrimSpace(tok.Word)), tok.Tag)
}

// SubstituteToken returns a dictionary gloss for the token or
// a fallback in the form of uppercased word. The second value
// reports a dictionary hit.
func SubstituteToken(lex Lexicon, tok Token) (string, bool) {
	if v, ok := lex.Lookup(lex.Normalize(tok.Word)); ok {
		return v, true
	}
	return fallbackGloss(lex, tok.Word), false
}

// Substitute maps tokens to gloss tokens, one per input token.
// It never fails, unknown words are just uppercased.
func Substitute(tokens []Token, lex Lexicon) []string {
	ans := make([]string, len(tokens))
	for i, tok := range tokens {
		ans[i], _ = SubstituteToken(lex, tok)
	}
	return ans
}

// WordDetails provides per-word dictionary resolution. Unlike Substitute,
// a dictionary miss is encoded as WORD[TAG].
func WordDetails(tokens []Token, lex Lexicon) []WordDetail {
	ans := make([]WordDetail, len(tokens))
	for i, tok := range tokens {
		ans[i] = WordDetail{
			Index:        i + 1,
			OriginalWord: tok.Word,
			Tag:          tok.Tag,
		}
		if v, ok := lex.Lookup(lex.Normalize(tok.Word)); ok {
			ans[i].InDictionary = true
			ans[i].DictionaryAction = v

		} else {
			ans[i].DictionaryAction = taggedFallbackGloss(tok)
		}
	}
	return ans
}
