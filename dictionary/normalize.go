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

package dictionary

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	DefaultJoiner = "_"
)

// NormalizeWord creates a dictionary key: the word is converted
// to the composed Unicode form, lowercased and any run of whitespace
// is replaced by the joiner (e.g. "Chúng  Tôi" => "chúng_tôi").
func NormalizeWord(word, joiner string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFC.String(word))), joiner)
}

// NormalizeGloss trims and uppercases a gloss token
func NormalizeGloss(gloss string) string {
	return strings.ToUpper(strings.TrimSpace(norm.NFC.String(gloss)))
}
