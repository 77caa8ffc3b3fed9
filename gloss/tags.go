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
	"encoding/json"
	"strings"
)

// Tag is a Universal Dependencies part-of-speech tag
type Tag string // @name Tag

const (
	TagNoun  Tag = "NOUN"
	TagPropn Tag = "PROPN"
	TagVerb  Tag = "VERB"
	TagAdj   Tag = "ADJ"
	TagAdv   Tag = "ADV"
	TagNum   Tag = "NUM"
	TagPron  Tag = "PRON"
	TagAdp   Tag = "ADP"
	TagPunct Tag = "PUNCT"
	TagCconj Tag = "CCONJ"
	TagSconj Tag = "SCONJ"
	TagDet   Tag = "DET"
	TagPart  Tag = "PART"
	TagIntj  Tag = "INTJ"
	TagAux   Tag = "AUX"
	TagX     Tag = "X"
)

// AllTags lists the closed set of tags the classifier knows about.
var AllTags = []Tag{
	TagNoun, TagPropn, TagVerb, TagAdj, TagAdv, TagNum, TagPron, TagAdp,
	TagPunct, TagCconj, TagSconj, TagDet, TagPart, TagIntj, TagAux, TagX,
}

func (t Tag) String() string {
	return string(t)
}

func (t Tag) Validate() bool {
	for _, v := range AllTags {
		if v == t {
			return true
		}
	}
	return false
}

// ParseTag converts a raw tag string into a Tag. Anything outside
// of the closed tag set becomes TagX.
func ParseTag(s string) Tag {
	t := Tag(strings.ToUpper(strings.TrimSpace(s)))
	if t.Validate() {
		return t
	}
	return TagX
}

// Token is a single tagged word
type Token struct {
	Word string `json:"word"`
	Tag  Tag    `json:"tag"`
}

// UnmarshalJSON accepts both the object form {"word": ..., "tag": ...}
// and the pair form [word, tag] produced by most taggers.
func (tok *Token) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) > 0 {
			tok.Word = pair[0]
		}
		if len(pair) > 1 {
			tok.Tag = ParseTag(pair[1])

		} else {
			tok.Tag = TagX
		}
		return nil
	}
	var obj struct {
		Word string `json:"word"`
		Tag  string `json:"tag"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	tok.Word = obj.Word
	tok.Tag = ParseTag(obj.Tag)
	return nil
}

// Words returns surface words of the tokens
func Words(tokens []Token) []string {
	ans := make([]string, len(tokens))
	for i, t := range tokens {
		ans[i] = t.Word
	}
	return ans
}
