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

package tagger

import (
	"strings"
	"vslnlp/gloss"
)

type Tagset string

const (
	// TagsetVn is the VnTagset used by UnderTheSea and VnCoreNLP
	TagsetVn Tagset = "vn"

	// TagsetUD means the tagger already produces Universal Dependencies tags
	TagsetUD Tagset = "ud"
)

var vnToUD = map[string]gloss.Tag{
	"N":  gloss.TagNoun,
	"Np": gloss.TagPropn,
	"Nc": gloss.TagNoun,
	"Nu": gloss.TagNoun,
	"Ny": gloss.TagNoun,
	"V":  gloss.TagVerb,
	"Vb": gloss.TagVerb,
	"Vu": gloss.TagVerb,
	"A":  gloss.TagAdj,
	"Ab": gloss.TagAdj,
	"R":  gloss.TagAdv,
	"Rb": gloss.TagAdv,
	"P":  gloss.TagPron,
	"Pp": gloss.TagPron,
	"E":  gloss.TagAdp,
	"Eb": gloss.TagAdp,
	"C":  gloss.TagCconj,
	"Cc": gloss.TagCconj,
	"Cs": gloss.TagSconj,
	"L":  gloss.TagDet,
	"Lb": gloss.TagDet,
	"M":  gloss.TagNum,
	"Mb": gloss.TagNum,
	"CH": gloss.TagPunct,
	".":  gloss.TagPunct,
	",":  gloss.TagPunct,
	"?":  gloss.TagPunct,
	"!":  gloss.TagPunct,
	"T":  gloss.TagPart,
	"Tb": gloss.TagPart,
	"I":  gloss.TagIntj,
	"X":  gloss.TagX,
	"Fw": gloss.TagX,
}

// ToUD maps a VnTagset tag to the UD tag set. Unknown
// tags are mapped to X.
func ToUD(tag string) gloss.Tag {
	if v, ok := vnToUD[strings.TrimSpace(tag)]; ok {
		return v
	}
	return gloss.TagX
}

func (ts Tagset) Convert(tag string) gloss.Tag {
	if ts == TagsetUD {
		return gloss.ParseTag(tag)
	}
	return ToUD(tag)
}

func (ts Tagset) Validate() bool {
	return ts == TagsetVn || ts == TagsetUD
}
