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

package rdb

import (
	"encoding/gob"
	"vslnlp/gloss"
)

const (
	FuncTagAndConvert = "tagAndConvert"
	FuncConvert       = "convert"
	FuncAnalyze       = "analyze"
)

// TagAndConvertArgs are arguments of a job which first tags
// raw text and then converts the tokens to a gloss sequence.
type TagAndConvertArgs struct {
	Text string
}

// ConvertArgs are arguments of a job converting already tagged words
type ConvertArgs struct {
	Tokens []gloss.Token
}

type AnalyzeArgs struct {
	Text string
}

func RegisterArgsGobTypes() {
	gob.Register(TagAndConvertArgs{})
	gob.Register(ConvertArgs{})
	gob.Register(AnalyzeArgs{})
}
