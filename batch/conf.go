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

package batch

import (
	"fmt"
	"vslnlp/tagger"
)

const (
	DefaultSentenceStruct = "s"
	DefaultTagColumn      = 1
)

// Conf describes the layout of an input vertical file
type Conf struct {

	// SentenceStruct is a structure delimiting sentences (typically `s`)
	SentenceStruct string `json:"sentenceStruct"`

	// TagColumn is a zero-based index of the tag column
	// (column 0 is the word itself)
	TagColumn int `json:"tagColumn"`

	// Tagset of the tag column
	Tagset tagger.Tagset `json:"tagset"`
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf.SentenceStruct == "" {
		conf.SentenceStruct = DefaultSentenceStruct
	}
	if conf.TagColumn == 0 {
		conf.TagColumn = DefaultTagColumn

	} else if conf.TagColumn < 0 {
		return fmt.Errorf("%s.tagColumn must be a positive number", confContext)
	}
	if conf.Tagset == "" {
		conf.Tagset = tagger.TagsetUD

	} else if !conf.Tagset.Validate() {
		return fmt.Errorf("%s.tagset: unknown value `%s`", confContext, conf.Tagset)
	}
	return nil
}
