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
	"strings"
	"vslnlp/merror"
)

var ErrNotInitialized = merror.NotReadyError{Msg: "sign language converter is not initialized"}

// ConversionResult is an outcome of converting a single tagged sentence
type ConversionResult struct {
	OriginalSentence     string           `json:"originalSentence"`
	SignLanguageSequence []string         `json:"signLanguageSequence"`
	StructureAnalysis    StructuralReport `json:"structureAnalysis"`
	POSStructure         Buckets          `json:"posStructure"`
	WordDetails          []WordDetail     `json:"wordDetails"`
	ReorderStrategy      string           `json:"reorderStrategy"`
} // @name ConversionResult

// Converter runs the whole pipeline: classification, reordering,
// vocabulary substitution and analysis. Conversions are stateless
// so a single instance can serve any number of goroutines.
type Converter struct {
	lexicon    Lexicon
	classifier *Classifier
}

func (c *Converter) Classifier() *Classifier {
	return c.classifier
}

// Convert restructures tagged tokens into a gloss sequence.
// The only possible error is ErrNotInitialized.
func (c *Converter) Convert(tokens []Token) (*ConversionResult, error) {
	if c == nil || c.lexicon == nil || !c.lexicon.Ready() {
		return nil, ErrNotInitialized
	}
	buckets := c.classifier.Classify(tokens)
	reordered := Reorder(buckets)
	glosses := make([]string, len(reordered))
	var hits int
	for i, tok := range reordered {
		var hit bool
		glosses[i], hit = SubstituteToken(c.lexicon, tok)
		if hit {
			hits++
		}
	}
	report := Analyze(tokens, buckets, glosses)
	report.DictionaryHits = hits
	return &ConversionResult{
		OriginalSentence:     strings.Join(Words(tokens), " "),
		SignLanguageSequence: glosses,
		StructureAnalysis:    report,
		POSStructure:         buckets,
		WordDetails:          WordDetails(tokens, c.lexicon),
		ReorderStrategy:      ConversionDirection,
	}, nil
}

func NewConverter(lexicon Lexicon, timeWords []string) *Converter {
	ans := &Converter{lexicon: lexicon}
	if lexicon != nil {
		ans.classifier = NewClassifier(timeWords, lexicon.Normalize)
	}
	return ans
}
