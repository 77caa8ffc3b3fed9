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

const (
	OriginalOrder       = "SVO (Subject-Verb-Object)"
	SignLanguageOrder   = "SOV (Subject-Object-Verb)"
	TimePlacement       = "Beginning of sentence"
	AdjectivePlacement  = "After subject"
	ConversionDirection = "Vietnamese SVO → Sign Language SOV"
)

type StructureChanges struct {
	Subjects        int `json:"subjects"`
	Verbs           int `json:"verbs"`
	Objects         int `json:"objects"`
	Adjectives      int `json:"adjectives"`
	TimeExpressions int `json:"timeExpressions"`
	Others          int `json:"others"`
	Pronouns        int `json:"pronouns"`
	Adverbs         int `json:"adverbs"`
	Numbers         int `json:"numbers"`
	Prepositions    int `json:"prepositions"`
} // @name StructureChanges

type ReorderStrategy struct {
	OriginalOrder      string `json:"originalOrder"`
	SignLanguageOrder  string `json:"signLanguageOrder"`
	TimePlacement      string `json:"timePlacement"`
	AdjectivePlacement string `json:"adjectivePlacement"`
} // @name ReorderStrategy

// DefaultReorderStrategy describes the reordering performed by Reorder
var DefaultReorderStrategy = ReorderStrategy{
	OriginalOrder:      OriginalOrder,
	SignLanguageOrder:  SignLanguageOrder,
	TimePlacement:      TimePlacement,
	AdjectivePlacement: AdjectivePlacement,
}

type StructuralReport struct {
	WordCount         int              `json:"wordCount"`
	ReorderedCount    int              `json:"reorderedCount"`
	DictionaryHits    int              `json:"dictionaryHits"`
	StructureChanges  StructureChanges `json:"structureChanges"`
	ReorderStrategy   ReorderStrategy  `json:"reorderStrategy"`
	ConversionApplied bool             `json:"conversionApplied"`

	// ProcessingTime is filled in by the caller measuring the
	// whole request (including tagging)
	ProcessingTime float64 `json:"processingTime,omitempty"`
} // @name StructuralReport

// Analyze reports statistics about a conversion. The function
// does not modify any of its arguments.
func Analyze(tokens []Token, buckets Buckets, glosses []string) StructuralReport {
	return StructuralReport{
		WordCount:      len(tokens),
		ReorderedCount: len(glosses),
		StructureChanges: StructureChanges{
			Subjects:        buckets.Size(BucketSubject),
			Verbs:           buckets.Size(BucketVerb),
			Objects:         buckets.Size(BucketObject),
			Adjectives:      buckets.Size(BucketAdjective),
			TimeExpressions: buckets.Size(BucketTime),
			Others:          buckets.Size(BucketOther),
			Pronouns:        buckets.Size(BucketPronoun),
			Adverbs:         buckets.Size(BucketAdverb),
			Numbers:         buckets.Size(BucketNumber),
			Prepositions:    buckets.Size(BucketPreposition),
		},
		ReorderStrategy:   DefaultReorderStrategy,
		ConversionApplied: true,
	}
}
