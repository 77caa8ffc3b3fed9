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

package results

import (
	"math"
	"time"
	"vslnlp/gloss"

	"github.com/bytedance/sonic"
)

func tokensAsList(tokens []gloss.Token) []gloss.Token {
	if tokens != nil {
		return tokens
	}
	return []gloss.Token{}
}

func stringsAsList(items []string) []string {
	if items != nil {
		return items
	}
	return []string{}
}

// ----

type ConversionResponse struct {
	Success              bool                   `json:"success"`
	Text                 string                 `json:"text,omitempty"`
	OriginalSentence     string                 `json:"originalSentence"`
	POSAnalysis          []gloss.Token          `json:"posAnalysis"`
	SignLanguageSequence []string               `json:"signLanguageSequence"`
	StructureAnalysis    gloss.StructuralReport `json:"structureAnalysis"`
	POSStructure         gloss.Buckets          `json:"posStructure"`
	WordDetails          []gloss.WordDetail     `json:"wordDetails"`
	ReorderStrategy      string                 `json:"reorderStrategy"`
	ResultType           ResultType             `json:"resultType"`
	Error                string                 `json:"error,omitempty"`
} // @name Conversion

type Conversion struct {

	// Text is the raw input text in case the conversion
	// involved tagging
	Text string

	// Tokens are the tagged words the conversion worked with
	Tokens []gloss.Token

	Result gloss.ConversionResult

	Error error
}

func (res *Conversion) Err() error {
	return res.Error
}

func (res *Conversion) Type() ResultType {
	return ResultTypeConversion
}

// SetProcessingTime stores total processing time (in seconds, rounded)
// to the structural analysis
func (res *Conversion) SetProcessingTime(t time.Duration) {
	res.Result.StructureAnalysis.ProcessingTime = NormRound(t.Seconds())
}

func (res *Conversion) MarshalJSON() ([]byte, error) {
	wordDetails := res.Result.WordDetails
	if wordDetails == nil {
		wordDetails = []gloss.WordDetail{}
	}
	posStructure := res.Result.POSStructure
	if posStructure == nil {
		posStructure = gloss.NewBuckets()
	}
	return sonic.Marshal(ConversionResponse{
		Success:              res.Error == nil,
		Text:                 res.Text,
		OriginalSentence:     res.Result.OriginalSentence,
		POSAnalysis:          tokensAsList(res.Tokens),
		SignLanguageSequence: stringsAsList(res.Result.SignLanguageSequence),
		StructureAnalysis:    res.Result.StructureAnalysis,
		POSStructure:         posStructure,
		WordDetails:          wordDetails,
		ReorderStrategy:      res.Result.ReorderStrategy,
		ResultType:           res.Type(),
		Error:                errToStr(res.Error),
	})
}

// ----

type TagStatistics struct {
	TotalWords      int               `json:"totalWords"`
	UniqueTags      int               `json:"uniqueTags"`
	ProcessingTime  float64           `json:"processingTime"`
	WordsPerSecond  float64           `json:"wordsPerSecond"`
	TagDistribution map[gloss.Tag]int `json:"tagDistribution"`
} // @name TagStatistics

// NewTagStatistics calculates tag distribution and throughput
// of a tagging operation
func NewTagStatistics(tokens []gloss.Token, procTime time.Duration) TagStatistics {
	dist := make(map[gloss.Tag]int)
	for _, tok := range tokens {
		dist[tok.Tag]++
	}
	ans := TagStatistics{
		TotalWords:      len(tokens),
		UniqueTags:      len(dist),
		ProcessingTime:  NormRound(procTime.Seconds()),
		TagDistribution: dist,
	}
	if procTime > 0 {
		ans.WordsPerSecond = math.Round(float64(len(tokens))/procTime.Seconds()*10) / 10
	}
	return ans
}

type TextAnalysisResponse struct {
	Success    bool          `json:"success"`
	Text       string        `json:"text"`
	Results    []gloss.Token `json:"results"`
	Statistics TagStatistics `json:"statistics"`
	ResultType ResultType    `json:"resultType"`
	Error      string        `json:"error,omitempty"`
} // @name TextAnalysis

type TextAnalysis struct {
	Text       string
	Tokens     []gloss.Token
	Statistics TagStatistics
	Error      error
}

func (res *TextAnalysis) Err() error {
	return res.Error
}

func (res *TextAnalysis) Type() ResultType {
	return ResultTypeTextAnalysis
}

func (res *TextAnalysis) MarshalJSON() ([]byte, error) {
	stats := res.Statistics
	if stats.TagDistribution == nil {
		stats.TagDistribution = map[gloss.Tag]int{}
	}
	return sonic.Marshal(TextAnalysisResponse{
		Success:    res.Error == nil,
		Text:       res.Text,
		Results:    tokensAsList(res.Tokens),
		Statistics: stats,
		ResultType: res.Type(),
		Error:      errToStr(res.Error),
	})
}
