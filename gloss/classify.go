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
	"github.com/czcorpus/cnc-gokit/collections"
)

// DefaultTimeWords are Vietnamese temporal expressions moved
// to the beginning of a sentence.
var DefaultTimeWords = []string{
	"hôm nay",
	"ngày mai",
	"hôm qua",
	"tuần này",
	"tháng này",
	"sáng",
	"chiều",
	"tối",
	"đêm",
	"bây giờ",
	"lúc này",
}

// bucketRule decides the destination of a token based on
// what has been classified so far.
type bucketRule func(c *Classifier, tok Token, b Buckets) BucketName

func fixedBucket(name BucketName) bucketRule {
	return func(c *Classifier, tok Token, b Buckets) BucketName {
		return name
	}
}

// nominalBucket treats the first noun before any verb as the subject,
// every other noun is an object.
func nominalBucket(c *Classifier, tok Token, b Buckets) BucketName {
	if b.IsEmpty(BucketSubject) && b.IsEmpty(BucketVerb) {
		return BucketSubject
	}
	return BucketObject
}

func residualBucket(c *Classifier, tok Token, b Buckets) BucketName {
	if c.IsTimeExpression(tok.Word) {
		return BucketTime
	}
	return BucketOther
}

var tagRules = map[Tag]bucketRule{
	TagPron:  fixedBucket(BucketPronoun),
	TagNoun:  nominalBucket,
	TagPropn: nominalBucket,
	TagVerb:  fixedBucket(BucketVerb),
	TagAdj:   fixedBucket(BucketAdjective),
	TagAdv:   fixedBucket(BucketAdverb),
	TagNum:   fixedBucket(BucketNumber),
	TagAdp:   fixedBucket(BucketPreposition),
	TagPunct: residualBucket,
	TagCconj: residualBucket,
	TagSconj: residualBucket,
	TagDet:   residualBucket,
	TagPart:  residualBucket,
	TagIntj:  residualBucket,
	TagAux:   residualBucket,
	TagX:     residualBucket,
}

// Classifier sorts tagged tokens into grammatical buckets.
// It is immutable and safe for concurrent use.
type Classifier struct {
	timeWords []string
	normalize func(string) string
}

func (c *Classifier) IsTimeExpression(word string) bool {
	return collections.SliceContains(c.timeWords, c.normalize(word))
}

// Classify performs a single left-to-right pass over tokens.
// Every token ends up in exactly one bucket.
func (c *Classifier) Classify(tokens []Token) Buckets {
	ans := NewBuckets()
	for _, tok := range tokens {
		rule, ok := tagRules[tok.Tag]
		if !ok {
			rule = residualBucket
		}
		ans.Add(rule(c, tok, ans), tok)
	}
	return ans
}

// NewClassifier creates a classifier recognizing the provided time
// expressions. The normalize function must be the same one used for
// dictionary lookup so that "hôm nay" and "hôm_nay" are matched alike.
func NewClassifier(timeWords []string, normalize func(string) string) *Classifier {
	return &Classifier{
		timeWords: collections.SliceMap(
			timeWords,
			func(w string, i int) string {
				return normalize(w)
			},
		),
		normalize: normalize,
	}
}
