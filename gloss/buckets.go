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
	"github.com/bytedance/sonic"
)

type BucketName string // @name BucketName

const (
	BucketTime        BucketName = "time"
	BucketPronoun     BucketName = "pronoun"
	BucketSubject     BucketName = "subject"
	BucketAdjective   BucketName = "adjective"
	BucketNumber      BucketName = "number"
	BucketObject      BucketName = "object"
	BucketVerb        BucketName = "verb"
	BucketAdverb      BucketName = "adverb"
	BucketPreposition BucketName = "preposition"
	BucketOther       BucketName = "other"
)

// ReorderSequence is the order in which buckets are concatenated
// into the output sequence.
var ReorderSequence = []BucketName{
	BucketTime,
	BucketPronoun,
	BucketSubject,
	BucketAdjective,
	BucketNumber,
	BucketObject,
	BucketVerb,
	BucketAdverb,
	BucketPreposition,
	BucketOther,
}

func (bn BucketName) String() string {
	return string(bn)
}

// Buckets maps each bucket to its tokens in order of first encounter.
// Use NewBuckets to get an instance with all the buckets present.
type Buckets map[BucketName][]Token

func NewBuckets() Buckets {
	ans := make(Buckets, len(ReorderSequence))
	for _, name := range ReorderSequence {
		ans[name] = []Token{}
	}
	return ans
}

func (b Buckets) Add(name BucketName, tok Token) {
	b[name] = append(b[name], tok)
}

func (b Buckets) Size(name BucketName) int {
	return len(b[name])
}

func (b Buckets) IsEmpty(name BucketName) bool {
	return len(b[name]) == 0
}

// Total returns number of tokens over all the buckets
func (b Buckets) Total() int {
	var ans int
	for _, v := range b {
		ans += len(v)
	}
	return ans
}

// MarshalJSON exports buckets as lists of surface words
// in the reordering sequence.
func (b Buckets) MarshalJSON() ([]byte, error) {
	ans := make(map[string][]string, len(ReorderSequence))
	for _, name := range ReorderSequence {
		ans[name.String()] = Words(b[name])
	}
	return sonic.Marshal(ans)
}
