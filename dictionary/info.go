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
	"slices"
	"strings"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
)

const (
	maxSampleWords = 5
)

type Category string

const (
	CategoryPronouns      Category = "pronouns"
	CategoryVerbs         Category = "verbs"
	CategoryAdjectives    Category = "adjectives"
	CategoryNouns         Category = "nouns"
	CategoryTimeWords     Category = "timeWords"
	CategoryQuestionWords Category = "questionWords"
	CategoryNumbers       Category = "numbers"
)

type categoryList struct {
	category Category
	words    []string
}

// categoryLists are matched in this order, the first match wins.
// Words not found anywhere are considered nouns.
var categoryLists = []categoryList{
	{
		category: CategoryPronouns,
		words:    []string{"tôi", "mình", "em", "bạn", "anh", "chị", "cô", "họ", "chúng_ta", "chúng_tôi"},
	},
	{
		category: CategoryVerbs,
		words: []string{
			"là", "có", "không", "đi", "đến", "về", "tới", "ăn", "uống", "ngủ", "làm", "học", "đọc",
			"viết", "nói", "nghe", "nhìn", "thấy", "yêu", "thích", "ghét", "mua", "bán", "cho", "lấy",
		},
	},
	{
		category: CategoryAdjectives,
		words: []string{
			"đẹp", "xấu", "tốt", "lớn", "nhỏ", "cao", "thấp", "dài", "ngắn", "rộng", "hẹp", "nóng",
			"lạnh", "ấm", "mát", "vui", "buồn", "giận", "hạnh_phúc",
		},
	},
	{
		category: CategoryTimeWords,
		words:    []string{"hôm_nay", "ngày_mai", "hôm_qua", "sáng", "trưa", "chiều", "tối", "tuần", "tháng", "năm"},
	},
	{
		category: CategoryQuestionWords,
		words:    []string{"gì", "ai", "đâu", "khi_nào", "như_thế_nào", "tại_sao"},
	},
	{
		category: CategoryNumbers,
		words:    []string{"một", "hai", "ba", "bốn", "năm", "sáu", "bảy", "tám", "chín", "mười"},
	},
}

// Categorize assigns a (normalized, `_` joined) word to a rough
// lexical category
func Categorize(word string) Category {
	for _, cl := range categoryLists {
		if collections.SliceContains(cl.words, word) {
			return cl.category
		}
	}
	return CategoryNouns
}

type Info struct {
	TotalEntries int                   `json:"totalEntries"`
	Categories   map[Category]int      `json:"categories"`
	SampleWords  map[Category][]string `json:"sampleWords"`
	Source       string                `json:"dictionarySource"`
	UsingSeed    bool                  `json:"usingSeed"`
	Revision     int                   `json:"revision"`
	LoadedAt     *time.Time            `json:"loadedAt,omitempty"`
} // @name DictionaryInfo

// Info provides statistics about the current mapping. For an
// unloaded store, an empty info is returned.
func (s *Store) Info() Info {
	ans := Info{
		Categories: map[Category]int{
			CategoryPronouns:      0,
			CategoryVerbs:         0,
			CategoryAdjectives:    0,
			CategoryNouns:         0,
			CategoryTimeWords:     0,
			CategoryQuestionWords: 0,
			CategoryNumbers:       0,
		},
		SampleWords: map[Category][]string{
			CategoryPronouns:   {},
			CategoryVerbs:      {},
			CategoryAdjectives: {},
			CategoryNouns:      {},
		},
	}
	snap := s.current.Load()
	if snap == nil {
		return ans
	}
	ans.TotalEntries = len(snap.entries)
	ans.Source = snap.source
	ans.UsingSeed = snap.isSeed
	ans.Revision = snap.revision
	loadedAt := snap.loadedAt
	ans.LoadedAt = &loadedAt

	words := make([]string, 0, len(snap.entries))
	for k := range snap.entries {
		words = append(words, k)
	}
	slices.Sort(words)
	for _, w := range words {
		cat := Categorize(strings.ReplaceAll(w, s.joiner, DefaultJoiner))
		ans.Categories[cat]++
		samples, ok := ans.SampleWords[cat]
		if ok && len(samples) < maxSampleWords {
			ans.SampleWords[cat] = append(samples, w)
		}
	}
	return ans
}
