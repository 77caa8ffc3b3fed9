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

// Reorder flattens buckets into a single sequence following
// ReorderSequence. Tokens keep their mutual order within a bucket.
func Reorder(buckets Buckets) []Token {
	ans := make([]Token, 0, buckets.Total())
	for _, name := range ReorderSequence {
		ans = append(ans, buckets[name]...)
	}
	return ans
}
