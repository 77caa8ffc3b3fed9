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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	commentPrefix = "#"
	keyValueSep   = "="
)

// Entry is a raw (not normalized) dictionary record
type Entry struct {
	Word  string
	Gloss string

	// Line is a source line number (if applicable)
	Line int
}

// ParseEntries reads `word = GLOSS` lines. Blank lines and lines
// starting with `#` are ignored, malformed lines are reported as warnings
// and skipped.
func ParseEntries(r io.Reader, srcName string) ([]Entry, error) {
	ans := make([]Entry, 0, 500)
	scanner := bufio.NewScanner(r)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		word, gloss, found := strings.Cut(line, keyValueSep)
		if !found {
			log.Warn().
				Str("source", srcName).
				Int("line", lineNum).
				Str("content", line).
				Msg("skipping dictionary line without separator")
			continue
		}
		word = strings.TrimSpace(word)
		gloss = strings.TrimSpace(gloss)
		if word == "" || gloss == "" {
			log.Warn().
				Str("source", srcName).
				Int("line", lineNum).
				Str("content", line).
				Msg("skipping dictionary line with empty word or gloss")
			continue
		}
		ans = append(ans, Entry{Word: word, Gloss: gloss, Line: lineNum})
	}
	if err := scanner.Err(); err != nil {
		return ans, fmt.Errorf("failed to read dictionary %s: %w", srcName, err)
	}
	return ans, nil
}
