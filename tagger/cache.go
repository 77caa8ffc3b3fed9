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

package tagger

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"vslnlp/gloss"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

const (
	cacheFilePrefix = "tag"
)

// fileCache stores tagging results as JSON files named by
// a hash of the tagged text. A nil cache is valid and disabled.
type fileCache struct {
	dir string
}

func (fc *fileCache) mkPath(text string) string {
	hashKey := sha1.Sum([]byte(text))
	return filepath.Join(fc.dir, cacheFilePrefix+hex.EncodeToString(hashKey[:]))
}

func (fc *fileCache) Get(text string) ([]gloss.Token, bool) {
	if fc == nil {
		return nil, false
	}
	path := fc.mkPath(text)
	isf, _ := fs.IsFile(path)
	if !fs.PathExists(path) || !isf {
		return nil, false
	}
	content, err := os.ReadFile(path)
	if err != nil {
		log.Err(err).Msgf("Error while reading cache file %s", path)
		return nil, false
	}
	var ans []gloss.Token
	if err := sonic.Unmarshal(content, &ans); err != nil {
		log.Err(err).Msgf("Error while decoding cache file %s", path)
		return nil, false
	}
	return ans, true
}

func (fc *fileCache) Set(text string, tokens []gloss.Token) {
	if fc == nil {
		return
	}
	path := fc.mkPath(text)
	data, err := sonic.Marshal(tokens)
	if err != nil {
		log.Err(err).Msgf("Error while encoding cache file %s", path)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Err(err).Msgf("Error while writing cache file %s", path)
	}
}

func newFileCache(dir string) *fileCache {
	if dir == "" {
		return nil
	}
	return &fileCache{dir: dir}
}
