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
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	reloadFlightKey = "reload"
)

var (
	ErrNoSource = errors.New("dictionary source not configured")
)

// snapshot is an immutable state of the dictionary. Once published
// via Store.current, it must never be modified.
type snapshot struct {
	entries  map[string]string
	source   string
	isSeed   bool
	loadedAt time.Time
	revision int
}

// ReloadResult summarizes a (re)load operation
type ReloadResult struct {
	OldCount  int    `json:"oldCount"`
	NewCount  int    `json:"newCount"`
	Change    int    `json:"change"`
	Source    string `json:"source"`
	UsingSeed bool   `json:"usingSeed"`
	Revision  int    `json:"revision"`
}

// Store holds the word-to-gloss mapping. Lookups never block,
// a reload builds a completely new mapping and publishes it
// with a single atomic pointer swap so readers see either the old
// or the new mapping in full.
type Store struct {
	current atomic.Pointer[snapshot]
	joiner  string

	// reloadLock serializes all the writers
	reloadLock sync.Mutex

	// reloadGroup collapses concurrent reload requests
	reloadGroup singleflight.Group

	source Source
}

func (s *Store) buildSnapshot(entries []Entry, srcName string, isSeed bool, revision int) *snapshot {
	ans := &snapshot{
		entries:  make(map[string]string, len(entries)),
		source:   srcName,
		isSeed:   isSeed,
		loadedAt: time.Now(),
		revision: revision,
	}
	for _, e := range entries {
		key := NormalizeWord(e.Word, s.joiner)
		value := NormalizeGloss(e.Gloss)
		if key == "" || value == "" {
			log.Warn().
				Str("source", srcName).
				Int("line", e.Line).
				Msg("skipping empty dictionary entry")
			continue
		}
		ans.entries[key] = value
	}
	return ans
}

func (s *Store) seedSnapshot(revision int) *snapshot {
	entries, _ := SeedSource{}.Load(context.Background())
	return s.buildSnapshot(entries, seedSourceName, true, revision)
}

func isSeedSource(src Source) bool {
	_, ok := src.(SeedSource)
	return ok
}

func (s *Store) nextRevision() int {
	if curr := s.current.Load(); curr != nil {
		return curr.revision + 1
	}
	return 1
}

func (s *Store) publish(snap *snapshot) ReloadResult {
	var oldCount int
	if prev := s.current.Swap(snap); prev != nil {
		oldCount = len(prev.entries)
	}
	return ReloadResult{
		OldCount:  oldCount,
		NewCount:  len(snap.entries),
		Change:    len(snap.entries) - oldCount,
		Source:    snap.source,
		UsingSeed: snap.isSeed,
		Revision:  snap.revision,
	}
}

// Load performs the initial load from the source. In case the source
// is unavailable or yields no entries, the built-in seed mapping is used
// so the store is always ready after Load returns.
func (s *Store) Load(ctx context.Context, src Source) ReloadResult {
	s.reloadLock.Lock()
	defer s.reloadLock.Unlock()
	s.source = src
	revision := s.nextRevision()
	if src == nil {
		log.Warn().Msg("no dictionary source specified, using built-in seed mapping")
		return s.publish(s.seedSnapshot(revision))
	}
	entries, err := src.Load(ctx)
	if err != nil {
		log.Warn().
			Err(err).
			Str("source", src.String()).
			Msg("failed to load dictionary, using built-in seed mapping")
		return s.publish(s.seedSnapshot(revision))
	}
	snap := s.buildSnapshot(entries, src.String(), isSeedSource(src), revision)
	if len(snap.entries) == 0 {
		log.Warn().
			Str("source", src.String()).
			Msg("dictionary source provided no entries, using built-in seed mapping")
		snap = s.seedSnapshot(revision)
	}
	ans := s.publish(snap)
	log.Info().
		Str("source", ans.Source).
		Int("size", ans.NewCount).
		Bool("usingSeed", ans.UsingSeed).
		Msg("dictionary loaded")
	return ans
}

// ReloadFrom replaces the mapping with the contents of the provided
// source. On source failure, the current mapping is kept and the error
// is returned. An empty source results in the seed mapping.
func (s *Store) ReloadFrom(ctx context.Context, src Source) (ReloadResult, error) {
	if src == nil {
		return ReloadResult{}, ErrNoSource
	}
	s.reloadLock.Lock()
	defer s.reloadLock.Unlock()
	entries, err := src.Load(ctx)
	if err != nil {
		return ReloadResult{}, fmt.Errorf("failed to reload dictionary: %w", err)
	}
	revision := s.nextRevision()
	snap := s.buildSnapshot(entries, src.String(), isSeedSource(src), revision)
	if len(snap.entries) == 0 {
		log.Warn().
			Str("source", src.String()).
			Msg("dictionary source provided no entries, using built-in seed mapping")
		snap = s.seedSnapshot(revision)
	}
	s.source = src
	ans := s.publish(snap)
	log.Info().
		Str("source", ans.Source).
		Int("oldCount", ans.OldCount).
		Int("newCount", ans.NewCount).
		Msg("dictionary reloaded")
	return ans, nil
}

// Reload reloads the mapping from the source used by the last
// successful (re)load. Concurrent calls share a single reload.
func (s *Store) Reload(ctx context.Context) (ReloadResult, error) {
	s.reloadLock.Lock()
	src := s.source
	s.reloadLock.Unlock()
	if src == nil {
		return ReloadResult{}, ErrNoSource
	}
	// the reload is shared, so it must not end with the first caller's request
	sharedCtx := context.WithoutCancel(ctx)
	v, err, _ := s.reloadGroup.Do(reloadFlightKey, func() (any, error) {
		return s.ReloadFrom(sharedCtx, src)
	})
	if err != nil {
		return ReloadResult{}, err
	}
	return v.(ReloadResult), nil
}

// Lookup searches for an already normalized word
func (s *Store) Lookup(normalized string) (string, bool) {
	snap := s.current.Load()
	if snap == nil {
		return "", false
	}
	v, ok := snap.entries[normalized]
	return v, ok
}

func (s *Store) Normalize(word string) string {
	return NormalizeWord(word, s.joiner)
}

// Ready tells whether at least one (re)load has been performed
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

func (s *Store) Len() int {
	snap := s.current.Load()
	if snap == nil {
		return 0
	}
	return len(snap.entries)
}

func (s *Store) Joiner() string {
	return s.joiner
}

func NewStore(joiner string) *Store {
	if joiner == "" {
		joiner = DefaultJoiner
	}
	return &Store{joiner: joiner}
}
