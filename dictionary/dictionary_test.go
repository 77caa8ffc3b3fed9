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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySource struct {
	entries []Entry
	err     error
}

func (src memorySource) Load(ctx context.Context) ([]Entry, error) {
	return src.entries, src.err
}

func (src memorySource) String() string {
	return "memory"
}

func entriesOf(pairs ...string) []Entry {
	ans := make([]Entry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ans = append(ans, Entry{Word: pairs[i], Gloss: pairs[i+1]})
	}
	return ans
}

func TestNormalizeWord(t *testing.T) {
	assert.Equal(t, "chúng_tôi", NormalizeWord("Chúng  Tôi", "_"))
	assert.Equal(t, "chúng-tôi", NormalizeWord(" chúng tôi ", "-"))
	assert.Equal(t, "", NormalizeWord("   ", "_"))
	// decomposed "tôi" (o + combining circumflex)
	assert.Equal(t, "tôi", NormalizeWord("to\u0302i", "_"))
}

func TestParseEntries(t *testing.T) {
	input := strings.Join(
		[]string{
			"# comment",
			"",
			"tôi = tôi",
			"malformed line",
			"cô gái = CÔ-GÁI",
			" = EMPTY",
			"phương trình = A = B",
		},
		"\n",
	)
	ans, err := ParseEntries(strings.NewReader(input), "test")
	require.NoError(t, err)
	assert.Equal(
		t,
		[]Entry{
			{Word: "tôi", Gloss: "tôi", Line: 3},
			{Word: "cô gái", Gloss: "CÔ-GÁI", Line: 5},
			{Word: "phương trình", Gloss: "A = B", Line: 7},
		},
		ans,
	)
}

func TestLoadNormalizesEntries(t *testing.T) {
	store := NewStore("_")
	res := store.Load(context.Background(), memorySource{entries: entriesOf("Cô Gái", " cô-gái ", "tôi", "tôi")})
	assert.Equal(t, 2, res.NewCount)
	assert.False(t, res.UsingSeed)
	v, ok := store.Lookup("cô_gái")
	assert.True(t, ok)
	assert.Equal(t, "CÔ-GÁI", v)
	v, ok = store.Lookup("tôi")
	assert.True(t, ok)
	assert.Equal(t, "TÔI", v)
}

func TestLoadLastWriteWins(t *testing.T) {
	store := NewStore("_")
	store.Load(context.Background(), memorySource{entries: entriesOf("đi", "ĐI-1", "Đi", "ĐI-2")})
	v, _ := store.Lookup("đi")
	assert.Equal(t, "ĐI-2", v)
	assert.Equal(t, 1, store.Len())
}

func TestLoadFallsBackToSeedOnError(t *testing.T) {
	store := NewStore("_")
	res := store.Load(context.Background(), memorySource{err: errors.New("unavailable")})
	assert.True(t, res.UsingSeed)
	assert.Equal(t, len(seedEntries), res.NewCount)
	v, ok := store.Lookup("chúng_tôi")
	assert.True(t, ok)
	assert.Equal(t, "CHÚNG-TÔI", v)
	v, ok = store.Lookup("năm")
	assert.True(t, ok)
	assert.Equal(t, "5", v)
}

func TestLoadFallsBackToSeedOnEmptySource(t *testing.T) {
	store := NewStore("_")
	res := store.Load(context.Background(), memorySource{})
	assert.True(t, res.UsingSeed)
	assert.True(t, store.Ready())
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore("_")
	res := store.Load(context.Background(), FileSource{Path: "/nonexistent/dictionary.txt"})
	assert.True(t, res.UsingSeed)
	assert.Equal(t, len(seedEntries), store.Len())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	err := os.WriteFile(path, []byte("# test\nxin chào = xin-chào\ncảm ơn=CẢM-ƠN\n"), 0644)
	require.NoError(t, err)
	store := NewStore("_")
	res := store.Load(context.Background(), FileSource{Path: path})
	assert.False(t, res.UsingSeed)
	assert.Equal(t, 2, res.NewCount)
	v, ok := store.Lookup("xin_chào")
	assert.True(t, ok)
	assert.Equal(t, "XIN-CHÀO", v)
}

func TestUnloadedStore(t *testing.T) {
	store := NewStore("")
	assert.False(t, store.Ready())
	assert.Equal(t, 0, store.Len())
	_, ok := store.Lookup("tôi")
	assert.False(t, ok)
	_, err := store.Reload(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)
	assert.Equal(t, 0, store.Info().TotalEntries)
}

func TestReloadReplacesMapping(t *testing.T) {
	store := NewStore("_")
	store.Load(context.Background(), memorySource{entries: entriesOf("a", "A", "b", "B")})
	res, err := store.ReloadFrom(context.Background(), memorySource{entries: entriesOf("c", "C")})
	require.NoError(t, err)
	assert.Equal(t, 2, res.OldCount)
	assert.Equal(t, 1, res.NewCount)
	assert.Equal(t, -1, res.Change)
	assert.Equal(t, 2, res.Revision)
	_, ok := store.Lookup("a")
	assert.False(t, ok)
	v, ok := store.Lookup("c")
	assert.True(t, ok)
	assert.Equal(t, "C", v)
}

func TestReloadFailureKeepsCurrentMapping(t *testing.T) {
	store := NewStore("_")
	store.Load(context.Background(), memorySource{entries: entriesOf("a", "A")})
	_, err := store.ReloadFrom(context.Background(), memorySource{err: errors.New("db down")})
	assert.Error(t, err)
	v, ok := store.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "A", v)
}

func TestReloadUsesLastSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte("a = A\n"), 0644))
	store := NewStore("_")
	store.Load(context.Background(), FileSource{Path: path})
	require.NoError(t, os.WriteFile(path, []byte("a = A\nb = B\n"), 0644))
	res, err := store.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.OldCount)
	assert.Equal(t, 2, res.NewCount)
	assert.Equal(t, 1, res.Change)
}

// TestReloadIsAtomic checks that readers running concurrently
// with reloads always observe one of the complete mappings.
func TestReloadIsAtomic(t *testing.T) {
	const size = 200
	mkSource := func(gloss string) memorySource {
		pairs := make([]string, 0, size*2)
		for i := 0; i < size; i++ {
			pairs = append(pairs, fmt.Sprintf("w%d", i), gloss)
		}
		return memorySource{entries: entriesOf(pairs...)}
	}
	srcA := mkSource("A")
	srcB := mkSource("B")
	store := NewStore("_")
	store.Load(context.Background(), srcA)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	torn := make(chan string, 10)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := store.current.Load()
				first := snap.entries["w0"]
				for i := 1; i < size; i++ {
					if v := snap.entries[fmt.Sprintf("w%d", i)]; v != first {
						torn <- fmt.Sprintf("w%d: %s != %s", i, v, first)
						return
					}
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		src := srcA
		if i%2 == 0 {
			src = srcB
		}
		_, err := store.ReloadFrom(context.Background(), src)
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()
	close(torn)
	for msg := range torn {
		t.Errorf("torn read: %s", msg)
	}
}

func TestConcurrentReloads(t *testing.T) {
	store := NewStore("_")
	store.Load(context.Background(), memorySource{entries: entriesOf("a", "A")})
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Reload(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, store.Len())
	assert.Greater(t, store.Info().Revision, 1)
}

func TestInfoCategories(t *testing.T) {
	store := NewStore("_")
	store.Load(context.Background(), SeedSource{})
	info := store.Info()
	assert.Equal(t, len(seedEntries), info.TotalEntries)
	assert.True(t, info.UsingSeed)
	// tôi, bạn, họ, chúng_tôi, chúng_ta
	assert.Equal(t, 5, info.Categories[CategoryPronouns])
	// đi, ăn, học, làm, nói, không, có
	assert.Equal(t, 7, info.Categories[CategoryVerbs])
	// một, hai, ba, bốn (năm is matched as a time word first)
	assert.Equal(t, 4, info.Categories[CategoryNumbers])
	assert.Equal(t, 1, info.Categories[CategoryTimeWords])
	assert.LessOrEqual(t, len(info.SampleWords[CategoryVerbs]), maxSampleWords)
	assert.NotNil(t, info.LoadedAt)
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryQuestionWords, Categorize("tại_sao"))
	assert.Equal(t, CategoryAdjectives, Categorize("hạnh_phúc"))
	assert.Equal(t, CategoryNouns, Categorize("bàn"))
}

func TestConfValidateAndDefaults(t *testing.T) {
	conf := &Conf{FilePath: "dict.txt"}
	assert.NoError(t, conf.ValidateAndDefaults("dictionary"))
	assert.Equal(t, SourceTypeFile, conf.SourceType)
	assert.Equal(t, DefaultJoiner, conf.Joiner)

	conf = &Conf{SourceType: SourceTypeFile}
	assert.Error(t, conf.ValidateAndDefaults("dictionary"))

	conf = &Conf{SourceType: SourceTypeMySQL, DB: &DBConf{}}
	assert.NoError(t, conf.ValidateAndDefaults("dictionary"))
	assert.Equal(t, DefaultDBTable, conf.DB.Table)

	conf = &Conf{SourceType: "ftp"}
	assert.Error(t, conf.ValidateAndDefaults("dictionary"))

	var nilConf *Conf
	assert.Error(t, nilConf.ValidateAndDefaults("dictionary"))
}

func TestNewSourceRedisRequiresClient(t *testing.T) {
	_, err := NewSource(&Conf{SourceType: SourceTypeRedis, RedisKey: "x"}, nil)
	assert.Error(t, err)
	src, err := NewSource(&Conf{SourceType: SourceTypeFile, FilePath: "x.txt"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "file:x.txt", src.String())
}

func TestReloadFromSeedReportsSeed(t *testing.T) {
	store := NewStore("_")
	store.Load(context.Background(), memorySource{entries: entriesOf("a", "A")})
	assert.False(t, store.Info().UsingSeed)
	res, err := store.ReloadFrom(context.Background(), SeedSource{})
	require.NoError(t, err)
	assert.True(t, res.UsingSeed)
	assert.True(t, store.Info().UsingSeed)
}

type contextAwareSource struct {
	entries []Entry
}

func (src contextAwareSource) Load(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return src.entries, nil
}

func (src contextAwareSource) String() string {
	return "context-aware"
}

func TestReloadIgnoresCallerCancellation(t *testing.T) {
	store := NewStore("_")
	store.Load(context.Background(), contextAwareSource{entries: entriesOf("a", "A", "b", "B")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := store.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NewCount)
}
