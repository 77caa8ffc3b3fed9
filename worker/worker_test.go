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

package worker

import (
	"context"
	"sync"
	"testing"
	"vslnlp/dictionary"
	"vslnlp/gloss"
	"vslnlp/merror"
	"vslnlp/rdb"
	"vslnlp/results"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTagger struct {
	tokens []gloss.Token
}

func (ft fixedTagger) Tag(ctx context.Context, text string) []gloss.Token {
	return ft.tokens
}

type panickingTagger struct{}

func (pt panickingTagger) Tag(ctx context.Context, text string) []gloss.Token {
	panic("tagger model crashed")
}

type memoryJobLogger struct {
	lock    sync.Mutex
	records []results.JobLog
}

func (ml *memoryJobLogger) Log(rec results.JobLog) {
	ml.lock.Lock()
	defer ml.lock.Unlock()
	ml.records = append(ml.records, rec)
}

func newTestExecutor(t *testing.T, tagger Tagger) *Executor {
	store := dictionary.NewStore("_")
	store.Load(context.Background(), dictionary.SeedSource{})
	require.True(t, store.Ready())
	return NewExecutor(gloss.NewConverter(store, gloss.DefaultTimeWords), tagger, 0)
}

var sampleTokens = []gloss.Token{
	{Word: "Tôi", Tag: gloss.TagPron},
	{Word: "ăn", Tag: gloss.TagVerb},
	{Word: "cơm", Tag: gloss.TagNoun},
}

func TestTagAndConvert(t *testing.T) {
	exe := newTestExecutor(t, fixedTagger{tokens: sampleTokens})
	ans := exe.Run(rdb.Query{
		Func: rdb.FuncTagAndConvert,
		Args: rdb.TagAndConvertArgs{Text: "  Tôi ăn cơm "},
	})
	require.NoError(t, ans.Err())
	conv, ok := ans.(*results.Conversion)
	require.True(t, ok)
	assert.Equal(t, "Tôi ăn cơm", conv.Text)
	assert.Equal(t, "Tôi ăn cơm", conv.Result.OriginalSentence)
	assert.Equal(t, []string{"TÔI", "CƠM", "ĂN"}, conv.Result.SignLanguageSequence)
	assert.Equal(t, 2, conv.Result.StructureAnalysis.DictionaryHits)
}

func TestTagAndConvertEmptyText(t *testing.T) {
	exe := newTestExecutor(t, fixedTagger{tokens: sampleTokens})
	ans := exe.Run(rdb.Query{
		Func: rdb.FuncTagAndConvert,
		Args: rdb.TagAndConvertArgs{Text: "   "},
	})
	assert.Equal(t, errEmptyText, ans.Err())
}

func TestConvertPreTagged(t *testing.T) {
	exe := newTestExecutor(t, nil)
	ans := exe.Run(rdb.Query{
		Func: rdb.FuncConvert,
		Args: rdb.ConvertArgs{Tokens: sampleTokens},
	})
	require.NoError(t, ans.Err())
	conv := ans.(*results.Conversion)
	assert.Equal(t, []string{"TÔI", "CƠM", "ĂN"}, conv.Result.SignLanguageSequence)
}

func TestConvertNotInitialized(t *testing.T) {
	exe := NewExecutor(gloss.NewConverter(dictionary.NewStore("_"), nil), nil, 0)
	ans := exe.Run(rdb.Query{
		Func: rdb.FuncConvert,
		Args: rdb.ConvertArgs{Tokens: sampleTokens},
	})
	assert.Equal(t, gloss.ErrNotInitialized, ans.Err())
}

func TestAnalyze(t *testing.T) {
	exe := newTestExecutor(t, fixedTagger{tokens: sampleTokens})
	ans := exe.Run(rdb.Query{
		Func: rdb.FuncAnalyze,
		Args: rdb.AnalyzeArgs{Text: "Tôi ăn cơm"},
	})
	require.NoError(t, ans.Err())
	analysis, ok := ans.(*results.TextAnalysis)
	require.True(t, ok)
	assert.Equal(t, sampleTokens, analysis.Tokens)
	assert.Equal(t, 3, analysis.Statistics.TotalWords)
	assert.Equal(t, 3, analysis.Statistics.UniqueTags)
}

func TestRunUnknownFunc(t *testing.T) {
	exe := newTestExecutor(t, nil)
	ans := exe.Run(rdb.Query{Func: "concordance"})
	assert.Equal(t, results.ResultTypeError, ans.Type())
	assert.IsType(t, merror.InputError{}, ans.Err())
}

func TestRunInvalidArgs(t *testing.T) {
	exe := newTestExecutor(t, nil)
	ans := exe.Run(rdb.Query{Func: rdb.FuncAnalyze, Args: rdb.ConvertArgs{}})
	assert.Equal(t, results.ResultTypeError, ans.Type())
	assert.IsType(t, merror.InputError{}, ans.Err())
}

func TestRunRecoversPanic(t *testing.T) {
	exe := newTestExecutor(t, panickingTagger{})
	ans := exe.Run(rdb.Query{
		Func: rdb.FuncAnalyze,
		Args: rdb.AnalyzeArgs{Text: "Tôi ăn cơm"},
	})
	assert.Equal(t, results.ResultTypeError, ans.Type())
	assert.IsType(t, merror.RecoveredError{}, ans.Err())
	assert.Contains(t, ans.Err().Error(), "tagger model crashed")
}

func TestLocalRunner(t *testing.T) {
	jobLogger := &memoryJobLogger{}
	runner := NewLocalRunner(
		context.Background(),
		"local",
		newTestExecutor(t, fixedTagger{tokens: sampleTokens}),
		jobLogger,
		2,
	)
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch, err := runner.PublishQuery(rdb.Query{
				Func: rdb.FuncTagAndConvert,
				Args: rdb.TagAndConvertArgs{Text: "Tôi ăn cơm"},
			})
			assert.NoError(t, err)
			res := <-ch
			assert.NoError(t, res.Value.Err())
			assert.False(t, res.HasUserError)
		}()
	}
	wg.Wait()
	assert.Len(t, jobLogger.records, 5)
	for _, rec := range jobLogger.records {
		assert.Equal(t, "local", rec.WorkerID)
		assert.Equal(t, rdb.FuncTagAndConvert, rec.Func)
	}
}

func TestLocalRunnerUserError(t *testing.T) {
	runner := NewLocalRunner(
		context.Background(), "local", newTestExecutor(t, nil), &memoryJobLogger{}, 0)
	ch, err := runner.PublishQuery(rdb.Query{
		Func: rdb.FuncAnalyze,
		Args: rdb.AnalyzeArgs{Text: ""},
	})
	require.NoError(t, err)
	res := <-ch
	assert.True(t, res.HasUserError)
	assert.Equal(t, "local", res.ID)
}
