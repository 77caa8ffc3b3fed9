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

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"vslnlp/dictionary"
	"vslnlp/general"
	"vslnlp/gloss"
	"vslnlp/results"
	"vslnlp/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTagger struct {
	tokens       []gloss.Token
	unconfigured bool
}

func (ft fixedTagger) Tag(ctx context.Context, text string) []gloss.Token {
	return ft.tokens
}

func (ft fixedTagger) IsConfigured() bool {
	return !ft.unconfigured
}

type nullJobLogger struct{}

func (n nullJobLogger) Log(rec results.JobLog) {}

type countingBroadcaster struct {
	numCalls int
}

func (cb *countingBroadcaster) PublishDictionaryReload() error {
	cb.numCalls++
	return nil
}

var taggedSentence = []gloss.Token{
	{Word: "Hôm nay", Tag: gloss.TagX},
	{Word: "tôi", Tag: gloss.TagPron},
	{Word: "đi", Tag: gloss.TagVerb},
	{Word: "học", Tag: gloss.TagVerb},
}

type testEnv struct {
	engine      *gin.Engine
	store       *dictionary.Store
	broadcaster *countingBroadcaster
	dictPath    string
}

func newTestEnv(t *testing.T, loadDict bool) *testEnv {
	return newTestEnvWithTagger(t, loadDict, fixedTagger{tokens: taggedSentence})
}

func newTestEnvWithTagger(t *testing.T, loadDict bool, tagger fixedTagger) *testEnv {
	gin.SetMode(gin.TestMode)
	dictPath := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(dictPath, []byte("tôi=TÔI\nđi=ĐI\nhôm nay=HÔM-NAY\n"), 0644))
	store := dictionary.NewStore("_")
	if loadDict {
		store.Load(context.Background(), dictionary.FileSource{Path: dictPath})
	}
	runner := worker.NewLocalRunner(
		context.Background(),
		"test",
		worker.NewExecutor(gloss.NewConverter(store, gloss.DefaultTimeWords), tagger, 0),
		nullJobLogger{},
		2,
	)
	broadcaster := &countingBroadcaster{}
	actions := NewActions(store, runner, broadcaster, tagger, general.VersionInfo{Version: "1.0.0"})
	engine := gin.New()
	engine.POST("/convert", actions.Convert)
	engine.POST("/convert-sign-language", actions.ConvertText)
	engine.POST("/analyze", actions.Analyze)
	engine.GET("/sign-dictionary-info", actions.DictionaryInfo)
	engine.POST("/tools/reload-dictionary", actions.ReloadDictionary)
	engine.GET("/health", actions.Health)
	engine.GET("/examples", actions.Examples)
	return &testEnv{
		engine:      engine,
		store:       store,
		broadcaster: broadcaster,
		dictPath:    dictPath,
	}
}

func (env *testEnv) do(method, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	env.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var ans map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	return ans
}

func TestConvertText(t *testing.T) {
	env := newTestEnv(t, true)
	w := env.do(http.MethodPost, "/convert-sign-language", `{"text": "Hôm nay tôi đi học"}`)
	require.Equal(t, http.StatusOK, w.Code)
	ans := decodeBody(t, w)
	assert.Equal(t, true, ans["success"])
	assert.Equal(t, "Hôm nay tôi đi học", ans["originalSentence"])
	assert.Equal(
		t,
		[]any{"HÔM-NAY", "TÔI", "ĐI", "HỌC"},
		ans["signLanguageSequence"],
	)
	assert.Len(t, ans["wordDetails"], 4)
	assert.Len(t, ans["posAnalysis"], 4)
}

func TestConvertTextEmpty(t *testing.T) {
	env := newTestEnv(t, true)
	w := env.do(http.MethodPost, "/convert-sign-language", `{"text": "  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodPost, "/convert-sign-language", `{"text": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConvertTokens(t *testing.T) {
	env := newTestEnv(t, true)
	w := env.do(
		http.MethodPost,
		"/convert",
		`{"tokens": [["mèo", "NOUN"], {"word": "đen", "tag": "ADJ"}, ["đi", "VERB"]]}`,
	)
	require.Equal(t, http.StatusOK, w.Code)
	ans := decodeBody(t, w)
	assert.Equal(t, []any{"MÈO", "ĐEN", "ĐI"}, ans["signLanguageSequence"])

	w = env.do(http.MethodPost, "/convert", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConvertNotInitialized(t *testing.T) {
	env := newTestEnv(t, false)
	w := env.do(http.MethodPost, "/convert", `{"tokens": [["mèo", "NOUN"]]}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = env.do(http.MethodGet, "/sign-dictionary-info", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAnalyze(t *testing.T) {
	env := newTestEnv(t, true)
	w := env.do(http.MethodPost, "/analyze", `{"text": "Hôm nay tôi đi học"}`)
	require.Equal(t, http.StatusOK, w.Code)
	ans := decodeBody(t, w)
	assert.Len(t, ans["results"], 4)
	stats := ans["statistics"].(map[string]any)
	assert.Equal(t, 4.0, stats["totalWords"])
	assert.Equal(t, 3.0, stats["uniqueTags"])
}

func TestDictionaryInfo(t *testing.T) {
	env := newTestEnv(t, true)
	w := env.do(http.MethodGet, "/sign-dictionary-info", "")
	require.Equal(t, http.StatusOK, w.Code)
	ans := decodeBody(t, w)
	assert.Equal(t, 3.0, ans["totalEntries"])
	assert.Equal(t, gloss.ConversionDirection, ans["conversionSystem"])
	cats := ans["categories"].(map[string]any)
	assert.Equal(t, 1.0, cats["pronouns"])
	assert.Equal(t, 1.0, cats["verbs"])
	assert.Equal(t, 1.0, cats["timeWords"])
}

func TestReloadDictionary(t *testing.T) {
	env := newTestEnv(t, true)
	require.NoError(
		t,
		os.WriteFile(env.dictPath, []byte("tôi=TÔI\nđi=ĐI\nhôm nay=HÔM-NAY\nhọc=HỌC\nmèo=MÈO\n"), 0644),
	)
	w := env.do(http.MethodPost, "/tools/reload-dictionary", "")
	require.Equal(t, http.StatusOK, w.Code)
	ans := decodeBody(t, w)
	assert.Equal(t, true, ans["success"])
	assert.Equal(t, 3.0, ans["oldCount"])
	assert.Equal(t, 5.0, ans["newCount"])
	assert.Equal(t, 2.0, ans["change"])
	assert.Equal(t, true, ans["broadcast"])
	assert.Equal(t, 1, env.broadcaster.numCalls)
	assert.Equal(t, 5, env.store.Len())
}

func TestReloadDictionaryFailureKeepsMapping(t *testing.T) {
	env := newTestEnv(t, true)
	require.NoError(t, os.Remove(env.dictPath))
	w := env.do(http.MethodPost, "/tools/reload-dictionary", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 3, env.store.Len())
	assert.Equal(t, 0, env.broadcaster.numCalls)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, true)
	w := env.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	ans := decodeBody(t, w)
	assert.Equal(t, healthStatusHealthy, ans["status"])
	assert.Equal(t, true, ans["dictionaryLoaded"])
	assert.Equal(t, 3.0, ans["dictionarySize"])

	env = newTestEnv(t, false)
	ans = decodeBody(t, env.do(http.MethodGet, "/health", ""))
	assert.Equal(t, healthStatusDegraded, ans["status"])
}

func TestExamples(t *testing.T) {
	env := newTestEnv(t, true)
	ans := decodeBody(t, env.do(http.MethodGet, "/examples", ""))
	assert.Len(t, ans["examples"], len(exampleSentences))
	ans = decodeBody(t, env.do(http.MethodGet, "/examples?limit=2", ""))
	assert.Len(t, ans["examples"], 2)
	w := env.do(http.MethodGet, "/examples?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTextEndpointsRequireTagger(t *testing.T) {
	env := newTestEnvWithTagger(t, true, fixedTagger{unconfigured: true})
	for _, url := range []string{"/convert-sign-language", "/analyze"} {
		w := env.do(http.MethodPost, url, `{"text": "Tôi ăn cơm"}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, url)
		body := decodeBody(t, w)
		assert.Contains(t, body["error"], "tagger not configured", url)
		_, hasSeq := body["signLanguageSequence"]
		assert.False(t, hasSeq, url)
	}
	// pre-tagged input does not depend on the tagger
	w := env.do(http.MethodPost, "/convert", `{"tokens": [{"word": "tôi", "tag": "PRON"}]}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
