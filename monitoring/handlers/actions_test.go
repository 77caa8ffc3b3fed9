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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vslnlp/monitoring"
	"vslnlp/results"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := monitoring.NewWorkerJobLogger(nil, time.UTC)
	now := time.Now()
	logger.Log(results.JobLog{
		WorkerID: "w1",
		Func:     "analyze",
		Begin:    now.Add(-2 * time.Hour),
		End:      now.Add(-2*time.Hour + time.Second),
	})
	logger.Log(results.JobLog{
		WorkerID: "w1",
		Func:     "tagAndConvert",
		Begin:    now.Add(-time.Minute),
		End:      now.Add(-time.Minute + time.Second),
	})
	actions := NewActions(logger, time.UTC)
	engine := gin.New()
	engine.GET("/monitoring/workers-load", actions.WorkersLoad)
	engine.GET("/monitoring/workers-load/:workerId", actions.SingleWorkerLoad)
	engine.GET("/monitoring/jobs", actions.Jobs)
	return engine
}

func doGet(engine *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestWorkersLoad(t *testing.T) {
	engine := newTestEngine()
	w := doGet(engine, "/monitoring/workers-load?span=total")
	require.Equal(t, http.StatusOK, w.Code)
	var ans map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	assert.Equal(t, 2.0, ans["numJobs"])

	w = doGet(engine, "/monitoring/workers-load?span=yesterday")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSingleWorkerLoad(t *testing.T) {
	engine := newTestEngine()
	w := doGet(engine, "/monitoring/workers-load/w1")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doGet(engine, "/monitoring/workers-load/w9")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJobs(t *testing.T) {
	engine := newTestEngine()
	w := doGet(engine, "/monitoring/jobs")
	require.Equal(t, http.StatusOK, w.Code)
	var ans []jobRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	require.Len(t, ans, 1)
	assert.Equal(t, "tagAndConvert", ans[0].Func)

	w = doGet(engine, "/monitoring/jobs?ago=3h")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	assert.Len(t, ans, 2)

	w = doGet(engine, "/monitoring/jobs?ago=foo")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
