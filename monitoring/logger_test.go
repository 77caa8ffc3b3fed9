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

package monitoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
	"vslnlp/results"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStatusWriter struct {
	records []results.JobLog
}

func (m *memoryStatusWriter) Write(rec results.JobLog) {
	m.records = append(m.records, rec)
}

var t0 = time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC)

func job(workerID string, startSec, durSecs int, err error) results.JobLog {
	begin := t0.Add(time.Duration(startSec) * time.Second)
	return results.JobLog{
		WorkerID: workerID,
		Func:     "tagAndConvert",
		Begin:    begin,
		End:      begin.Add(time.Duration(durSecs) * time.Second),
		Err:      err,
	}
}

func TestLoggerTotalLoad(t *testing.T) {
	sw := &memoryStatusWriter{}
	logger := NewWorkerJobLogger(sw, time.UTC)
	logger.Log(job("w1", 0, 2, nil))
	logger.Log(job("w1", 5, 1, errors.New("failed")))
	logger.Log(job("w2", 2, 3, nil))

	assert.Len(t, sw.records, 3)
	total := logger.TotalLoad()
	assert.Equal(t, 3, total.NumJobs)
	assert.Equal(t, 1, total.NumErrors)
	assert.Equal(t, 2, total.NumWorkers)
	assert.Equal(t, 6.0, total.TotalTimeSecs)
	assert.Equal(t, t0, total.FirstUpdate)
	assert.Equal(t, t0.Add(6*time.Second), total.LastUpdate)
	assert.InDelta(t, 0.5, total.AvgLoad(), 0.0001)
}

func TestLoggerWorkerLoad(t *testing.T) {
	logger := NewWorkerJobLogger(nil, time.UTC)
	logger.Log(job("w1", 0, 2, nil))
	logger.Log(job("w2", 2, 3, nil))

	load, err := logger.TotalWorkerLoad("w2")
	require.NoError(t, err)
	assert.Equal(t, 1, load.NumJobs)

	load, err = logger.RecentWorkerLoad("w1")
	require.NoError(t, err)
	assert.Equal(t, 1, load.NumJobs)
	assert.Equal(t, 1, load.NumWorkers)

	_, err = logger.TotalWorkerLoad("w3")
	assert.ErrorIs(t, err, ErrWorkerNotFound)
	_, err = logger.RecentWorkerLoad("w3")
	assert.ErrorIs(t, err, ErrWorkerNotFound)
}

func TestLoggerRecentLogIsBounded(t *testing.T) {
	logger := NewWorkerJobLogger(nil, time.UTC)
	for i := 0; i < recentLogSize+20; i++ {
		logger.Log(job(fmt.Sprintf("w%d", i%3), i, 1, nil))
	}
	recs := logger.RecentRecords()
	assert.Len(t, recs, recentLogSize)
	assert.Equal(t, t0.Add(20*time.Second), recs[0].Begin)
	recent := logger.RecentLoad()
	assert.Equal(t, recentLogSize, recent.NumJobs)
	assert.Equal(t, 3, recent.NumWorkers)
	assert.Equal(t, recentLogSize+20, logger.TotalLoad().NumJobs)
}

func TestLoggerRecordsSince(t *testing.T) {
	logger := NewWorkerJobLogger(nil, time.UTC)
	logger.Log(job("w1", 0, 1, nil))
	logger.Log(job("w1", 10, 1, nil))
	logger.Log(job("w1", 20, 1, nil))
	recs := logger.RecordsSince(t0.Add(11 * time.Second))
	require.Len(t, recs, 2)
	assert.Equal(t, t0.Add(10*time.Second), recs[0].Begin)
}

func TestCleanOldRecords(t *testing.T) {
	wl := WorkersLoad{
		"w1": {NumJobs: 1, LastUpdate: t0},
		"w2": {NumJobs: 1, LastUpdate: t0.Add(2 * time.Hour)},
	}
	wl.cleanOldRecords(t0.Add(time.Hour))
	assert.Len(t, wl, 1)
	_, ok := wl["w2"]
	assert.True(t, ok)
}

func TestEmptyWorkerLoadJSON(t *testing.T) {
	data, err := json.Marshal(WorkerLoad{})
	require.NoError(t, err)
	assert.JSONEq(
		t,
		`{"numJobs":0,"totalTimeSecs":0,"numErrors":0,"numWorkers":0,"avgLoad":0}`,
		string(data),
	)
}
