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
	"errors"
	"testing"
	"time"
	"vslnlp/merror"
	"vslnlp/rdb"
	"vslnlp/results"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	result *rdb.WorkerResult
	err    error
}

func (fp *fakePublisher) PublishQuery(query rdb.Query) (<-chan *rdb.WorkerResult, error) {
	if fp.err != nil {
		return nil, fp.err
	}
	ans := make(chan *rdb.WorkerResult, 1)
	ans <- fp.result
	close(ans)
	return ans, nil
}

func TestMonitoredPublisherLogsWorkerJob(t *testing.T) {
	sw := &memoryStatusWriter{}
	logger := NewWorkerJobLogger(sw, time.UTC)
	pub := NewMonitoredPublisher(
		&fakePublisher{
			result: &rdb.WorkerResult{
				ID:        "w7",
				Value:     &results.Conversion{},
				ProcBegin: t0,
				ProcEnd:   t0.Add(time.Second),
			},
		},
		logger,
	)
	ch, err := pub.PublishQuery(rdb.Query{Func: rdb.FuncConvert})
	require.NoError(t, err)
	res := <-ch
	assert.Equal(t, "w7", res.ID)
	require.Len(t, sw.records, 1)
	assert.Equal(t, "w7", sw.records[0].WorkerID)
	assert.Equal(t, rdb.FuncConvert, sw.records[0].Func)
	assert.Equal(t, time.Second, sw.records[0].TimeSpent())
}

func TestMonitoredPublisherSkipsLocalTimeout(t *testing.T) {
	sw := &memoryStatusWriter{}
	pub := NewMonitoredPublisher(
		&fakePublisher{
			result: &rdb.WorkerResult{
				Value: &results.ErrorResult{Error: merror.TimeoutError{Msg: "timeout"}},
			},
		},
		NewWorkerJobLogger(sw, time.UTC),
	)
	ch, err := pub.PublishQuery(rdb.Query{Func: rdb.FuncConvert})
	require.NoError(t, err)
	res := <-ch
	assert.Error(t, res.Value.Err())
	assert.Empty(t, sw.records)
}

func TestMonitoredPublisherError(t *testing.T) {
	pub := NewMonitoredPublisher(
		&fakePublisher{err: errors.New("redis down")},
		NewWorkerJobLogger(nil, time.UTC),
	)
	_, err := pub.PublishQuery(rdb.Query{Func: rdb.FuncConvert})
	assert.Error(t, err)
}
