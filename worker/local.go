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
	"time"
	"vslnlp/merror"
	"vslnlp/rdb"
	"vslnlp/results"

	"golang.org/x/sync/semaphore"
)

const (
	DefaultMaxNumConcurrentJobs = 4
)

// LocalRunner executes queries in-process. It serves as a drop-in
// replacement of rdb.Adapter for deployments without Redis.
type LocalRunner struct {
	workerID  string
	executor  *Executor
	jobLogger jobLogger
	sem       *semaphore.Weighted
	ctx       context.Context
}

func (lr *LocalRunner) PublishQuery(query rdb.Query) (<-chan *rdb.WorkerResult, error) {
	ans := make(chan *rdb.WorkerResult, 1)
	go func() {
		defer close(ans)
		if err := lr.sem.Acquire(lr.ctx, 1); err != nil {
			now := time.Now()
			ans <- rdb.CreateWorkerResult(
				&results.ErrorResult{
					Func:  query.Func,
					Error: merror.InternalError{Msg: "server is shutting down"},
				},
				now,
				now,
			)
			return
		}
		defer lr.sem.Release(1)
		jobLog := results.JobLog{
			WorkerID: lr.workerID,
			Func:     query.Func,
			Begin:    time.Now(),
		}
		res := lr.executor.Run(query)
		jobLog.End = time.Now()
		jobLog.Err = res.Err()
		lr.jobLogger.Log(jobLog)
		wres := rdb.CreateWorkerResult(res, jobLog.Begin, jobLog.End)
		wres.ID = lr.workerID
		ans <- wres
	}()
	return ans, nil
}

func NewLocalRunner(
	ctx context.Context,
	workerID string,
	executor *Executor,
	jobLogger jobLogger,
	maxNumConcurrentJobs int,
) *LocalRunner {
	if maxNumConcurrentJobs <= 0 {
		maxNumConcurrentJobs = DefaultMaxNumConcurrentJobs
	}
	return &LocalRunner{
		ctx:       ctx,
		workerID:  workerID,
		executor:  executor,
		jobLogger: jobLogger,
		sem:       semaphore.NewWeighted(int64(maxNumConcurrentJobs)),
	}
}
