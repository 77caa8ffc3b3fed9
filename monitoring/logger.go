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
	"context"
	"errors"
	"sync"
	"time"
	"vslnlp/results"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"
)

const (
	StaleWorkerLoadTTL = time.Hour * 24
	cleanupInterval    = time.Minute
	recentLogSize      = 100
)

var (
	ErrWorkerNotFound = errors.New("worker not found")
)

// WorkerJobLogger collects job logs of all the workers. It keeps
// cumulative per-worker load and a fixed-size list of the most
// recent jobs. Each record is also passed to a StatusWriter.
type WorkerJobLogger struct {
	loadData     WorkersLoad
	recentLog    *collections.CircularList[results.JobLog]
	dataLock     sync.RWMutex
	tz           *time.Location
	statusWriter StatusWriter
}

func (w *WorkerJobLogger) Log(rec results.JobLog) {
	w.dataLock.Lock()
	entry, ok := w.loadData[rec.WorkerID]
	if !ok {
		entry.FirstUpdate = rec.Begin
		entry.NumWorkers = 1
	}
	entry.NumJobs++
	entry.LastUpdate = rec.End
	if rec.Err != nil {
		entry.NumErrors++
	}
	entry.TotalTimeSecs += rec.TimeSpent().Seconds()
	w.loadData[rec.WorkerID] = entry
	w.recentLog.Append(rec)
	w.dataLock.Unlock()

	w.statusWriter.Write(rec)
	log.Debug().
		Str("workerId", rec.WorkerID).
		Str("func", rec.Func).
		Float64("durationSecs", rec.TimeSpent().Seconds()).
		Err(rec.Err).
		Msg("job finished")
}

func (w *WorkerJobLogger) TotalLoad() WorkerLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	return w.loadData.SumLoad(w.tz)
}

// forEachRecent iterates over recent jobs from the oldest one.
// The caller must hold the lock.
func (w *WorkerJobLogger) forEachRecent(fn func(item results.JobLog)) {
	w.recentLog.ForEach(func(i int, item results.JobLog) bool {
		fn(item)
		return true
	})
}

func (w *WorkerJobLogger) RecentLoad() WorkerLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans WorkerLoad
	workers := collections.NewSet[string]()
	w.forEachRecent(func(item results.JobLog) {
		workers.Add(item.WorkerID)
		ans.add(item)
	})
	ans.NumWorkers = workers.Size()
	return ans
}

func (w *WorkerJobLogger) RecentRecords() []results.JobLog {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans := make([]results.JobLog, 0, w.recentLog.Len())
	w.forEachRecent(func(item results.JobLog) {
		ans = append(ans, item)
	})
	return ans
}

// RecordsSince returns recent jobs finished at or after
// the provided time
func (w *WorkerJobLogger) RecordsSince(t time.Time) []results.JobLog {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans := make([]results.JobLog, 0, w.recentLog.Len())
	w.forEachRecent(func(item results.JobLog) {
		if !item.End.Before(t) {
			ans = append(ans, item)
		}
	})
	return ans
}

func (w *WorkerJobLogger) TotalWorkerLoad(workerID string) (WorkerLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans, ok := w.loadData[workerID]
	if !ok {
		return ans, ErrWorkerNotFound
	}
	return ans, nil
}

func (w *WorkerJobLogger) RecentWorkerLoad(workerID string) (WorkerLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans WorkerLoad
	w.forEachRecent(func(item results.JobLog) {
		if item.WorkerID == workerID {
			ans.add(item)
		}
	})
	if ans.NumJobs == 0 {
		return ans, ErrWorkerNotFound
	}
	ans.NumWorkers = 1
	return ans, nil
}

func (w *WorkerJobLogger) Start(ctx context.Context) {
	log.Info().Msg("starting worker job logger")
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("requesting worker job logger stop")
				return
			case <-ticker.C:
				w.dataLock.Lock()
				w.loadData.cleanOldRecords(time.Now().Add(-StaleWorkerLoadTTL))
				w.dataLock.Unlock()
			}
		}
	}()
}

func (w *WorkerJobLogger) Stop(ctx context.Context) error {
	log.Info().Msg("shutting down worker job logger")
	return nil
}

func NewWorkerJobLogger(
	statusWriter StatusWriter,
	tz *time.Location,
) *WorkerJobLogger {
	if statusWriter == nil {
		statusWriter = &NullStatusWriter{}
	}
	return &WorkerJobLogger{
		loadData:     make(WorkersLoad),
		recentLog:    collections.NewCircularList[results.JobLog](recentLogSize),
		statusWriter: statusWriter,
		tz:           tz,
	}
}
