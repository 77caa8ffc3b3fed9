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
	"time"
	"vslnlp/results"

	"github.com/bytedance/sonic"
)

type WorkerLoad struct {
	NumJobs       int
	TotalTimeSecs float64
	NumErrors     int
	FirstUpdate   time.Time
	LastUpdate    time.Time
	NumWorkers    int
}

func (wl *WorkerLoad) add(rec results.JobLog) {
	if wl.NumJobs == 0 || rec.Begin.Before(wl.FirstUpdate) {
		wl.FirstUpdate = rec.Begin
	}
	if rec.End.After(wl.LastUpdate) {
		wl.LastUpdate = rec.End
	}
	wl.NumJobs++
	if rec.Err != nil {
		wl.NumErrors++
	}
	wl.TotalTimeSecs += rec.TimeSpent().Seconds()
}

// TotalSpan returns time span covered by the load info
func (wl WorkerLoad) TotalSpan() time.Duration {
	return wl.LastUpdate.Sub(wl.FirstUpdate)
}

// AvgLoad is a ratio of time spent by processing jobs
// and the total time span available to all the workers
func (wl WorkerLoad) AvgLoad() float64 {
	span := wl.TotalSpan().Seconds()
	if wl.TotalTimeSecs == 0 || span <= 0 || wl.NumWorkers == 0 {
		return 0
	}
	return wl.TotalTimeSecs / span / float64(wl.NumWorkers)
}

func (wl WorkerLoad) MarshalJSON() ([]byte, error) {
	var t0, t1 *time.Time
	if !wl.FirstUpdate.IsZero() {
		t0 = &wl.FirstUpdate
	}
	if !wl.LastUpdate.IsZero() {
		t1 = &wl.LastUpdate
	}
	return sonic.Marshal(
		struct {
			NumJobs       int        `json:"numJobs"`
			TotalTimeSecs float64    `json:"totalTimeSecs"`
			NumErrors     int        `json:"numErrors"`
			NumWorkers    int        `json:"numWorkers"`
			FirstUpdate   *time.Time `json:"firstUpdate,omitempty"`
			LastUpdate    *time.Time `json:"lastUpdate,omitempty"`
			AvgLoad       float64    `json:"avgLoad"`
		}{
			NumJobs:       wl.NumJobs,
			TotalTimeSecs: results.NormRound(wl.TotalTimeSecs),
			NumErrors:     wl.NumErrors,
			NumWorkers:    wl.NumWorkers,
			FirstUpdate:   t0,
			LastUpdate:    t1,
			AvgLoad:       results.NormRound(wl.AvgLoad()),
		},
	)
}

// WorkersLoad maps worker IDs to their cumulative load
type WorkersLoad map[string]WorkerLoad

// SumLoad merges all the workers' load into a single value.
// Time values are converted to the provided location.
func (wl WorkersLoad) SumLoad(tz *time.Location) WorkerLoad {
	var ans WorkerLoad
	for _, v := range wl {
		if ans.NumWorkers == 0 || v.FirstUpdate.Before(ans.FirstUpdate) {
			ans.FirstUpdate = v.FirstUpdate
		}
		if v.LastUpdate.After(ans.LastUpdate) {
			ans.LastUpdate = v.LastUpdate
		}
		ans.NumJobs += v.NumJobs
		ans.NumErrors += v.NumErrors
		ans.TotalTimeSecs += v.TotalTimeSecs
		ans.NumWorkers++
	}
	if tz != nil && ans.NumWorkers > 0 {
		ans.FirstUpdate = ans.FirstUpdate.In(tz)
		ans.LastUpdate = ans.LastUpdate.In(tz)
	}
	return ans
}

// cleanOldRecords removes workers with no activity since `limit`
func (wl WorkersLoad) cleanOldRecords(limit time.Time) {
	for k, v := range wl {
		if v.LastUpdate.Before(limit) {
			delete(wl, k)
		}
	}
}
