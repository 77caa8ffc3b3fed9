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
	"fmt"
	"net/http"
	"time"
	"vslnlp/monitoring"
	"vslnlp/results"

	"github.com/czcorpus/cnc-gokit/datetime"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type timeSpan string

func (ts timeSpan) Validate() error {
	if ts != spanTypeRecent && ts != spanTypeTotal {
		return fmt.Errorf("unknown time span `%s`", ts)
	}
	return nil
}

const (
	spanTypeRecent timeSpan = "recent"
	spanTypeTotal  timeSpan = "total"
	dfltJobsAgo             = "1h"
)

type jobRecord struct {
	WorkerID     string    `json:"workerId"`
	Func         string    `json:"func"`
	Begin        time.Time `json:"begin"`
	End          time.Time `json:"end"`
	DurationSecs float64   `json:"durationSecs"`
	Error        string    `json:"error,omitempty"`
}

func newJobRecord(rec results.JobLog, loc *time.Location) jobRecord {
	ans := jobRecord{
		WorkerID:     rec.WorkerID,
		Func:         rec.Func,
		Begin:        rec.Begin.In(loc),
		End:          rec.End.In(loc),
		DurationSecs: results.NormRound(rec.TimeSpent().Seconds()),
	}
	if rec.Err != nil {
		ans.Error = rec.Err.Error()
	}
	return ans
}

type Actions struct {
	logger   *monitoring.WorkerJobLogger
	location *time.Location
}

func (a *Actions) WorkersLoad(ctx *gin.Context) {
	span := timeSpan(ctx.DefaultQuery("span", string(spanTypeRecent)))
	if err := span.Validate(); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	var ans monitoring.WorkerLoad
	if span == spanTypeRecent {
		ans = a.logger.RecentLoad()

	} else {
		ans = a.logger.TotalLoad()
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) SingleWorkerLoad(ctx *gin.Context) {
	span := timeSpan(ctx.DefaultQuery("span", string(spanTypeRecent)))
	if err := span.Validate(); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	workerID := ctx.Param("workerId")

	var ans monitoring.WorkerLoad
	var srchErr error
	if span == spanTypeRecent {
		ans, srchErr = a.logger.RecentWorkerLoad(workerID)

	} else {
		ans, srchErr = a.logger.TotalWorkerLoad(workerID)
	}
	if srchErr == monitoring.ErrWorkerNotFound {
		uniresp.RespondWithErrorJSON(ctx, srchErr, http.StatusNotFound)
		return

	} else if srchErr != nil {
		uniresp.RespondWithErrorJSON(ctx, srchErr, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// Jobs lists recently finished jobs. The `ago` argument
// (e.g. 30m, 2h) limits how old the jobs can be.
func (a *Actions) Jobs(ctx *gin.Context) {
	dur, err := datetime.ParseDuration(ctx.DefaultQuery("ago", dfltJobsAgo))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
		return
	}
	recs := a.logger.RecordsSince(time.Now().Add(-dur))
	ans := make([]jobRecord, len(recs))
	for i, rec := range recs {
		ans[i] = newJobRecord(rec, a.location)
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func NewActions(
	logger *monitoring.WorkerJobLogger,
	location *time.Location,
) *Actions {
	if location == nil {
		location = time.Local
	}
	return &Actions{
		logger:   logger,
		location: location,
	}
}
