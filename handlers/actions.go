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
	"reflect"
	"vslnlp/dictionary"
	"vslnlp/general"
	"vslnlp/merror"
	"vslnlp/rdb"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// QueryPublisher passes jobs to workers. It is implemented by
// rdb.Adapter and by worker.LocalRunner.
type QueryPublisher interface {
	PublishQuery(query rdb.Query) (<-chan *rdb.WorkerResult, error)
}

// ReloadBroadcaster notifies other processes about
// a dictionary reload
type ReloadBroadcaster interface {
	PublishDictionaryReload() error
}

type taggerStatus interface {
	IsConfigured() bool
}

type Actions struct {
	store       *dictionary.Store
	publisher   QueryPublisher
	broadcaster ReloadBroadcaster
	tagger      taggerStatus
	version     general.VersionInfo
}

func TypedOrRespondError[T any](ctx *gin.Context, w *rdb.WorkerResult) (T, bool) {
	var ans T
	if w == nil || w.Value == nil {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("missing worker result for %s", reflect.TypeOf(ans)),
			http.StatusInternalServerError,
		)
		return ans, false
	}
	vt, ok := w.Value.(T)
	if !ok {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf(
				"unexpected type for %s: %s",
				reflect.TypeOf(ans), reflect.TypeOf(w.Value)),
			http.StatusInternalServerError,
		)
		return ans, false
	}
	return vt, true
}

// HandleWorkerError writes an error response in case the result
// contains an error and returns false. Otherwise it returns true.
func HandleWorkerError(ctx *gin.Context, result *rdb.WorkerResult) bool {
	if result == nil || result.Value == nil {
		return true
	}
	err := result.Value.Err()
	if err == nil {
		return true
	}
	status := merror.HTTPStatus(err)
	if result.HasUserError {
		status = http.StatusBadRequest
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("worker reported an error")
	}
	uniresp.WriteJSONErrorResponse(
		ctx.Writer,
		uniresp.NewActionErrorFrom(err),
		status,
	)
	return false
}

// publishAndWait sends a job to workers and waits for the result.
// In case of an error, the response is written and nil is returned.
func (a *Actions) publishAndWait(ctx *gin.Context, query rdb.Query) *rdb.WorkerResult {
	wait, err := a.publisher.PublishQuery(query)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(err),
			http.StatusInternalServerError,
		)
		return nil
	}
	var rawResult *rdb.WorkerResult
	select {
	case rawResult = <-wait:
	case <-ctx.Request.Context().Done():
		log.Warn().Str("func", query.Func).Msg("client left before the job finished")
		return nil
	}
	if ok := HandleWorkerError(ctx, rawResult); !ok {
		return nil
	}
	return rawResult
}

func NewActions(
	store *dictionary.Store,
	publisher QueryPublisher,
	broadcaster ReloadBroadcaster,
	tagger taggerStatus,
	version general.VersionInfo,
) *Actions {
	return &Actions{
		store:       store,
		publisher:   publisher,
		broadcaster: broadcaster,
		tagger:      tagger,
		version:     version,
	}
}
