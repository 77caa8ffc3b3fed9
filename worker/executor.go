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
	"fmt"
	"time"
	"vslnlp/gloss"
	"vslnlp/merror"
	"vslnlp/rdb"
	"vslnlp/results"

	"github.com/rs/zerolog/log"
)

const (
	DefaultJobTimeout = 30 * time.Second
)

// Tagger provides part-of-speech tagging of raw text.
// Failures are expected to produce an empty sequence.
type Tagger interface {
	Tag(ctx context.Context, text string) []gloss.Token
}

// Executor runs individual jobs. It is used both by the Redis
// based Worker and by the in-process LocalRunner.
type Executor struct {
	converter  *gloss.Converter
	tagger     Tagger
	jobTimeout time.Duration
}

func typedArgs[T any](query rdb.Query) (T, error) {
	ans, ok := query.Args.(T)
	if !ok {
		return ans, merror.InputError{
			Msg: fmt.Sprintf("invalid arguments of type %T for function %s", query.Args, query.Func),
		}
	}
	return ans, nil
}

// Run dispatches a query to a respective job function. Panics are
// recovered and reported as error results.
func (e *Executor) Run(query rdb.Query) (ans results.SerializableResult) {
	defer func() {
		if r := recover(); r != nil {
			err := merror.PanicValueToErr(r)
			log.Error().
				Err(err).
				Str("func", query.Func).
				Msg("recovered from a job panic")
			ans = &results.ErrorResult{
				Func:  query.Func,
				Error: merror.RecoveredError{Msg: err.Error()},
			}
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), e.jobTimeout)
	defer cancel()

	switch query.Func {
	case rdb.FuncTagAndConvert:
		args, err := typedArgs[rdb.TagAndConvertArgs](query)
		if err != nil {
			return &results.ErrorResult{Func: query.Func, Error: err}
		}
		return e.tagAndConvert(ctx, args)
	case rdb.FuncConvert:
		args, err := typedArgs[rdb.ConvertArgs](query)
		if err != nil {
			return &results.ErrorResult{Func: query.Func, Error: err}
		}
		return e.convert(args)
	case rdb.FuncAnalyze:
		args, err := typedArgs[rdb.AnalyzeArgs](query)
		if err != nil {
			return &results.ErrorResult{Func: query.Func, Error: err}
		}
		return e.analyze(ctx, args)
	default:
		return &results.ErrorResult{
			Func:  query.Func,
			Error: merror.InputError{Msg: fmt.Sprintf("unknown query function: %s", query.Func)},
		}
	}
}

func NewExecutor(converter *gloss.Converter, tagger Tagger, jobTimeout time.Duration) *Executor {
	if jobTimeout <= 0 {
		jobTimeout = DefaultJobTimeout
	}
	return &Executor{
		converter:  converter,
		tagger:     tagger,
		jobTimeout: jobTimeout,
	}
}
