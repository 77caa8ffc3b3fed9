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
	"errors"
	"math/rand"
	"time"
	"vslnlp/dictionary"
	"vslnlp/merror"
	"vslnlp/rdb"
	"vslnlp/results"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTickerInterval = 2 * time.Second
)

type jobLogger interface {
	Log(rec results.JobLog)
}

type dictionaryReloader interface {
	Reload(ctx context.Context) (dictionary.ReloadResult, error)
}

// Worker consumes queries from a Redis queue and publishes
// results back to the channels the API server listens to.
type Worker struct {
	ID         string
	messages   <-chan *redis.Message
	radapter   *rdb.Adapter
	executor   *Executor
	dictionary dictionaryReloader
	ticker     *time.Ticker
	jobLogger  jobLogger
}

func (w *Worker) publishResult(res results.SerializableResult, channel string, jobLog results.JobLog) error {
	jobLog.End = time.Now()
	jobLog.Err = res.Err()
	w.jobLogger.Log(jobLog)
	wres := rdb.CreateWorkerResult(res, jobLog.Begin, jobLog.End)
	wres.ID = w.ID
	return w.radapter.PublishResult(channel, wres)
}

func (w *Worker) tryNextQuery() error {
	// spread competing workers a bit
	time.Sleep(time.Duration(rand.Intn(40)) * time.Millisecond)
	query, err := w.radapter.DequeueQuery()
	if errors.Is(err, rdb.ErrorEmptyQueue) {
		return nil

	} else if err != nil {
		return err
	}
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Any("args", query.Args).
		Msg("received query")

	isActive, err := w.radapter.SomeoneListens(query)
	if err != nil {
		return err
	}
	if !isActive {
		log.Warn().
			Str("func", query.Func).
			Str("channel", query.Channel).
			Msg("worker found an inactive query")
		return nil
	}

	jobLog := results.JobLog{
		WorkerID: w.ID,
		Func:     query.Func,
		Begin:    time.Now(),
	}
	ans := w.executor.Run(query)
	if err := w.publishResult(ans, query.Channel, jobLog); err != nil {
		log.Error().Err(err).Str("func", query.Func).Msg("failed to publish result")
		errAns := &results.ErrorResult{
			Func:  query.Func,
			Error: merror.InternalError{Msg: err.Error()},
		}
		if err := w.publishResult(errAns, query.Channel, jobLog); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) reloadDictionary(ctx context.Context) {
	res, err := w.dictionary.Reload(ctx)
	if err != nil {
		log.Error().Err(err).Msg("worker failed to reload dictionary")
		return
	}
	log.Info().
		Int("oldCount", res.OldCount).
		Int("newCount", res.NewCount).
		Msg("worker reloaded dictionary")
}

func (w *Worker) listen(ctx context.Context) {
	for {
		select {
		case <-w.ticker.C:
			if err := w.tryNextQuery(); err != nil {
				log.Error().Err(err).Msg("failed to process query")
			}
		case <-ctx.Done():
			log.Info().Msg("worker exiting")
			return
		case msg, ok := <-w.messages:
			if !ok {
				log.Warn().Msg("query channel closed, worker exiting")
				return
			}
			switch msg.Payload {
			case rdb.MsgNewQuery:
				if err := w.tryNextQuery(); err != nil {
					log.Error().Err(err).Msg("failed to process query")
				}
			case rdb.MsgReloadDictionary:
				w.reloadDictionary(ctx)
			}
		}
	}
}

func (w *Worker) Start(ctx context.Context) {
	log.Info().Str("workerId", w.ID).Msg("starting worker")
	go w.listen(ctx)
}

func (w *Worker) Stop(ctx context.Context) error {
	log.Warn().Str("workerId", w.ID).Msg("stopping worker")
	w.ticker.Stop()
	return w.radapter.Close()
}

func NewWorker(
	workerID string,
	radapter *rdb.Adapter,
	messages <-chan *redis.Message,
	executor *Executor,
	dict dictionaryReloader,
	jobLogger jobLogger,
) *Worker {
	return &Worker{
		ID:         workerID,
		radapter:   radapter,
		messages:   messages,
		executor:   executor,
		dictionary: dict,
		ticker:     time.NewTicker(DefaultTickerInterval),
		jobLogger:  jobLogger,
	}
}
