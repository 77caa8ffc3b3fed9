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

package rdb

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"
	"vslnlp/merror"
	"vslnlp/results"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	MsgNewQuery                = "newQuery"
	MsgReloadDictionary        = "reloadDictionary"
	DefaultQueueKey            = "vslQueue"
	DefaultResultChannelPrefix = "vslResults"
	DefaultQueryChannel        = "vslQueries"
	DefaultResultExpiration    = 10 * time.Minute
	connTestRetryInterval      = 2 * time.Second
)

var (
	ErrorEmptyQueue = errors.New("no queries in the queue")
)

// Query is a job description passed from the API server
// to workers via a Redis queue.
type Query struct {
	Channel string
	Func    string
	Args    any
}

func (q Query) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	return buf.Bytes(), nil
}

func DecodeQuery(data []byte) (Query, error) {
	var ans Query
	err := gob.NewDecoder(bytes.NewReader(data)).Decode(&ans)
	return ans, err
}

// ----

type Adapter struct {
	ctx   context.Context
	redis *redis.Client
	conf  *Conf
	sub   *redis.PubSub
}

func (a *Adapter) Client() *redis.Client {
	return a.redis
}

// TestConnection pings Redis until it responds or until
// the timeout is reached.
func (a *Adapter) TestConnection(timeout time.Duration) error {
	tick := time.NewTicker(connTestRetryInterval)
	defer tick.Stop()
	timeoutCh := time.After(timeout)
	for {
		err := a.redis.Ping(a.ctx).Err()
		if err == nil {
			log.Info().Str("server", a.conf.ServerInfo()).Msg("connected to Redis")
			return nil
		}
		log.Warn().
			Err(err).
			Str("server", a.conf.ServerInfo()).
			Msg("failed to ping Redis, will try again")
		select {
		case <-timeoutCh:
			return fmt.Errorf("failed to connect to Redis at %s: timeout", a.conf.ServerInfo())
		case <-a.ctx.Done():
			return a.ctx.Err()
		case <-tick.C:
		}
	}
}

func (a *Adapter) SomeoneListens(query Query) (bool, error) {
	cmd := a.redis.PubSubNumSub(a.ctx, query.Channel)
	if cmd.Err() != nil {
		return false, fmt.Errorf("failed to check channel listeners: %w", cmd.Err())
	}
	return cmd.Val()[query.Channel] > 0, nil
}

func (a *Adapter) fetchResult(key, fn string) *WorkerResult {
	data, err := a.redis.Get(a.ctx, key).Bytes()
	if err != nil {
		return &WorkerResult{
			Value: &results.ErrorResult{
				Func:  fn,
				Error: merror.InternalError{Msg: fmt.Sprintf("failed to fetch result: %s", err)},
			},
		}
	}
	ans, err := decodeWorkerResult(data)
	if err != nil {
		return &WorkerResult{
			Value: &results.ErrorResult{Func: fn, Error: merror.InternalError{Msg: err.Error()}},
		}
	}
	return ans
}

// PublishQuery publishes a new query and returns a channel
// the worker's result will be sent to. If no worker answers
// in time, the channel receives a result with merror.TimeoutError.
func (a *Adapter) PublishQuery(query Query) (<-chan *WorkerResult, error) {
	query.Channel = fmt.Sprintf("%s:%s", a.conf.ChannelResultPrefix, uuid.New().String())
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Any("args", query.Args).
		Msg("publishing query")

	msg, err := query.Encode()
	if err != nil {
		return nil, err
	}
	// we must listen before any worker can pick the query
	sub := a.redis.Subscribe(a.ctx, query.Channel)
	if _, err := sub.Receive(a.ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to result channel: %w", err)
	}
	if err := a.redis.LPush(a.ctx, a.conf.QueueKey, msg).Err(); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to enqueue query: %w", err)
	}
	ans := make(chan *WorkerResult, 1)

	go func() {
		defer close(ans)
		defer sub.Close()
		timeout := time.NewTimer(a.conf.QueryAnswerTimeout())
		defer timeout.Stop()
		select {
		case item := <-sub.Channel():
			ans <- a.fetchResult(item.Payload, query.Func)
		case <-timeout.C:
			ans <- &WorkerResult{
				Value: &results.ErrorResult{
					Func: query.Func,
					Error: merror.TimeoutError{
						Msg: fmt.Sprintf("no worker answered within %s", a.conf.QueryAnswerTimeout()),
					},
				},
			}
		case <-a.ctx.Done():
			ans <- &WorkerResult{
				Value: &results.ErrorResult{
					Func:  query.Func,
					Error: merror.InternalError{Msg: "server is shutting down"},
				},
			}
		}
	}()
	return ans, a.redis.Publish(a.ctx, a.conf.ChannelQuery, MsgNewQuery).Err()
}

func (a *Adapter) DequeueQuery() (Query, error) {
	data, err := a.redis.RPop(a.ctx, a.conf.QueueKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return Query{}, ErrorEmptyQueue

	} else if err != nil {
		return Query{}, fmt.Errorf("failed to dequeue query: %w", err)
	}
	q, err := DecodeQuery(data)
	if err != nil {
		return Query{}, fmt.Errorf("failed to deserialize query: %w", err)
	}
	return q, nil
}

func (a *Adapter) PublishResult(channelName string, value *WorkerResult) error {
	log.Debug().
		Str("channel", channelName).
		Str("resultType", value.Value.Type().String()).
		Msg("publishing result")
	data, err := value.encode()
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	if err := a.redis.Set(a.ctx, channelName, data, DefaultResultExpiration).Err(); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}
	return a.redis.Publish(a.ctx, channelName, channelName).Err()
}

// PublishDictionaryReload tells all the listening workers
// to reload their dictionaries.
func (a *Adapter) PublishDictionaryReload() error {
	return a.redis.Publish(a.ctx, a.conf.ChannelQuery, MsgReloadDictionary).Err()
}

// Subscribe starts listening for the query channel messages
// (MsgNewQuery, MsgReloadDictionary).
func (a *Adapter) Subscribe() <-chan *redis.Message {
	a.sub = a.redis.Subscribe(a.ctx, a.conf.ChannelQuery)
	return a.sub.Channel()
}

func (a *Adapter) Close() error {
	if a.sub != nil {
		if err := a.sub.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis subscription")
		}
	}
	return a.redis.Close()
}

func NewAdapter(conf *Conf, ctx context.Context) *Adapter {
	return &Adapter{
		redis: redis.NewClient(&redis.Options{
			Addr:     conf.ServerInfo(),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		ctx:  ctx,
		conf: conf,
	}
}
