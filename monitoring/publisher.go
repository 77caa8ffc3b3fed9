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
	"vslnlp/rdb"
	"vslnlp/results"
)

type queryPublisher interface {
	PublishQuery(query rdb.Query) (<-chan *rdb.WorkerResult, error)
}

// MonitoredPublisher records jobs processed by remote workers
// so the API server can report their load.
type MonitoredPublisher struct {
	publisher queryPublisher
	logger    *WorkerJobLogger
}

func (mp *MonitoredPublisher) PublishQuery(query rdb.Query) (<-chan *rdb.WorkerResult, error) {
	wait, err := mp.publisher.PublishQuery(query)
	if err != nil {
		return nil, err
	}
	ans := make(chan *rdb.WorkerResult, 1)
	go func() {
		defer close(ans)
		res, ok := <-wait
		if !ok {
			return
		}
		// timeouts produced on our side do not represent any worker job
		if res != nil && res.ID != "" {
			rec := results.JobLog{
				WorkerID: res.ID,
				Func:     query.Func,
				Begin:    res.ProcBegin,
				End:      res.ProcEnd,
			}
			if res.Value != nil {
				rec.Err = res.Value.Err()
			}
			mp.logger.Log(rec)
		}
		ans <- res
	}()
	return ans, nil
}

func NewMonitoredPublisher(publisher queryPublisher, logger *WorkerJobLogger) *MonitoredPublisher {
	return &MonitoredPublisher{
		publisher: publisher,
		logger:    logger,
	}
}
