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
	"time"
	"vslnlp/results"

	"github.com/czcorpus/hltscl"
	"github.com/rs/zerolog/log"
)

/*
Expected tables:

create table vsl_operations_stats (
  "time" timestamp with time zone NOT NULL,
  num_jobs int,
  num_errors int,
  duration_secs float
);
select create_hypertable('vsl_operations_stats', 'time');

create table vsl_called_funcs (
	"time" timestamp with time zone NOT NULL,
	func text,
	worker_id text,
	num_calls int
);
select create_hypertable('vsl_called_funcs', 'time');

*/

const (
	opsStatsTable    = "vsl_operations_stats"
	calledFuncsTable = "vsl_called_funcs"
	writeTimeout     = 20 * time.Second
)

// TimescaleDBWriter is a StatusWriter storing job statistics
// to TimescaleDB hypertables.
type TimescaleDBWriter struct {
	opsWriter *hltscl.TableWriter
	opsDataCh chan<- hltscl.Entry
	opsErrCh  <-chan hltscl.WriteError
	fnWriter  *hltscl.TableWriter
	fnDataCh  chan<- hltscl.Entry
	fnErrCh   <-chan hltscl.WriteError
	location  *time.Location
}

func (sw *TimescaleDBWriter) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("about to close StatusWriter")
				return
			case err := <-sw.opsErrCh:
				log.Error().
					Err(err.Err).
					Str("entry", err.Entry.String()).
					Str("table", opsStatsTable).
					Msg("error writing data to TimescaleDB")
			case err := <-sw.fnErrCh:
				log.Error().
					Err(err.Err).
					Str("entry", err.Entry.String()).
					Str("table", calledFuncsTable).
					Msg("error writing data to TimescaleDB")
			}
		}
	}()
}

func (sw *TimescaleDBWriter) Stop(ctx context.Context) error {
	log.Warn().Msg("stopping StatusWriter")
	return nil
}

func (sw *TimescaleDBWriter) Write(item results.JobLog) {
	var numErr int
	if item.Err != nil {
		numErr++
	}
	now := time.Now().In(sw.location)
	sw.opsDataCh <- *sw.opsWriter.NewEntry(now).
		Int("num_jobs", 1).
		Int("num_errors", numErr).
		Float("duration_secs", item.TimeSpent().Seconds())

	sw.fnDataCh <- *sw.fnWriter.NewEntry(now).
		Str("func", item.Func).
		Str("worker_id", item.WorkerID).
		Int("num_calls", 1)
}

func NewTimescaleDBWriter(
	ctx context.Context,
	conf hltscl.PgConf,
	tz *time.Location,
) (*TimescaleDBWriter, error) {
	conn, err := hltscl.CreatePool(conf)
	if err != nil {
		return nil, err
	}
	opsWriter := hltscl.NewTableWriter(conn, opsStatsTable, "time", tz)
	opsDataCh, opsErrCh := opsWriter.Activate(ctx, hltscl.WithTimeout(writeTimeout))

	fnWriter := hltscl.NewTableWriter(conn, calledFuncsTable, "time", tz)
	fnDataCh, fnErrCh := fnWriter.Activate(ctx, hltscl.WithTimeout(writeTimeout))

	return &TimescaleDBWriter{
		opsWriter: opsWriter,
		opsDataCh: opsDataCh,
		opsErrCh:  opsErrCh,
		fnWriter:  fnWriter,
		fnDataCh:  fnDataCh,
		fnErrCh:   fnErrCh,
		location:  tz,
	}, nil
}
