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
	"vslnlp/results"

	"github.com/czcorpus/hltscl"
)

// Conf configures an optional TimescaleDB statistics sink.
// With no DB specified, job statistics are kept in memory only.
type Conf struct {
	DB *hltscl.PgConf `json:"db"`
}

func (conf *Conf) IsTimescaleEnabled() bool {
	return conf != nil && conf.DB != nil
}

// StatusWriter stores job logs to a persistent storage
type StatusWriter interface {
	Write(rec results.JobLog)
}

type NullStatusWriter struct{}

func (n *NullStatusWriter) Write(rec results.JobLog) {}
