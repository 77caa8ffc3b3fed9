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
	"encoding/gob"
	"errors"
	"fmt"
	"time"
	"vslnlp/merror"
	"vslnlp/results"
)

type WorkerResult struct {
	ID           string
	Value        results.SerializableResult
	HasUserError bool
	ProcBegin    time.Time
	ProcEnd      time.Time
}

func (wr *WorkerResult) ProcTime() time.Duration {
	return wr.ProcEnd.Sub(wr.ProcBegin)
}

// CreateWorkerResult wraps a job result. Errors attached to the value
// must be of types from the merror package (see merror.Transportable),
// otherwise gob encoding fails.
func CreateWorkerResult(
	value results.SerializableResult,
	procBegin, procEnd time.Time,
) *WorkerResult {
	var inputErr merror.InputError
	ans := &WorkerResult{
		Value:     value,
		ProcBegin: procBegin,
		ProcEnd:   procEnd,
	}
	if value != nil && value.Err() != nil {
		ans.HasUserError = errors.As(value.Err(), &inputErr)
	}
	return ans
}

func (wr *WorkerResult) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(wr); err != nil {
		return nil, fmt.Errorf("failed to encode worker result: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeWorkerResult(data []byte) (*WorkerResult, error) {
	ans := new(WorkerResult)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(ans); err != nil {
		return nil, fmt.Errorf("failed to decode worker result: %w", err)
	}
	return ans, nil
}
