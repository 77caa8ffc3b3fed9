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

package results

import (
	"encoding/gob"
	"encoding/json"
	"math"
	"time"
	"vslnlp/merror"

	"github.com/bytedance/sonic"
)

const (
	ResultTypeConversion   ResultType = "conversion"
	ResultTypeTextAnalysis ResultType = "textAnalysis"
	ResultTypeError        ResultType = "error"
)

type ResultType string // @name ResultType

func (rt ResultType) String() string {
	return string(rt)
}

// SerializableResult is a value produced by a worker job
type SerializableResult interface {
	Err() error
	Type() ResultType
}

func errToStr(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}

// ----

type ErrorResult struct {
	Func  string
	Error error
}

func (res *ErrorResult) Err() error {
	return res.Error
}

func (res *ErrorResult) Type() ResultType {
	return ResultTypeError
}

func (res *ErrorResult) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(
		struct {
			Func       string     `json:"func,omitempty"`
			Error      string     `json:"error"`
			ResultType ResultType `json:"resultType"`
		}{
			Func:       res.Func,
			Error:      errToStr(res.Error),
			ResultType: res.Type(),
		},
	)
}

// ----

type JobLog struct {
	WorkerID string    `json:"workerId"`
	Func     string    `json:"func"`
	Begin    time.Time `json:"begin"`
	End      time.Time `json:"end"`
	Err      error     `json:"error"`
}

func (jl JobLog) TimeSpent() time.Duration {
	return jl.End.Sub(jl.Begin)
}

func (jl *JobLog) ToJSON() (string, error) {
	ans, err := json.Marshal(
		struct {
			WorkerID string    `json:"workerId"`
			Func     string    `json:"func"`
			Begin    time.Time `json:"begin"`
			End      time.Time `json:"end"`
			Err      string    `json:"error,omitempty"`
		}{
			WorkerID: jl.WorkerID,
			Func:     jl.Func,
			Begin:    jl.Begin,
			End:      jl.End,
			Err:      errToStr(jl.Err),
		},
	)
	if err != nil {
		return "", err
	}
	return string(ans), nil
}

// NormRound performs a normalized rounding to
// the two decimal places so we can provide
// consistent rounding across all the results
func NormRound(val float64) float64 {
	return math.Round(val*100) / 100
}

// RegisterGobTypes registers all the concrete types which
// can be transferred between the server and workers inside
// interface-typed fields.
func RegisterGobTypes() {
	gob.Register(&Conversion{})
	gob.Register(&TextAnalysis{})
	gob.Register(&ErrorResult{})
	gob.Register(merror.InputError{})
	gob.Register(merror.InternalError{})
	gob.Register(merror.RecoveredError{})
	gob.Register(merror.TimeoutError{})
	gob.Register(merror.NotReadyError{})
}
