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

package merror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

func marshalMsg(msg string) ([]byte, error) {
	if msg != "" {
		return json.Marshal(msg)
	}
	return json.Marshal(nil)
}

// InputError is caused by invalid user input (empty text,
// unknown job arguments etc.)
type InputError struct {
	Msg string
}

func (err InputError) Error() string {
	return err.Msg
}

func (err InputError) MarshalJSON() ([]byte, error) {
	return marshalMsg(err.Msg)
}

// ----------------------------

type InternalError struct {
	Msg string
}

func (err InternalError) Error() string {
	return err.Msg
}

func (err InternalError) MarshalJSON() ([]byte, error) {
	return marshalMsg(err.Msg)
}

// ---------------------------

type RecoveredError struct {
	Msg string
}

func (err RecoveredError) Error() string {
	return err.Msg
}

func (err RecoveredError) MarshalJSON() ([]byte, error) {
	return marshalMsg(err.Msg)
}

// ---------------------------

type TimeoutError struct {
	Msg string
}

func (err TimeoutError) Error() string {
	return err.Msg
}

func (err TimeoutError) MarshalJSON() ([]byte, error) {
	return marshalMsg(err.Msg)
}

// ---------------------------

// NotReadyError reports that a component (dictionary, tagger)
// has not been initialized yet.
type NotReadyError struct {
	Msg string
}

func (err NotReadyError) Error() string {
	return err.Msg
}

func (err NotReadyError) MarshalJSON() ([]byte, error) {
	return marshalMsg(err.Msg)
}

// -----------------

func PanicValueToErr(v any) (err error) {
	switch tr := v.(type) {
	case error:
		err = fmt.Errorf("recovered panic: %w", tr)
	case string:
		err = fmt.Errorf("recovered panic: %s", tr)
	default:
		err = fmt.Errorf("recovered panic from an error of type %T", v)
	}
	return
}

// HTTPStatus maps a job error to a response status code.
// Unknown errors are considered internal.
func HTTPStatus(err error) int {
	var inputErr InputError
	var timeoutErr TimeoutError
	var notReadyErr NotReadyError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &notReadyErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Transportable converts an arbitrary error into one of the types
// from this package so it can be gob-encoded in a worker result.
func Transportable(err error) error {
	if err == nil {
		return nil
	}
	switch tErr := err.(type) {
	case InputError, InternalError, RecoveredError, TimeoutError, NotReadyError:
		return tErr
	}
	var inputErr InputError
	var timeoutErr TimeoutError
	var notReadyErr NotReadyError
	switch {
	case errors.As(err, &inputErr):
		return InputError{Msg: err.Error()}
	case errors.As(err, &timeoutErr):
		return TimeoutError{Msg: err.Error()}
	case errors.As(err, &notReadyErr):
		return NotReadyError{Msg: err.Error()}
	}
	return InternalError{Msg: err.Error()}
}
