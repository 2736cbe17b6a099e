// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package errorwithstatus

import (
	"fmt"
	"net/http"

	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/pkg/errors"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// HTTP status for errors raised by the parameter file code

// Error represents a handler error. It provides methods for a HTTP status
// code and embeds the built-in error interface.
type Error interface {
	error
	Status() int
}

// StatusError represents an error with an associated HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

func (se StatusError) Error() string {
	return se.Err.Error()
}

func (se StatusError) Status() int {
	return se.Code
}

func (se StatusError) Unwrap() error {
	return se.Err
}

func MakeNotFoundError(ID string) StatusError {
	return StatusError{
		Code: http.StatusNotFound,
		Err:  fmt.Errorf("%v not found", ID),
	}
}

func MakeBadRequestError(err error) StatusError {
	return StatusError{
		Code: http.StatusBadRequest,
		Err:  err,
	}
}

// Mainly so we don't get a bunch of errors for not using field names in StatusError{}
func MakeStatusError(code int, err error) StatusError {
	return StatusError{
		Code: code,
		Err:  err,
	}
}

// StatusForKind picks the HTTP status a failure of the given kind is reported with. Anything wrong
// with the submitted document is the caller's problem, failing to write or to run the converter is
// ours.
func StatusForKind(kind paramErrors.Kind) int {
	switch kind {
	case paramErrors.None:
		return http.StatusOK
	case paramErrors.ParamFileOpen, paramErrors.HeaderFileOpen, paramErrors.OutputFileOpen, paramErrors.MosaicFileOpen:
		return http.StatusNotFound
	case paramErrors.ParamFileWrite, paramErrors.ParamFileClose,
		paramErrors.HeaderFileWrite, paramErrors.HeaderFileClose,
		paramErrors.OutputFileWrite, paramErrors.OutputFileClose,
		paramErrors.MosaicFileWrite, paramErrors.MosaicFileClose:
		return http.StatusInternalServerError
	}

	if kind.IsExternalTool() {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

// FromError attaches a status to err. Errors that already carry one keep it, errors from outside
// the parameter file code are internal errors.
func FromError(err error) StatusError {
	var se Error
	if errors.As(err, &se) {
		return StatusError{Code: se.Status(), Err: err}
	}

	var pe *paramErrors.Error
	if errors.As(err, &pe) {
		return StatusError{Code: StatusForKind(pe.Kind), Err: err}
	}

	return StatusError{Code: http.StatusInternalServerError, Err: err}
}
