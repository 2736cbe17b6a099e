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

// Error taxonomy for reading and writing resampling parameter and header files. Every failure
// raised while scanning, parsing, resolving or writing carries exactly one Kind. Callers compare
// with errors.Is(err, paramErrors.MissingOutputFileName) or fetch it with KindOf(err).
package paramErrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is the single error type raised by the parameter file code
type Error struct {
	Kind Kind

	// Optional file name or module the error relates to
	Context string

	// Fatal errors abort the job. Non-fatal ones are only reported by the caller.
	Fatal bool

	// Underlying cause, if any (I/O error, process exit error, etc)
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.Message()
	if len(e.Context) > 0 {
		msg += ": " + e.Context
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a bare Kind, so errors.Is(err, MissingOutputFileName) works through wrapping
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return k == e.Kind
	}
	if other, ok := target.(*Error); ok {
		return other.Kind == e.Kind
	}
	return false
}

// New makes a fatal error of the given kind
func New(kind Kind, context string) *Error {
	return &Error{Kind: kind, Context: context, Fatal: true}
}

// Newf makes a fatal error with a formatted context string
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Context: fmt.Sprintf(format, args...), Fatal: true}
}

// Wrap makes a fatal error of the given kind around a cause. Returns nil if cause is nil.
func Wrap(kind Kind, context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Context: context, Fatal: true, Err: errors.WithStack(cause)}
}

// NonFatal makes an error the caller should report but not abort on
func NonFatal(kind Kind, context string, cause error) *Error {
	return &Error{Kind: kind, Context: context, Fatal: false, Err: cause}
}

// KindOf returns the Kind carried by err. nil gives None, an error from outside this package gives
// GeneralError.
func KindOf(err error) Kind {
	if err == nil {
		return None
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return GeneralError
}

// ExitCode maps an error to the legacy numeric process exit status, 0 for nil
func ExitCode(err error) int {
	return KindOf(err).Code()
}
