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

package paramservice

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/lpdaac/mrtparams/core/logger"
)

// Records the status written by a handler, so the logger middleware can see it
type responseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (w *responseWriterWithStatus) WriteHeader(statusCode int) {
	w.Status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWithStatus) StatusText() string {
	if w.Status == 0 {
		return "200"
	}
	return strconv.Itoa(w.Status)
}

// LoggerMiddleware logs every request at debug level, or at error level if it failed. Server
// side failures also go to Sentry.
type LoggerMiddleware struct {
	Log logger.ILogger
}

func (h *LoggerMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w2 := &responseWriterWithStatus{ResponseWriter: w}

		next.ServeHTTP(w2, r)

		log := logger.OrNull(h.Log)
		level := logger.LogDebug
		if w2.Status >= http.StatusBadRequest {
			level = logger.LogError
		}
		log.Printf(level, "%v %v -> %v", r.Method, r.URL, w2.StatusText())

		if w2.Status >= http.StatusInternalServerError {
			sentry.CaptureMessage(fmt.Sprintf("API returned %v for %v %v", w2.Status, r.Method, r.URL))
		}
	})
}
