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

// HTTP API around the parameter file reader and writers. Documents are posted as the request body,
// or named by their path in the params bucket. Every request is timed by PrometheusMiddleware.
package paramservice

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lpdaac/mrtparams/api/services"
	"github.com/lpdaac/mrtparams/core/logger"
)

// MakeRouter registers every endpoint, wrapped in the logging and metrics middleware
func MakeRouter(svcs *services.APIServices) *mux.Router {
	router := mux.NewRouter()

	add := func(method string, path string, fn handlerFunc) {
		router.Handle(path, apiHandler{svcs: svcs, fn: fn}).Methods(method)
	}

	add(http.MethodGet, "/keys", getKnownKeys)

	add(http.MethodPost, "/params/validate", postValidate)
	add(http.MethodPost, "/params/resample-header", postResampleHeader)
	add(http.MethodPost, "/params/resubmit", postResubmit)
	add(http.MethodGet, "/stored", listStored)
	add(http.MethodPost, "/stored/{path:.+}", postStored)

	add(http.MethodGet, "/jobs", listJobs)
	add(http.MethodGet, "/jobs/{id}", getJob)
	add(http.MethodGet, "/jobs/{id}/resubmit", getJobResubmit)

	logware := LoggerMiddleware{Log: logger.OrNull(svcs.Log)}
	router.Use(logware.Middleware, PrometheusMiddleware)

	return router
}
