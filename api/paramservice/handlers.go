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
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/lpdaac/mrtparams/api/services"
	"github.com/lpdaac/mrtparams/core/errorwithstatus"
	"github.com/lpdaac/mrtparams/core/jobStore"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramFile"
	"github.com/lpdaac/mrtparams/core/paramModel"
	"github.com/lpdaac/mrtparams/core/paramWriter"
	"github.com/pkg/errors"
)

// Parameter files are small, anything bigger than this isn't one
const maxDocumentBytes = 1 << 20

const defaultDocumentName = "request.prm"
const defaultJobListLimit = 100

type handlerFunc func(svcs *services.APIServices, w http.ResponseWriter, r *http.Request) error

// apiHandler turns errors returned by handlers into a JSON error response
type apiHandler struct {
	svcs *services.APIServices
	fn   handlerFunc
}

func (h apiHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.fn(h.svcs, w, r); err != nil {
		writeError(h.svcs.Log, w, r, err)
	}
}

// ErrorResponse is the body sent with any non-200 status
type ErrorResponse struct {
	Status    int    `json:"status"`
	ErrorKind string `json:"errorKind,omitempty"`
	ErrorCode int    `json:"errorCode,omitempty"`
	Message   string `json:"message"`
}

func writeError(log logger.ILogger, w http.ResponseWriter, r *http.Request, err error) {
	se := errorwithstatus.FromError(err)
	resp := ErrorResponse{Status: se.Status(), Message: err.Error()}

	var pe *paramErrors.Error
	if errors.As(err, &pe) {
		resp.ErrorKind = pe.Kind.Name()
		resp.ErrorCode = pe.Kind.Code()
	}

	logger.OrNull(log).Errorf("%v %v failed: %v", r.Method, r.URL.Path, err)
	if se.Status() >= http.StatusInternalServerError {
		sentry.CaptureException(err)
	}

	writeJSON(w, se.Status(), resp)
}

func writeJSON(w http.ResponseWriter, status int, item interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(item)
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

func documentName(r *http.Request) string {
	if name := r.URL.Query().Get("name"); len(name) > 0 {
		return name
	}
	return defaultDocumentName
}

// floatStyle reads the optional "style" query param, falling back to the configured style
func floatStyle(r *http.Request, fallback paramWriter.FloatStyle) (paramWriter.FloatStyle, error) {
	name := r.URL.Query().Get("style")
	if len(name) <= 0 {
		return fallback, nil
	}
	style, ok := paramWriter.ParseFloatStyle(name)
	if !ok {
		return fallback, errorwithstatus.MakeBadRequestError(errors.Errorf("unknown float style: %v", name))
	}
	return style, nil
}

// readRequestParams parses and resolves the parameter document sent as the request body
func readRequestParams(svcs *services.APIServices, w http.ResponseWriter, r *http.Request, operation string) (*paramModel.Params, error) {
	body := http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	p, err := svcs.Reader.ReadParams(r.Context(), body, documentName(r))
	countOutcome(operation, err)
	return p, err
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Handlers

type knownKeysResponse struct {
	ParamKeys  []string `json:"paramKeys"`
	HeaderKeys []string `json:"headerKeys"`
}

func getKnownKeys(svcs *services.APIServices, w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, knownKeysResponse{
		ParamKeys:  paramFile.KnownParamKeys(),
		HeaderKeys: paramFile.KnownHeaderKeys(),
	})
	return nil
}

// postValidate reads the document and records the job. An invalid document is still a successful
// request: the job record says what was wrong with it.
func postValidate(svcs *services.APIServices, w http.ResponseWriter, r *http.Request) error {
	name := documentName(r)
	p, err := readRequestParams(svcs, w, r, "validate")

	rec := jobStore.MakeJobRecord(svcs.IDGen, svcs.TimeStamper, name, p, err)
	if saveErr := svcs.Jobs.Save(r.Context(), rec); saveErr != nil {
		return errors.Wrap(saveErr, "failed to save job record")
	}

	writeJSON(w, http.StatusOK, rec)
	return nil
}

func postResampleHeader(svcs *services.APIServices, w http.ResponseWriter, r *http.Request) error {
	style, err := floatStyle(r, svcs.HeaderStyle)
	if err != nil {
		return err
	}

	p, err := readRequestParams(svcs, w, r, "resample-header")
	if err != nil {
		return err
	}

	hdr, err := paramWriter.FormatResampleHeader(p, style)
	if err != nil {
		return err
	}

	writeText(w, hdr)
	return nil
}

func postResubmit(svcs *services.APIServices, w http.ResponseWriter, r *http.Request) error {
	opts := svcs.ParamOptions
	style, err := floatStyle(r, opts.Style)
	if err != nil {
		return err
	}
	opts.Style = style

	p, err := readRequestParams(svcs, w, r, "resubmit")
	if err != nil {
		return err
	}

	prm, err := paramWriter.FormatParamFile(p, opts)
	if err != nil {
		return err
	}

	writeText(w, prm)
	return nil
}

func listStored(svcs *services.APIServices, w http.ResponseWriter, r *http.Request) error {
	items, err := ListStoredParamFiles(svcs, r.URL.Query().Get("prefix"))
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, items)
	return nil
}

// postStored processes a parameter file already in the params bucket, as the upload lambda does
func postStored(svcs *services.APIServices, w http.ResponseWriter, r *http.Request) error {
	paramPath := mux.Vars(r)["path"]

	rec, err := ProcessStoredParamFile(r.Context(), svcs, paramPath)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, rec)
	return nil
}

func listJobs(svcs *services.APIServices, w http.ResponseWriter, r *http.Request) error {
	limit := int64(defaultJobListLimit)
	if limitStr := r.URL.Query().Get("limit"); len(limitStr) > 0 {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l <= 0 {
			return errorwithstatus.MakeBadRequestError(errors.Errorf("invalid limit: %v", limitStr))
		}
		limit = l
	}

	recs, err := svcs.Jobs.List(r.Context(), limit)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, recs)
	return nil
}

func getJob(svcs *services.APIServices, w http.ResponseWriter, r *http.Request) error {
	rec, err := lookupJob(svcs, r)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, rec)
	return nil
}

// getJobResubmit re-reads a recorded job's parameter file and returns it in resubmit form, ready
// to be edited and sent back as a new job
func getJobResubmit(svcs *services.APIServices, w http.ResponseWriter, r *http.Request) error {
	rec, err := lookupJob(svcs, r)
	if err != nil {
		return err
	}

	p, err := svcs.Reader.ReadParamFile(r.Context(), rec.ParamFile)
	countOutcome("resubmit", err)
	if err != nil {
		return err
	}

	prm, err := paramWriter.FormatParamFile(p, svcs.ParamOptions)
	if err != nil {
		return err
	}

	writeText(w, prm)
	return nil
}

func lookupJob(svcs *services.APIServices, r *http.Request) (jobStore.JobRecord, error) {
	id := mux.Vars(r)["id"]
	rec, err := svcs.Jobs.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, jobStore.ErrJobNotFound) {
			return rec, errorwithstatus.MakeNotFoundError("job " + id)
		}
		return rec, err
	}
	return rec, nil
}
