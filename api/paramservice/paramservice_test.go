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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/lpdaac/mrtparams/api/config"
	"github.com/lpdaac/mrtparams/api/services"
	"github.com/lpdaac/mrtparams/core/fileaccess"
	"github.com/lpdaac/mrtparams/core/idgen"
	"github.com/lpdaac/mrtparams/core/jobStore"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/timestamper"
	"github.com/prometheus/client_golang/prometheus"
)

const tileHdr = `PROJECTION_TYPE = SIN
PROJECTION_PARAMETERS = ( 6371007.181 0.0 0.0
 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 )
UL_CORNER_LATLON = ( 40.0 -117.5 )
UR_CORNER_LATLON = ( 40.0 -104.4 )
LL_CORNER_LATLON = ( 30.0 -103.9 )
LR_CORNER_LATLON = ( 30.0 -92.4 )
DATUM = WGS84
NBANDS = 2
BANDNAMES = ( sur_refl_b01 sur_refl_b02 )
DATA_TYPE = ( INT16 INT16 )
NLINES = ( 2400 2400 )
NSAMPLES = ( 2400 2400 )
PIXEL_SIZE = ( 463.31 463.31 )
`

const validPrm = `INPUT_FILENAME = tile.hdr
OUTPUT_FILENAME = out.tif
OUTPUT_PROJECTION_TYPE = GEO
`

const noOutputPrm = `INPUT_FILENAME = tile.hdr
OUTPUT_PROJECTION_TYPE = GEO
`

// Buckets are dirs under a temp root, inputs/tile.hdr and params/jobs/a.prm exist
func makeTestServices(t *testing.T) (*services.APIServices, string) {
	root := t.TempDir()

	files := map[string]string{
		"inputs/tile.hdr":   tileHdr,
		"params/jobs/a.prm": validPrm,
		"params/jobs/b.prm": noOutputPrm,
	}
	for name, content := range files {
		fullPath := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.Config{
		ParamsBucket:     filepath.Join(root, "params"),
		InputBucket:      filepath.Join(root, "inputs"),
		OutputBucket:     filepath.Join(root, "outputs"),
		LocalStorage:     true,
		HeaderFloatStyle: "KeepDecimal",
		ParamFloatStyle:  "TrimTrailingZero",
	}

	svcs, err := services.MakeAPIServices(cfg, &fileaccess.FSAccess{}, jobStore.NewMemStore(), &logger.MemLogger{})
	if err != nil {
		t.Fatal(err)
	}
	svcs.IDGen = &idgen.MockIDGenerator{IDs: []string{"job1", "job2", "job3", "job4"}}
	svcs.TimeStamper = &timestamper.MockTimeNowStamper{QueuedTimeStamps: []int64{1700000001, 1700000002, 1700000003, 1700000004}}

	return &svcs, root
}

func doRequest(router *mux.Router, method string, url string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeJob(t *testing.T, resp *httptest.ResponseRecorder) jobStore.JobRecord {
	var rec jobStore.JobRecord
	if err := json.Unmarshal(resp.Body.Bytes(), &rec); err != nil {
		t.Fatalf("bad job JSON %q: %v", resp.Body.String(), err)
	}
	return rec
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) ErrorResponse {
	var errResp ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("bad error JSON %q: %v", resp.Body.String(), err)
	}
	return errResp
}

func Test_Validate(t *testing.T) {
	svcs, _ := makeTestServices(t)
	router := MakeRouter(svcs)

	resp := doRequest(router, http.MethodPost, "/params/validate?name=a.prm", validPrm)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %v, body: %v", resp.Code, resp.Body.String())
	}
	rec := decodeJob(t, resp)
	got := fmt.Sprintf("%v %v %v %v %v %v %v %v", rec.ID, rec.CreatedUnixSec, rec.ParamFile, rec.Status, rec.InputFiles, rec.OutputFile, rec.OutputProjection, rec.SelectedBands)
	if got != "job1 1700000001 a.prm valid [tile.hdr] out.tif GEO [0 1]" {
		t.Errorf("unexpected job: %v", got)
	}

	// Invalid documents are still recorded
	resp = doRequest(router, http.MethodPost, "/params/validate", noOutputPrm)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %v, body: %v", resp.Code, resp.Body.String())
	}
	rec = decodeJob(t, resp)
	got = fmt.Sprintf("%v %v %v %v", rec.ID, rec.ParamFile, rec.Status, rec.ErrorKind)
	if got != "job2 request.prm failed MissingOutputFileName" {
		t.Errorf("unexpected job: %v", got)
	}

	recs, err := svcs.Jobs.List(context.Background(), 10)
	if err != nil || len(recs) != 2 || recs[0].ID != "job2" {
		t.Errorf("unexpected stored jobs: %v %v", recs, err)
	}
}

func Test_ResampleHeader(t *testing.T) {
	svcs, _ := makeTestServices(t)
	router := MakeRouter(svcs)

	resp := doRequest(router, http.MethodPost, "/params/resample-header", validPrm)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %v, body: %v", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type: %v", ct)
	}

	hdr := resp.Body.String()
	for _, line := range []string{"PROJECTION_TYPE = SIN\n", "UL_CORNER_LATLON = ( 40.0 -117.5 )\n", "NUM_SELECTED_BANDS = 2\n", "PIXEL_SIZE = 463.31\n"} {
		if !strings.Contains(hdr, line) {
			t.Errorf("header missing %q:\n%v", line, hdr)
		}
	}
	if !strings.HasPrefix(hdr, "PROJECTION_TYPE = SIN\n") {
		t.Errorf("header should start with projection:\n%v", hdr)
	}

	// Style can be picked per request
	resp = doRequest(router, http.MethodPost, "/params/resample-header?style=trim", validPrm)
	if !strings.Contains(resp.Body.String(), "UL_CORNER_LATLON = ( 40 -117.5 )\n") {
		t.Errorf("trimmed header unexpected:\n%v", resp.Body.String())
	}

	resp = doRequest(router, http.MethodPost, "/params/resample-header?style=round", validPrm)
	errResp := decodeError(t, resp)
	if resp.Code != http.StatusBadRequest || errResp.Status != http.StatusBadRequest || errResp.ErrorKind != "" || errResp.Message != "unknown float style: round" {
		t.Errorf("unexpected: %v %+v", resp.Code, errResp)
	}

	resp = doRequest(router, http.MethodPost, "/params/resample-header?name=b.prm", noOutputPrm)
	errResp = decodeError(t, resp)
	if resp.Code != http.StatusBadRequest || errResp.ErrorKind != "MissingOutputFileName" || errResp.Message != "Missing output file name: b.prm" {
		t.Errorf("unexpected: %v %+v", resp.Code, errResp)
	}
}

func Test_InputOutsideRoot(t *testing.T) {
	svcs, _ := makeTestServices(t)
	router := MakeRouter(svcs)

	// Resolves to the same tile, but only by leaving the input bucket first
	for _, input := range []string{"../inputs/tile.hdr", "/etc/tile.hdr"} {
		doc := "INPUT_FILENAME = " + input + "\nOUTPUT_FILENAME = out.tif\nOUTPUT_PROJECTION_TYPE = GEO\n"
		resp := doRequest(router, http.MethodPost, "/params/resample-header", doc)
		errResp := decodeError(t, resp)
		if resp.Code != http.StatusBadRequest || errResp.ErrorKind != "InvalidInputFileName" {
			t.Errorf("%v: unexpected %v %+v", input, resp.Code, errResp)
		}
	}
}

func Test_Resubmit(t *testing.T) {
	svcs, _ := makeTestServices(t)
	router := MakeRouter(svcs)

	resp := doRequest(router, http.MethodPost, "/params/resubmit", validPrm)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %v, body: %v", resp.Code, resp.Body.String())
	}

	prm := resp.Body.String()
	if !strings.HasPrefix(prm, "INPUT_FILENAME = tile.hdr\n") || !strings.Contains(prm, "OUTPUT_FILENAME = out.tif\n") || !strings.Contains(prm, "OUTPUT_PROJECTION_TYPE = GEO\n") {
		t.Errorf("unexpected resubmit form:\n%v", prm)
	}

	// What we write must read back as valid
	resp = doRequest(router, http.MethodPost, "/params/validate", prm)
	if rec := decodeJob(t, resp); rec.Status != jobStore.StatusValid {
		t.Errorf("resubmit form didn't validate: %+v", rec)
	}
}

func Test_StoredParamFiles(t *testing.T) {
	svcs, root := makeTestServices(t)
	router := MakeRouter(svcs)

	resp := doRequest(router, http.MethodPost, "/stored/jobs/a.prm", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status %v, body: %v", resp.Code, resp.Body.String())
	}
	rec := decodeJob(t, resp)
	if rec.ID != "job1" || rec.ParamFile != "jobs/a.prm" || rec.Status != jobStore.StatusValid {
		t.Errorf("unexpected job: %+v", rec)
	}

	hdr, err := os.ReadFile(filepath.Join(root, "outputs", "jobs", "a.hdr"))
	if err != nil || !strings.HasPrefix(string(hdr), "PROJECTION_TYPE = SIN\n") {
		t.Errorf("resample header not written: %v %q", err, string(hdr))
	}

	resp = doRequest(router, http.MethodPost, "/stored/jobs/b.prm", "")
	rec = decodeJob(t, resp)
	if resp.Code != http.StatusOK || rec.Status != jobStore.StatusFailed || rec.ErrorKind != "MissingOutputFileName" || rec.ErrorCode == 0 {
		t.Errorf("unexpected: %v %+v", resp.Code, rec)
	}

	resp = doRequest(router, http.MethodPost, "/stored/jobs/missing.prm", "")
	rec = decodeJob(t, resp)
	if rec.Status != jobStore.StatusFailed || rec.ErrorKind != "ParamFileOpen" {
		t.Errorf("unexpected: %+v", rec)
	}
	if _, err := os.Stat(filepath.Join(root, "outputs", "jobs", "missing.hdr")); err == nil {
		t.Errorf("header written for missing parameter file")
	}
}

func Test_ListStored(t *testing.T) {
	svcs, _ := makeTestServices(t)
	router := MakeRouter(svcs)

	doRequest(router, http.MethodPost, "/stored/jobs/a.prm", "")

	resp := doRequest(router, http.MethodGet, "/stored?prefix=jobs/", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status %v, body: %v", resp.Code, resp.Body.String())
	}
	var items []StoredParamFile
	if err := json.Unmarshal(resp.Body.Bytes(), &items); err != nil {
		t.Fatal(err)
	}
	if fmt.Sprintf("%+v", items) != "[{Path:jobs/a.prm ResampleHeader:jobs/a.hdr} {Path:jobs/b.prm ResampleHeader:}]" {
		t.Errorf("unexpected listing: %+v", items)
	}
}

func Test_Jobs(t *testing.T) {
	svcs, _ := makeTestServices(t)
	router := MakeRouter(svcs)

	doRequest(router, http.MethodPost, "/stored/jobs/a.prm", "")
	doRequest(router, http.MethodPost, "/params/validate?name=upload.prm", validPrm)

	resp := doRequest(router, http.MethodGet, "/jobs", "")
	var recs []jobStore.JobRecord
	if err := json.Unmarshal(resp.Body.Bytes(), &recs); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[0].ID != "job2" || recs[1].ID != "job1" {
		t.Errorf("unexpected list: %+v", recs)
	}

	resp = doRequest(router, http.MethodGet, "/jobs?limit=1", "")
	recs = nil
	json.Unmarshal(resp.Body.Bytes(), &recs)
	if len(recs) != 1 {
		t.Errorf("limit not applied: %+v", recs)
	}

	resp = doRequest(router, http.MethodGet, "/jobs?limit=lots", "")
	if resp.Code != http.StatusBadRequest {
		t.Errorf("bad limit gave %v", resp.Code)
	}

	resp = doRequest(router, http.MethodGet, "/jobs/job1", "")
	if rec := decodeJob(t, resp); resp.Code != http.StatusOK || rec.ParamFile != "jobs/a.prm" {
		t.Errorf("unexpected: %v %+v", resp.Code, rec)
	}

	resp = doRequest(router, http.MethodGet, "/jobs/nope", "")
	if errResp := decodeError(t, resp); resp.Code != http.StatusNotFound || errResp.Message != "job nope not found" {
		t.Errorf("unexpected: %v %+v", resp.Code, errResp)
	}

	// Stored jobs can be fetched for resubmitting, uploaded ones were never saved to the bucket
	resp = doRequest(router, http.MethodGet, "/jobs/job1/resubmit", "")
	if resp.Code != http.StatusOK || !strings.HasPrefix(resp.Body.String(), "INPUT_FILENAME = tile.hdr\n") {
		t.Errorf("unexpected: %v %v", resp.Code, resp.Body.String())
	}

	resp = doRequest(router, http.MethodGet, "/jobs/job2/resubmit", "")
	if errResp := decodeError(t, resp); resp.Code != http.StatusNotFound || errResp.ErrorKind != "ParamFileOpen" {
		t.Errorf("unexpected: %v %+v", resp.Code, errResp)
	}
}

func Test_KnownKeys(t *testing.T) {
	svcs, _ := makeTestServices(t)
	resp := doRequest(MakeRouter(svcs), http.MethodGet, "/keys", "")

	var keys knownKeysResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &keys); err != nil {
		t.Fatal(err)
	}
	if len(keys.ParamKeys) != 28 || len(keys.HeaderKeys) != 25 || keys.ParamKeys[0] != "DATUM" {
		t.Errorf("unexpected keys: %+v", keys)
	}
}

func Test_RequestLoggingAndMetrics(t *testing.T) {
	svcs, _ := makeTestServices(t)
	router := MakeRouter(svcs)

	doRequest(router, http.MethodPost, "/params/validate", validPrm)
	doRequest(router, http.MethodGet, "/jobs/nope", "")

	lines := svcs.Log.(*logger.MemLogger).Lines()
	want := []string{
		"DEBUG: POST /params/validate -> 200",
		"ERROR: GET /jobs/nope failed: job nope not found",
		"ERROR: GET /jobs/nope -> 404",
	}
	for _, w := range want {
		found := false
		for _, l := range lines {
			if l == w {
				found = true
			}
		}
		if !found {
			t.Errorf("log line %q missing from %v", w, lines)
		}
	}

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}

	validOK := 0.0
	jobPathSeen := false
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if fam.GetName() == "param_file_outcomes_total" && labels["operation"] == "validate" && labels["kind"] == "None" {
				validOK = m.GetCounter().GetValue()
			}
			if fam.GetName() == "http_requests_total" && labels["path"] == "/jobs/{id}" {
				jobPathSeen = true
			}
		}
	}
	if validOK < 1 || !jobPathSeen {
		t.Errorf("metrics not recorded: validate ok=%v, /jobs/{id} seen=%v", validOK, jobPathSeen)
	}
}
