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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lpdaac/mrtparams/api/config"
	"github.com/lpdaac/mrtparams/api/services"
	"github.com/lpdaac/mrtparams/core/awsutil"
	"github.com/lpdaac/mrtparams/core/fileaccess"
	"github.com/lpdaac/mrtparams/core/idgen"
	"github.com/lpdaac/mrtparams/core/jobStore"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/timestamper"
)

const tileHdr = `PROJECTION_TYPE = GEO
PROJECTION_PARAMETERS = ( 0.0 0.0 0.0
 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 )
UL_CORNER_LATLON = ( 40.0 -120.0 )
UR_CORNER_LATLON = ( 40.0 -110.0 )
LL_CORNER_LATLON = ( 30.0 -120.0 )
LR_CORNER_LATLON = ( 30.0 -110.0 )
NBANDS = 1
BANDNAMES = ( elevation )
DATA_TYPE = ( INT16 )
NLINES = ( 1000 )
NSAMPLES = ( 1000 )
PIXEL_SIZE = ( 0.01 )
`

func writeFiles(t *testing.T, root string, files map[string]string) {
	for name, content := range files {
		fullPath := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func Test_HandleS3Event(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"inputs/dem.hdr":        tileHdr,
		"uploads/jobs/a.prm":    "INPUT_FILENAME = dem.hdr\nOUTPUT_FILENAME = dem_utm.tif\nOUTPUT_PROJECTION_TYPE = UTM\nUTM_ZONE = 11\n",
		"uploads/jobs/b.prm":    "INPUT_FILENAME = dem.hdr\nOUTPUT_PROJECTION_TYPE = UTM\n",
		"uploads/jobs/info.txt": "not a parameter file",
	})

	// Notifications come from the uploads bucket, not the configured one
	cfg := config.Config{
		ParamsBucket:     "configured-params",
		InputBucket:      filepath.Join(root, "inputs"),
		OutputBucket:     filepath.Join(root, "outputs"),
		HeaderFloatStyle: "KeepDecimal",
		ParamFloatStyle:  "TrimTrailingZero",
	}
	jobs := jobStore.NewMemStore()
	log := &logger.MemLogger{}
	svcs, err := services.MakeAPIServices(cfg, &fileaccess.FSAccess{}, jobs, log)
	if err != nil {
		t.Fatal(err)
	}
	svcs.IDGen = &idgen.MockIDGenerator{IDs: []string{"job-a", "job-b"}}
	svcs.TimeStamper = &timestamper.MockTimeNowStamper{QueuedTimeStamps: []int64{1700000000}}

	records := []string{}
	for _, key := range []string{"jobs/a.prm", "jobs/b.prm", "jobs/info.txt"} {
		records = append(records, fmt.Sprintf(`{"eventSource": "aws:s3", "awsRegion": "us-west-2", "s3": {"bucket": {"name": %q}, "object": {"key": %q}}}`, filepath.Join(root, "uploads"), key))
	}
	eventJSON := `{"Records": [` + strings.Join(records, ",") + `]}`

	var event awsutil.Event
	if err := json.Unmarshal([]byte(eventJSON), &event); err != nil {
		t.Fatal(err)
	}

	summary, err := handleEvent(context.Background(), &svcs, event)
	if err != nil {
		t.Fatal(err)
	}
	if summary != "Processed 2 parameter files: 1 valid, 1 failed, 1 ignored" {
		t.Errorf("unexpected summary: %v", summary)
	}

	hdr, err := os.ReadFile(filepath.Join(root, "outputs", "jobs", "a.hdr"))
	if err != nil || !strings.HasPrefix(string(hdr), "PROJECTION_TYPE = GEO\n") {
		t.Errorf("resample header not written: %v %q", err, string(hdr))
	}

	recs, _ := jobs.List(context.Background(), 10)
	got := []string{}
	for _, rec := range recs {
		got = append(got, fmt.Sprintf("%v:%v:%v:%v", rec.ID, rec.ParamFile, rec.Status, rec.ErrorKind))
	}
	if strings.Join(got, " ") != "job-b:jobs/b.prm:failed:MissingOutputFileName job-a:jobs/a.prm:valid:" {
		t.Errorf("unexpected job records: %v", got)
	}

	// The configured services aren't modified
	if svcs.Reader.Root != "configured-params" {
		t.Errorf("reader root changed to %v", svcs.Reader.Root)
	}
}

func Test_BadEvent(t *testing.T) {
	svcs, _ := services.MakeAPIServices(config.Config{HeaderFloatStyle: "keep", ParamFloatStyle: "trim"}, &fileaccess.FSAccess{}, jobStore.NewMemStore(), nil)

	event := awsutil.Event{Records: []awsutil.Record{{}}}
	event.Records[0].S3.Object.Key = "jobs/%zz.prm"

	if _, err := handleEvent(context.Background(), &svcs, event); err == nil {
		t.Errorf("expected key decoding error")
	}
}
