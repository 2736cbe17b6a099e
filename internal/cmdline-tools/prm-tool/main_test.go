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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lpdaac/mrtparams/core/paramErrors"
)

const tileHdr = `PROJECTION_TYPE = SIN
PROJECTION_PARAMETERS = ( 6371007.181 0.0 0.0
 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0 )
UL_CORNER_LATLON = ( 40.0 -117.5 )
UR_CORNER_LATLON = ( 40.0 -104.4 )
LL_CORNER_LATLON = ( 30.0 -103.9 )
LR_CORNER_LATLON = ( 30.0 -92.4 )
NBANDS = 2
BANDNAMES = ( sur_refl_b01 sur_refl_b02 )
DATA_TYPE = ( INT16 UINT8 )
NLINES = ( 2400 1200 )
NSAMPLES = ( 2400 1200 )
PIXEL_SIZE = ( 463.31 926.62 )
`

// Writes tile.hdr and a parameter file using it, returning the dir and parameter file path
func makeJob(t *testing.T, extraLines string) (string, string) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tile.hdr"), []byte(tileHdr), 0644); err != nil {
		t.Fatal(err)
	}

	prm := fmt.Sprintf("INPUT_FILENAME = %v\n%vOUTPUT_PROJECTION_TYPE = GEO\n", filepath.Join(dir, "tile.hdr"), extraLines)
	prmPath := filepath.Join(dir, "job.prm")
	if err := os.WriteFile(prmPath, []byte(prm), 0644); err != nil {
		t.Fatal(err)
	}
	return dir, prmPath
}

func Test_WriteOutputs(t *testing.T) {
	dir, prmPath := makeJob(t, "OUTPUT_FILENAME = out.tif\n")
	hdrPath := filepath.Join(dir, "out", "resample.hdr")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-hdr", hdrPath, "-prm", "-", prmPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %v, stderr: %v", code, stderr.String())
	}

	lines := strings.Split(stdout.String(), "\n")
	if lines[0] != prmPath+": valid, 2 of 2 bands selected, output out.tif (GEO)" {
		t.Errorf("unexpected summary: %v", lines[0])
	}
	if lines[1] != "INPUT_FILENAME = "+filepath.Join(dir, "tile.hdr") {
		t.Errorf("unexpected resubmit form: %v", stdout.String())
	}

	hdr, err := os.ReadFile(hdrPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"NUM_SELECTED_BANDS = 2\n", "BEGIN_GROUP = OUTPUT_FILE_2\n", "PIXEL_SIZE = 926.62\n"} {
		if !strings.Contains(string(hdr), want) {
			t.Errorf("header missing %q:\n%v", want, string(hdr))
		}
	}
}

func Test_HeaderStyle(t *testing.T) {
	_, prmPath := makeJob(t, "OUTPUT_FILENAME = out.tif\n")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-hdr", "-", "-hdrstyle", "trim", prmPath}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %v", code)
	}
	if !strings.Contains(stdout.String(), "UL_CORNER_LATLON = ( 40 -117.5 )\n") {
		t.Errorf("header not trimmed:\n%v", stdout.String())
	}
}

func Test_ExitCodes(t *testing.T) {
	_, prmPath := makeJob(t, "")
	dir, _ := makeJob(t, "OUTPUT_FILENAME = out.tif\n")

	var stdout, stderr bytes.Buffer
	for _, test := range []struct {
		args []string
		code int
	}{
		{[]string{}, usageExitCode},
		{[]string{"-nosuchflag", prmPath}, usageExitCode},
		{[]string{"-loglevel", "LOUD", prmPath}, usageExitCode},
		{[]string{prmPath}, paramErrors.MissingOutputFileName.Code()},
		{[]string{filepath.Join(dir, "missing.prm")}, paramErrors.ParamFileOpen.Code()},
		{[]string{"-hdr", "s3://bucket-only", filepath.Join(dir, "job.prm")}, paramErrors.OutputFileOpen.Code()},
	} {
		if code := run(test.args, &stdout, &stderr); code != test.code {
			t.Errorf("%v: expected exit code %v, got %v", test.args, test.code, code)
		}
	}
}
