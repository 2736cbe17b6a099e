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

// Records the outcome of every parameter file we validate, so failed jobs can be looked up and
// resubmitted. One document per job in the resample-jobs collection.
package jobStore

import (
	"github.com/lpdaac/mrtparams/core/idgen"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramModel"
	"github.com/lpdaac/mrtparams/core/timestamper"
)

const CollectionName = "resample-jobs"

type JobStatus string

const (
	StatusValid  JobStatus = "valid"
	StatusFailed JobStatus = "failed"
)

type JobRecord struct {
	ID             string    `json:"id" bson:"_id"`
	CreatedUnixSec int64     `json:"createdUnixSec" bson:"createdUnixSec"`
	ParamFile      string    `json:"paramFile" bson:"paramFile"`
	Status         JobStatus `json:"status" bson:"status"`

	InputFiles       []string `json:"inputFiles,omitempty" bson:"inputFiles,omitempty"`
	OutputFile       string   `json:"outputFile,omitempty" bson:"outputFile,omitempty"`
	OutputProjection string   `json:"outputProjection,omitempty" bson:"outputProjection,omitempty"`
	Resampling       string   `json:"resampling,omitempty" bson:"resampling,omitempty"`
	SelectedBands    []int    `json:"selectedBands,omitempty" bson:"selectedBands,omitempty"`

	ErrorKind    string `json:"errorKind,omitempty" bson:"errorKind,omitempty"`
	ErrorCode    int    `json:"errorCode,omitempty" bson:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty" bson:"errorMessage,omitempty"`
}

// MakeJobRecord describes the result of reading paramFile: either the resolved parameters p, or
// the error that stopped it
func MakeJobRecord(idGen idgen.IDGenerator, ts timestamper.ITimeStamper, paramFile string, p *paramModel.Params, err error) JobRecord {
	rec := JobRecord{
		ID:             idGen.GenObjectID(),
		CreatedUnixSec: timestamper.OrNow(ts).GetTimeNowSec(),
		ParamFile:      paramFile,
		Status:         StatusValid,
	}

	if err != nil {
		kind := paramErrors.KindOf(err)
		rec.Status = StatusFailed
		rec.ErrorKind = kind.Name()
		rec.ErrorCode = kind.Code()
		rec.ErrorMessage = err.Error()
		return rec
	}

	if p == nil {
		return rec
	}

	rec.InputFiles = p.InputFiles()
	rec.OutputFile = p.OutputFile
	rec.OutputProjection = p.OutputProjection.String()
	rec.Resampling = p.Resampling.String()
	for c := 0; c < p.NBands; c++ {
		if p.IsSelectedBand(c) {
			rec.SelectedBands = append(rec.SelectedBands, c)
		}
	}
	return rec
}
