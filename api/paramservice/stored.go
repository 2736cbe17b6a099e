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

	"github.com/lpdaac/mrtparams/api/services"
	"github.com/lpdaac/mrtparams/core/jobStore"
	"github.com/lpdaac/mrtparams/core/paramWriter"
	"github.com/lpdaac/mrtparams/core/utils"
	"github.com/pkg/errors"
)

// ResampleHeaderPath - where the resample header for a stored parameter file is written in the
// output bucket
func ResampleHeaderPath(paramPath string) string {
	return utils.ReplaceExtension(paramPath, ".hdr")
}

// StoredParamFile - a parameter file in the params bucket, and the resample header written for it
// if it has been processed successfully
type StoredParamFile struct {
	Path           string `json:"path"`
	ResampleHeader string `json:"resampleHeader,omitempty"`
}

func outputRoot(svcs *services.APIServices) string {
	if len(svcs.Config.OutputBucket) > 0 {
		return svcs.Config.OutputBucket
	}
	return svcs.Config.ParamsBucket
}

// ListStoredParamFiles lists the parameter files under prefix in the params bucket
func ListStoredParamFiles(svcs *services.APIServices, prefix string) ([]StoredParamFile, error) {
	paths, err := svcs.FS.ListObjects(svcs.Config.ParamsBucket, prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list parameter files in %v", prefix)
	}

	result := []StoredParamFile{}
	for _, paramPath := range paths {
		if utils.GetExtension(paramPath) != ".prm" {
			continue
		}

		item := StoredParamFile{Path: paramPath}
		hdrPath := ResampleHeaderPath(paramPath)
		exists, err := svcs.FS.ObjectExists(outputRoot(svcs), hdrPath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to check for %v", hdrPath)
		}
		if exists {
			item.ResampleHeader = hdrPath
		}
		result = append(result, item)
	}
	return result, nil
}

// ProcessStoredParamFile reads the parameter file at paramPath in the params bucket and, if it's
// valid, writes its resample header to the output bucket. Either way a job record is saved and
// returned. The returned error is only for failing to save the record, problems with the file
// itself are in the record.
func ProcessStoredParamFile(ctx context.Context, svcs *services.APIServices, paramPath string) (jobStore.JobRecord, error) {
	p, err := svcs.Reader.ReadParamFile(ctx, paramPath)
	if err == nil {
		err = paramWriter.SaveResampleHeader(svcs.FS, outputRoot(svcs), ResampleHeaderPath(paramPath), p, svcs.HeaderStyle, svcs.Log)
	}
	countOutcome("stored", err)

	rec := jobStore.MakeJobRecord(svcs.IDGen, svcs.TimeStamper, paramPath, p, err)
	if err != nil {
		svcs.Log.Errorf("Job %v for %v failed: %v", rec.ID, paramPath, err)
	} else {
		svcs.Log.Infof("Job %v for %v is valid", rec.ID, paramPath)
	}

	if saveErr := svcs.Jobs.Save(ctx, rec); saveErr != nil {
		return rec, errors.Wrap(saveErr, "failed to save job record")
	}
	return rec, nil
}
