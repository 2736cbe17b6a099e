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

package paramWriter

import (
	"github.com/lpdaac/mrtparams/core/fileaccess"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramModel"
)

// SaveResampleHeader writes the resample header to savePath in the given bucket/root dir
func SaveResampleHeader(fs fileaccess.FileAccess, root string, savePath string, p *paramModel.Params, style FloatStyle, log logger.ILogger) error {
	if !fileaccess.IsValidObjectName(savePath) {
		return paramErrors.New(paramErrors.InvalidOutputFileName, savePath)
	}

	hdr, err := FormatResampleHeader(p, style)
	if err != nil {
		return err
	}

	err = fs.WriteObject(root, savePath, []byte(hdr))
	if err != nil {
		return paramErrors.Wrap(paramErrors.OutputFileWrite, savePath, err)
	}

	logger.OrNull(log).Infof("Wrote resample header %v (%v bands selected)", savePath, p.SelectedBandCount())
	return nil
}

// SaveParamFile writes the resubmit form of p to savePath in the given bucket/root dir
func SaveParamFile(fs fileaccess.FileAccess, root string, savePath string, p *paramModel.Params, opts ParamFileOptions) error {
	if !fileaccess.IsValidObjectName(savePath) {
		return paramErrors.New(paramErrors.InvalidOutputFileName, savePath)
	}

	prm, err := FormatParamFile(p, opts)
	if err != nil {
		return err
	}

	err = fs.WriteObject(root, savePath, []byte(prm))
	if err != nil {
		return paramErrors.Wrap(paramErrors.ParamFileWrite, savePath, err)
	}

	logger.OrNull(opts.Log).Infof("Wrote parameter file %v", savePath)
	return nil
}
