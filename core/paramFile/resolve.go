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

package paramFile

import (
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramModel"
)

// Resolve applies the rules that tie fields of a freshly parsed model together, checks the required
// fields are there and fills in defaults. It stops at the first problem. Runs once per document.
func Resolve(p *paramModel.Params) error {
	if p == nil {
		return paramErrors.New(paramErrors.GeneralError, "no parameters to resolve")
	}

	subsetGiven := p.SubsetCorners.Has(paramModel.UL) && p.SubsetCorners.Has(paramModel.LR)

	// Complete the subset rectangle from UL and LR
	if subsetGiven && p.SubsetKindSet {
		ul, _ := p.SubsetCorners.Get(paramModel.UL)
		lr, _ := p.SubsetCorners.Get(paramModel.LR)

		if p.SubsetKind == paramModel.LineSample {
			// Axis aligned in pixel space
			p.SubsetCorners.Set(paramModel.UR, paramModel.Point{ul[0], lr[1]})
			p.SubsetCorners.Set(paramModel.LL, paramModel.Point{lr[0], ul[1]})
		} else {
			// Not derivable without the projection, placeholders
			p.SubsetCorners.Set(paramModel.UR, paramModel.Point{0, 0})
			p.SubsetCorners.Set(paramModel.LL, paramModel.Point{0, 0})
		}
	}

	// Every band covers the whole source image of band 0. Left alone until a header gave its size
	if p.NBands > 0 && p.NLines[0] > 0 && p.NSamples[0] > 0 {
		rows := p.NLines[0] - 1
		cols := p.NSamples[0] - 1

		box := [paramModel.NumCorners][2]int{}
		box[paramModel.UL] = [2]int{0, 0}
		box[paramModel.UR] = [2]int{0, cols}
		box[paramModel.LL] = [2]int{rows, 0}
		box[paramModel.LR] = [2]int{rows, cols}

		for c := range p.BandDetails {
			p.BandDetails[c].PixelBox = box
			p.BandDetails[c].ProjBox = [paramModel.NumCorners][2]float64{}
		}
	}

	if len(p.InputFile) <= 0 && !(p.Mosaic && len(p.MosaicFiles) > 0) {
		return paramErrors.New(paramErrors.MissingInputFileName, p.InputParamFile)
	}
	if len(p.OutputFile) <= 0 {
		return paramErrors.New(paramErrors.MissingOutputFileName, p.InputParamFile)
	}
	if !p.OutputProjectionSet {
		return paramErrors.New(paramErrors.MissingOutputProjType, p.InputParamFile)
	}

	if subsetGiven && !p.SubsetKindSet {
		return paramErrors.New(paramErrors.MissingSpatialSubsetType, p.InputParamFile)
	}

	// Defaults
	if !p.SpectralSubsetSet {
		p.SelectAllBands()
	}
	if !p.OutputProjParamsSet {
		p.OutputProjParams = [paramModel.NumProjParams]float64{}
	}
	if !p.ResamplingSet {
		p.Resampling = paramModel.NearestNeighbor
	}
	if !subsetGiven {
		if p.HeaderCorners.Count() > 0 {
			p.SubsetCorners.CopyFrom(p.HeaderCorners)
		}
		p.SubsetKind = paramModel.LatLong
	}

	p.Resolved = true
	return nil
}
