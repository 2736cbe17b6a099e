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

package mosaic

import (
	"math"

	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramModel"
	"github.com/lpdaac/mrtparams/core/utils"
)

// Envelope returns the lat/lon bounding box covering every corner in sets, as a full corner set.
// Each set must have at least one corner.
func Envelope(sets []paramModel.CornerSet) (paramModel.CornerSet, error) {
	result := paramModel.CornerSet{}
	if len(sets) <= 0 {
		return result, paramErrors.New(paramErrors.MissingHeaderCorners, "no inputs")
	}

	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLon, maxLon := math.Inf(1), math.Inf(-1)

	for c, set := range sets {
		if set.Count() <= 0 {
			return result, paramErrors.Newf(paramErrors.MissingHeaderCorners, "mosaic input %v", c+1)
		}

		for _, corner := range paramModel.Corners {
			pt, ok := set.Get(corner)
			if !ok {
				continue
			}
			minLat = utils.Min(minLat, pt[0])
			maxLat = utils.Max(maxLat, pt[0])
			minLon = utils.Min(minLon, pt[1])
			maxLon = utils.Max(maxLon, pt[1])
		}
	}

	result.Set(paramModel.UL, paramModel.Point{maxLat, minLon})
	result.Set(paramModel.UR, paramModel.Point{maxLat, maxLon})
	result.Set(paramModel.LL, paramModel.Point{minLat, minLon})
	result.Set(paramModel.LR, paramModel.Point{minLat, maxLon})
	return result, nil
}
