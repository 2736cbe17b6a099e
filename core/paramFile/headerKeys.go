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
	"fmt"

	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramGrammar"
	"github.com/lpdaac/mrtparams/core/paramModel"
	"github.com/lpdaac/mrtparams/core/utils"
)

// Keys recognised in an input header file
var headerKeys = withCornerKeys(map[string]field{
	"NBANDS": {
		rule:  paramGrammar.WrappedScalarRule(paramErrors.BadHeaderNBandsField),
		apply: setHeaderBandCount,
	},
	"PROJECTION_TYPE": {
		rule:  paramGrammar.ScalarRule(paramErrors.BadProjectionTypeField),
		apply: setInputProjection,
	},
	"PROJECTION_PARAMETERS": {
		rule:  paramGrammar.DefaultedListRule(paramModel.NumProjParams, "0.0", paramErrors.BadProjectionParamsField),
		apply: setInputProjParams,
	},
	"DATUM": {
		rule:  paramGrammar.ScalarRule(paramErrors.BadHeaderDatumField),
		apply: setInputDatum,
	},
	"UTM_ZONE": {
		rule:  paramGrammar.ScalarRule(paramErrors.BadHeaderUTMZoneField),
		apply: setInputUTMZone,
	},
	"BANDNAMES": {
		rule:  paramGrammar.FixedListRule(0, paramErrors.BadBandNamesField),
		bands: true,
		apply: func(d *document, v paramGrammar.Value) error {
			copy(d.p.BandNames, v.Words)
			return nil
		},
	},
	"NLINES": {
		rule:  paramGrammar.FixedListRule(0, paramErrors.BadNLinesField),
		bands: true,
		apply: setPositiveInts(paramErrors.BadNLinesField, paramErrors.InvalidNLines, func(p *paramModel.Params) []int { return p.NLines }),
	},
	"NSAMPLES": {
		rule:  paramGrammar.FixedListRule(0, paramErrors.BadNSamplesField),
		bands: true,
		apply: setPositiveInts(paramErrors.BadNSamplesField, paramErrors.InvalidNSamples, func(p *paramModel.Params) []int { return p.NSamples }),
	},
	"PIXEL_SIZE": {
		rule:  paramGrammar.FixedListRule(0, paramErrors.BadPixelSizeField),
		bands: true,
		apply: setPixelSizes,
	},
	"DATA_TYPE": {
		rule:  paramGrammar.FixedListRule(0, paramErrors.BadDataTypeField),
		bands: true,
		apply: setDataTypes,
	},
	"MIN_VALUE": {
		rule:  paramGrammar.FixedListRule(0, paramErrors.BadMinValueField),
		bands: true,
		apply: setFloats(paramErrors.BadMinValueField, func(p *paramModel.Params) []float64 { return p.MinValue }),
	},
	"MAX_VALUE": {
		rule:  paramGrammar.FixedListRule(0, paramErrors.BadMaxValueField),
		bands: true,
		apply: setFloats(paramErrors.BadMaxValueField, func(p *paramModel.Params) []float64 { return p.MaxValue }),
	},
	"BACKGROUND_FILL": {
		rule:  paramGrammar.FixedListRule(0, paramErrors.BadBackgroundFillField),
		bands: true,
		apply: setFloats(paramErrors.BadBackgroundFillField, func(p *paramModel.Params) []float64 { return p.BackgroundFill }),
	},
})

// Keys a header must have, and what's raised when one is missing. Checked in this order.
var requiredHeaderKeys = []struct {
	key  string
	kind paramErrors.Kind
}{
	{"NBANDS", paramErrors.MissingHeaderNBands},
	{"PROJECTION_TYPE", paramErrors.MissingHeaderProjType},
	{"BANDNAMES", paramErrors.MissingHeaderBandNames},
	{"NLINES", paramErrors.MissingHeaderNLines},
	{"NSAMPLES", paramErrors.MissingHeaderNSamples},
	{"DATA_TYPE", paramErrors.MissingHeaderDataType},
	{"PIXEL_SIZE", paramErrors.MissingHeaderPixelSize},
}

// checkHeader runs once the whole header has been read
func (d *document) checkHeader() error {
	for _, req := range requiredHeaderKeys {
		if !d.seen[req.key] {
			return paramErrors.New(req.kind, d.name)
		}
	}

	if d.seen["MIN_VALUE"] && d.seen["MAX_VALUE"] {
		for c := 0; c < d.p.NBands; c++ {
			if d.p.MinValue[c] > d.p.MaxValue[c] {
				return paramErrors.Newf(paramErrors.InvalidMinMaxRange, "%v band %v: %v > %v", d.name, c+1, d.p.MinValue[c], d.p.MaxValue[c])
			}
		}
	}

	return nil
}

func setInputProjection(d *document, v paramGrammar.Value) error {
	proj, ok := paramModel.ParseProjection(v.Words[0])
	if !ok {
		return d.invalid(paramErrors.InvalidInputProjType, v.Words[0])
	}
	d.p.InputProjection = proj
	return nil
}

func setInputProjParams(d *document, v paramGrammar.Value) error {
	vals, err := paramGrammar.Floats(v.Words, paramErrors.BadProjectionParamsField)
	if err != nil {
		return d.locate(err)
	}
	copy(d.p.InputProjParams[:], vals)
	return nil
}

func setInputDatum(d *document, v paramGrammar.Value) error {
	datum, ok := paramModel.ParseDatum(v.Words[0])
	if !ok {
		return d.invalid(paramErrors.InvalidDatum, v.Words[0])
	}
	d.p.InputDatum = datum
	d.p.DatumPresent = true
	return nil
}

func setInputUTMZone(d *document, v paramGrammar.Value) error {
	zone, err := readUTMZone(d, v, paramErrors.BadHeaderUTMZoneField)
	if err != nil {
		return err
	}
	d.p.UTMZonePresent = true

	// The parameter file's own UTM_ZONE wins if it came first
	if d.p.UTMZone == 0 {
		d.p.UTMZone = zone
	}
	return nil
}

func setPositiveInts(kind paramErrors.Kind, invalid paramErrors.Kind, dest func(p *paramModel.Params) []int) func(d *document, v paramGrammar.Value) error {
	return func(d *document, v paramGrammar.Value) error {
		vals, err := paramGrammar.Ints(v.Words, kind)
		if err != nil {
			return d.locate(err)
		}
		for _, n := range vals {
			if n <= 0 {
				return d.invalid(invalid, n)
			}
		}
		copy(dest(d.p), vals)
		return nil
	}
}

func setFloats(kind paramErrors.Kind, dest func(p *paramModel.Params) []float64) func(d *document, v paramGrammar.Value) error {
	return func(d *document, v paramGrammar.Value) error {
		vals, err := paramGrammar.Floats(v.Words, kind)
		if err != nil {
			return d.locate(err)
		}
		copy(dest(d.p), vals)
		return nil
	}
}

func setPixelSizes(d *document, v paramGrammar.Value) error {
	vals, err := paramGrammar.Floats(v.Words, paramErrors.BadPixelSizeField)
	if err != nil {
		return d.locate(err)
	}
	for c, size := range vals {
		if !(size > 0) {
			return d.invalid(paramErrors.InvalidPixelSize, v.Words[c])
		}
	}
	copy(d.p.PixelSize, vals)
	return nil
}

func setDataTypes(d *document, v paramGrammar.Value) error {
	for c, w := range v.Words {
		dt, ok := paramModel.ParseDataType(w)
		if !ok {
			return d.invalid(paramErrors.InvalidDataType, w)
		}
		d.p.DataTypes[c] = dt
	}
	return nil
}

// Corner keys, the same in both file kinds: <corner>_CORNER_LATLON, <corner>_GRING_LATLON
// and <corner>_CORNER_XY, each an optional point
type cornerFamily struct {
	suffix     string
	errs       [paramModel.NumCorners]paramErrors.Kind
	geographic bool
	set        func(p *paramModel.Params) *paramModel.CornerSet
}

var cornerFamilies = []cornerFamily{
	{
		suffix:     "_CORNER_LATLON",
		errs:       [paramModel.NumCorners]paramErrors.Kind{paramErrors.BadULCornerLatLonField, paramErrors.BadURCornerLatLonField, paramErrors.BadLLCornerLatLonField, paramErrors.BadLRCornerLatLonField},
		geographic: true,
		set:        func(p *paramModel.Params) *paramModel.CornerSet { return &p.HeaderCorners },
	},
	{
		suffix:     "_GRING_LATLON",
		errs:       [paramModel.NumCorners]paramErrors.Kind{paramErrors.BadULGRingLatLonField, paramErrors.BadURGRingLatLonField, paramErrors.BadLLGRingLatLonField, paramErrors.BadLRGRingLatLonField},
		geographic: true,
		set:        func(p *paramModel.Params) *paramModel.CornerSet { return &p.GRingCorners },
	},
	{
		suffix: "_CORNER_XY",
		errs:   [paramModel.NumCorners]paramErrors.Kind{paramErrors.BadULCornerXYField, paramErrors.BadURCornerXYField, paramErrors.BadLLCornerXYField, paramErrors.BadLRCornerXYField},
		set:    func(p *paramModel.Params) *paramModel.CornerSet { return &p.XYCorners },
	},
}

func withCornerKeys(keys map[string]field) map[string]field {
	for _, fam := range cornerFamilies {
		for _, c := range paramModel.Corners {
			keys[c.String()+fam.suffix] = field{
				rule:  paramGrammar.OptionalPointRule(fam.errs[c]),
				apply: setCorner(fam, c),
			}
		}
	}
	return keys
}

func setCorner(fam cornerFamily, corner paramModel.Corner) func(d *document, v paramGrammar.Value) error {
	return func(d *document, v paramGrammar.Value) error {
		if v.Absent {
			return nil
		}

		pt, err := paramGrammar.ToPoint(v, fam.errs[corner])
		if err != nil {
			return d.locate(err)
		}

		if fam.geographic {
			if !utils.InRange(pt[0], -90.0, 90.0) {
				return d.invalid(paramErrors.InvalidLatitude, pt[0])
			}
			if !utils.InRange(pt[1], -180.0, 180.0) {
				return d.invalid(paramErrors.InvalidLongitude, pt[1])
			}
		}

		fam.set(d.p).Set(corner, pt)
		return nil
	}
}

// The header fills in band info for a band count the parameter file may already have given, along
// with a spectral subset that has to survive the reallocation
func setHeaderBandCount(d *document, v paramGrammar.Value) error {
	n, err := paramGrammar.Int(v.Words[0], paramErrors.BadHeaderNBandsField)
	if err != nil {
		return d.locate(err)
	}
	if n > 0 && d.p.NBands > 0 && n != d.p.NBands {
		return d.invalid(paramErrors.HeaderBandCountMismatch, fmt.Sprintf("header has %v bands, expected %v", n, d.p.NBands))
	}

	selected := d.p.SelectedBands
	subsetSet := d.p.SpectralSubsetSet

	if err := d.p.SetBandCount(n); err != nil {
		return d.locate(err)
	}

	if subsetSet && len(selected) == n {
		d.p.SelectedBands = selected
		d.p.SpectralSubsetSet = true
	}
	return nil
}
