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
	"github.com/lpdaac/mrtparams/core/mosaic"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramGrammar"
	"github.com/lpdaac/mrtparams/core/paramModel"
	"github.com/lpdaac/mrtparams/core/utils"
)

// Keys recognised in a parameter file
var paramKeys = withCornerKeys(map[string]field{
	"INPUT_FILENAME": {
		rule:  paramGrammar.QuotedOrWordRule(paramErrors.BadInputFileNameField),
		apply: setInputFile,
	},
	"INPUT_FILENAMES": {
		rule:  paramGrammar.OpenListRule(paramErrors.BadInputFileNamesField),
		apply: setInputFiles,
	},
	"NBANDS": {
		rule:  paramGrammar.WrappedScalarRule(paramErrors.BadNBandsField),
		apply: setParamBandCount,
	},
	"SPECTRAL_SUBSET": {
		rule:  paramGrammar.DefaultedListRule(0, "0", paramErrors.BadSpectralSubsetField),
		bands: true,
		apply: setSpectralSubset,
	},
	"SPATIAL_SUBSET_TYPE": {
		rule:  paramGrammar.ScalarRule(paramErrors.BadSpatialSubsetTypeField),
		apply: setSubsetKind,
	},
	"SPATIAL_SUBSET_UL_CORNER": {
		rule:  paramGrammar.PointRule(paramErrors.BadSpatialSubsetULField),
		apply: setSubsetCorner(paramModel.UL, paramErrors.BadSpatialSubsetULField),
	},
	"SPATIAL_SUBSET_LR_CORNER": {
		rule:  paramGrammar.PointRule(paramErrors.BadSpatialSubsetLRField),
		apply: setSubsetCorner(paramModel.LR, paramErrors.BadSpatialSubsetLRField),
	},
	// Older form: SPATIAL_SUBSET_CORNERS = UL_CORNER ( a b ) LR_CORNER ( a b )
	"SPATIAL_SUBSET_CORNERS": {
		rule:  paramGrammar.NamedPointRule("UL_CORNER", paramErrors.BadSpatialSubsetULField),
		apply: setNamedSubsetCorners,
	},
	"OUTPUT_FILENAME": {
		rule:  paramGrammar.QuotedOrWordRule(paramErrors.BadOutputFileNameField),
		apply: setOutputFile,
	},
	"OUTPUT_FILE_TYPE": {
		rule:  paramGrammar.ScalarRule(paramErrors.BadOutputFileTypeField),
		apply: setOutputFileKind,
	},
	"RESAMPLING_TYPE": {
		rule:  paramGrammar.ScalarRule(paramErrors.BadResamplingTypeField),
		apply: setResampling,
	},
	"OUTPUT_PROJECTION_TYPE": {
		rule:  paramGrammar.ScalarRule(paramErrors.BadOutputProjTypeField),
		apply: setOutputProjection,
	},
	"OUTPUT_PROJECTION_PARAMETERS": {
		rule:  paramGrammar.DefaultedListRule(paramModel.NumProjParams, "0.0", paramErrors.BadOutputProjParamsField),
		apply: setOutputProjParams,
	},
	"DATUM": {
		rule:  paramGrammar.ScalarRule(paramErrors.BadDatumField),
		apply: setDatum,
	},
	"UTM_ZONE": {
		rule:  paramGrammar.ScalarRule(paramErrors.BadUTMZoneField),
		apply: setUTMZone,
	},
	"OUTPUT_PIXEL_SIZE": {
		rule:  paramGrammar.PixelSizeRule(paramErrors.BadOutputPixelSizeField),
		apply: setOutputPixelSize,
	},
})

func setInputFile(d *document, v paramGrammar.Value) error {
	name := v.Words[0]

	d.p.InputFile = name
	d.p.Mosaic = false
	d.p.MosaicFiles = nil
	d.p.MosaicDescriptor = ""

	if len(name) <= 0 {
		return nil
	}
	return d.loadHeader(name)
}

func setInputFiles(d *document, v paramGrammar.Value) error {
	list, err := mosaic.MakeFileList(v.Words)
	if err != nil {
		return d.locate(err)
	}

	// A list of one is just an input file
	if list.Len() == 1 {
		return setInputFile(d, v)
	}

	d.p.Mosaic = true
	d.p.MosaicFiles = list.Files()
	d.p.MosaicDescriptor = ""
	d.p.InputFile = ""

	if d.reader == nil || d.reader.Mosaic == nil {
		d.log.Debugf("%v: no mosaic assembler, recording %v input files only", d.name, list.Len())
		return nil
	}

	desc, err := d.reader.Mosaic.Assemble(d.ctx, list.Files())
	if err != nil {
		return err
	}

	d.p.MosaicDescriptor = desc
	d.p.InputFile = desc
	return d.loadHeader(desc)
}

// loadHeader reads the header of an input file into the model, if we were given a loader
func (d *document) loadHeader(inputPath string) error {
	if d.reader == nil || d.reader.Headers == nil {
		return nil
	}
	if err := d.ctx.Err(); err != nil {
		return paramErrors.Wrap(paramErrors.HeaderFileOpen, inputPath, err)
	}

	d.log.Debugf("%v: loading header for input %v", d.name, inputPath)
	return d.reader.Headers.LoadHeader(d.ctx, inputPath, d.p)
}

func setBandCount(kind paramErrors.Kind) func(d *document, v paramGrammar.Value) error {
	return func(d *document, v paramGrammar.Value) error {
		n, err := paramGrammar.Int(v.Words[0], kind)
		if err != nil {
			return d.locate(err)
		}
		if err := d.p.SetBandCount(n); err != nil {
			return d.locate(err)
		}
		return nil
	}
}

// A parameter file repeating the band count its input header gave keeps the header's band info
func setParamBandCount(d *document, v paramGrammar.Value) error {
	n, err := paramGrammar.Int(v.Words[0], paramErrors.BadNBandsField)
	if err != nil {
		return d.locate(err)
	}
	if n > 0 && n == d.p.NBands {
		return nil
	}
	return setBandCount(paramErrors.BadNBandsField)(d, v)
}

func setSpectralSubset(d *document, v paramGrammar.Value) error {
	flags, err := paramGrammar.Ints(v.Words, paramErrors.BadSpectralSubsetField)
	if err != nil {
		return d.locate(err)
	}

	selected := make([]bool, len(flags))
	for c, f := range flags {
		if f != 0 && f != 1 {
			return d.invalid(paramErrors.InvalidSpectralSubsetValue, v.Words[c])
		}
		selected[c] = f == 1
	}

	if utils.CountTrue(selected) <= 0 {
		return d.invalid(paramErrors.NoBandsSelected, "SPECTRAL_SUBSET")
	}

	d.p.SelectedBands = selected
	d.p.SpectralSubsetSet = true
	return nil
}

func setSubsetKind(d *document, v paramGrammar.Value) error {
	kind, ok := paramModel.ParseSubsetKind(v.Words[0])
	if !ok {
		return d.invalid(paramErrors.InvalidSpatialSubsetType, v.Words[0])
	}
	d.p.SubsetKind = kind
	d.p.SubsetKindSet = true
	return nil
}

func setSubsetCorner(corner paramModel.Corner, kind paramErrors.Kind) func(d *document, v paramGrammar.Value) error {
	return func(d *document, v paramGrammar.Value) error {
		pt, err := paramGrammar.ToPoint(v, kind)
		if err != nil {
			return d.locate(err)
		}
		d.p.SubsetCorners.Set(corner, pt)
		return nil
	}
}

func setNamedSubsetCorners(d *document, v paramGrammar.Value) error {
	if err := setSubsetCorner(paramModel.UL, paramErrors.BadSpatialSubsetULField)(d, v); err != nil {
		return err
	}

	lr, err := d.consume(paramGrammar.NamedPointRule("LR_CORNER", paramErrors.BadSpatialSubsetLRField))
	if err != nil {
		return err
	}
	return setSubsetCorner(paramModel.LR, paramErrors.BadSpatialSubsetLRField)(d, lr)
}

func setOutputFile(d *document, v paramGrammar.Value) error {
	d.p.OutputFile = v.Words[0]

	// An explicit OUTPUT_FILE_TYPE wins over the extension
	if !d.seen["OUTPUT_FILE_TYPE"] {
		d.p.OutputFileKind = paramModel.FileKindFromName(d.p.OutputFile)
	}
	return nil
}

func setOutputFileKind(d *document, v paramGrammar.Value) error {
	kind, ok := paramModel.ParseOutputFileKind(v.Words[0])
	if !ok {
		return d.invalid(paramErrors.InvalidOutputFileType, v.Words[0])
	}
	d.p.OutputFileKind = kind
	return nil
}

func setResampling(d *document, v paramGrammar.Value) error {
	r, ok := paramModel.ParseResampling(v.Words[0])
	if !ok {
		return d.invalid(paramErrors.InvalidResamplingType, v.Words[0])
	}
	d.p.Resampling = r
	d.p.ResamplingSet = true
	return nil
}

func setOutputProjection(d *document, v paramGrammar.Value) error {
	proj, ok := paramModel.ParseProjection(v.Words[0])
	if !ok {
		return d.invalid(paramErrors.InvalidOutputProjType, v.Words[0])
	}
	d.p.OutputProjection = proj
	d.p.OutputProjectionSet = true
	return nil
}

func setOutputProjParams(d *document, v paramGrammar.Value) error {
	vals, err := paramGrammar.Floats(v.Words, paramErrors.BadOutputProjParamsField)
	if err != nil {
		return d.locate(err)
	}
	copy(d.p.OutputProjParams[:], vals)
	d.p.OutputProjParamsSet = true
	return nil
}

func setDatum(d *document, v paramGrammar.Value) error {
	datum, ok := paramModel.ParseDatum(v.Words[0])
	if !ok {
		return d.invalid(paramErrors.InvalidDatum, v.Words[0])
	}
	d.p.Datum = datum
	return nil
}

func readUTMZone(d *document, v paramGrammar.Value, kind paramErrors.Kind) (int, error) {
	zone, err := paramGrammar.Int(v.Words[0], kind)
	if err != nil {
		return 0, d.locate(err)
	}
	if !utils.InRange(zone, paramModel.MinUTMZone, paramModel.MaxUTMZone) {
		return 0, d.invalid(paramErrors.InvalidUTMZone, zone)
	}
	return zone, nil
}

func setUTMZone(d *document, v paramGrammar.Value) error {
	zone, err := readUTMZone(d, v, paramErrors.BadUTMZoneField)
	if err != nil {
		return err
	}
	d.p.UTMZone = zone
	return nil
}

func setOutputPixelSize(d *document, v paramGrammar.Value) error {
	// OUTPUT_PIXEL_SIZE = METERS
	if _, isUnit := paramModel.ParsePixelSizeUnit(v.Words[0]); isUnit {
		return d.invalid(paramErrors.MissingOutputPixelSize, v.Words[0])
	}

	size, err := paramGrammar.Float(v.Words[0], paramErrors.BadOutputPixelSizeField)
	if err != nil {
		return d.locate(err)
	}
	if !(size > 0) {
		return d.invalid(paramErrors.InvalidOutputPixelSize, v.Words[0])
	}

	unit := paramModel.UnitUnset
	if !v.UnitAbsent {
		var ok bool
		if unit, ok = paramModel.ParsePixelSizeUnit(v.Words[1]); !ok {
			return d.invalid(paramErrors.InvalidPixelSizeUnit, v.Words[1])
		}
	}

	// Kept as written so it goes back out the way it came in
	d.p.OutputPixelSize = v.Words[0]
	d.p.OutputPixelSizeUnit = unit
	return nil
}
