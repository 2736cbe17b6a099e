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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lpdaac/mrtparams/core/fileaccess"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/mosaic"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramModel"
	"github.com/lpdaac/mrtparams/core/utils"
	"github.com/pkg/errors"
)

// ParamFileOptions controls the resubmit form
type ParamFileOptions struct {
	Style FloatStyle

	// Where a mosaic job's descriptor is read from. Without FS the model's own list is written.
	FS   fileaccess.FileAccess
	Root string

	Log logger.ILogger
}

// DefaultParamFileOptions - trims .0 off whole numbers, as resubmitted files always have
func DefaultParamFileOptions() ParamFileOptions {
	return ParamFileOptions{Style: TrimTrailingZero}
}

func quoteIfNeeded(name string) string {
	if utils.NeedsQuotes(name) {
		return "\"" + name + "\""
	}
	return name
}

// OutputFileName returns the output file name with the extension of the output file kind
func OutputFileName(p *paramModel.Params) string {
	ext := p.OutputFileKind.Extension()
	if len(ext) <= 0 || utils.GetExtension(p.OutputFile) == ext {
		return p.OutputFile
	}
	return utils.ReplaceExtension(p.OutputFile, ext)
}

// mosaicInputs lists a mosaic job's files from its descriptor, falling back to the model's list if
// the descriptor can't be read
func mosaicInputs(p *paramModel.Params, opts ParamFileOptions) []string {
	if opts.FS == nil || len(p.MosaicDescriptor) <= 0 {
		return p.InputFiles()
	}

	files, err := mosaic.ReadDescriptor(opts.FS, opts.Root, p.MosaicDescriptor)
	if err == nil && len(files) <= 0 {
		err = paramErrors.New(paramErrors.MosaicFileRead, "no input files listed")
	}
	if err != nil {
		warn := paramErrors.NonFatal(paramErrors.KindOf(err), p.MosaicDescriptor, errors.Unwrap(err))
		logger.OrNull(opts.Log).Errorf("Mosaic descriptor %v not readable, writing %v input files from parameters instead: %v", p.MosaicDescriptor, len(p.MosaicFiles), warn)
		return p.InputFiles()
	}
	return files
}

func formatSubsetPoint(pt paramModel.Point, kind paramModel.SubsetKind, style FloatStyle) string {
	if kind == paramModel.LineSample {
		return formatList(formatInts([]int{int(pt[0]), int(pt[1])}))
	}
	return formatList(formatFloats(pt[:], style))
}

// FormatParamFile returns a parameter file which, read back in, describes the same job
func FormatParamFile(p *paramModel.Params, opts ParamFileOptions) (string, error) {
	if err := checkWritable(p); err != nil {
		return "", err
	}

	var sb strings.Builder

	if p.Mosaic {
		sb.WriteString("INPUT_FILENAMES = (")
		for _, f := range mosaicInputs(p, opts) {
			sb.WriteString("\n " + quoteIfNeeded(f))
		}
		sb.WriteString(" )\n")
	} else {
		sb.WriteString(fmt.Sprintf("INPUT_FILENAME = %v\n", quoteIfNeeded(p.InputFile)))
	}

	if p.NBands > 0 {
		flags := make([]string, p.NBands)
		for c := range flags {
			flags[c] = "0"
			if p.IsSelectedBand(c) {
				flags[c] = "1"
			}
		}

		// Band count first so the subset can be read back without the input header
		sb.WriteString(fmt.Sprintf("NBANDS = %v\n", p.NBands))
		sb.WriteString(fmt.Sprintf("SPECTRAL_SUBSET = %v\n", formatList(strings.Join(flags, " "))))
	}

	ul, hasUL := p.SubsetCorners.Get(paramModel.UL)
	lr, hasLR := p.SubsetCorners.Get(paramModel.LR)
	if hasUL && hasLR {
		sb.WriteString(fmt.Sprintf("SPATIAL_SUBSET_TYPE = %v\n", p.SubsetKind))
		sb.WriteString(fmt.Sprintf("SPATIAL_SUBSET_UL_CORNER = %v\n", formatSubsetPoint(ul, p.SubsetKind, opts.Style)))
		sb.WriteString(fmt.Sprintf("SPATIAL_SUBSET_LR_CORNER = %v\n", formatSubsetPoint(lr, p.SubsetKind, opts.Style)))
	}

	sb.WriteString(fmt.Sprintf("OUTPUT_FILENAME = %v\n", quoteIfNeeded(OutputFileName(p))))
	sb.WriteString(fmt.Sprintf("RESAMPLING_TYPE = %v\n", p.Resampling))
	sb.WriteString(fmt.Sprintf("OUTPUT_PROJECTION_TYPE = %v\n", p.OutputProjection))
	writeCoefficients(&sb, "OUTPUT_PROJECTION_PARAMETERS", p.OutputProjParams[:], opts.Style)
	sb.WriteString(fmt.Sprintf("DATUM = %v\n", p.Datum))

	if p.WritesUTMZone() {
		sb.WriteString("UTM_ZONE = " + strconv.Itoa(p.UTMZone) + "\n")
	}

	if len(p.OutputPixelSize) > 0 {
		sb.WriteString("OUTPUT_PIXEL_SIZE = " + p.OutputPixelSize)
		if p.OutputPixelSizeUnit != paramModel.UnitUnset {
			sb.WriteString(" " + p.OutputPixelSizeUnit.String())
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// WriteParamFile writes FormatParamFile's output to w
func WriteParamFile(w io.Writer, p *paramModel.Params, opts ParamFileOptions) error {
	prm, err := FormatParamFile(p, opts)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, prm)
	return paramErrors.Wrap(paramErrors.ParamFileWrite, p.InputParamFile, err)
}
