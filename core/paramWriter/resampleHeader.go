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
	"strings"

	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramModel"
)

// OutputGroup is a contiguous run of selected bands sharing one source grid, written as one output
// file by the resampler
type OutputGroup struct {
	FirstBand int
	Bands     []int
	NLines    int
	NSamples  int
	PixelSize float64
}

// OutputGroups splits the selected bands into runs. An unselected band, or a change of lines,
// samples or pixel size, starts a new group.
func OutputGroups(p *paramModel.Params) []OutputGroup {
	groups := []OutputGroup{}
	var current *OutputGroup

	for c := 0; c < p.NBands; c++ {
		if !p.IsSelectedBand(c) {
			current = nil
			continue
		}

		if current != nil && current.NLines == p.NLines[c] && current.NSamples == p.NSamples[c] && current.PixelSize == p.PixelSize[c] {
			current.Bands = append(current.Bands, c)
			continue
		}

		groups = append(groups, OutputGroup{
			FirstBand: c,
			Bands:     []int{c},
			NLines:    p.NLines[c],
			NSamples:  p.NSamples[c],
			PixelSize: p.PixelSize[c],
		})
		current = &groups[len(groups)-1]
	}

	return groups
}

func checkWritable(p *paramModel.Params) error {
	if p == nil {
		return paramErrors.New(paramErrors.WriterNilModel, "")
	}
	if !p.Resolved {
		return paramErrors.New(paramErrors.ModelNotResolved, p.InputParamFile)
	}
	return nil
}

func writeCorners(sb *strings.Builder, suffix string, cs paramModel.CornerSet, always bool, style FloatStyle) {
	for _, c := range paramModel.Corners {
		pt, ok := cs.Get(c)
		if !ok && !always {
			continue
		}
		sb.WriteString(fmt.Sprintf("%v%v = %v\n", c, suffix, formatList(formatFloats(pt[:], style))))
	}
}

// FormatResampleHeader returns the header the resampler reads for this job: the input's geometry
// and band info, then one group per output file
func FormatResampleHeader(p *paramModel.Params, style FloatStyle) (string, error) {
	if err := checkWritable(p); err != nil {
		return "", err
	}

	groups := OutputGroups(p)
	if len(groups) <= 0 {
		return "", paramErrors.New(paramErrors.NoOutputGroups, p.InputParamFile)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("PROJECTION_TYPE = %v\n", p.InputProjection))
	writeCoefficients(&sb, "PROJECTION_PARAMETERS", p.InputProjParams[:], style)

	// Geographic corners are always written, the other families only where they were read
	writeCorners(&sb, "_CORNER_LATLON", p.HeaderCorners, true, style)
	writeCorners(&sb, "_GRING_LATLON", p.GRingCorners, false, style)
	writeCorners(&sb, "_CORNER_XY", p.XYCorners, false, style)

	dataTypes := make([]string, p.NBands)
	for c, dt := range p.DataTypes {
		dataTypes[c] = dt.String()
	}

	sb.WriteString(fmt.Sprintf("NBANDS = %v\n", p.NBands))
	sb.WriteString(fmt.Sprintf("BANDNAMES = %v\n", formatList(strings.Join(p.BandNames, " "))))
	sb.WriteString(fmt.Sprintf("DATA_TYPE = %v\n", formatList(strings.Join(dataTypes, " "))))
	sb.WriteString(fmt.Sprintf("NUM_SELECTED_BANDS = %v\n", p.SelectedBandCount()))

	for c, g := range groups {
		name := fmt.Sprintf("OUTPUT_FILE_%v", c+1)
		sb.WriteString(fmt.Sprintf("BEGIN_GROUP = %v\n", name))
		sb.WriteString(fmt.Sprintf("NLINES = %v\n", g.NLines))
		sb.WriteString(fmt.Sprintf("NSAMPLES = %v\n", g.NSamples))
		sb.WriteString(fmt.Sprintf("PIXEL_SIZE = %v\n", FormatFloat(g.PixelSize, style)))
		sb.WriteString(fmt.Sprintf("NBANDS = %v\n", len(g.Bands)))
		sb.WriteString(fmt.Sprintf("END_GROUP = %v\n", name))
	}

	return sb.String(), nil
}

// WriteResampleHeader writes FormatResampleHeader's output to w
func WriteResampleHeader(w io.Writer, p *paramModel.Params, style FloatStyle) error {
	hdr, err := FormatResampleHeader(p, style)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, hdr)
	return paramErrors.Wrap(paramErrors.OutputFileWrite, p.OutputFile, err)
}
