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

// In-memory model of one resampling job, as read from a parameter file plus the header of its
// input file. One Params is owned by one parse; it is never shared between parses.
package paramModel

import (
	"github.com/lpdaac/mrtparams/core/paramErrors"
)

const NumProjParams = 15

// MaxMosaicFiles is the most input files a mosaic job may list
const MaxMosaicFiles = 100

const MinUTMZone = -60
const MaxUTMZone = 60

// BandDetail is filled in by the resolver for every band: the full-image pixel box and the
// (placeholder) output projection box, both indexed by Corner then component
type BandDetail struct {
	PixelBox [NumCorners][2]int
	ProjBox  [NumCorners][2]float64
}

type Params struct {
	// File names
	InputParamFile string
	InputFile      string
	OutputFile     string
	OutputFileKind OutputFileKind

	// Mosaic jobs list their inputs here, InputFile then holds the synthesized descriptor
	Mosaic           bool
	MosaicFiles      []string
	MosaicDescriptor string

	// Spatial subset
	SubsetKind    SubsetKind
	SubsetKindSet bool

	SubsetCorners CornerSet // In the coordinate system given by SubsetKind
	GRingCorners  CornerSet
	XYCorners     CornerSet
	HeaderCorners CornerSet // Lat/lon corners as read from the input header

	// Bands, all arrays NBands long
	NBands         int
	BandNames      []string
	NLines         []int
	NSamples       []int
	PixelSize      []float64
	DataTypes      []DataType
	MinValue       []float64
	MaxValue       []float64
	BackgroundFill []float64

	SelectedBands     []bool
	SpectralSubsetSet bool

	BandDetails []BandDetail

	// Projection
	InputProjection     Projection
	OutputProjection    Projection
	OutputProjectionSet bool
	InputProjParams     [NumProjParams]float64
	OutputProjParams    [NumProjParams]float64
	OutputProjParamsSet bool

	UTMZone        int
	UTMZonePresent bool // Header declared a UTM zone

	Datum        string
	InputDatum   string
	DatumPresent bool // Header declared a datum

	Resampling    Resampling
	ResamplingSet bool

	OutputPixelSize     string
	OutputPixelSizeUnit PixelSizeUnit

	HeaderLoaded bool
	Resolved     bool
}

// New returns an empty model with the defaults a job starts with
func New() *Params {
	return &Params{
		SubsetKind: LatLong,
		Resampling: NearestNeighbor,
		Datum:      DefaultDatum,
		InputDatum: DefaultDatum,
	}
}

// SetBandCount (re)allocates every per-band array to n entries and selects all bands
func (p *Params) SetBandCount(n int) error {
	if n <= 0 {
		return paramErrors.Newf(paramErrors.InvalidBandCount, "%v", n)
	}

	p.NBands = n
	p.BandNames = make([]string, n)
	p.NLines = make([]int, n)
	p.NSamples = make([]int, n)
	p.PixelSize = make([]float64, n)
	p.DataTypes = make([]DataType, n)
	p.MinValue = make([]float64, n)
	p.MaxValue = make([]float64, n)
	p.BackgroundFill = make([]float64, n)
	p.BandDetails = make([]BandDetail, n)
	p.SelectedBands = make([]bool, n)
	p.SpectralSubsetSet = false
	p.SelectAllBands()
	return nil
}

// RequireBands returns the band count, or a BandCountUnknown error naming the field that needed it
func (p *Params) RequireBands(field string) (int, error) {
	if p.NBands <= 0 {
		return 0, paramErrors.New(paramErrors.BandCountUnknown, field)
	}
	return p.NBands, nil
}

func (p *Params) SelectAllBands() {
	for c := range p.SelectedBands {
		p.SelectedBands[c] = true
	}
}

func (p *Params) IsSelectedBand(band int) bool {
	if band < 0 || band >= len(p.SelectedBands) {
		return false
	}
	return p.SelectedBands[band]
}

func (p *Params) SelectedBandCount() int {
	n := 0
	for _, sel := range p.SelectedBands {
		if sel {
			n++
		}
	}
	return n
}

// WritesUTMZone reports whether the UTM zone is meaningful for this job: the output projection is
// UTM and the zone is in range
func (p *Params) WritesUTMZone() bool {
	return p.OutputProjection == UTM && p.UTMZone >= MinUTMZone && p.UTMZone <= MaxUTMZone
}

// InputFiles returns the files the job reads from, one entry unless it's a mosaic
func (p *Params) InputFiles() []string {
	if p.Mosaic {
		return append([]string{}, p.MosaicFiles...)
	}
	if len(p.InputFile) > 0 {
		return []string{p.InputFile}
	}
	return []string{}
}
