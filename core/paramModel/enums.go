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

package paramModel

import (
	"path"
	"strings"
)

// Tables of the enumerated values a parameter or header file may carry. Each enum has a zero
// value meaning "not set" and a Parse function taking the (case-insensitive) file spelling.

type SubsetKind int

const (
	LatLong SubsetKind = iota
	LineSample
	ProjectedXY
)

var subsetKindNames = []string{"INPUT_LAT_LONG", "INPUT_LINE_SAMPLE", "OUTPUT_PROJ_COORDS"}

func (k SubsetKind) String() string {
	return enumName(subsetKindNames, int(k))
}

func ParseSubsetKind(s string) (SubsetKind, bool) {
	idx := enumIndex(subsetKindNames, s)
	return SubsetKind(idx), idx >= 0
}

type Resampling int

const (
	NearestNeighbor Resampling = iota
	Bilinear
	CubicConvolution
)

var resamplingNames = []string{"NEAREST_NEIGHBOR", "BILINEAR", "CUBIC_CONVOLUTION"}

// Short forms accepted by the resampler command line, also seen in hand written files
var resamplingAliases = map[string]Resampling{"NN": NearestNeighbor, "BI": Bilinear, "CC": CubicConvolution}

func (r Resampling) String() string {
	return enumName(resamplingNames, int(r))
}

func ParseResampling(s string) (Resampling, bool) {
	if r, ok := resamplingAliases[strings.ToUpper(s)]; ok {
		return r, true
	}
	idx := enumIndex(resamplingNames, s)
	return Resampling(idx), idx >= 0
}

type Projection int

const (
	ProjectionUnset Projection = iota
	AEA
	ER
	GEO
	HAM
	IGH
	ISIN
	LA
	LCC
	MERCAT
	PS
	SIN
	SOM
	TM
	UTM
)

var projectionNames = []string{"", "AEA", "ER", "GEO", "HAM", "IGH", "ISIN", "LA", "LCC", "MERCAT", "PS", "SIN", "SOM", "TM", "UTM"}

func (p Projection) String() string {
	return enumName(projectionNames, int(p))
}

// ParseProjection never matches the unset value
func ParseProjection(s string) (Projection, bool) {
	idx := enumIndex(projectionNames, s)
	if idx <= 0 {
		return ProjectionUnset, false
	}
	return Projection(idx), true
}

// KnownProjections lists the 14 projection tags, in file spelling
func KnownProjections() []string {
	return append([]string{}, projectionNames[1:]...)
}

type DataType int

const (
	DataTypeUnset DataType = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
)

var dataTypeNames = []string{"", "INT8", "UINT8", "INT16", "UINT16", "INT32", "UINT32", "FLOAT32", "FLOAT64"}

func (d DataType) String() string {
	return enumName(dataTypeNames, int(d))
}

func ParseDataType(s string) (DataType, bool) {
	idx := enumIndex(dataTypeNames, s)
	if idx <= 0 {
		return DataTypeUnset, false
	}
	return DataType(idx), true
}

type PixelSizeUnit int

const (
	UnitUnset PixelSizeUnit = iota
	Meters
	Feet
	Degrees
	ArcSeconds
)

var pixelSizeUnitNames = []string{"", "METERS", "FEET", "DEGREES", "ARC-SEC"}

func (u PixelSizeUnit) String() string {
	return enumName(pixelSizeUnitNames, int(u))
}

func ParsePixelSizeUnit(s string) (PixelSizeUnit, bool) {
	if strings.EqualFold(s, "ARCSEC") {
		return ArcSeconds, true
	}
	idx := enumIndex(pixelSizeUnitNames, s)
	if idx <= 0 {
		return UnitUnset, false
	}
	return PixelSizeUnit(idx), true
}

type OutputFileKind int

const (
	FileKindUnset OutputFileKind = iota
	HDFEOS
	GeoTIFF
	RawBinary
)

var outputFileKindNames = []string{"", "HDF_FMT", "GEOTIFF_FMT", "RB_FMT"}
var outputFileKindExt = []string{"", ".hdf", ".tif", ".hdr"}

func (k OutputFileKind) String() string {
	return enumName(outputFileKindNames, int(k))
}

// Extension returns the file extension (with dot) files of this kind are written with
func (k OutputFileKind) Extension() string {
	return enumName(outputFileKindExt, int(k))
}

func ParseOutputFileKind(s string) (OutputFileKind, bool) {
	idx := enumIndex(outputFileKindNames, s)
	if idx <= 0 {
		return FileKindUnset, false
	}
	return OutputFileKind(idx), true
}

// FileKindFromName works out the output file kind from a file name's extension
func FileKindFromName(name string) OutputFileKind {
	switch strings.ToLower(path.Ext(name)) {
	case ".hdf":
		return HDFEOS
	case ".tif", ".tiff":
		return GeoTIFF
	case ".hdr", ".dat":
		return RawBinary
	}
	return FileKindUnset
}

const DefaultDatum = "NoDatum"

var datumNames = []string{DefaultDatum, "NAD27", "NAD83", "WGS66", "WGS72", "WGS84"}

// ParseDatum returns the canonical spelling of a datum name
func ParseDatum(s string) (string, bool) {
	idx := enumIndex(datumNames, s)
	if idx < 0 {
		return "", false
	}
	return datumNames[idx], true
}

func enumName(names []string, idx int) string {
	if idx < 0 || idx >= len(names) {
		return ""
	}
	return names[idx]
}

func enumIndex(names []string, s string) int {
	for c, n := range names {
		if strings.EqualFold(n, s) {
			return c
		}
	}
	return -1
}
