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

package paramErrors

// Kind identifies one entry of the closed error taxonomy. The numeric value doubles as the
// legacy error code (see Code) that older tooling reads back as a process exit status.
type Kind int

const (
	None Kind = iota

	// I/O, one group per file role
	ParamFileOpen
	ParamFileRead
	ParamFileWrite
	ParamFileClose
	HeaderFileOpen
	HeaderFileRead
	HeaderFileWrite
	HeaderFileClose
	OutputFileOpen
	OutputFileRead
	OutputFileWrite
	OutputFileClose
	MosaicFileOpen
	MosaicFileRead
	MosaicFileWrite
	MosaicFileClose

	// General / structural
	GeneralError
	BandCountUnknown
	UnknownInputFileType
	TooManyMosaicFiles
	MosaicBandMismatch
	ModelNotResolved

	// Grammar: parameter file fields
	BadInputFileNameField
	BadInputFileNamesField
	BadNBandsField
	BadSpectralSubsetField
	BadSpatialSubsetTypeField
	BadSpatialSubsetULField
	BadSpatialSubsetLRField
	BadOutputFileNameField
	BadOutputFileTypeField
	BadResamplingTypeField
	BadOutputProjTypeField
	BadOutputProjParamsField
	BadDatumField
	BadUTMZoneField
	BadOutputPixelSizeField

	// Grammar: header file fields
	BadProjectionTypeField
	BadProjectionParamsField
	BadHeaderDatumField
	BadHeaderUTMZoneField
	BadHeaderNBandsField
	BadULCornerLatLonField
	BadURCornerLatLonField
	BadLLCornerLatLonField
	BadLRCornerLatLonField
	BadULGRingLatLonField
	BadURGRingLatLonField
	BadLLGRingLatLonField
	BadLRGRingLatLonField
	BadULCornerXYField
	BadURCornerXYField
	BadLLCornerXYField
	BadLRCornerXYField
	BadBandNamesField
	BadNLinesField
	BadNSamplesField
	BadPixelSizeField
	BadDataTypeField
	BadMinValueField
	BadMaxValueField
	BadBackgroundFillField

	// Semantic: value recognised structurally but not acceptable
	InvalidSpatialSubsetType
	InvalidResamplingType
	InvalidOutputProjType
	InvalidInputProjType
	InvalidDataType
	InvalidDatum
	InvalidUTMZone
	InvalidPixelSizeUnit
	InvalidOutputPixelSize
	InvalidOutputFileType
	InvalidBandCount
	InvalidNLines
	InvalidNSamples
	InvalidPixelSize
	InvalidSpectralSubsetValue
	NoBandsSelected
	InvalidLatitude
	InvalidLongitude
	HeaderBandCountMismatch
	InvalidOutputFileName
	InvalidInputFileName
	InvalidMinMaxRange

	// Missing required fields
	MissingInputFileName
	MissingOutputFileName
	MissingOutputProjType
	MissingSpatialSubsetType
	MissingHeaderNBands
	MissingHeaderProjType
	MissingHeaderBandNames
	MissingHeaderNLines
	MissingHeaderNSamples
	MissingHeaderDataType
	MissingHeaderPixelSize
	MissingHeaderCorners
	MissingOutputPixelSize

	// External tools
	ExternalToolMissing
	ExternalToolFailed
	ExternalToolTimeout
	ExternalToolOutputMissing
	MosaicAssemblyFailed

	// Writer
	NoOutputGroups
	WriterNilModel

	kindCount
)

type kindInfo struct {
	name    string
	message string
}

var kindTable = [kindCount]kindInfo{
	None: {"None", "No error"},

	ParamFileOpen:   {"ParamFileOpen", "Error opening input parameter file"},
	ParamFileRead:   {"ParamFileRead", "Error reading input parameter file"},
	ParamFileWrite:  {"ParamFileWrite", "Error writing parameter file"},
	ParamFileClose:  {"ParamFileClose", "Error closing parameter file"},
	HeaderFileOpen:  {"HeaderFileOpen", "Error opening input header file"},
	HeaderFileRead:  {"HeaderFileRead", "Error reading input header file"},
	HeaderFileWrite: {"HeaderFileWrite", "Error writing header file"},
	HeaderFileClose: {"HeaderFileClose", "Error closing header file"},
	OutputFileOpen:  {"OutputFileOpen", "Error opening output file"},
	OutputFileRead:  {"OutputFileRead", "Error reading output file"},
	OutputFileWrite: {"OutputFileWrite", "Error writing output file"},
	OutputFileClose: {"OutputFileClose", "Error closing output file"},
	MosaicFileOpen:  {"MosaicFileOpen", "Error opening mosaic file"},
	MosaicFileRead:  {"MosaicFileRead", "Error reading mosaic file"},
	MosaicFileWrite: {"MosaicFileWrite", "Error writing mosaic file"},
	MosaicFileClose: {"MosaicFileClose", "Error closing mosaic file"},

	GeneralError:         {"GeneralError", "Unexpected token in file"},
	BandCountUnknown:     {"BandCountUnknown", "Band information read before the number of bands is known"},
	UnknownInputFileType: {"UnknownInputFileType", "Input file type could not be determined from its extension"},
	TooManyMosaicFiles:   {"TooManyMosaicFiles", "Too many input files specified for mosaic"},
	MosaicBandMismatch:   {"MosaicBandMismatch", "Mosaic input files do not have the same bands"},
	ModelNotResolved:     {"ModelNotResolved", "Parameters have not been resolved"},

	BadInputFileNameField:     {"BadInputFileNameField", "Bad INPUT_FILENAME field"},
	BadInputFileNamesField:    {"BadInputFileNamesField", "Bad INPUT_FILENAMES field"},
	BadNBandsField:            {"BadNBandsField", "Bad NBANDS field"},
	BadSpectralSubsetField:    {"BadSpectralSubsetField", "Bad SPECTRAL_SUBSET field"},
	BadSpatialSubsetTypeField: {"BadSpatialSubsetTypeField", "Bad SPATIAL_SUBSET_TYPE field"},
	BadSpatialSubsetULField:   {"BadSpatialSubsetULField", "Bad SPATIAL_SUBSET_UL_CORNER field"},
	BadSpatialSubsetLRField:   {"BadSpatialSubsetLRField", "Bad SPATIAL_SUBSET_LR_CORNER field"},
	BadOutputFileNameField:    {"BadOutputFileNameField", "Bad OUTPUT_FILENAME field"},
	BadOutputFileTypeField:    {"BadOutputFileTypeField", "Bad OUTPUT_FILE_TYPE field"},
	BadResamplingTypeField:    {"BadResamplingTypeField", "Bad RESAMPLING_TYPE field"},
	BadOutputProjTypeField:    {"BadOutputProjTypeField", "Bad OUTPUT_PROJECTION_TYPE field"},
	BadOutputProjParamsField:  {"BadOutputProjParamsField", "Bad OUTPUT_PROJECTION_PARAMETERS field"},
	BadDatumField:             {"BadDatumField", "Bad DATUM field"},
	BadUTMZoneField:           {"BadUTMZoneField", "Bad UTM_ZONE field"},
	BadOutputPixelSizeField:   {"BadOutputPixelSizeField", "Bad OUTPUT_PIXEL_SIZE field"},

	BadProjectionTypeField:   {"BadProjectionTypeField", "Bad PROJECTION_TYPE field in header"},
	BadProjectionParamsField: {"BadProjectionParamsField", "Bad PROJECTION_PARAMETERS field in header"},
	BadHeaderDatumField:      {"BadHeaderDatumField", "Bad DATUM field in header"},
	BadHeaderUTMZoneField:    {"BadHeaderUTMZoneField", "Bad UTM_ZONE field in header"},
	BadHeaderNBandsField:     {"BadHeaderNBandsField", "Bad NBANDS field in header"},
	BadULCornerLatLonField:   {"BadULCornerLatLonField", "Bad UL_CORNER_LATLON field"},
	BadURCornerLatLonField:   {"BadURCornerLatLonField", "Bad UR_CORNER_LATLON field"},
	BadLLCornerLatLonField:   {"BadLLCornerLatLonField", "Bad LL_CORNER_LATLON field"},
	BadLRCornerLatLonField:   {"BadLRCornerLatLonField", "Bad LR_CORNER_LATLON field"},
	BadULGRingLatLonField:    {"BadULGRingLatLonField", "Bad UL_GRING_LATLON field"},
	BadURGRingLatLonField:    {"BadURGRingLatLonField", "Bad UR_GRING_LATLON field"},
	BadLLGRingLatLonField:    {"BadLLGRingLatLonField", "Bad LL_GRING_LATLON field"},
	BadLRGRingLatLonField:    {"BadLRGRingLatLonField", "Bad LR_GRING_LATLON field"},
	BadULCornerXYField:       {"BadULCornerXYField", "Bad UL_CORNER_XY field"},
	BadURCornerXYField:       {"BadURCornerXYField", "Bad UR_CORNER_XY field"},
	BadLLCornerXYField:       {"BadLLCornerXYField", "Bad LL_CORNER_XY field"},
	BadLRCornerXYField:       {"BadLRCornerXYField", "Bad LR_CORNER_XY field"},
	BadBandNamesField:        {"BadBandNamesField", "Bad BANDNAMES field"},
	BadNLinesField:           {"BadNLinesField", "Bad NLINES field"},
	BadNSamplesField:         {"BadNSamplesField", "Bad NSAMPLES field"},
	BadPixelSizeField:        {"BadPixelSizeField", "Bad PIXEL_SIZE field"},
	BadDataTypeField:         {"BadDataTypeField", "Bad DATA_TYPE field"},
	BadMinValueField:         {"BadMinValueField", "Bad MIN_VALUE field"},
	BadMaxValueField:         {"BadMaxValueField", "Bad MAX_VALUE field"},
	BadBackgroundFillField:   {"BadBackgroundFillField", "Bad BACKGROUND_FILL field"},

	InvalidSpatialSubsetType:   {"InvalidSpatialSubsetType", "Invalid spatial subset type"},
	InvalidResamplingType:      {"InvalidResamplingType", "Invalid resampling type"},
	InvalidOutputProjType:      {"InvalidOutputProjType", "Invalid output projection type"},
	InvalidInputProjType:       {"InvalidInputProjType", "Invalid input projection type"},
	InvalidDataType:            {"InvalidDataType", "Invalid data type"},
	InvalidDatum:               {"InvalidDatum", "Invalid datum"},
	InvalidUTMZone:             {"InvalidUTMZone", "UTM zone must be between -60 and 60"},
	InvalidPixelSizeUnit:       {"InvalidPixelSizeUnit", "Invalid output pixel size units"},
	InvalidOutputPixelSize:     {"InvalidOutputPixelSize", "Output pixel size must be a positive number"},
	InvalidOutputFileType:      {"InvalidOutputFileType", "Invalid output file type"},
	InvalidBandCount:           {"InvalidBandCount", "Number of bands must be positive"},
	InvalidNLines:              {"InvalidNLines", "Number of lines must be positive"},
	InvalidNSamples:            {"InvalidNSamples", "Number of samples must be positive"},
	InvalidPixelSize:           {"InvalidPixelSize", "Pixel size must be positive"},
	InvalidSpectralSubsetValue: {"InvalidSpectralSubsetValue", "Spectral subset values must be 0 or 1"},
	NoBandsSelected:            {"NoBandsSelected", "No bands selected in spectral subset"},
	InvalidLatitude:            {"InvalidLatitude", "Latitude must be between -90 and 90"},
	InvalidLongitude:           {"InvalidLongitude", "Longitude must be between -180 and 180"},
	HeaderBandCountMismatch:    {"HeaderBandCountMismatch", "Input header band count differs from parameter file NBANDS"},
	InvalidOutputFileName:      {"InvalidOutputFileName", "Output file name is not valid"},
	InvalidInputFileName:       {"InvalidInputFileName", "Input file name is not valid"},
	InvalidMinMaxRange:         {"InvalidMinMaxRange", "Minimum value is greater than maximum value"},

	MissingInputFileName:     {"MissingInputFileName", "Missing input file name"},
	MissingOutputFileName:    {"MissingOutputFileName", "Missing output file name"},
	MissingOutputProjType:    {"MissingOutputProjType", "Missing output projection type"},
	MissingSpatialSubsetType: {"MissingSpatialSubsetType", "Spatial subset corners given without a spatial subset type"},
	MissingHeaderNBands:      {"MissingHeaderNBands", "Missing NBANDS in header"},
	MissingHeaderProjType:    {"MissingHeaderProjType", "Missing PROJECTION_TYPE in header"},
	MissingHeaderBandNames:   {"MissingHeaderBandNames", "Missing BANDNAMES in header"},
	MissingHeaderNLines:      {"MissingHeaderNLines", "Missing NLINES in header"},
	MissingHeaderNSamples:    {"MissingHeaderNSamples", "Missing NSAMPLES in header"},
	MissingHeaderDataType:    {"MissingHeaderDataType", "Missing DATA_TYPE in header"},
	MissingHeaderPixelSize:   {"MissingHeaderPixelSize", "Missing PIXEL_SIZE in header"},
	MissingHeaderCorners:     {"MissingHeaderCorners", "Missing corner coordinates in header"},
	MissingOutputPixelSize:   {"MissingOutputPixelSize", "Missing output pixel size value"},

	ExternalToolMissing:       {"ExternalToolMissing", "Header conversion tool not found"},
	ExternalToolFailed:        {"ExternalToolFailed", "Header conversion tool failed"},
	ExternalToolTimeout:       {"ExternalToolTimeout", "Header conversion tool timed out"},
	ExternalToolOutputMissing: {"ExternalToolOutputMissing", "Header conversion tool produced no header"},
	MosaicAssemblyFailed:      {"MosaicAssemblyFailed", "Mosaic assembly failed"},

	NoOutputGroups: {"NoOutputGroups", "No selected bands to write"},
	WriterNilModel: {"WriterNilModel", "No parameters to write"},
}

// Kinds returns every defined kind except None, in code order
func Kinds() []Kind {
	result := make([]Kind, 0, int(kindCount)-1)
	for k := None + 1; k < kindCount; k++ {
		result = append(result, k)
	}
	return result
}

func (k Kind) valid() bool {
	return k >= None && k < kindCount
}

// Name returns the identifier of the kind, eg "MissingOutputFileName"
func (k Kind) Name() string {
	if !k.valid() {
		return "Unknown"
	}
	return kindTable[k].name
}

func (k Kind) String() string {
	return k.Name()
}

// Message returns the fixed human-readable text for the kind
func (k Kind) Message() string {
	if !k.valid() {
		return "Unknown error"
	}
	return kindTable[k].message
}

// Code returns the legacy numeric code. Only used where an old consumer expects a number
// (exit status of the command line tool, job records).
func (k Kind) Code() int {
	return int(k)
}

// Error lets a bare Kind act as an errors.Is target
func (k Kind) Error() string {
	return k.Message()
}

// IsIO reports whether the kind is one of the file open/read/write/close kinds
func (k Kind) IsIO() bool {
	return k >= ParamFileOpen && k <= MosaicFileClose
}

// IsMissingField reports whether the kind is a missing-required-field kind
func (k Kind) IsMissingField() bool {
	return k >= MissingInputFileName && k <= MissingOutputPixelSize
}

// IsExternalTool reports whether the kind came from a collaborator process
func (k Kind) IsExternalTool() bool {
	return k >= ExternalToolMissing && k <= MosaicAssemblyFailed
}
