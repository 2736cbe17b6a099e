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

package paramGrammar

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/prmScanner"
)

func scannerFor(doc string) *prmScanner.Scanner {
	return prmScanner.New(strings.NewReader(doc), prmScanner.DefaultConfig())
}

func printConsume(rule Rule, doc string) {
	s := scannerFor(doc)
	v, err := rule.Consume(s)
	if err != nil {
		fmt.Printf("%v: %v\n", paramErrors.KindOf(err).Name(), err)
		return
	}
	next, _ := s.Next()
	fmt.Printf("%q absent=%v unitAbsent=%v next=%v\n", v.Words, v.Absent, v.UnitAbsent, next)
}

func Example_scalarRules() {
	printConsume(ScalarRule(paramErrors.BadResamplingTypeField), "BILINEAR NEXT")
	printConsume(ScalarRule(paramErrors.BadResamplingTypeField), "( BILINEAR )")
	printConsume(QuotedOrWordRule(paramErrors.BadOutputFileNameField), `"my out.tif" NEXT`)
	printConsume(WrappedScalarRule(paramErrors.BadNBandsField), "( 7 ) NEXT")
	printConsume(WrappedScalarRule(paramErrors.BadNBandsField), "7 NEXT")
	printConsume(WrappedScalarRule(paramErrors.BadNBandsField), "( 7 NEXT")

	// Output:
	// ["BILINEAR"] absent=false unitAbsent=false next=NEXT
	// BadResamplingTypeField: Bad RESAMPLING_TYPE field: line 1: expected a value, got (
	// ["my out.tif"] absent=false unitAbsent=false next=NEXT
	// ["7"] absent=false unitAbsent=false next=NEXT
	// ["7"] absent=false unitAbsent=false next=NEXT
	// BadNBandsField: Bad NBANDS field: line 1: expected ), got NEXT
}

func Example_listRules() {
	printConsume(FixedListRule(3, paramErrors.BadNLinesField), "( 2400 1200 1200 ) NEXT")
	printConsume(FixedListRule(3, paramErrors.BadNLinesField), "( 2400 1200 ) NEXT")
	printConsume(FixedListRule(3, paramErrors.BadNLinesField), "2400 1200 1200")
	printConsume(FixedListRule(2, paramErrors.BadNLinesField), "( 2400 1200 1200 )")
	printConsume(DefaultedListRule(4, "0", paramErrors.BadSpectralSubsetField), "( 1 1 ) NEXT")
	printConsume(DefaultedListRule(2, "0", paramErrors.BadSpectralSubsetField), "( 1 0 1 1 ) NEXT")
	printConsume(DefaultedListRule(2, "0", paramErrors.BadSpectralSubsetField), "( 1 0")
	printConsume(OpenListRule(paramErrors.BadInputFileNamesField), `( a.hdf "b c.hdf" ) NEXT`)
	printConsume(OpenListRule(paramErrors.BadInputFileNamesField), `( )`)

	// Output:
	// ["2400" "1200" "1200"] absent=false unitAbsent=false next=NEXT
	// BadNLinesField: Bad NLINES field: line 1: expected 3 values, read 2, got )
	// BadNLinesField: Bad NLINES field: line 1: expected (, got 2400
	// BadNLinesField: Bad NLINES field: line 1: expected ), got 1200
	// ["1" "1" "0" "0"] absent=false unitAbsent=false next=NEXT
	// ["1" "0"] absent=false unitAbsent=false next=NEXT
	// BadSpectralSubsetField: Bad SPECTRAL_SUBSET field: line 1: expected a value or ), got eof
	// ["a.hdf" "b c.hdf"] absent=false unitAbsent=false next=NEXT
	// BadInputFileNamesField: Bad INPUT_FILENAMES field: empty list
}

func Example_pointRules() {
	printConsume(PointRule(paramErrors.BadSpatialSubsetULField), "( 49.5 -125 ) NEXT")
	printConsume(PointRule(paramErrors.BadSpatialSubsetULField), "( 49.5 ) NEXT")
	printConsume(OptionalPointRule(paramErrors.BadULGRingLatLonField), "( 1 2 ) NEXT")
	printConsume(OptionalPointRule(paramErrors.BadULGRingLatLonField), "NEXT ( 1 2 )")
	printConsume(NamedPointRule("UL_CORNER", paramErrors.BadSpatialSubsetULField), "ul_corner ( 3 4 ) NEXT")
	printConsume(NamedPointRule("UL_CORNER", paramErrors.BadSpatialSubsetULField), "LR_CORNER ( 3 4 ) NEXT")

	// Output:
	// ["49.5" "-125"] absent=false unitAbsent=false next=NEXT
	// BadSpatialSubsetULField: Bad SPATIAL_SUBSET_UL_CORNER field: line 1: expected 2 values, read 1, got )
	// ["1" "2"] absent=false unitAbsent=false next=NEXT
	// [] absent=true unitAbsent=false next=NEXT
	// ["3" "4"] absent=false unitAbsent=false next=NEXT
	// BadSpatialSubsetULField: Bad SPATIAL_SUBSET_UL_CORNER field: line 1: expected UL_CORNER, got LR_CORNER
}

func Example_pixelSizeRule() {
	rule := PixelSizeRule(paramErrors.BadOutputPixelSizeField)
	printConsume(rule, "500 METERS\nNEXT")
	printConsume(rule, "500\nNEXT")
	printConsume(rule, "500 # no units here\nNEXT")
	printConsume(rule, "500")
	printConsume(rule, "\n500 METERS")

	// Output:
	// ["500" "METERS"] absent=false unitAbsent=false next=NEXT
	// ["500"] absent=false unitAbsent=true next=NEXT
	// ["500"] absent=false unitAbsent=true next=NEXT
	// ["500"] absent=false unitAbsent=true next=eof
	// BadOutputPixelSizeField: Bad OUTPUT_PIXEL_SIZE field: line 1: expected a value, got eol
}

func Test_ScanErrorPassesThrough(t *testing.T) {
	s := scannerFor(`( "abc`)
	_, err := OpenListRule(paramErrors.BadInputFileNamesField).Consume(s)

	var scanErr *prmScanner.ScanError
	if !errors.As(err, &scanErr) {
		t.Errorf("expected scan error, got %v", err)
	}
}

func Test_WithCount(t *testing.T) {
	base := FixedListRule(0, paramErrors.BadPixelSizeField)
	r := base.WithCount(2)
	if base.N != 0 || r.N != 2 || r.Err != paramErrors.BadPixelSizeField {
		t.Errorf("WithCount changed the wrong thing: %+v %+v", base, r)
	}

	v, err := r.Consume(scannerFor("( 463.3 926.6 )"))
	if err != nil || len(v.Words) != 2 {
		t.Errorf("got %v, %v", v, err)
	}
}

func Example_conversions() {
	f, err := Floats([]string{"6371007.181", "-1e3", "0"}, paramErrors.BadProjectionParamsField)
	fmt.Println(f, err)

	i, err := Ints([]string{"2400", "1200.0"}, paramErrors.BadNLinesField)
	fmt.Println(i, err)

	_, err = Ints([]string{"2400", "12x"}, paramErrors.BadNLinesField)
	fmt.Println(err)

	pt, err := ToPoint(Value{Words: []string{"49.5", "-125"}}, paramErrors.BadULCornerLatLonField)
	fmt.Println(pt, err)

	_, err = Float("abc", paramErrors.BadMinValueField)
	fmt.Println(paramErrors.KindOf(err).Name())

	// Output:
	// [6.371007181e+06 -1000 0] <nil>
	// [2400 1200] <nil>
	// Bad NLINES field: item 2: "12x" is not a number
	// [49.5 -125] <nil>
	// BadMinValueField
}
