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

package utils

import (
	"fmt"
	"strings"
	"testing"
)

func Example_getMapKeys() {
	fmt.Println(GetMapKeys(map[string]int{"NBANDS": 1, "DATUM": 2, "UTM_ZONE": 3}))
	fmt.Println(GetMapKeys(map[int]bool{3: true, 1: false}))

	// Output:
	// [DATUM NBANDS UTM_ZONE]
	// [1 3]
}

func Example_inRange() {
	fmt.Println(InRange(0, 1, 60), InRange(1, 1, 60), InRange(60, 1, 60), InRange(61, 1, 60))
	fmt.Println(InRange(-90.5, -90.0, 90.0), InRange(45.2, -90.0, 90.0))
	fmt.Println(Min(3, 2), Max(-1.5, 2.5), Min("b", "a"))

	// Output:
	// false true true false
	// false true
	// 2 2.5 a
}

func Example_extensions() {
	fmt.Printf("%q %q %q\n", GetExtension("tile.HDF"), GetExtension("tile"), GetExtension("dir.v2/tile"))
	fmt.Println(ReplaceExtension("out.tif", ".hdr"))
	fmt.Println(ReplaceExtension("out", ".hdf"))
	fmt.Println(ReplaceExtension("/data/in.dat", ".hdr"))
	fmt.Println(NeedsQuotes("my file.hdf"), NeedsQuotes("file.hdf"))

	// Output:
	// ".hdf" "" ""
	// out.hdr
	// out.hdf
	// /data/in.hdr
	// true false
}

func Example_countTrue() {
	fmt.Println(CountTrue([]bool{true, false, true}), CountTrue(nil))
	fmt.Println(ItemInSlice("b", []string{"a", "b"}), ItemInSlice(4, []int{1, 2}))

	// Output:
	// 2 0
	// true false
}

func Test_RandString(t *testing.T) {
	s := RandStringBytesMaskImpr(12)
	if len(s) != 12 {
		t.Errorf("expected 12 chars, got %v", len(s))
	}
	for _, ch := range s {
		if !strings.ContainsRune(RandomStringChars, ch) {
			t.Errorf("unexpected char %q", ch)
		}
	}
}
