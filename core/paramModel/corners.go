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

type Corner int

const (
	UL Corner = iota
	UR
	LL
	LR
)

const NumCorners = 4

var cornerNames = [NumCorners]string{"UL", "UR", "LL", "LR"}

func (c Corner) String() string {
	if c < 0 || int(c) >= NumCorners {
		return ""
	}
	return cornerNames[c]
}

// Corners lists all corners in file order
var Corners = [NumCorners]Corner{UL, UR, LL, LR}

// Point is a 2 component coordinate: (lat, lon), (row, col) or (x, y) depending on the family
// it belongs to
type Point [2]float64

// CornerSet holds the four corner points of one coordinate family. A corner that was never
// supplied is absent (nil), which is what the writers check to decide whether to emit it.
type CornerSet struct {
	pts [NumCorners]*Point
}

func (cs *CornerSet) Set(c Corner, p Point) {
	v := p
	cs.pts[c] = &v
}

func (cs *CornerSet) Get(c Corner) (Point, bool) {
	if cs.pts[c] == nil {
		return Point{}, false
	}
	return *cs.pts[c], true
}

func (cs *CornerSet) Has(c Corner) bool {
	return cs.pts[c] != nil
}

func (cs *CornerSet) Clear(c Corner) {
	cs.pts[c] = nil
}

// Count returns how many corners are present
func (cs *CornerSet) Count() int {
	n := 0
	for _, p := range cs.pts {
		if p != nil {
			n++
		}
	}
	return n
}

// CopyFrom replaces this set with a copy of other
func (cs *CornerSet) CopyFrom(other CornerSet) {
	for c := range cs.pts {
		cs.Clear(Corner(c))
		if other.pts[c] != nil {
			cs.Set(Corner(c), *other.pts[c])
		}
	}
}
