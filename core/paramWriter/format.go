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

// Writes a resolved paramModel.Params back out, either as the header the resampler reads or as a
// parameter file that can be submitted again as a new job.
package paramWriter

import (
	"strconv"
	"strings"
)

// FloatStyle picks how floating point values are printed. Both print full precision, they only
// differ on whole numbers.
type FloatStyle int

const (
	// KeepDecimal always prints a decimal digit: 0.0, 6378137.0
	KeepDecimal FloatStyle = iota

	// TrimTrailingZero drops a trailing .0: 0, 6378137
	TrimTrailingZero
)

func (s FloatStyle) String() string {
	if s == TrimTrailingZero {
		return "TrimTrailingZero"
	}
	return "KeepDecimal"
}

// ParseFloatStyle reads a style name as given in config or on the command line
func ParseFloatStyle(name string) (FloatStyle, bool) {
	switch strings.ToLower(name) {
	case "keepdecimal", "keep":
		return KeepDecimal, true
	case "trimtrailingzero", "trim":
		return TrimTrailingZero, true
	}
	return KeepDecimal, false
}

// FormatFloat prints v in the given style
func FormatFloat(v float64, style FloatStyle) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if style == KeepDecimal && !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

func formatFloats(vals []float64, style FloatStyle) string {
	parts := make([]string, len(vals))
	for c, v := range vals {
		parts[c] = FormatFloat(v, style)
	}
	return strings.Join(parts, " ")
}

func formatInts(vals []int) string {
	parts := make([]string, len(vals))
	for c, v := range vals {
		parts[c] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func formatList(items string) string {
	return "( " + items + " )"
}

// Projection coefficients go 3 to a line
func writeCoefficients(sb *strings.Builder, key string, vals []float64, style FloatStyle) {
	sb.WriteString(key + " = (")
	for c, v := range vals {
		if c%3 == 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(" " + FormatFloat(v, style))
	}
	sb.WriteString(" )\n")
}
