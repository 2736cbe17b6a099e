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
	"strconv"
	"strings"

	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramModel"
)

// Conversions from the words a rule read to typed values. Failures are reported with the field's
// error kind so the caller never sees a generic parse error.

func convertAll[T any](words []string, kind paramErrors.Kind, conv func(string) (T, error)) ([]T, error) {
	result := make([]T, len(words))
	for c, w := range words {
		v, err := conv(w)
		if err != nil {
			return nil, paramErrors.Newf(kind, "item %v: %q is not a number", c+1, w)
		}
		result[c] = v
	}
	return result, nil
}

func parseFloat(w string) (float64, error) {
	return strconv.ParseFloat(w, 64)
}

// Integers are sometimes written with a trailing .0 by other tools, accept that
func parseInt(w string) (int, error) {
	w = strings.TrimSuffix(w, ".0")
	i, err := strconv.ParseInt(w, 10, 64)
	return int(i), err
}

func Floats(words []string, kind paramErrors.Kind) ([]float64, error) {
	return convertAll(words, kind, parseFloat)
}

func Ints(words []string, kind paramErrors.Kind) ([]int, error) {
	return convertAll(words, kind, parseInt)
}

func Float(word string, kind paramErrors.Kind) (float64, error) {
	v, err := Floats([]string{word}, kind)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func Int(word string, kind paramErrors.Kind) (int, error) {
	v, err := Ints([]string{word}, kind)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// ToPoint converts the two words of a Point rule
func ToPoint(v Value, kind paramErrors.Kind) (paramModel.Point, error) {
	if len(v.Words) != 2 {
		return paramModel.Point{}, paramErrors.Newf(kind, "expected 2 values, got %v", len(v.Words))
	}
	f, err := Floats(v.Words, kind)
	if err != nil {
		return paramModel.Point{}, err
	}
	return paramModel.Point{f[0], f[1]}, nil
}
