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
	"path"
	"strings"
)

// GetExtension returns the lower-cased extension of name including the dot, or "" if none
func GetExtension(name string) string {
	return strings.ToLower(path.Ext(name))
}

// ReplaceExtension swaps the extension of name for ext (which includes the dot). Names with no
// extension get ext appended.
func ReplaceExtension(name string, ext string) string {
	return strings.TrimSuffix(name, path.Ext(name)) + ext
}

// NeedsQuotes - names with whitespace have to be quoted when written out
func NeedsQuotes(name string) bool {
	return strings.ContainsAny(name, " \t")
}
