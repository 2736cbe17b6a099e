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

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gorilla/mux"
)

// printRoutes lists every registered route on startup
func printRoutes(router *mux.Router) {
	routes := []string{}
	longestPath := 0

	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"ANY"}
		}

		// Store it so it's sortable but we can split it later
		routes = append(routes, fmt.Sprintf("%v|%v", path, strings.Join(methods, ",")))
		if len(path) > longestPath {
			longestPath = len(path)
		}
		return nil
	})
	sort.Strings(routes)

	fmt.Println("Routes:")
	fmtString := fmt.Sprintf("%%-7v%%-%vv\n", longestPath)
	for _, route := range routes {
		bits := strings.Split(route, "|")
		fmt.Printf(fmtString, bits[1], bits[0])
	}
}
