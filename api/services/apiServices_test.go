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

package services

import (
	"context"
	"fmt"

	"github.com/lpdaac/mrtparams/api/config"
	"github.com/lpdaac/mrtparams/core/fileaccess"
	"github.com/lpdaac/mrtparams/core/jobStore"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/paramFile"
)

func Example_makeAPIServices() {
	cfg := config.Config{
		ParamsBucket:     "params",
		InputBucket:      "inputs",
		HeaderFloatStyle: "KeepDecimal",
		ParamFloatStyle:  "trim",
	}

	svcs, err := MakeAPIServices(cfg, &fileaccess.FSAccess{}, jobStore.NewMemStore(), nil)
	fmt.Println(err)
	fmt.Println(svcs.HeaderStyle, svcs.ParamOptions.Style, svcs.ParamOptions.Root)
	fmt.Println(svcs.Reader.Root, svcs.Reader.Mosaic != nil)

	headers := svcs.Reader.Headers.(*paramFile.FileHeaderLoader)
	fmt.Println(headers.Root, headers.Converter == nil)

	// Converter only set up if configured
	cfg.ConverterPath = "hdf2hdr"
	cfg.ConverterTimeoutSec = 30
	svcs, _ = MakeAPIServices(cfg, &fileaccess.FSAccess{}, jobStore.NewMemStore(), nil)
	headers = svcs.Reader.Headers.(*paramFile.FileHeaderLoader)
	fmt.Println(headers.Converter != nil)

	cfg.ParamFloatStyle = "Rounded"
	_, err = MakeAPIServices(cfg, &fileaccess.FSAccess{}, jobStore.NewMemStore(), nil)
	fmt.Println(err)

	// Output:
	// <nil>
	// KeepDecimal TrimTrailingZero inputs
	// params true
	// inputs true
	// true
	// unknown ParamFloatStyle: Rounded
}

func Example_initAPIServicesLocal() {
	cfg := config.Config{
		LocalStorage:     true,
		HeaderFloatStyle: "KeepDecimal",
		ParamFloatStyle:  "TrimTrailingZero",
	}

	log := &logger.MemLogger{}
	svcs, err := InitAPIServices(context.Background(), cfg, log)
	fmt.Println(err)

	_, isLocal := svcs.FS.(*fileaccess.FSAccess)
	_, isMem := svcs.Jobs.(*jobStore.MemStore)
	fmt.Println(isLocal, isMem, len(log.Lines()))

	// Output:
	// <nil>
	// true true 0
}
