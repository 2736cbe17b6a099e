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

package errorwithstatus

import (
	"errors"
	"fmt"

	"github.com/lpdaac/mrtparams/core/paramErrors"
)

func Example_statusForKind() {
	for _, k := range []paramErrors.Kind{
		paramErrors.None,
		paramErrors.ParamFileOpen,
		paramErrors.ParamFileRead,
		paramErrors.OutputFileWrite,
		paramErrors.ExternalToolTimeout,
		paramErrors.MissingOutputFileName,
		paramErrors.GeneralError,
	} {
		fmt.Printf("%v: %v\n", k.Name(), StatusForKind(k))
	}

	// Output:
	// None: 200
	// ParamFileOpen: 404
	// ParamFileRead: 400
	// OutputFileWrite: 500
	// ExternalToolTimeout: 502
	// MissingOutputFileName: 400
	// GeneralError: 400
}

func Example_fromError() {
	se := FromError(paramErrors.New(paramErrors.MissingOutputFileName, "job.prm"))
	fmt.Println(se.Status(), se)

	se = FromError(fmt.Errorf("saving job: %w", paramErrors.Wrap(paramErrors.HeaderFileOpen, "a.hdr", errors.New("no such file"))))
	fmt.Println(se.Status())

	se = FromError(MakeNotFoundError("job 123"))
	fmt.Println(se.Status(), se)

	se = FromError(errors.New("mongo went away"))
	fmt.Println(se.Status(), se)

	// Output:
	// 400 Missing output file name: job.prm
	// 404
	// 404 job 123 not found
	// 500 mongo went away
}
