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

// Runs the external tool that turns a native binary (HDF) product into a text header file
// our parser can read. The tool is treated as opaque: we give it an input and an output path
// and check the output appeared.
package headerConverter

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/utils"
)

// DefaultTimeout - how long a conversion may run if the config doesn't say
const DefaultTimeout = 300 * time.Second

// Converter produces a header file for a binary input file, returning the path of the header.
// The caller owns the returned file and should delete it once read.
type Converter interface {
	Convert(ctx context.Context, binaryPath string) (string, error)
}

// ToolConverter runs Command as: Command <binaryPath> <headerPath>
type ToolConverter struct {
	Command string

	// Where converted headers are written. Empty means next to the input file
	WorkDir string

	// Zero means DefaultTimeout
	Timeout time.Duration

	Log logger.ILogger
}

func (c *ToolConverter) Convert(ctx context.Context, binaryPath string) (string, error) {
	jobLog := logger.OrNull(c.Log)

	toolPath, err := exec.LookPath(c.Command)
	if err != nil {
		return "", paramErrors.Wrap(paramErrors.ExternalToolMissing, c.Command, err)
	}

	outPath := c.headerPath(binaryPath)

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	jobLog.Debugf("exec.Command starting \"%v\", args: [%v]", toolPath, strings.Join([]string{binaryPath, outPath}, ","))
	startTime := time.Now()

	cmd := exec.CommandContext(runCtx, toolPath, binaryPath, outPath)
	cmd.WaitDelay = time.Second

	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			jobLog.Errorf("Header conversion of %v timed out after %v", binaryPath, timeout)
			return "", paramErrors.Wrap(paramErrors.ExternalToolTimeout, binaryPath, runCtx.Err())
		}

		jobLog.Errorf("Header conversion of %v failed: %v", binaryPath, err)
		jobLog.Infof("%s", out)
		return "", paramErrors.Wrap(paramErrors.ExternalToolFailed, binaryPath, err)
	}

	jobLog.Infof("Header conversion of %v took %v", binaryPath, time.Since(startTime).Round(time.Millisecond))

	if _, err := os.Stat(outPath); err != nil {
		return "", paramErrors.Wrap(paramErrors.ExternalToolOutputMissing, outPath, err)
	}

	return outPath, nil
}

// headerPath picks a unique name so concurrent conversions of the same file don't collide
func (c *ToolConverter) headerPath(binaryPath string) string {
	dir := c.WorkDir
	if len(dir) <= 0 {
		dir = filepath.Dir(binaryPath)
	}
	base := strings.TrimSuffix(filepath.Base(binaryPath), filepath.Ext(binaryPath))
	return filepath.Join(dir, base+"-"+utils.RandStringBytesMaskImpr(8)+".hdr")
}
