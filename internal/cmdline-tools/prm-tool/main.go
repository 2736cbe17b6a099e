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

// Reads a resampling parameter file, reports whether it's valid and optionally writes the resample
// header and/or the resubmit form of it. Paths may be local or s3://bucket/key URLs, "-" writes to
// stdout. Exits with the legacy numeric code of the error kind on failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/lpdaac/mrtparams/api/config"
	"github.com/lpdaac/mrtparams/api/services"
	"github.com/lpdaac/mrtparams/core/awsutil"
	"github.com/lpdaac/mrtparams/core/fileaccess"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/paramWriter"
	"github.com/pkg/errors"
)

const usageExitCode = 2

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type tool struct {
	cfg    config.Config
	log    logger.ILogger
	stdout io.Writer

	s3 fileaccess.FileAccess
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	flags := flag.NewFlagSet("prm-tool", flag.ContinueOnError)
	flags.SetOutput(stderr)

	configPath := flags.String("config", "", "Path to a JSON config file")
	logLevel := flags.String("loglevel", "", "Overrides the configured log level")
	hdrOut := flags.String("hdr", "", "Where to write the resample header")
	prmOut := flags.String("prm", "", "Where to write the resubmit form of the parameter file")
	hdrStyle := flags.String("hdrstyle", "", "Float style for the resample header: keep or trim")
	prmStyle := flags.String("prmstyle", "", "Float style for the resubmit form: keep or trim")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: prm-tool [flags] <parameter file>\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return usageExitCode
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return usageExitCode
	}

	var cfg config.Config
	var err error
	if len(*configPath) > 0 {
		cfg, err = config.NewConfigFromFile(*configPath)
	} else {
		cfg, err = config.NewConfigFromJSON(nil)
	}
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return usageExitCode
	}

	if len(*logLevel) > 0 {
		cfg.LogLevel = *logLevel
	}
	if len(*hdrStyle) > 0 {
		cfg.HeaderFloatStyle = *hdrStyle
	}
	if len(*prmStyle) > 0 {
		cfg.ParamFloatStyle = *prmStyle
	}

	level, err := logger.GetLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return usageExitCode
	}
	stdErrLog := logger.NewStdErrLogger(level)

	if len(cfg.SentryEndpoint) > 0 {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryEndpoint, Environment: cfg.EnvironmentName, Release: services.ApiVersion}); err != nil {
			stdErrLog.Errorf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	t := &tool{cfg: cfg, log: stdErrLog, stdout: stdout}
	err = t.process(context.Background(), flags.Arg(0), *hdrOut, *prmOut)
	if err != nil {
		stdErrLog.Errorf("%v", err)
		sentry.CaptureException(err)
		return paramErrors.ExitCode(err)
	}
	return 0
}

// locate splits a path or S3 URL into file access, bucket/root and path
func (t *tool) locate(path string) (fileaccess.FileAccess, string, string, error) {
	if !fileaccess.IsS3Url(path) {
		return &fileaccess.FSAccess{}, "", path, nil
	}

	bucket, key, err := fileaccess.SplitS3Url(path)
	if err != nil {
		return nil, "", "", err
	}

	if t.s3 == nil {
		sess, err := awsutil.GetSession()
		if err != nil {
			return nil, "", "", errors.Wrap(err, "Failed to create AWS session")
		}
		s3svc, err := awsutil.GetS3(sess)
		if err != nil {
			return nil, "", "", errors.Wrap(err, "Failed to create AWS S3 service")
		}
		t.s3 = fileaccess.MakeS3Access(s3svc)
	}
	return t.s3, bucket, key, nil
}

func (t *tool) process(ctx context.Context, paramPath string, hdrOut string, prmOut string) error {
	fs, root, path, err := t.locate(paramPath)
	if err != nil {
		return paramErrors.Wrap(paramErrors.ParamFileOpen, paramPath, err)
	}

	// Inputs are read from the parameter file's bucket unless an input bucket is configured. Local
	// input paths are relative to the working dir.
	cfg := t.cfg
	cfg.ParamsBucket = root
	if len(cfg.InputBucket) <= 0 {
		cfg.InputBucket = root
	}
	cfg.AllowInputsOutsideRoot = true

	svcs, err := services.MakeAPIServices(cfg, fs, nil, t.log)
	if err != nil {
		return err
	}

	p, err := svcs.Reader.ReadParamFile(ctx, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(t.stdout, "%v: valid, %v of %v bands selected, output %v (%v)\n", paramPath, p.SelectedBandCount(), p.NBands, paramWriter.OutputFileName(p), p.OutputProjection)

	if len(hdrOut) > 0 {
		err = t.write(hdrOut, func(w io.Writer) error {
			return paramWriter.WriteResampleHeader(w, p, svcs.HeaderStyle)
		}, func(outFS fileaccess.FileAccess, outRoot string, outPath string) error {
			return paramWriter.SaveResampleHeader(outFS, outRoot, outPath, p, svcs.HeaderStyle, t.log)
		})
		if err != nil {
			return err
		}
	}

	if len(prmOut) > 0 {
		err = t.write(prmOut, func(w io.Writer) error {
			return paramWriter.WriteParamFile(w, p, svcs.ParamOptions)
		}, func(outFS fileaccess.FileAccess, outRoot string, outPath string) error {
			return paramWriter.SaveParamFile(outFS, outRoot, outPath, p, svcs.ParamOptions)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// write sends output to stdout for "-", otherwise saves it to the local path or S3 URL
func (t *tool) write(
	dest string,
	toStream func(w io.Writer) error,
	toFile func(fs fileaccess.FileAccess, root string, path string) error,
) error {
	if dest == "-" {
		return toStream(t.stdout)
	}

	fs, root, path, err := t.locate(dest)
	if err != nil {
		return paramErrors.Wrap(paramErrors.OutputFileOpen, dest, err)
	}
	if _, isLocal := fs.(*fileaccess.FSAccess); isLocal {
		path = filepath.Clean(path)
	}
	return toFile(fs, root, path)
}
