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
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/getsentry/sentry-go"
	"github.com/lpdaac/mrtparams/api/config"
	"github.com/lpdaac/mrtparams/core/awsutil"
	"github.com/lpdaac/mrtparams/core/fileaccess"
	"github.com/lpdaac/mrtparams/core/headerConverter"
	"github.com/lpdaac/mrtparams/core/idgen"
	"github.com/lpdaac/mrtparams/core/jobStore"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/mongoDBConnection"
	"github.com/lpdaac/mrtparams/core/mosaic"
	"github.com/lpdaac/mrtparams/core/paramFile"
	"github.com/lpdaac/mrtparams/core/paramWriter"
	"github.com/lpdaac/mrtparams/core/timestamper"
	"github.com/pkg/errors"
)

// NOTE: these 2 vars are set during compilation (see Makefile)
var ApiVersion string
var GitHash string

// Mosaic descriptors are written to this dir in the input bucket
const MosaicDir = "mosaics"

// This defines the services the HTTP handlers, the lambda and the command line tool share. Instead
// of using a bunch of global variables we pass around this services object, which also means tests
// can swap in mocks (MemStore, MockIDGenerator, MockTimeNowStamper, MockS3Client...)

// APIServices contains anything that reads/writes parameter files or job records
type APIServices struct {
	// Configuration read in on startup
	Config config.Config

	// Default logger
	Log logger.ILogger

	// Anything accessing files should use this. Buckets are root dirs if Config.LocalStorage is set
	FS fileaccess.FileAccess

	// Parses parameter files from Config.ParamsBucket, reading input headers from Config.InputBucket
	Reader *paramFile.Reader

	// Where job records go
	Jobs jobStore.Store

	// ID generator
	IDGen idgen.IDGenerator

	// Timestamp retriever - so can be mocked for unit tests
	TimeStamper timestamper.ITimeStamper

	// Writer settings
	HeaderStyle  paramWriter.FloatStyle
	ParamOptions paramWriter.ParamFileOptions
}

// MakeAPIServices wires up the parameter file reader and writers for the given file access and job
// store. Unknown float styles are an error, so typos in config don't silently change the output.
func MakeAPIServices(cfg config.Config, fs fileaccess.FileAccess, jobs jobStore.Store, log logger.ILogger) (APIServices, error) {
	log = logger.OrNull(log)

	headerStyle, ok := paramWriter.ParseFloatStyle(cfg.HeaderFloatStyle)
	if !ok {
		return APIServices{}, errors.Errorf("unknown HeaderFloatStyle: %v", cfg.HeaderFloatStyle)
	}
	paramStyle, ok := paramWriter.ParseFloatStyle(cfg.ParamFloatStyle)
	if !ok {
		return APIServices{}, errors.Errorf("unknown ParamFloatStyle: %v", cfg.ParamFloatStyle)
	}

	headers := &paramFile.FileHeaderLoader{
		FS:       fs,
		Root:     cfg.InputBucket,
		Confined: !cfg.AllowInputsOutsideRoot,
		Log:      log,
	}
	if len(cfg.ConverterPath) > 0 {
		headers.Converter = &headerConverter.ToolConverter{
			Command: cfg.ConverterPath,
			WorkDir: cfg.WorkDir,
			Timeout: time.Duration(cfg.ConverterTimeoutSec) * time.Second,
			Log:     log,
		}
	}

	reader := &paramFile.Reader{
		FS:      fs,
		Root:    cfg.ParamsBucket,
		Headers: headers,
		Mosaic: &mosaic.FileAssembler{
			FS:   fs,
			Root: cfg.InputBucket,
			Dir:  MosaicDir,
			Log:  log,
		},
		Log: log,
	}

	return APIServices{
		Config:      cfg,
		Log:         log,
		FS:          fs,
		Reader:      reader,
		Jobs:        jobs,
		IDGen:       &idgen.IDGen{},
		TimeStamper: &timestamper.UnixTimeNowStamper{},
		HeaderStyle: headerStyle,
		ParamOptions: paramWriter.ParamFileOptions{
			Style: paramStyle,
			FS:    fs,
			Root:  cfg.InputBucket,
			Log:   log,
		},
	}, nil
}

// InitAPIServices connects to everything the config names: S3 (unless LocalStorage), Mongo (if
// UseMongo) and Sentry (if SentryEndpoint is set)
func InitAPIServices(ctx context.Context, cfg config.Config, log logger.ILogger) (APIServices, error) {
	log = logger.OrNull(log)

	if len(cfg.SentryEndpoint) > 0 {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryEndpoint,
			Environment: cfg.EnvironmentName,
			Release:     ApiVersion,
		}); err != nil {
			log.Errorf("Sentry initialization failed: %v", err)
		}
	}

	var sess *session.Session
	var err error
	if !cfg.LocalStorage || len(cfg.MongoSecret) > 0 {
		sess, err = awsutil.GetSession()
		if err != nil {
			return APIServices{}, errors.Wrap(err, "Failed to create AWS session")
		}
	}

	var fs fileaccess.FileAccess
	if cfg.LocalStorage {
		fs = &fileaccess.FSAccess{}
	} else {
		s3svc, err := awsutil.GetS3(sess)
		if err != nil {
			return APIServices{}, errors.Wrap(err, "Failed to create AWS S3 service")
		}
		fs = fileaccess.MakeS3Access(s3svc)
	}

	var jobs jobStore.Store = jobStore.NewMemStore()
	if cfg.UseMongo {
		client, err := mongoDBConnection.Connect(ctx, sess, cfg.MongoSecret, log)
		if err != nil {
			return APIServices{}, err
		}
		dbName := mongoDBConnection.GetDatabaseName(mongoDBConnection.DBName, cfg.EnvironmentName)
		jobs = jobStore.NewMongoStore(client.Database(dbName), log)
		log.Infof("Job records stored in mongo DB %v", dbName)
	}

	return MakeAPIServices(cfg, fs, jobs, log)
}
