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

// Lambda triggered by parameter files landing in S3 (directly or via SQS). Each .prm file is
// validated, its resample header written to the output bucket and a job record saved.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/getsentry/sentry-go"
	"github.com/lpdaac/mrtparams/api/config"
	"github.com/lpdaac/mrtparams/api/paramservice"
	"github.com/lpdaac/mrtparams/api/services"
	"github.com/lpdaac/mrtparams/core/awsutil"
	"github.com/lpdaac/mrtparams/core/jobStore"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/lpdaac/mrtparams/core/utils"
)

const paramFileExtension = ".prm"

// Set up on cold start
var svcs services.APIServices

func HandleRequest(ctx context.Context, event awsutil.Event) (string, error) {
	defer sentry.Flush(2 * time.Second)

	summary, err := handleEvent(ctx, &svcs, event)
	if err != nil {
		sentry.CaptureException(err)
	}
	return summary, err
}

func handleEvent(ctx context.Context, svcs *services.APIServices, event awsutil.Event) (string, error) {
	objects, err := event.Objects()
	if err != nil {
		return "", err
	}

	valid, failed, skipped := 0, 0, 0
	for _, obj := range objects {
		if utils.GetExtension(obj.Key) != paramFileExtension {
			svcs.Log.Infof("Ignoring s3://%v/%v, not a parameter file", obj.Bucket, obj.Key)
			skipped++
			continue
		}

		rec, err := paramservice.ProcessStoredParamFile(ctx, forBucket(svcs, obj.Bucket), obj.Key)
		if err != nil {
			return "", err
		}

		if rec.Status == jobStore.StatusValid {
			valid++
		} else {
			failed++
		}
	}

	return fmt.Sprintf("Processed %v parameter files: %v valid, %v failed, %v ignored", valid+failed, valid, failed, skipped), nil
}

// forBucket reads parameter files from the bucket the event came from, which may not be the
// configured one if several buckets notify the same lambda
func forBucket(svcs *services.APIServices, bucket string) *services.APIServices {
	if bucket == svcs.Config.ParamsBucket {
		return svcs
	}

	result := *svcs
	reader := *svcs.Reader
	reader.Root = bucket
	result.Reader = &reader
	result.Config.ParamsBucket = bucket
	return &result
}

func main() {
	cfg, _, err := config.Init("prm-validator", os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}

	level, err := logger.GetLogLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	iLog := logger.NewStdOutLogger(level)

	svcs, err = services.InitAPIServices(context.Background(), cfg, iLog)
	if err != nil {
		log.Fatalf("Failed to initialise services: %v", err)
	}

	lambda.Start(HandleRequest)
}
