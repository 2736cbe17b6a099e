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

package mongoDBConnection

import (
	"context"
	"os"

	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultLocalURI = "mongodb://localhost"

func localMongoURI() string {
	if uri, set := os.LookupEnv("LOCAL_MONGO_URI"); set {
		return uri
	}
	return defaultLocalURI
}

// Assumes local mongo running in docker, eg:
// docker run -d --name mongo-on-docker -p 27017:27017 mongo
func connectToLocalMongoDB(ctx context.Context, log logger.ILogger) (*mongo.Client, error) {
	uri := localMongoURI()
	log.Infof("Connecting to local mongo db: %v", uri)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetMonitor(makeMongoCommandMonitor(log)).SetDirect(true))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create new local mongo DB connection")
	}

	if err := ping(ctx, client); err != nil {
		return nil, errors.Wrap(err, "Local mongo DB did not respond to ping")
	}

	log.Infof("Successfully connected to local mongo db!")
	return client, nil
}
