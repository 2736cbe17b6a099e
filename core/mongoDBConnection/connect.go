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

// Connects to the Mongo DB that job records are kept in, either locally (no auth) or remotely with
// credentials from AWS Secrets Manager
package mongoDBConnection

import (
	"context"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const DBName = "mrt-params"

func Connect(
	ctx context.Context,
	sess *session.Session, // Can be nil for local connection
	mongoSecret string, // empty for local connection
	iLog logger.ILogger,
) (*mongo.Client, error) {
	iLog = logger.OrNull(iLog)

	// If the secret is blank, assume we're connecting to a local DB with no auth
	if len(mongoSecret) <= 0 {
		return connectToLocalMongoDB(ctx, iLog)
	}

	info, err := getMongoConnectionInfoFromSecretCache(sess, mongoSecret)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read mongo secret %q from secrets cache", mongoSecret)
	}

	return connectToRemoteMongoDB(ctx, info, iLog)
}

// GetDatabaseName - each environment gets its own DB
func GetDatabaseName(dbName string, envName string) string {
	if len(envName) <= 0 {
		return dbName
	}
	return dbName + "-" + envName
}

func ping(ctx context.Context, client *mongo.Client) error {
	var result bson.M
	return client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Decode(&result)
}
