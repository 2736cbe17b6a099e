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
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const caBundlePath = "./rds-combined-ca-bundle.pem"
const connectTimeout = 10 * time.Second

func remoteURI(info MongoConnectionInfo) string {
	host := info.Host
	if len(info.Port) > 0 && !strings.Contains(host, ":") {
		host += ":" + info.Port
	}
	return fmt.Sprintf("mongodb://%s/", host)
}

func connectToRemoteMongoDB(ctx context.Context, info MongoConnectionInfo, iLog logger.ILogger) (*mongo.Client, error) {
	iLog.Infof("Connecting to remote mongo db: %v, user: %v", info.Host, info.Username)

	tlsConfig, err := getCustomTLSConfig(caBundlePath)
	if err != nil {
		return nil, errors.Wrap(err, "Failed getting TLS configuration")
	}

	if strings.Contains(info.Host, "localhost") {
		tlsConfig.InsecureSkipVerify = true
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx,
		options.Client().
			ApplyURI(remoteURI(info)).
			SetMonitor(makeMongoCommandMonitor(iLog)).
			SetTLSConfig(tlsConfig).
			SetRetryWrites(false).
			SetDirect(true).
			SetAuth(
				options.Credential{
					Username:    info.Username,
					Password:    info.Password,
					PasswordSet: true,
					AuthSource:  "admin",
				}))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create new mongo DB connection")
	}

	if err := ping(ctx, client); err != nil {
		return nil, errors.Wrap(err, "Remote mongo DB did not respond to ping")
	}

	iLog.Infof("Successfully connected to remote mongo db!")
	return client, nil
}

func getCustomTLSConfig(caFile string) (*tls.Config, error) {
	tlsConfig := new(tls.Config)
	certs, err := os.ReadFile(caFile)
	if err != nil {
		return tlsConfig, err
	}

	tlsConfig.RootCAs = x509.NewCertPool()
	if !tlsConfig.RootCAs.AppendCertsFromPEM(certs) {
		return tlsConfig, errors.New("Failed parsing pem file")
	}

	return tlsConfig, nil
}

func makeMongoCommandMonitor(log logger.ILogger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			log.Debugf("Mongo request: %v %v", evt.CommandName, evt.Command)
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			log.Debugf("Mongo success: %v in %v", evt.CommandName, evt.Duration)
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			log.Errorf("Mongo FAIL: %v: %v", evt.CommandName, evt.Failure)
		},
	}
}
