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
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/lpdaac/mrtparams/api/config"
	"github.com/lpdaac/mrtparams/api/paramservice"
	"github.com/lpdaac/mrtparams/api/services"
	"github.com/lpdaac/mrtparams/core/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()

	level, err := logger.GetLogLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	iLog := logger.NewStdOutLogger(level)

	svcs, err := services.InitAPIServices(context.Background(), cfg, iLog)
	if err != nil {
		log.Fatalf("Failed to initialise services: %v", err)
	}

	// This is for prometheus
	if len(cfg.MetricsAddress) > 0 {
		go func() {
			metrics := http.NewServeMux()
			metrics.Handle("/metrics", promhttp.Handler())
			iLog.Errorf("Metrics server stopped: %v", http.ListenAndServe(cfg.MetricsAddress, metrics))
		}()
	}

	router := paramservice.MakeRouter(&svcs)
	printRoutes(router)

	iLog.Infof("Parameter file API version \"%v\" (%v) listening on %v", services.ApiVersion, services.GitHash, cfg.ListenAddress)

	log.Fatal(
		http.ListenAndServe(cfg.ListenAddress,
			handlers.CORS(
				handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
				handlers.AllowedMethods([]string{"GET", "POST", "HEAD", "OPTIONS"}),
				handlers.AllowedOrigins(cfg.AllowedOrigins))(router)))
}

func loadConfig() config.Config {
	cfg, _, err := config.Init("prm-api", os.Args[1:])
	if err != nil {
		log.Fatalf("Something went wrong with API config. Error: %v\n", err)
	}

	// Show the config
	cfgJSON, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		log.Fatalf("Error trying to display config\n")
	}
	log.Println(string(cfgJSON))
	return cfg
}
