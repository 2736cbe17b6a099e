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

// Configuration as read from a JSON file, with any field overridable from the environment
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/lpdaac/mrtparams/core/headerConverter"
	"github.com/pkg/errors"
)

const EnvPrefix = "MRT_CONFIG_"

// Config combines env vars and config JSON values
type Config struct {
	EnvironmentName string

	LogLevel string // DEBUG, INFO or ERROR

	// External tool turning .hdf inputs into .hdr headers
	ConverterPath       string
	ConverterTimeoutSec int32
	WorkDir             string // Converted headers and mosaic descriptors go here

	// Buckets, or local root dirs if LocalStorage is set
	ParamsBucket string
	InputBucket  string
	OutputBucket string
	LocalStorage bool

	// Lets parameter files name inputs outside InputBucket (absolute or ../ paths)
	AllowInputsOutsideRoot bool

	// Float formatting for the two writers, KeepDecimal or TrimTrailingZero
	HeaderFloatStyle string
	ParamFloatStyle  string

	// Mongo Connection, empty for a local DB
	MongoSecret string
	UseMongo    bool

	SentryEndpoint string

	ListenAddress  string
	MetricsAddress string
	AllowedOrigins []string
}

func defaultConfig() Config {
	return Config{
		EnvironmentName:     "local",
		LogLevel:            "INFO",
		ConverterTimeoutSec: int32(headerConverter.DefaultTimeout.Seconds()),
		HeaderFloatStyle:    "KeepDecimal",
		ParamFloatStyle:     "TrimTrailingZero",
		ListenAddress:       ":8080",
		MetricsAddress:      ":2112",
		AllowedOrigins:      []string{"*"},
	}
}

func NewConfigFromFile(configFilePath string) (Config, error) {
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		return defaultConfig(), errors.Wrapf(err, "could not read config file at %s", configFilePath)
	}
	return NewConfigFromJSON(data)
}

// NewConfigFromJSON starts from the defaults, applies the JSON, then any environment overrides
func NewConfigFromJSON(configJSON []byte) (Config, error) {
	cfg := defaultConfig()

	if len(configJSON) > 0 {
		if err := json.Unmarshal(configJSON, &cfg); err != nil {
			return cfg, errors.Wrap(err, "failed to parse config")
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Override Config with any values explicitly set in Env Vars (MRT_CONFIG_*)
// NOTE: For []string slices, pass in a comma-separated string, eg:
// export MRT_CONFIG_AllowedOrigins="https://a.example.com,https://b.example.com"
func applyEnvOverrides(cfg *Config) error {
	reflection := reflect.ValueOf(cfg).Elem()
	for i := 0; i < reflection.NumField(); i++ {
		fieldName := reflection.Type().Field(i).Name
		field := reflection.Field(i)

		envName := EnvPrefix + fieldName
		val, present := os.LookupEnv(envName)
		if !present {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(val)
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				field.Set(reflect.ValueOf(strings.Split(val, ",")))
			}
		case reflect.Int32:
			i, err := strconv.ParseInt(val, 10, 32)
			if err != nil {
				return errors.Errorf("could not read %v=%v as an integer", envName, val)
			}
			field.SetInt(i)
		case reflect.Bool:
			b, err := strconv.ParseBool(val)
			if err != nil {
				return errors.Errorf("could not read %v=%v as a boolean", envName, val)
			}
			field.SetBool(b)
		}
	}
	return nil
}

// Init reads the config for a command: -config names the JSON file, which is optional, as
// everything can come from the environment
func Init(name string, args []string) (Config, *flag.FlagSet, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	configFilePath := flags.String("config", "", "Path to a JSON config file")
	logLevel := flags.String("loglevel", "", "Overrides the configured log level")

	if err := flags.Parse(args); err != nil {
		return defaultConfig(), flags, err
	}

	var cfg Config
	var err error
	if len(*configFilePath) > 0 {
		fmt.Printf("Loading config from: %s\n", *configFilePath)
		cfg, err = NewConfigFromFile(*configFilePath)
	} else {
		cfg, err = NewConfigFromJSON(nil)
	}
	if err != nil {
		return cfg, flags, err
	}

	if len(*logLevel) > 0 {
		cfg.LogLevel = *logLevel
	}
	if cfg.ConverterTimeoutSec <= 0 {
		cfg.ConverterTimeoutSec = defaultConfig().ConverterTimeoutSec
	}

	return cfg, flags, nil
}
