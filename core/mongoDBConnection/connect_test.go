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
	"fmt"
	"os"
)

func Example_getDatabaseName() {
	fmt.Println(GetDatabaseName(DBName, "prod"))
	fmt.Println(GetDatabaseName(DBName, ""))

	// Output:
	// mrt-params-prod
	// mrt-params
}

func Example_parseConnectionInfo() {
	info, err := parseConnectionInfo("mrt-db", `{"host": "docdb.example.com", "port": "27017", "username": "mrt", "password": "pw"}`)
	fmt.Println(err, info.Username, remoteURI(info))

	info.Host = "docdb.example.com:27018"
	fmt.Println(remoteURI(info))

	_, err = parseConnectionInfo("mrt-db", `{"username": "mrt"}`)
	fmt.Println(err)

	_, err = parseConnectionInfo("mrt-db", `not json`)
	fmt.Println(err != nil)

	// Output:
	// <nil> mrt mongodb://docdb.example.com:27017/
	// mongodb://docdb.example.com:27018/
	// secret mrt-db has no host
	// true
}

func Example_localMongoURI() {
	os.Unsetenv("LOCAL_MONGO_URI")
	fmt.Println(localMongoURI())

	os.Setenv("LOCAL_MONGO_URI", "mongodb://mongo:27017")
	fmt.Println(localMongoURI())
	os.Unsetenv("LOCAL_MONGO_URI")

	// Output:
	// mongodb://localhost
	// mongodb://mongo:27017
}
