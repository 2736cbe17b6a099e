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

package fileaccess

import (
	"fmt"
	"strings"
)

// Generic interface for reading/writing the parameter, header and mosaic files we deal with.
// Parameter files may live on local disk (command line tool) or in S3 (API/lambda), so
// everything that touches a file codes against this.

// Besides just needing a path, we may need a root directory or bucket at the start of a path.

type FileAccess interface {
	ListObjects(bucket string, prefix string) ([]string, error)

	ObjectExists(bucket string, path string) (bool, error)
	ReadObject(bucket string, path string) ([]byte, error)
	WriteObject(bucket string, path string, data []byte) error

	DeleteObject(bucket string, path string) error

	IsNotFoundError(err error) bool
}

// Is this string a valid name to use as an object name?
func IsValidObjectName(name string) bool {
	// Names should be non-zero length containing some non-crazy characters
	if len(name) <= 0 {
		return false
	}

	if strings.ContainsAny(name, "\"") {
		return false
	}

	return true
}

func IsS3Url(url string) bool {
	return strings.HasPrefix(url, "s3://")
}

// SplitS3Url - returns bucket and path from s3://bucket/path
func SplitS3Url(url string) (string, string, error) {
	trimmedUrl := strings.TrimPrefix(url, "s3://")
	if trimmedUrl == url {
		return "", "", fmt.Errorf("SplitS3Url parameter was not a valid S3 url: %v", url)
	}

	// Get the bit before the first slash, that's the bucket
	slashPos := strings.Index(trimmedUrl, "/")
	if slashPos <= 0 || slashPos == len(trimmedUrl)-1 {
		return "", "", fmt.Errorf("SplitS3Url failed to get bucket and path from S3 url: %v", url)
	}

	return trimmedUrl[0:slashPos], trimmedUrl[slashPos+1:], nil
}
