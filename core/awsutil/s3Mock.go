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

package awsutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// MockS3Client - mock S3 client for unit tests. Don't forget to call FinishTest() at the end of your test to check
// that all calls to S3 were made, and there were no unexpected calls!
// Requests must arrive in the order they're listed in the Exp* slices. A nil queued output
// makes the call return a NoSuchKey error.
type MockS3Client struct {
	mutex sync.Mutex

	s3iface.S3API

	// Expected requests
	ExpListObjectsV2Input []s3.ListObjectsV2Input
	ExpHeadObjectInput    []s3.HeadObjectInput
	ExpGetObjectInput     []s3.GetObjectInput
	ExpPutObjectInput     []s3.PutObjectInput
	ExpDeleteObjectInput  []s3.DeleteObjectInput

	// Responses replayed as each request comes in
	QueuedListObjectsV2Output []*s3.ListObjectsV2Output
	QueuedHeadObjectOutput    []*s3.HeadObjectOutput
	QueuedGetObjectOutput     []*s3.GetObjectOutput
	QueuedPutObjectOutput     []*s3.PutObjectOutput
	QueuedDeleteObjectOutput  []*s3.DeleteObjectOutput
}

// NOTE: This function MUST be called at the end of a unit test/example test. Use defer when declaring MockS3Client!
func (m *MockS3Client) FinishTest() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	err := m.getFinishTestResult()

	// If we found something unexpected, print an error so any example tests get this in their output
	// Unit tests which aren't example based will still get our return value
	if err != nil {
		fmt.Println(err)
	}

	return err
}

func (m *MockS3Client) getFinishTestResult() error {
	// Expecting no inputs left
	if len(m.ExpListObjectsV2Input) > 0 {
		return errors.New("Test expected more ListObjectsV2 calls to func")
	}
	if len(m.ExpHeadObjectInput) > 0 {
		return errors.New("Test expected more HeadObject calls to func")
	}
	if len(m.ExpGetObjectInput) > 0 {
		return errors.New("Test expected more GetObject calls to func")
	}
	if len(m.ExpPutObjectInput) > 0 {
		return errors.New("Test expected more PutObject calls to func")
	}
	if len(m.ExpDeleteObjectInput) > 0 {
		return errors.New("Test expected more DeleteObject calls to func")
	}

	// Expecting nothing left to output
	if len(m.QueuedListObjectsV2Output) > 0 {
		return errors.New("Remaining output ListObjectsV2 for func")
	}
	if len(m.QueuedHeadObjectOutput) > 0 {
		return errors.New("Remaining output HeadObject for func")
	}
	if len(m.QueuedGetObjectOutput) > 0 {
		return errors.New("Remaining output GetObject for func")
	}
	if len(m.QueuedPutObjectOutput) > 0 {
		return errors.New("Remaining output PutObject for func")
	}
	if len(m.QueuedDeleteObjectOutput) > 0 {
		return errors.New("Remaining output DeleteObject for func")
	}

	return nil
}

const ErrNoMoreInputsExpected = "No more inputs expected for "

// popCall checks the next expected request against the one we got, and returns the next queued output
func popCall[I fmt.Stringer, O any](name string, input I, expected *[]I, outputs *[]O) (O, error) {
	var none O
	if len(*expected) <= 0 {
		return none, errors.New(ErrNoMoreInputsExpected + name)
	}
	if len(*outputs) <= 0 {
		return none, errors.New("No more outputs queued for " + name)
	}

	exp := (*expected)[0]
	if input.String() != exp.String() {
		return none, fmt.Errorf("%v request not as expected. Received:\n%v\nExpected:\n%v", name, input.String(), exp.String())
	}

	out := (*outputs)[0]
	*expected = (*expected)[1:]
	*outputs = (*outputs)[1:]
	return out, nil
}

func notFound(name string) error {
	return awserr.New(s3.ErrCodeNoSuchKey, name+" found no such key", nil)
}

func (m *MockS3Client) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return popCall("ListObjectsV2", *input, &m.ExpListObjectsV2Input, &m.QueuedListObjectsV2Output)
}

func (m *MockS3Client) HeadObject(input *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	out, err := popCall("HeadObject", *input, &m.ExpHeadObjectInput, &m.QueuedHeadObjectOutput)
	if err == nil && out == nil {
		return nil, awserr.New("NotFound", "HeadObject found no such key", nil)
	}
	return out, err
}

func (m *MockS3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	out, err := popCall("GetObject", *input, &m.ExpGetObjectInput, &m.QueuedGetObjectOutput)
	if err == nil && out == nil {
		return nil, notFound("GetObject")
	}
	return out, err
}

func (m *MockS3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Body is a reader, so compare contents separately, then only bucket/key via String()
	if len(m.ExpPutObjectInput) > 0 {
		exp := m.ExpPutObjectInput[0]
		got := readAll(input.Body)
		want := readAll(exp.Body)
		if got != want {
			return nil, fmt.Errorf("PutObject body not as expected. Received:\n%v\nExpected:\n%v", got, want)
		}
		m.ExpPutObjectInput[0] = s3.PutObjectInput{Bucket: exp.Bucket, Key: exp.Key}
	}

	stripped := s3.PutObjectInput{Bucket: input.Bucket, Key: input.Key}
	return popCall("PutObject", stripped, &m.ExpPutObjectInput, &m.QueuedPutObjectOutput)
}

func (m *MockS3Client) DeleteObject(input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return popCall("DeleteObject", *input, &m.ExpDeleteObjectInput, &m.QueuedDeleteObjectOutput)
}

func readAll(r io.ReadSeeker) string {
	if r == nil {
		return ""
	}
	r.Seek(0, io.SeekStart)
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}
