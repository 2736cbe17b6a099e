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
	"encoding/json"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

type eventType int

const (
	unknownEventType eventType = iota
	s3EventType
	sqsEventType
)

// Record - one S3 notification, whether it arrived directly or wrapped in an SQS message
type Record struct {
	EventSource    string
	EventSourceArn string
	AWSRegion      string
	S3             events.S3Entity
	SQS            events.SQSMessage
}

// Event - what our lambdas receive. Decodes either an S3 or SQS event
type Event struct {
	Records []Record
}

// ObjectRef - a bucket/key pair that a notification refers to
type ObjectRef struct {
	Bucket string
	Key    string
}

// getEventType - Get the event type from the stream
func (event *Event) getEventType(data []byte) eventType {
	temp := struct {
		Records []map[string]interface{}
	}{}
	if err := json.Unmarshal(data, &temp); err != nil || len(temp.Records) <= 0 {
		return unknownEventType
	}

	record := temp.Records[0]
	eventSource, _ := record["EventSource"].(string)
	if len(eventSource) <= 0 {
		eventSource, _ = record["eventSource"].(string)
	}

	switch eventSource {
	case "aws:s3":
		return s3EventType
	case "aws:sqs":
		return sqsEventType
	}

	return unknownEventType
}

// mapS3EventRecords - Create an S3 record on receipt of an S3 Event
func (event *Event) mapS3EventRecords(s3Event *events.S3Event) {
	event.Records = make([]Record, 0, len(s3Event.Records))

	for _, s3Record := range s3Event.Records {
		event.Records = append(event.Records, Record{
			EventSource:    s3Record.EventSource,
			EventSourceArn: s3Record.S3.Bucket.Arn,
			AWSRegion:      s3Record.AWSRegion,
			S3:             s3Record.S3,
		})
	}
}

// mapSQSEventRecords - Decode the S3 events carried in SQS message bodies
func (event *Event) mapSQSEventRecords(sqsEvent *events.SQSEvent) error {
	event.Records = make([]Record, 0)

	for _, sqsRecord := range sqsEvent.Records {
		s3Event := &events.S3Event{}
		err := json.Unmarshal([]byte(sqsRecord.Body), s3Event)
		if err != nil {
			return errors.Wrap(err, "Failed to decode sqs body to an S3 event")
		}

		if len(s3Event.Records) == 0 {
			return errors.New("S3 Event Records is empty")
		}

		for _, s3Record := range s3Event.Records {
			event.Records = append(event.Records, Record{
				EventSource:    sqsRecord.EventSource,
				EventSourceArn: sqsRecord.EventSourceARN,
				AWSRegion:      sqsRecord.AWSRegion,
				SQS:            sqsRecord,
				S3:             s3Record.S3,
			})
		}
	}

	return nil
}

// UnmarshalJSON - Decode the JSON to the correct Event type
func (event *Event) UnmarshalJSON(data []byte) error {
	switch event.getEventType(data) {
	case s3EventType:
		s3Event := &events.S3Event{}
		if err := json.Unmarshal(data, s3Event); err != nil {
			return err
		}
		event.mapS3EventRecords(s3Event)
		return nil

	case sqsEventType:
		sqsEvent := &events.SQSEvent{}
		if err := json.Unmarshal(data, sqsEvent); err != nil {
			return err
		}
		return event.mapSQSEventRecords(sqsEvent)
	}

	return errors.New("Unrecognised event source")
}

// Objects - the bucket/key of every record. S3 sends keys URL encoded, these are decoded
func (event *Event) Objects() ([]ObjectRef, error) {
	result := make([]ObjectRef, 0, len(event.Records))
	for _, rec := range event.Records {
		key, err := url.QueryUnescape(rec.S3.Object.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to decode object key: %v", rec.S3.Object.Key)
		}
		result = append(result, ObjectRef{Bucket: rec.S3.Bucket.Name, Key: key})
	}
	return result, nil
}
