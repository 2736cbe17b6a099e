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

package jobStore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lpdaac/mrtparams/core/idgen"
	"github.com/lpdaac/mrtparams/core/paramFile"
	"github.com/lpdaac/mrtparams/core/paramErrors"
	"github.com/lpdaac/mrtparams/core/timestamper"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const jobsNS = "mrt-params.resample-jobs"

func Example_makeJobRecord() {
	idGen := &idgen.MockIDGenerator{IDs: []string{"job1", "job2"}}
	ts := &timestamper.MockTimeNowStamper{QueuedTimeStamps: []int64{1700000000, 1700000100}}

	r := paramFile.Reader{}
	p, err := r.ReadParams(context.Background(), strings.NewReader(`
INPUT_FILENAME = in.hdf
NBANDS = 3
SPECTRAL_SUBSET = ( 1 0 1 )
OUTPUT_FILENAME = out.tif
OUTPUT_PROJECTION_TYPE = UTM
RESAMPLING_TYPE = CC
`), "a.prm")

	rec := MakeJobRecord(idGen, ts, "a.prm", p, err)
	fmt.Printf("%+v\n", rec)

	rec = MakeJobRecord(idGen, ts, "b.prm", nil, paramErrors.New(paramErrors.MissingOutputFileName, "b.prm"))
	fmt.Println(rec.ID, rec.CreatedUnixSec, rec.Status, rec.ErrorKind, rec.ErrorCode == paramErrors.MissingOutputFileName.Code(), rec.ErrorMessage)

	// Output:
	// {ID:job1 CreatedUnixSec:1700000000 ParamFile:a.prm Status:valid InputFiles:[in.hdf] OutputFile:out.tif OutputProjection:UTM Resampling:CUBIC_CONVOLUTION SelectedBands:[0 2] ErrorKind: ErrorCode:0 ErrorMessage:}
	// job2 1700000100 failed MissingOutputFileName true Missing output file name: b.prm
}

func Test_MongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		store := NewMongoStore(mt.DB, nil)
		err := store.Save(context.Background(), JobRecord{ID: "job1", ParamFile: "a.prm", Status: StatusValid})
		if err != nil {
			t.Error(err)
		}
	})

	mt.Run("save fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11000, Message: "duplicate", Name: "DuplicateKey"}))

		store := NewMongoStore(mt.DB, nil)
		err := store.Save(context.Background(), JobRecord{ID: "job1"})
		if err == nil || !strings.HasPrefix(err.Error(), "Failed to save job job1") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	mt.Run("get", func(mt *mtest.T) {
		mongoMockedResponses := []primitive.D{
			// job1
			mtest.CreateCursorResponse(0, jobsNS, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "job1"},
				{Key: "createdUnixSec", Value: int64(1700000000)},
				{Key: "paramFile", Value: "a.prm"},
				{Key: "status", Value: "failed"},
				{Key: "errorKind", Value: "MissingOutputFileName"},
			}),
			// job2, nothing there
			mtest.CreateCursorResponse(0, jobsNS, mtest.FirstBatch),
		}
		mt.AddMockResponses(mongoMockedResponses...)

		store := NewMongoStore(mt.DB, nil)
		rec, err := store.Get(context.Background(), "job1")
		if err != nil || rec.ID != "job1" || rec.Status != StatusFailed || rec.ErrorKind != "MissingOutputFileName" || rec.CreatedUnixSec != 1700000000 {
			t.Errorf("got %+v, %v", rec, err)
		}

		_, err = store.Get(context.Background(), "job2")
		if !errors.Is(err, ErrJobNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, jobsNS, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "job2"}, {Key: "createdUnixSec", Value: int64(20)}, {Key: "selectedBands", Value: bson.A{int32(0), int32(2)}}},
				bson.D{{Key: "_id", Value: "job1"}, {Key: "createdUnixSec", Value: int64(10)}},
			),
		)

		store := NewMongoStore(mt.DB, nil)
		list, err := store.List(context.Background(), 10)
		if err != nil || len(list) != 2 || list[0].ID != "job2" || len(list[0].SelectedBands) != 2 || list[1].ID != "job1" {
			t.Errorf("got %+v, %v", list, err)
		}
	})
}

func Example_memStore() {
	s := NewMemStore()
	ctx := context.Background()

	s.Save(ctx, JobRecord{ID: "a", Status: StatusValid})
	s.Save(ctx, JobRecord{ID: "b", Status: StatusFailed})
	s.Save(ctx, JobRecord{ID: "a", Status: StatusFailed})

	list, _ := s.List(ctx, 0)
	for _, rec := range list {
		fmt.Println(rec.ID, rec.Status)
	}

	list, _ = s.List(ctx, 1)
	fmt.Println(len(list))

	_, err := s.Get(ctx, "c")
	fmt.Println(err)

	// Output:
	// b failed
	// a failed
	// 1
	// job not found
}
