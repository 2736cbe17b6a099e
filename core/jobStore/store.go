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
	"sync"

	"github.com/lpdaac/mrtparams/core/logger"
	pkgErrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrJobNotFound = errors.New("job not found")

// Store is where job records are kept
type Store interface {
	Save(ctx context.Context, rec JobRecord) error
	Get(ctx context.Context, id string) (JobRecord, error)
	List(ctx context.Context, limit int64) ([]JobRecord, error)
}

type MongoStore struct {
	coll *mongo.Collection
	log  logger.ILogger
}

func NewMongoStore(db *mongo.Database, log logger.ILogger) *MongoStore {
	return &MongoStore{coll: db.Collection(CollectionName), log: logger.OrNull(log)}
}

// Save inserts the record, or replaces the one with the same ID
func (s *MongoStore) Save(ctx context.Context, rec JobRecord) error {
	opt := options.Replace().SetUpsert(true)
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, opt)
	if err != nil {
		return pkgErrors.Wrapf(err, "Failed to save job %v", rec.ID)
	}

	if result.UpsertedCount == 0 && result.MatchedCount == 0 {
		s.log.Errorf("Saving job %v neither matched nor inserted a record", rec.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (JobRecord, error) {
	var rec JobRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return rec, ErrJobNotFound
		}
		return rec, pkgErrors.Wrapf(err, "Failed to read job %v", id)
	}
	return rec, nil
}

// List returns the newest jobs first
func (s *MongoStore) List(ctx context.Context, limit int64) ([]JobRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdUnixSec", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, pkgErrors.Wrap(err, "Failed to list jobs")
	}

	result := []JobRecord{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, pkgErrors.Wrap(err, "Failed to read job list")
	}
	return result, nil
}

// MemStore keeps records in memory, for running without a DB
type MemStore struct {
	mu    sync.Mutex
	jobs  map[string]JobRecord
	order []string
}

func NewMemStore() *MemStore {
	return &MemStore{jobs: map[string]JobRecord{}}
}

func (s *MemStore) Save(ctx context.Context, rec JobRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[rec.ID]; !exists {
		s.order = append(s.order, rec.ID)
	}
	s.jobs[rec.ID] = rec
	return nil
}

func (s *MemStore) Get(ctx context.Context, id string) (JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.jobs[id]
	if !ok {
		return rec, ErrJobNotFound
	}
	return rec, nil
}

func (s *MemStore) List(ctx context.Context, limit int64) ([]JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []JobRecord{}
	for c := len(s.order) - 1; c >= 0; c-- {
		if limit > 0 && int64(len(result)) >= limit {
			break
		}
		result = append(result, s.jobs[s.order[c]])
	}
	return result, nil
}
