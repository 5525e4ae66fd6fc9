/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package store persists signature snapshots in the document store.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wso2/identity-email-signature-service/internal/history/model"
	"github.com/wso2/identity-email-signature-service/internal/system/config"
	dbprovider "github.com/wso2/identity-email-signature-service/internal/system/database/provider"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
)

const defaultSnapshotCollection = "signature_snapshots"

// InsertSnapshot adds a snapshot document. Snapshots are append-only.
func InsertSnapshot(snapshot model.SignatureSnapshot) error {

	collection, closeClient, err := snapshotCollection()
	if err != nil {
		return err
	}
	defer closeClient()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return errors.NewServerError(errors.ADD_SNAPSHOT, err)
	}
	return nil
}

// GetSnapshotsByUserId returns the snapshots of a user, newest first. A
// limit of zero or less returns all of them.
func GetSnapshotsByUserId(userId string, limit int64) ([]model.SignatureSnapshot, error) {

	collection, closeClient, err := snapshotCollection()
	if err != nil {
		return nil, err
	}
	defer closeClient()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.M{"captured_at": -1})
	if limit > 0 {
		findOptions = findOptions.SetLimit(limit)
	}
	cursor, err := collection.Find(ctx, bson.M{"user_id": userId}, findOptions)
	if err != nil {
		return nil, errors.NewServerError(errors.GET_SNAPSHOT, err)
	}
	defer cursor.Close(ctx)

	var snapshots []model.SignatureSnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, errors.NewServerError(errors.GET_SNAPSHOT, err)
	}
	return snapshots, nil
}

// GetLatestSnapshotByUserId returns the most recent snapshot of a user, or
// nil when the user has none.
func GetLatestSnapshotByUserId(userId string) (*model.SignatureSnapshot, error) {

	collection, closeClient, err := snapshotCollection()
	if err != nil {
		return nil, err
	}
	defer closeClient()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.FindOne().SetSort(bson.M{"captured_at": -1})
	var snapshot model.SignatureSnapshot
	err = collection.FindOne(ctx, bson.M{"user_id": userId}, findOptions).Decode(&snapshot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewServerError(errors.GET_SNAPSHOT, err)
	}
	return &snapshot, nil
}

func snapshotCollection() (*mongo.Collection, func(), error) {

	mongoClient, err := dbprovider.NewMongoProvider().GetMongoClient()
	if err != nil {
		return nil, nil, errors.NewServerError(errors.MONGO_CLIENT_INIT, err)
	}

	name := config.GetESSRuntime().Config.DocumentStore.Collection
	if name == "" {
		name = defaultSnapshotCollection
	}
	closeClient := func() { _ = mongoClient.Close() }
	return mongoClient.Collection(name), closeClient, nil
}
