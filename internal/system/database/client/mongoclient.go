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

package client

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoClientInterface defines the interface for document store operations.
type MongoClientInterface interface {
	Collection(name string) *mongo.Collection
	Ping() error
	Close() error
}

// MongoClient is the implementation of MongoClientInterface.
type MongoClient struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoClient creates a new instance of MongoClient bound to a database.
func NewMongoClient(client *mongo.Client, database string) MongoClientInterface {

	return &MongoClient{
		client:   client,
		database: client.Database(database),
	}
}

// Collection returns a handle to the named collection.
func (c *MongoClient) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

// Ping verifies connectivity to the document store.
func (c *MongoClient) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (c *MongoClient) Close() error {
	if os.Getenv("TEST_MODE") == "true" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}
