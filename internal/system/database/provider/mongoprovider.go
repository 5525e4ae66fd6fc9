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

package provider

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wso2/identity-email-signature-service/internal/system/config"
	"github.com/wso2/identity-email-signature-service/internal/system/database/client"
)

// MongoProviderInterface defines the interface for getting document store clients.
type MongoProviderInterface interface {
	GetMongoClient() (client.MongoClientInterface, error)
}

// MongoProvider is the implementation of MongoProviderInterface.
type MongoProvider struct{}

var testMongo *mongo.Client

// NewMongoProvider creates a new instance of MongoProvider.
func NewMongoProvider() MongoProviderInterface {

	return &MongoProvider{}
}

// SetTestMongo injects a pre-connected mongo client. Test use only.
func SetTestMongo(c *mongo.Client) {
	testMongo = c
}

// GetMongoClient returns a document store client bound to the configured database.
func (m *MongoProvider) GetMongoClient() (client.MongoClientInterface, error) {

	storeConfig := config.GetESSRuntime().Config.DocumentStore

	database := storeConfig.Database
	if database == "" {
		database = "signature_service"
	}

	if testMongo != nil {
		return client.NewMongoClient(testMongo, database), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(storeConfig.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %v", err)
	}

	if err := mongoClient.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping document store: %v", err)
	}

	return client.NewMongoClient(mongoClient, database), nil
}
