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

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/wso2/identity-email-signature-service/internal/system/config"
	"github.com/wso2/identity-email-signature-service/internal/system/database/provider"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/system/workers"
	"github.com/wso2/identity-email-signature-service/test/integration/utils"
	"github.com/wso2/identity-email-signature-service/test/setup"
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	os.Setenv("TEST_MODE", "true")

	conf := config.Config{
		Log: config.LogConfig{
			LogLevel: "DEBUG",
		},
		DocumentStore: config.DocumentStoreConfig{
			Database: "ess_test",
		},
		Audit: config.AuditConfig{
			HistoryLimit: 5,
		},
	}
	config.OverrideESSRuntime(conf)
	_ = log.Init("DEBUG")

	pg, err := setup.SetupTestPostgres(ctx)
	if err != nil {
		fmt.Println("Failed to start test DB:", err)
		os.Exit(1)
	}

	mongo, err := setup.SetupTestMongo(ctx)
	if err != nil {
		fmt.Println("Failed to start test document store:", err)
		_ = pg.Container.Terminate(ctx)
		os.Exit(1)
	}

	workers.StartAuditWorker()

	provider.SetTestDB(pg.DB)
	provider.SetTestMongo(mongo.Client)
	err = utils.CreateTablesFromFile(pg.DB, utils.GetSchemaPath())
	if err != nil {
		fmt.Println("Failed to create tables from schema:", err)
		os.Exit(1)
	}

	// Run tests
	code := m.Run()

	// Terminate containers manually after tests complete
	_ = pg.Container.Terminate(ctx)
	_ = mongo.Container.Terminate(ctx)

	os.Exit(code)
}
