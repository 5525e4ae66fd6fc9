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

package schedulers

import (
	"fmt"
	"time"

	"github.com/wso2/identity-email-signature-service/internal/audit/service"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/system/workers"
)

// StartAuditScheduler starts the periodic signature audit job.
func StartAuditScheduler(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run once at startup
	triggerScheduledAudit()

	for range ticker.C {
		triggerScheduledAudit()
	}
}

// triggerScheduledAudit registers a run and hands it to the audit worker.
func triggerScheduledAudit() {
	logger := log.GetLogger()

	run, ctx, err := service.GetRunRegistry().StartRun()
	if err != nil {
		logger.Info("Skipping the scheduled signature audit, a run is already in progress.")
		return
	}

	logger.Info(fmt.Sprintf("Scheduled signature audit triggered: %s", run.RunId))
	workers.EnqueueAuditRun(workers.AuditRunRequest{Run: run, Ctx: ctx})
}
