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

package services

import (
	"net/http"

	"github.com/wso2/identity-email-signature-service/internal/audit/handler"
)

// AuditService wires the audit run endpoints into the mux.
type AuditService struct {
	auditHandler *handler.AuditHandler
}

func NewAuditService() *AuditService {
	return &AuditService{
		auditHandler: handler.NewAuditHandler(),
	}
}

// RegisterRoutes registers the audit routes.
func (s *AuditService) RegisterRoutes(mux *http.ServeMux, basePath string) {

	mux.HandleFunc("POST "+basePath+"/audits", s.auditHandler.TriggerAudit)
	mux.HandleFunc("GET "+basePath+"/audits/current", s.auditHandler.GetCurrentRun)
	mux.HandleFunc("GET "+basePath+"/audits/current/results", s.auditHandler.GetRunResults)
	mux.HandleFunc("GET "+basePath+"/audits/summary", s.auditHandler.GetRunSummary)
	mux.HandleFunc("DELETE "+basePath+"/audits/current", s.auditHandler.CancelRun)
	mux.HandleFunc("GET "+basePath+"/audits/users/{idOrEmail}", s.auditHandler.AuditUser)
}
