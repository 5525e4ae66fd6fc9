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

	"github.com/wso2/identity-email-signature-service/internal/health_check/handler"
)

// HealthService wires the health and readiness endpoints into the mux.
type HealthService struct {
	handler *handler.HealthHandler
}

// NewHealthService creates a new HealthService instance.
func NewHealthService() *HealthService {
	return &HealthService{
		handler: handler.NewHealthHandler(),
	}
}

// RegisterRoutes registers the health routes.
func (s *HealthService) RegisterRoutes(mux *http.ServeMux, basePath string) {

	mux.HandleFunc("GET "+basePath+"/health/liveness", s.handler.HandleLiveness)
	mux.HandleFunc("GET "+basePath+"/health/readiness", s.handler.HandleReadiness)
}
