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

	"github.com/wso2/identity-email-signature-service/internal/overrides/handler"
)

// OverrideService wires the signature override endpoints into the mux.
type OverrideService struct {
	overrideHandler *handler.OverrideHandler
}

func NewOverrideService() *OverrideService {
	return &OverrideService{
		overrideHandler: handler.NewOverrideHandler(),
	}
}

// RegisterRoutes registers the override routes.
func (s *OverrideService) RegisterRoutes(mux *http.ServeMux, basePath string) {

	mux.HandleFunc("GET "+basePath+"/overrides", s.overrideHandler.GetOverrides)
	mux.HandleFunc("GET "+basePath+"/overrides/{userId}", s.overrideHandler.GetOverride)
	mux.HandleFunc("PUT "+basePath+"/overrides/{userId}", s.overrideHandler.SaveOverride)
	mux.HandleFunc("DELETE "+basePath+"/overrides/{userId}", s.overrideHandler.DeleteOverride)
}
