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

	"github.com/wso2/identity-email-signature-service/internal/directory/handler"
)

// DirectoryService wires the directory remediation endpoint into the mux.
type DirectoryService struct {
	directoryHandler *handler.DirectoryHandler
}

func NewDirectoryService() *DirectoryService {
	return &DirectoryService{
		directoryHandler: handler.NewDirectoryHandler(),
	}
}

// RegisterRoutes registers the directory routes.
func (s *DirectoryService) RegisterRoutes(mux *http.ServeMux, basePath string) {

	mux.HandleFunc("PATCH "+basePath+"/users/{id}/profile", s.directoryHandler.UpdateProfile)
}
