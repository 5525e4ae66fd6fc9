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

	"github.com/wso2/identity-email-signature-service/internal/templates/handler"
)

// TemplateService wires the signature template endpoints into the mux.
type TemplateService struct {
	templateHandler *handler.TemplateHandler
}

func NewTemplateService() *TemplateService {
	return &TemplateService{
		templateHandler: handler.NewTemplateHandler(),
	}
}

// RegisterRoutes registers the template routes. The literal default route
// takes precedence over the template id wildcard.
func (s *TemplateService) RegisterRoutes(mux *http.ServeMux, basePath string) {

	mux.HandleFunc("POST "+basePath+"/templates", s.templateHandler.AddTemplate)
	mux.HandleFunc("GET "+basePath+"/templates", s.templateHandler.GetTemplates)
	mux.HandleFunc("GET "+basePath+"/templates/default", s.templateHandler.GetDefaultTemplate)
	mux.HandleFunc("PUT "+basePath+"/templates/default/{templateId}", s.templateHandler.SetDefaultTemplate)
	mux.HandleFunc("GET "+basePath+"/templates/{templateId}", s.templateHandler.GetTemplate)
	mux.HandleFunc("PUT "+basePath+"/templates/{templateId}", s.templateHandler.UpdateTemplate)
	mux.HandleFunc("DELETE "+basePath+"/templates/{templateId}", s.templateHandler.DeleteTemplate)
}
