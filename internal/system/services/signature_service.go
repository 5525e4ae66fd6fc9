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

	"github.com/wso2/identity-email-signature-service/internal/signatures/handler"
)

// SignatureService wires the signature preview, deployment, rollback and
// history endpoints into the mux.
type SignatureService struct {
	signatureHandler *handler.SignatureHandler
}

func NewSignatureService() *SignatureService {
	return &SignatureService{
		signatureHandler: handler.NewSignatureHandler(),
	}
}

// RegisterRoutes registers the signature routes.
func (s *SignatureService) RegisterRoutes(mux *http.ServeMux, basePath string) {

	mux.HandleFunc("POST "+basePath+"/signatures/preview", s.signatureHandler.Preview)
	mux.HandleFunc("POST "+basePath+"/signatures/deploy", s.signatureHandler.Deploy)
	mux.HandleFunc("POST "+basePath+"/signatures/rollback", s.signatureHandler.Rollback)
	mux.HandleFunc("GET "+basePath+"/signatures/history/{userId}", s.signatureHandler.GetHistory)
}
