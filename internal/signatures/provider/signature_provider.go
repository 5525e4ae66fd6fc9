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
	"github.com/wso2/identity-email-signature-service/internal/signatures/service"
)

// SignatureProviderInterface defines the interface for the signature
// provider.
type SignatureProviderInterface interface {
	GetSignatureService() service.SignatureServiceInterface
}

// SignatureProvider is the default implementation of the
// SignatureProviderInterface.
type SignatureProvider struct{}

// NewSignatureProvider creates a new instance of SignatureProvider.
func NewSignatureProvider() SignatureProviderInterface {

	return &SignatureProvider{}
}

// GetSignatureService returns the signature service instance.
func (sp *SignatureProvider) GetSignatureService() service.SignatureServiceInterface {

	return service.GetSignatureService()
}
