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
	"github.com/wso2/identity-email-signature-service/internal/templates/service"
)

// TemplateProviderInterface defines the interface for the template provider.
type TemplateProviderInterface interface {
	GetTemplateService() service.TemplateServiceInterface
}

// TemplateProvider is the default implementation of the
// TemplateProviderInterface.
type TemplateProvider struct{}

// NewTemplateProvider creates a new instance of TemplateProvider.
func NewTemplateProvider() TemplateProviderInterface {

	return &TemplateProvider{}
}

// GetTemplateService returns the template service instance.
func (tp *TemplateProvider) GetTemplateService() service.TemplateServiceInterface {

	return service.GetTemplateService()
}
