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
	"github.com/wso2/identity-email-signature-service/internal/overrides/service"
)

// OverrideProviderInterface defines the interface for the override provider.
type OverrideProviderInterface interface {
	GetOverrideService() service.OverrideServiceInterface
}

// OverrideProvider is the default implementation of the
// OverrideProviderInterface.
type OverrideProvider struct{}

// NewOverrideProvider creates a new instance of OverrideProvider.
func NewOverrideProvider() OverrideProviderInterface {

	return &OverrideProvider{}
}

// GetOverrideService returns the override service instance.
func (op *OverrideProvider) GetOverrideService() service.OverrideServiceInterface {

	return service.GetOverrideService()
}
