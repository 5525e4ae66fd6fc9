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
	"github.com/wso2/identity-email-signature-service/internal/mailbox/service"
)

// MailboxProviderInterface defines the interface for the mailbox provider.
type MailboxProviderInterface interface {
	GetMailboxService() service.MailboxServiceInterface
}

// MailboxProvider is the default implementation of the MailboxProviderInterface.
type MailboxProvider struct{}

// NewMailboxProvider creates a new instance of MailboxProvider.
func NewMailboxProvider() MailboxProviderInterface {
	return &MailboxProvider{}
}

// GetMailboxService returns the mailbox service instance.
func (mp *MailboxProvider) GetMailboxService() service.MailboxServiceInterface {
	return service.GetMailboxService()
}
