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

package service

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/wso2/identity-email-signature-service/internal/mailbox/model"
	"github.com/wso2/identity-email-signature-service/internal/system/client"
	"github.com/wso2/identity-email-signature-service/internal/system/config"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
)

// MailboxClientInterface is the outbound surface of the mailbox signature
// gateway used by this service.
type MailboxClientInterface interface {
	GetSignature(mail string) (model.SignatureData, error)
	SetSignature(mail, html, text string) (bool, error)
}

// MailboxServiceInterface exposes mailbox signature reads and writes.
type MailboxServiceInterface interface {
	GetSignature(mail string) (model.SignatureData, error)
	SetSignature(mail, html, text string) (bool, error)
}

// MailboxService is the default implementation of the MailboxServiceInterface.
type MailboxService struct {
	client MailboxClientInterface
}

var (
	instance *MailboxService
	once     sync.Once
)

// GetMailboxService returns the shared mailbox service instance.
func GetMailboxService() MailboxServiceInterface {

	once.Do(func() {
		instance = &MailboxService{
			client: client.NewMailboxClient(config.GetESSRuntime().Config),
		}
	})
	return instance
}

// NewMailboxService builds a mailbox service around the given client.
// Test use only.
func NewMailboxService(mbClient MailboxClientInterface) *MailboxService {

	return &MailboxService{client: mbClient}
}

// GetSignature reads the observed signature of a mailbox.
func (ms *MailboxService) GetSignature(mail string) (model.SignatureData, error) {

	if strings.TrimSpace(mail) == "" {
		return model.SignatureData{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "Mailbox address is required to read a signature",
		}, http.StatusBadRequest)
	}
	return ms.client.GetSignature(mail)
}

// SetSignature writes a signature to a mailbox.
func (ms *MailboxService) SetSignature(mail, html, text string) (bool, error) {

	if strings.TrimSpace(mail) == "" || strings.TrimSpace(html) == "" {
		return false, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: fmt.Sprintf("Mailbox address and signature HTML are required to deploy a signature for: %s", mail),
		}, http.StatusBadRequest)
	}
	return ms.client.SetSignature(mail, html, text)
}
