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

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wso2/identity-email-signature-service/internal/mailbox/model"
	"github.com/wso2/identity-email-signature-service/internal/system/config"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
)

// MailboxClient talks to the internal mailbox signature gateway. The gateway
// sits inside the deployment perimeter, so requests carry no credentials.
type MailboxClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewMailboxClient creates a MailboxClient from the mailbox configuration.
func NewMailboxClient(cfg config.Config) *MailboxClient {

	timeout := cfg.Mailbox.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	log.GetLogger().Info("Creating MailboxClient with base URL: " + cfg.Mailbox.BaseURL)

	return &MailboxClient{
		BaseURL: strings.TrimRight(cfg.Mailbox.BaseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// GetSignature reads the current signature of the given mailbox. A denied or
// unknown mailbox is reported through SignatureData.Accessible rather than an
// error so callers can classify the cause.
func (c *MailboxClient) GetSignature(mail string) (model.SignatureData, error) {

	endpoint := c.BaseURL + "/signatures/" + url.PathEscape(mail)
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return model.SignatureData{}, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.MAILBOX_REQUEST.Code,
			Message:     errors.MAILBOX_REQUEST.Message,
			Description: fmt.Sprintf("Failed to create signature read request for mailbox: %s", mail),
		}, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return model.SignatureData{}, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.MAILBOX_REQUEST.Code,
			Message:     errors.MAILBOX_REQUEST.Message,
			Description: fmt.Sprintf("Signature read request failed for mailbox: %s", mail),
		}, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data model.SignatureData
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return model.SignatureData{}, errors.NewServerError(errors.ErrorMessage{
				Code:        errors.MAILBOX_REQUEST.Code,
				Message:     errors.MAILBOX_REQUEST.Message,
				Description: fmt.Sprintf("Failed to parse signature response for mailbox: %s", mail),
			}, err)
		}
		return data, nil
	case http.StatusForbidden, http.StatusUnauthorized:
		log.GetLogger().Debug(fmt.Sprintf("Mailbox gateway denied access to mailbox: %s", mail))
		return model.SignatureData{
			Accessible:  false,
			AccessError: fmt.Sprintf("Access to the mailbox was denied (HTTP %d)", resp.StatusCode),
		}, nil
	case http.StatusNotFound:
		return model.SignatureData{
			Accessible:  false,
			AccessError: "Mailbox not found in the signature gateway",
		}, nil
	default:
		bodyBytes, _ := io.ReadAll(resp.Body)
		errorMsg := fmt.Sprintf("Mailbox gateway returned status %d for mailbox %s: %s",
			resp.StatusCode, mail, strings.TrimSpace(string(bodyBytes)))
		log.GetLogger().Debug(errorMsg)
		return model.SignatureData{}, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.MAILBOX_REQUEST.Code,
			Message:     errors.MAILBOX_REQUEST.Message,
			Description: errorMsg,
		}, fmt.Errorf("mailbox gateway non-200: %d", resp.StatusCode))
	}
}

// SetSignature writes a signature to the given mailbox.
func (c *MailboxClient) SetSignature(mail, html, text string) (bool, error) {

	payload, err := json.Marshal(map[string]string{
		"html": html,
		"text": text,
	})
	if err != nil {
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.MARSHAL_JSON.Code,
			Message:     errors.MARSHAL_JSON.Message,
			Description: "Failed to marshal signature write payload",
		}, err)
	}

	endpoint := c.BaseURL + "/signatures/" + url.PathEscape(mail)
	req, err := http.NewRequest(http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.MAILBOX_REQUEST.Code,
			Message:     errors.MAILBOX_REQUEST.Message,
			Description: fmt.Sprintf("Failed to create signature write request for mailbox: %s", mail),
		}, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.MAILBOX_REQUEST.Code,
			Message:     errors.MAILBOX_REQUEST.Message,
			Description: fmt.Sprintf("Signature write request failed for mailbox: %s", mail),
		}, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		errorMsg := fmt.Sprintf("Mailbox gateway rejected signature write for %s with status %d: %s",
			mail, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
		log.GetLogger().Debug(errorMsg)
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.MAILBOX_REQUEST.Code,
			Message:     errors.MAILBOX_REQUEST.Message,
			Description: errorMsg,
		}, fmt.Errorf("mailbox gateway non-200: %d", resp.StatusCode))
	}
	return true, nil
}
