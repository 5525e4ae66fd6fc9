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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wso2/identity-email-signature-service/internal/system/config"
	errors2 "github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
)

// AuthServerClient talks to the OAuth authorization server that issued the
// access tokens presented to this service.
type AuthServerClient struct {
	IntrospectionEndpoint string
	ClientID              string
	ClientSecret          string
	HTTPClient            *http.Client
}

// NewAuthServerClient creates an AuthServerClient from the auth server
// configuration.
func NewAuthServerClient(cfg config.Config) *AuthServerClient {

	return &AuthServerClient{
		IntrospectionEndpoint: cfg.AuthServer.IntrospectionEndPoint,
		ClientID:              cfg.AuthServer.ClientID,
		ClientSecret:          cfg.AuthServer.ClientSecret,
		HTTPClient:            &http.Client{Timeout: 10 * time.Second},
	}
}

// IntrospectToken validates a token against the authorization server's
// introspection endpoint and returns the introspection claims.
func (c *AuthServerClient) IntrospectToken(token string) (map[string]interface{}, error) {

	logger := log.GetLogger()

	form := url.Values{}
	form.Set("token", token)

	req, err := http.NewRequest(http.MethodPost, c.IntrospectionEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		errorMsg := "Failed to build the token introspection request"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.INTROSPECTION_FAILED.Code,
			Message:     errors2.INTROSPECTION_FAILED.Message,
			Description: errorMsg,
		}, err)
	}
	req.SetBasicAuth(c.ClientID, c.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		errorMsg := "Failed to introspect token"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.INTROSPECTION_FAILED.Code,
			Message:     errors2.INTROSPECTION_FAILED.Message,
			Description: errorMsg,
		}, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		errorMsg := fmt.Sprintf("Introspection endpoint returned status %d: %s", resp.StatusCode, string(bodyBytes))
		logger.Debug(errorMsg)
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.INTROSPECTION_FAILED.Code,
			Message:     errors2.INTROSPECTION_FAILED.Message,
			Description: errorMsg,
		}, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errorMsg := "Failed to read the token introspection response"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.INTROSPECTION_FAILED.Code,
			Message:     errors2.INTROSPECTION_FAILED.Message,
			Description: errorMsg,
		}, err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		errorMsg := "Failed to parse the token introspection response"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UNMARSHAL_JSON.Code,
			Message:     errors2.UNMARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	return result, nil
}
