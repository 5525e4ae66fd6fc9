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
	"sync"
	"time"

	"github.com/wso2/identity-email-signature-service/internal/directory/model"
	"github.com/wso2/identity-email-signature-service/internal/system/config"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
)

// DirectoryClient talks to the cloud identity directory's user API.
// Tokens are obtained via the client_credentials grant and cached until
// shortly before expiry.
type DirectoryClient struct {
	BaseURL    string
	HTTPClient *http.Client

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// directoryUser mirrors the wire shape of a directory user record.
type directoryUser struct {
	Id             string   `json:"id"`
	DisplayName    string   `json:"displayName"`
	JobTitle       string   `json:"jobTitle"`
	Department     string   `json:"department"`
	Mail           string   `json:"mail"`
	BusinessPhones []string `json:"businessPhones"`
	MobilePhone    string   `json:"mobilePhone"`
	AccountEnabled bool     `json:"accountEnabled"`
}

func (u directoryUser) toProfile() model.Profile {

	businessPhone := ""
	if len(u.BusinessPhones) > 0 {
		businessPhone = u.BusinessPhones[0]
	}
	return model.Profile{
		Id:             u.Id,
		DisplayName:    u.DisplayName,
		JobTitle:       u.JobTitle,
		Department:     u.Department,
		Mail:           u.Mail,
		BusinessPhone:  businessPhone,
		MobilePhone:    u.MobilePhone,
		AccountEnabled: u.AccountEnabled,
	}
}

// NewDirectoryClient creates a DirectoryClient from the directory configuration.
func NewDirectoryClient(cfg config.Config) *DirectoryClient {

	timeout := cfg.Directory.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	log.GetLogger().Info("Creating DirectoryClient with base URL: " + cfg.Directory.BaseURL)

	return &DirectoryClient{
		BaseURL: strings.TrimRight(cfg.Directory.BaseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// FetchToken returns a cached directory access token, requesting a fresh one
// when the cached token is missing or about to expire.
func (c *DirectoryClient) FetchToken() (string, error) {

	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-30*time.Second)) {
		return c.accessToken, nil
	}

	logger := log.GetLogger()
	dirCfg := config.GetESSRuntime().Config.Directory

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	if dirCfg.Scope != "" {
		form.Set("scope", dirCfg.Scope)
	}

	req, err := http.NewRequest(http.MethodPost, dirCfg.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DIRECTORY_TOKEN.Code,
			Message:     errors.DIRECTORY_TOKEN.Message,
			Description: "Failed to create directory token request",
		}, err)
	}
	req.SetBasicAuth(dirCfg.ClientID, dirCfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DIRECTORY_TOKEN.Code,
			Message:     errors.DIRECTORY_TOKEN.Message,
			Description: "Failed to reach directory token endpoint",
		}, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		errorMsg := fmt.Sprintf("Directory token endpoint returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
		logger.Debug(errorMsg)
		return "", errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DIRECTORY_TOKEN.Code,
			Message:     errors.DIRECTORY_TOKEN.Message,
			Description: errorMsg,
		}, fmt.Errorf("token endpoint non-200: %d", resp.StatusCode))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DIRECTORY_TOKEN.Code,
			Message:     errors.DIRECTORY_TOKEN.Message,
			Description: "Failed to parse directory token response",
		}, err)
	}
	if result.AccessToken == "" {
		return "", errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DIRECTORY_TOKEN.Code,
			Message:     errors.DIRECTORY_TOKEN.Message,
			Description: "Directory token response carried no access token",
		}, nil)
	}

	expiresIn := result.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 300
	}
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	logger.Debug("Obtained a fresh directory access token")
	return c.accessToken, nil
}

// GetUsers fetches the full user collection from the directory.
func (c *DirectoryClient) GetUsers() ([]model.Profile, error) {

	body, status, err := c.doRequest(http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, directoryStatusError("users", status, body)
	}

	var result struct {
		Value []directoryUser `json:"value"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DIRECTORY_REQUEST.Code,
			Message:     errors.DIRECTORY_REQUEST.Message,
			Description: "Failed to parse directory user list response",
		}, err)
	}

	profiles := make([]model.Profile, 0, len(result.Value))
	for _, user := range result.Value {
		profiles = append(profiles, user.toProfile())
	}
	return profiles, nil
}

// GetUser fetches one user by directory id or mail address. A nil profile
// with a nil error means the directory has no such user.
func (c *DirectoryClient) GetUser(idOrMail string) (*model.Profile, error) {

	body, status, err := c.doRequest(http.MethodGet, "/users/"+url.PathEscape(idOrMail), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, directoryStatusError("user lookup", status, body)
	}

	var user directoryUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DIRECTORY_REQUEST.Code,
			Message:     errors.DIRECTORY_REQUEST.Message,
			Description: "Failed to parse directory user response",
		}, err)
	}
	profile := user.toProfile()
	return &profile, nil
}

// UpdateUser patches the given directory attributes on a user record.
func (c *DirectoryClient) UpdateUser(id string, patch model.ProfilePatch) error {

	payload := map[string]interface{}{}
	if patch.JobTitle != nil {
		payload["jobTitle"] = *patch.JobTitle
	}
	if patch.Department != nil {
		payload["department"] = *patch.Department
	}
	if patch.BusinessPhone != nil {
		payload["businessPhones"] = []string{*patch.BusinessPhone}
	}
	if patch.MobilePhone != nil {
		payload["mobilePhone"] = *patch.MobilePhone
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.MARSHAL_JSON.Code,
			Message:     errors.MARSHAL_JSON.Message,
			Description: "Failed to marshal directory user patch",
		}, err)
	}

	body, status, err := c.doRequest(http.MethodPatch, "/users/"+url.PathEscape(id), bodyBytes)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return directoryStatusError("user update", status, body)
	}
	return nil
}

// doRequest performs an authenticated request against the directory API and
// returns the raw body and status code.
func (c *DirectoryClient) doRequest(method, path string, payload []byte) ([]byte, int, error) {

	token, err := c.FetchToken()
	if err != nil {
		return nil, 0, err
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, 0, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DIRECTORY_REQUEST.Code,
			Message:     errors.DIRECTORY_REQUEST.Message,
			Description: fmt.Sprintf("Failed to create directory request for %s", path),
		}, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DIRECTORY_REQUEST.Code,
			Message:     errors.DIRECTORY_REQUEST.Message,
			Description: fmt.Sprintf("Directory request to %s failed", path),
		}, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DIRECTORY_REQUEST.Code,
			Message:     errors.DIRECTORY_REQUEST.Message,
			Description: fmt.Sprintf("Failed to read directory response for %s", path),
		}, err)
	}
	return body, resp.StatusCode, nil
}

func directoryStatusError(operation string, status int, body []byte) error {

	errorMsg := fmt.Sprintf("Directory %s returned status %d: %s",
		operation, status, strings.TrimSpace(string(body)))
	log.GetLogger().Debug(errorMsg)
	return errors.NewServerError(errors.ErrorMessage{
		Code:        errors.DIRECTORY_REQUEST.Code,
		Message:     errors.DIRECTORY_REQUEST.Message,
		Description: errorMsg,
	}, fmt.Errorf("directory endpoint non-200: %d", status))
}
