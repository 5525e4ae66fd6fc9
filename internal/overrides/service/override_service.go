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

// Package service provides the business logic for per-user signature
// overrides. Overrides carry the personal adjustments a user is allowed to
// make on top of the directory profile, such as preferred name, pronouns
// and hidden fields.
package service

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wso2/identity-email-signature-service/internal/overrides/model"
	"github.com/wso2/identity-email-signature-service/internal/overrides/store"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
)

// OverrideServiceInterface defines the operations for managing signature
// overrides.
type OverrideServiceInterface interface {
	SaveOverride(record model.OverrideRecord) (*model.OverrideRecord, error)
	GetOverride(userId string) (*model.OverrideRecord, error)
	FindOverride(userId string) (*model.OverrideRecord, error)
	ListOverrides() ([]model.OverrideRecord, error)
	DeleteOverride(userId string) error
}

// OverrideService is the default implementation of the
// OverrideServiceInterface.
type OverrideService struct{}

// GetOverrideService creates a new instance of OverrideService.
func GetOverrideService() OverrideServiceInterface {

	return &OverrideService{}
}

// SaveOverride validates and persists the override record of a user. Blank
// attribute values fall back to the directory profile at render time, so
// saving an all-blank record is a valid way to clear prior overrides.
func (os *OverrideService) SaveOverride(record model.OverrideRecord) (*model.OverrideRecord, error) {

	logger := log.GetLogger()

	record.UserId = strings.TrimSpace(record.UserId)
	if record.UserId == "" {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.OVERRIDE_VALIDATION.Code,
			Message:     errors.OVERRIDE_VALIDATION.Message,
			Description: "A user id is required to save an override.",
		}, http.StatusBadRequest)
	}

	record.Pronouns = model.NormalizePronouns(record.Pronouns)
	record.HiddenFields = normalizeHiddenFields(record.HiddenFields)
	record.LastModified = time.Now().Unix()

	if err := store.UpsertOverride(record); err != nil {
		return nil, err
	}

	logger.Debug(fmt.Sprintf("Saved override for user_id: %s", record.UserId))
	return &record, nil
}

// GetOverride retrieves the override record of a user.
func (os *OverrideService) GetOverride(userId string) (*model.OverrideRecord, error) {

	record, err := store.GetOverrideByUserId(userId)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.OVERRIDE_NOT_FOUND.Code,
			Message:     errors.OVERRIDE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No override found for the user id: %s", userId),
		}, http.StatusNotFound)
	}
	return record, nil
}

// FindOverride retrieves the override record of a user, returning nil when
// the user has none. Render and audit paths use this; the API uses
// GetOverride, which turns absence into a not-found error.
func (os *OverrideService) FindOverride(userId string) (*model.OverrideRecord, error) {

	return store.GetOverrideByUserId(userId)
}

// ListOverrides retrieves every stored override record.
func (os *OverrideService) ListOverrides() ([]model.OverrideRecord, error) {

	return store.GetAllOverrides()
}

// DeleteOverride removes the override record of a user.
func (os *OverrideService) DeleteOverride(userId string) error {

	deleted, err := store.DeleteOverrideByUserId(userId)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.OVERRIDE_NOT_FOUND.Code,
			Message:     errors.OVERRIDE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No override found for the user id: %s", userId),
		}, http.StatusNotFound)
	}
	return nil
}

// normalizeHiddenFields lowercases and trims the hidden field ids, dropping
// blanks and duplicates so renderer lookups stay case-insensitive.
func normalizeHiddenFields(fields []string) []string {

	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(fields))
	normalized := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" || seen[field] {
			continue
		}
		seen[field] = true
		normalized = append(normalized, field)
	}
	return normalized
}
