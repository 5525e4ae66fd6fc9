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

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wso2/identity-email-signature-service/internal/overrides/model"
	"github.com/wso2/identity-email-signature-service/internal/overrides/provider"
	"github.com/wso2/identity-email-signature-service/internal/system/authn"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	esscontext "github.com/wso2/identity-email-signature-service/internal/system/context"
	errors2 "github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/system/security"
	"github.com/wso2/identity-email-signature-service/internal/system/utils"
)

// OverrideHandler exposes the per-user signature override endpoints.
type OverrideHandler struct{}

func NewOverrideHandler() *OverrideHandler {

	return &OverrideHandler{}
}

// GetOverrides handles listing every stored override.
func (oh *OverrideHandler) GetOverrides(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature_override:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	overrideProvider := provider.NewOverrideProvider()
	overrideService := overrideProvider.GetOverrideService()
	overrides, err := overrideService.ListOverrides()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, overrides, constants.OverrideResource)
}

// GetOverride handles fetching the override record of one user.
func (oh *OverrideHandler) GetOverride(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature_override:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	userId := r.PathValue("userId")
	if userId == "" {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.OVERRIDE_NOT_FOUND.Code,
			Message:     errors2.OVERRIDE_NOT_FOUND.Message,
			Description: "Invalid path for override retrieval",
		}, http.StatusNotFound)
		utils.HandleError(w, clientError)
		return
	}

	overrideProvider := provider.NewOverrideProvider()
	overrideService := overrideProvider.GetOverrideService()
	override, err := overrideService.GetOverride(userId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, override, constants.OverrideResource)
}

// SaveOverride handles upserting the override record of one user.
func (oh *OverrideHandler) SaveOverride(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature_override:update")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	userId := r.PathValue("userId")
	if userId == "" {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	var overrideInRequest model.OverrideRecord
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&overrideInRequest); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "signature override"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	// The path is authoritative for the user id.
	overrideInRequest.UserId = userId

	overrideProvider := provider.NewOverrideProvider()
	overrideService := overrideProvider.GetOverrideService()
	savedOverride, err := overrideService.SaveOverride(overrideInRequest)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	traceID := esscontext.GetTraceID(r.Context())
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      userId,
		TargetType:    log.TargetTypeOverride,
		ActionID:      log.ActionSaveOverride,
		TraceID:       traceID,
	})

	utils.RespondJSON(w, http.StatusOK, savedOverride, constants.OverrideResource)
}

// DeleteOverride handles removing the override record of one user.
func (oh *OverrideHandler) DeleteOverride(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature_override:delete")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	userId := r.PathValue("userId")
	if userId == "" {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	overrideProvider := provider.NewOverrideProvider()
	overrideService := overrideProvider.GetOverrideService()
	if err := overrideService.DeleteOverride(userId); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	traceID := esscontext.GetTraceID(r.Context())
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      userId,
		TargetType:    log.TargetTypeOverride,
		ActionID:      log.ActionDeleteOverride,
		TraceID:       traceID,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNoContent)
}
