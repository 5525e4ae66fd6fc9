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
	"fmt"
	"net/http"

	"github.com/wso2/identity-email-signature-service/internal/directory/model"
	"github.com/wso2/identity-email-signature-service/internal/directory/provider"
	"github.com/wso2/identity-email-signature-service/internal/system/authn"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	esscontext "github.com/wso2/identity-email-signature-service/internal/system/context"
	errors2 "github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/system/security"
	"github.com/wso2/identity-email-signature-service/internal/system/utils"
)

// DirectoryHandler exposes the directory profile remediation endpoint.
type DirectoryHandler struct{}

func NewDirectoryHandler() *DirectoryHandler {

	return &DirectoryHandler{}
}

// UpdateProfile handles patching the signature-relevant attributes of a
// directory user. Only job title, department and the phone numbers can be
// changed through this service.
func (dh *DirectoryHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "directory_profile:update")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	userId := r.PathValue("id")
	if userId == "" {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	var patch model.ProfilePatch
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "directory profile"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	directoryProvider := provider.NewDirectoryProvider()
	directoryService := directoryProvider.GetDirectoryService()
	if _, err := directoryService.UpdateUser(userId, patch); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	traceID := esscontext.GetTraceID(r.Context())
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      userId,
		TargetType:    log.TargetTypeProfile,
		ActionID:      log.ActionUpdateDirectoryProfile,
		TraceID:       traceID,
	})

	profile, err := directoryService.GetUser(userId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if profile == nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.USER_NOT_FOUND.Code,
			Message:     errors2.USER_NOT_FOUND.Message,
			Description: fmt.Sprintf("No directory user found for: %s", userId),
		}, http.StatusNotFound)
		utils.HandleError(w, clientError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, profile, constants.ProfileResource)
}
