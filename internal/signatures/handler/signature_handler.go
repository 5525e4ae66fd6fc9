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
	"strconv"

	historyprovider "github.com/wso2/identity-email-signature-service/internal/history/provider"
	"github.com/wso2/identity-email-signature-service/internal/signatures/model"
	"github.com/wso2/identity-email-signature-service/internal/signatures/provider"
	"github.com/wso2/identity-email-signature-service/internal/system/authn"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	esscontext "github.com/wso2/identity-email-signature-service/internal/system/context"
	errors2 "github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/system/security"
	"github.com/wso2/identity-email-signature-service/internal/system/utils"
)

// SignatureHandler exposes the signature preview, deployment, rollback and
// history endpoints.
type SignatureHandler struct{}

func NewSignatureHandler() *SignatureHandler {

	return &SignatureHandler{}
}

// Preview handles rendering a user's signature without touching the mailbox.
func (sh *SignatureHandler) Preview(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature:preview")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var previewRequest model.PreviewRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&previewRequest); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "signature preview"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	signatureProvider := provider.NewSignatureProvider()
	signatureService := signatureProvider.GetSignatureService()
	preview, err := signatureService.Preview(previewRequest)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, preview, constants.SignatureResource)
}

// Deploy handles deploying the standard signature to one user, or to every
// ready user when the request asks for all.
func (sh *SignatureHandler) Deploy(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature:deploy")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var deployRequest model.DeployRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&deployRequest); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "signature deployment"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	if deployRequest.All == (deployRequest.UserId != "") {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Exactly one of user_id or all must be provided.",
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	signatureProvider := provider.NewSignatureProvider()
	signatureService := signatureProvider.GetSignatureService()
	logger := log.GetLogger()
	traceID := esscontext.GetTraceID(r.Context())

	if deployRequest.All {
		sweep, err := signatureService.DeployAll()
		if err != nil {
			utils.HandleError(w, err)
			return
		}
		logger.Audit(log.AuditEvent{
			InitiatorID:   authn.GetUserIDFromRequest(r),
			InitiatorType: log.InitiatorTypeUser,
			TargetID:      "all",
			TargetType:    log.TargetTypeSignature,
			ActionID:      log.ActionDeploySignature,
			TraceID:       traceID,
			Data: map[string]string{
				"deployed": strconv.Itoa(sweep.Deployed),
				"failed":   strconv.Itoa(sweep.Failed),
			},
		})
		utils.RespondJSON(w, http.StatusOK, sweep, constants.SignatureResource)
		return
	}

	result, err := signatureService.DeployUser(deployRequest.UserId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      result.Profile.Id,
		TargetType:    log.TargetTypeSignature,
		ActionID:      log.ActionDeploySignature,
		TraceID:       traceID,
	})
	utils.RespondJSON(w, http.StatusOK, result, constants.SignatureResource)
}

// Rollback handles restoring the most recent signature snapshot of a user.
func (sh *SignatureHandler) Rollback(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature:rollback")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var rollbackRequest model.RollbackRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&rollbackRequest); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "signature rollback"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	signatureProvider := provider.NewSignatureProvider()
	signatureService := signatureProvider.GetSignatureService()
	snapshot, err := signatureService.Rollback(rollbackRequest.UserId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	traceID := esscontext.GetTraceID(r.Context())
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      snapshot.UserId,
		TargetType:    log.TargetTypeSignature,
		ActionID:      log.ActionRollbackSignature,
		TraceID:       traceID,
		Data: map[string]string{
			"snapshot_id": snapshot.SnapshotId,
		},
	})
	utils.RespondJSON(w, http.StatusOK, snapshot, constants.SignatureResource)
}

// GetHistory handles listing the signature snapshots of a user, newest
// first. An optional limit query parameter caps the page size.
func (sh *SignatureHandler) GetHistory(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature:history")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	userId := r.PathValue("userId")
	if userId == "" {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.SNAPSHOT_NOT_FOUND.Code,
			Message:     errors2.SNAPSHOT_NOT_FOUND.Message,
			Description: "Invalid path for signature history retrieval",
		}, http.StatusNotFound)
		utils.HandleError(w, clientError)
		return
	}

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err = strconv.Atoi(rawLimit)
		if err != nil || limit < 0 {
			clientError := errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.BAD_REQUEST.Code,
				Message:     errors2.BAD_REQUEST.Message,
				Description: fmt.Sprintf("Invalid limit query parameter: %s", rawLimit),
			}, http.StatusBadRequest)
			utils.WriteErrorResponse(w, clientError)
			return
		}
	}

	historyService := historyprovider.NewHistoryProvider().GetHistoryService()
	snapshots, err := historyService.GetHistory(userId, limit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snapshots, constants.SignatureResource)
}
