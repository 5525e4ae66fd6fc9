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
	"net/http"

	"github.com/wso2/identity-email-signature-service/internal/audit/provider"
	"github.com/wso2/identity-email-signature-service/internal/system/authn"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	esscontext "github.com/wso2/identity-email-signature-service/internal/system/context"
	errors2 "github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/system/security"
	"github.com/wso2/identity-email-signature-service/internal/system/utils"
	"github.com/wso2/identity-email-signature-service/internal/system/workers"
)

// AuditHandler exposes the signature audit run endpoints.
type AuditHandler struct{}

func NewAuditHandler() *AuditHandler {

	return &AuditHandler{}
}

// TriggerAudit handles starting a new full audit run. The run executes in
// the background; this returns as soon as the run is registered.
func (ah *AuditHandler) TriggerAudit(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "audit_run:create")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	auditProvider := provider.NewAuditProvider()
	registry := auditProvider.GetRunRegistry()
	run, runCtx, err := registry.StartRun()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	workers.EnqueueAuditRun(workers.AuditRunRequest{Run: run, Ctx: runCtx})

	logger := log.GetLogger()
	traceID := esscontext.GetTraceID(r.Context())
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      run.RunId,
		TargetType:    log.TargetTypeAuditRun,
		ActionID:      log.ActionTriggerAuditRun,
		TraceID:       traceID,
	})

	utils.RespondJSON(w, http.StatusAccepted, run, constants.AuditResource)
}

// GetCurrentRun handles fetching the status and progress of the latest run.
func (ah *AuditHandler) GetCurrentRun(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "audit_run:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	auditProvider := provider.NewAuditProvider()
	run, err := auditProvider.GetRunRegistry().GetCurrentRun()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, run, constants.AuditResource)
}

// GetRunResults handles fetching the per-user results of the latest
// finished run.
func (ah *AuditHandler) GetRunResults(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "audit_run:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	auditProvider := provider.NewAuditProvider()
	results, err := auditProvider.GetRunRegistry().GetResults()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, results, constants.AuditResource)
}

// GetRunSummary handles fetching the summary of the latest finished run.
func (ah *AuditHandler) GetRunSummary(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "audit_run:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	auditProvider := provider.NewAuditProvider()
	summary, err := auditProvider.GetRunRegistry().GetSummary()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, summary, constants.AuditResource)
}

// CancelRun handles cancelling the run in progress.
func (ah *AuditHandler) CancelRun(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "audit_run:cancel")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	auditProvider := provider.NewAuditProvider()
	registry := auditProvider.GetRunRegistry()
	runId, err := registry.CancelRun()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	traceID := esscontext.GetTraceID(r.Context())
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      runId,
		TargetType:    log.TargetTypeAuditRun,
		ActionID:      log.ActionCancelAuditRun,
		TraceID:       traceID,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNoContent)
}

// AuditUser handles auditing one user on demand, resolved by id or email.
func (ah *AuditHandler) AuditUser(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "audit_run:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	idOrEmail := r.PathValue("idOrEmail")
	if idOrEmail == "" {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.USER_NOT_FOUND.Code,
			Message:     errors2.USER_NOT_FOUND.Message,
			Description: "Invalid path for user audit",
		}, http.StatusNotFound)
		utils.HandleError(w, clientError)
		return
	}

	auditProvider := provider.NewAuditProvider()
	auditService := auditProvider.GetAuditService()
	result, err := auditService.AuditOne(idOrEmail)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result, constants.AuditResource)
}
