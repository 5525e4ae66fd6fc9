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
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/identity-email-signature-service/internal/audit/model"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
)

// RunRegistry tracks the audit run lifecycle. At most one run is active at
// a time; the latest run and the results of the latest finished run remain
// readable until the next run replaces them. State lives in memory only and
// does not survive a restart.
type RunRegistry struct {
	mu      sync.Mutex
	current *model.AuditRun
	results []model.AuditResult
	cancel  context.CancelFunc
}

var (
	registryInstance *RunRegistry
	registryOnce     sync.Once
)

// GetRunRegistry returns the shared run registry instance.
func GetRunRegistry() *RunRegistry {

	registryOnce.Do(func() {
		registryInstance = &RunRegistry{}
	})
	return registryInstance
}

// StartRun registers a new audit run and returns it together with the
// context the run executor must honor. A run already in progress yields a
// conflict error.
func (rr *RunRegistry) StartRun() (model.AuditRun, context.Context, error) {

	rr.mu.Lock()
	defer rr.mu.Unlock()

	if rr.current != nil && rr.current.Status == constants.RunStateRunning {
		return model.AuditRun{}, nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.AUDIT_RUN_IN_PROGRESS.Code,
			Message:     errors.AUDIT_RUN_IN_PROGRESS.Message,
			Description: "An audit run is already in progress. Cancel it or wait for it to finish.",
		}, http.StatusConflict)
	}

	ctx, cancel := context.WithCancel(context.Background())
	rr.current = &model.AuditRun{
		RunId:     uuid.New().String(),
		Status:    constants.RunStateRunning,
		StartedAt: time.Now().Unix(),
	}
	rr.cancel = cancel
	return *rr.current, ctx, nil
}

// UpdateProgress records how far the active run has come. Reports arriving
// after the run finished are dropped.
func (rr *RunRegistry) UpdateProgress(processed, total int, currentUser string) {

	rr.mu.Lock()
	defer rr.mu.Unlock()

	if rr.current == nil || rr.current.Status != constants.RunStateRunning {
		return
	}
	rr.current.Progress = model.RunProgress{
		Processed:   processed,
		Total:       total,
		CurrentUser: currentUser,
	}
}

// CompleteRun finalizes the active run with its results and summary.
func (rr *RunRegistry) CompleteRun(results []model.AuditResult, summary model.AuditSummary) {

	rr.finishRun(constants.RunStateCompleted, results, &summary, "")
}

// RecordCancellation finalizes a cancelled run. The results gathered before
// the cancellation stay readable, the summary covers only those.
func (rr *RunRegistry) RecordCancellation(results []model.AuditResult, summary model.AuditSummary) {

	rr.finishRun(constants.RunStateCancelled, results, &summary, "")
}

// FailRun finalizes the active run after an unrecoverable failure.
func (rr *RunRegistry) FailRun(errMsg string) {

	rr.finishRun(constants.RunStateFailed, nil, nil, errMsg)
}

// CancelRun requests cancellation of the run in progress and returns its id.
// The run keeps its running state until the executor observes the
// cancellation and records the partial results.
func (rr *RunRegistry) CancelRun() (string, error) {

	rr.mu.Lock()
	defer rr.mu.Unlock()

	if rr.current == nil || rr.current.Status != constants.RunStateRunning || rr.cancel == nil {
		return "", errors.NewClientError(errors.ErrorMessage{
			Code:        errors.AUDIT_RUN_NOT_FOUND.Code,
			Message:     errors.AUDIT_RUN_NOT_FOUND.Message,
			Description: "No audit run is currently in progress.",
		}, http.StatusNotFound)
	}
	rr.cancel()
	return rr.current.RunId, nil
}

// GetCurrentRun returns the latest run without its result list.
func (rr *RunRegistry) GetCurrentRun() (*model.AuditRun, error) {

	rr.mu.Lock()
	defer rr.mu.Unlock()

	if rr.current == nil {
		return nil, noRunError()
	}
	run := *rr.current
	run.Results = nil
	return &run, nil
}

// GetResults returns the per-user results of the latest finished run.
func (rr *RunRegistry) GetResults() ([]model.AuditResult, error) {

	rr.mu.Lock()
	defer rr.mu.Unlock()

	if rr.results == nil {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.AUDIT_RUN_NOT_FOUND.Code,
			Message:     errors.AUDIT_RUN_NOT_FOUND.Message,
			Description: "No finished audit run is available yet.",
		}, http.StatusNotFound)
	}
	results := make([]model.AuditResult, len(rr.results))
	copy(results, rr.results)
	return results, nil
}

// GetSummary returns the summary of the latest finished run.
func (rr *RunRegistry) GetSummary() (*model.AuditSummary, error) {

	rr.mu.Lock()
	defer rr.mu.Unlock()

	if rr.current == nil || rr.current.Summary == nil {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.AUDIT_RUN_NOT_FOUND.Code,
			Message:     errors.AUDIT_RUN_NOT_FOUND.Message,
			Description: "No audit summary is available yet.",
		}, http.StatusNotFound)
	}
	summary := *rr.current.Summary
	return &summary, nil
}

func (rr *RunRegistry) finishRun(state string, results []model.AuditResult, summary *model.AuditSummary, errMsg string) {

	rr.mu.Lock()
	defer rr.mu.Unlock()

	if rr.current == nil || rr.current.Status != constants.RunStateRunning {
		return
	}
	now := time.Now().Unix()
	rr.current.Status = state
	rr.current.CompletedAt = now
	rr.current.Progress.CurrentUser = ""
	rr.current.Summary = summary
	rr.current.ErrorMsg = errMsg
	if results != nil {
		rr.results = results
	}
	if rr.cancel != nil {
		rr.cancel()
		rr.cancel = nil
	}
}

func noRunError() error {

	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.AUDIT_RUN_NOT_FOUND.Code,
		Message:     errors.AUDIT_RUN_NOT_FOUND.Message,
		Description: "No audit run has been started yet.",
	}, http.StatusNotFound)
}
