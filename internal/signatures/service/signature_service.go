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

// Package service provides signature preview, deployment and rollback. A
// deployment always preserves the signature it replaces, so a rollback is
// possible at any point afterwards.
package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	auditmodel "github.com/wso2/identity-email-signature-service/internal/audit/model"
	auditservice "github.com/wso2/identity-email-signature-service/internal/audit/service"
	directorymodel "github.com/wso2/identity-email-signature-service/internal/directory/model"
	directoryservice "github.com/wso2/identity-email-signature-service/internal/directory/service"
	historymodel "github.com/wso2/identity-email-signature-service/internal/history/model"
	historyservice "github.com/wso2/identity-email-signature-service/internal/history/service"
	mailboxservice "github.com/wso2/identity-email-signature-service/internal/mailbox/service"
	overrideservice "github.com/wso2/identity-email-signature-service/internal/overrides/service"
	"github.com/wso2/identity-email-signature-service/internal/renderer"
	"github.com/wso2/identity-email-signature-service/internal/signatures/model"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	templatemodel "github.com/wso2/identity-email-signature-service/internal/templates/model"
	templateservice "github.com/wso2/identity-email-signature-service/internal/templates/service"
)

// SignatureServiceInterface defines the signature operations.
type SignatureServiceInterface interface {
	Preview(request model.PreviewRequest) (*model.PreviewResult, error)
	DeployUser(userId string) (auditmodel.AuditResult, error)
	DeployAll() (*model.DeploySweepResult, error)
	Rollback(userId string) (*historymodel.SignatureSnapshot, error)
}

// SignatureService is the default implementation of the
// SignatureServiceInterface.
type SignatureService struct {
	directoryService directoryservice.DirectoryServiceInterface
	mailboxService   mailboxservice.MailboxServiceInterface
	templateService  templateservice.TemplateServiceInterface
	overrideService  overrideservice.OverrideServiceInterface
	historyService   historyservice.HistoryServiceInterface
	auditService     auditservice.AuditServiceInterface
}

var (
	instance *SignatureService
	once     sync.Once
)

// GetSignatureService returns the shared signature service instance.
func GetSignatureService() SignatureServiceInterface {

	once.Do(func() {
		instance = &SignatureService{
			directoryService: directoryservice.GetDirectoryService(),
			mailboxService:   mailboxservice.GetMailboxService(),
			templateService:  templateservice.GetTemplateService(),
			overrideService:  overrideservice.GetOverrideService(),
			historyService:   historyservice.GetHistoryService(),
			auditService:     auditservice.GetAuditService(),
		}
	})
	return instance
}

// NewSignatureService builds a signature service around the given
// collaborators. Test use only.
func NewSignatureService(
	directoryService directoryservice.DirectoryServiceInterface,
	mailboxService mailboxservice.MailboxServiceInterface,
	templateService templateservice.TemplateServiceInterface,
	overrideService overrideservice.OverrideServiceInterface,
	historyService historyservice.HistoryServiceInterface,
	auditService auditservice.AuditServiceInterface,
) *SignatureService {

	return &SignatureService{
		directoryService: directoryService,
		mailboxService:   mailboxService,
		templateService:  templateService,
		overrideService:  overrideService,
		historyService:   historyService,
		auditService:     auditService,
	}
}

// Preview renders the signature of a user without touching the mailbox. A
// blank template id previews against the default template.
func (ss *SignatureService) Preview(request model.PreviewRequest) (*model.PreviewResult, error) {

	userId := strings.TrimSpace(request.UserId)
	if userId == "" {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "A user id is required to preview a signature.",
		}, http.StatusBadRequest)
	}

	var template templatemodel.TemplateDefinition
	var err error
	if strings.TrimSpace(request.TemplateId) != "" {
		template, err = ss.templateService.GetTemplate(strings.TrimSpace(request.TemplateId))
	} else {
		template, err = ss.templateService.GetDefaultTemplate()
	}
	if err != nil {
		return nil, err
	}

	profile, err := ss.resolveUser(userId)
	if err != nil {
		return nil, err
	}

	override, err := ss.overrideService.FindOverride(profile.Id)
	if err != nil {
		return nil, err
	}

	return &model.PreviewResult{
		UserId:     profile.Id,
		TemplateId: template.TemplateId,
		Html:       renderer.RenderSignature(template, *profile, override),
		PlainText:  renderer.RenderPlainText(template, *profile, override),
	}, nil
}

// DeployUser deploys the standard signature to one user. The user must
// audit as ready to deploy, or as a match, which re-stamps the standard
// signature. Returns the post-deploy audit result.
func (ss *SignatureService) DeployUser(userId string) (auditmodel.AuditResult, error) {

	result, err := ss.auditService.AuditOne(userId)
	if err != nil {
		return auditmodel.AuditResult{}, err
	}
	if result.Status != auditmodel.StatusReadyToDeploy && result.Status != auditmodel.StatusMatch {
		return auditmodel.AuditResult{}, errors.NewClientError(errors.ErrorMessage{
			Code:    errors.SIGNATURE_NOT_DEPLOYABLE.Code,
			Message: errors.SIGNATURE_NOT_DEPLOYABLE.Message,
			Description: fmt.Sprintf("The signature of user %s cannot be deployed in status %s.",
				result.Profile.DisplayName, result.Status),
		}, http.StatusConflict)
	}

	template, err := ss.templateService.GetDefaultTemplate()
	if err != nil {
		return auditmodel.AuditResult{}, err
	}
	if err := ss.deploySignature(template, result.Profile, result.ExpectedHtml); err != nil {
		return auditmodel.AuditResult{}, err
	}

	log.GetLogger().Info(fmt.Sprintf("Deployed the standard signature for user: %s", result.Profile.Id))
	return ss.auditService.AuditOne(userId)
}

// DeployAll audits the whole directory and deploys the standard signature
// to every user ready for it. Individual failures are reported per user and
// do not abort the sweep.
func (ss *SignatureService) DeployAll() (*model.DeploySweepResult, error) {

	logger := log.GetLogger()

	template, err := ss.templateService.GetDefaultTemplate()
	if err != nil {
		return nil, err
	}
	results, err := ss.auditService.AuditAll(context.Background(), nil)
	if err != nil {
		return nil, err
	}

	sweep := &model.DeploySweepResult{Outcomes: []model.DeployOutcome{}}
	for _, result := range results {
		if result.Status != auditmodel.StatusReadyToDeploy {
			continue
		}
		sweep.Attempted++
		outcome := model.DeployOutcome{
			UserId:      result.Profile.Id,
			Mail:        result.Profile.Mail,
			DisplayName: result.Profile.DisplayName,
		}
		if err := ss.deploySignature(template, result.Profile, result.ExpectedHtml); err != nil {
			outcome.Error = err.Error()
			sweep.Failed++
			logger.Error(fmt.Sprintf("Failed to deploy the signature for user: %s", result.Profile.Id), log.Error(err))
		} else {
			outcome.Deployed = true
			sweep.Deployed++
		}
		sweep.Outcomes = append(sweep.Outcomes, outcome)
	}
	logger.Info(fmt.Sprintf("Signature deployment sweep finished: %d deployed, %d failed of %d attempted",
		sweep.Deployed, sweep.Failed, sweep.Attempted))
	return sweep, nil
}

// Rollback restores the most recent snapshot of a user's signature. The
// value being replaced is preserved as a new snapshot first, so a rollback
// can itself be rolled back.
func (ss *SignatureService) Rollback(userId string) (*historymodel.SignatureSnapshot, error) {

	userId = strings.TrimSpace(userId)
	if userId == "" {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "A user id is required to roll back a signature.",
		}, http.StatusBadRequest)
	}

	profile, err := ss.resolveUser(userId)
	if err != nil {
		return nil, err
	}

	snapshot, err := ss.historyService.GetLatestSnapshot(profile.Id)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.SNAPSHOT_NOT_FOUND.Code,
			Message:     errors.SNAPSHOT_NOT_FOUND.Message,
			Description: fmt.Sprintf("No signature snapshot exists for user: %s", profile.Id),
		}, http.StatusNotFound)
	}

	current, err := ss.mailboxService.GetSignature(profile.Mail)
	if err != nil {
		return nil, err
	}
	if !current.Accessible {
		return nil, errors.NewServerError(errors.MAILBOX_REQUEST, fmt.Errorf("%s", current.AccessError))
	}

	if _, err := ss.historyService.RecordSnapshot(profile.Id, profile.Mail,
		current.HTML, current.Text, constants.SnapshotSourceRollback); err != nil {
		return nil, err
	}
	if _, err := ss.mailboxService.SetSignature(profile.Mail, snapshot.Html, snapshot.PlainText); err != nil {
		return nil, err
	}

	log.GetLogger().Info(fmt.Sprintf("Rolled back the signature for user %s to snapshot %s",
		profile.Id, snapshot.SnapshotId))
	return snapshot, nil
}

// deploySignature preserves whatever signature the mailbox holds, then
// writes the rendered one. The snapshot happens before the write so nothing
// is lost if the write fails.
func (ss *SignatureService) deploySignature(template templatemodel.TemplateDefinition,
	profile directorymodel.Profile, expectedHtml string) error {

	current, err := ss.mailboxService.GetSignature(profile.Mail)
	if err != nil {
		return err
	}
	if !current.Accessible {
		return errors.NewServerError(errors.MAILBOX_REQUEST, fmt.Errorf("%s", current.AccessError))
	}

	if strings.TrimSpace(current.HTML) != "" {
		if _, err := ss.historyService.RecordSnapshot(profile.Id, profile.Mail,
			current.HTML, current.Text, constants.SnapshotSourceDeploy); err != nil {
			return err
		}
	}

	override, err := ss.overrideService.FindOverride(profile.Id)
	if err != nil {
		return err
	}
	plainText := renderer.RenderPlainText(template, profile, override)
	if _, err := ss.mailboxService.SetSignature(profile.Mail, expectedHtml, plainText); err != nil {
		return err
	}
	return nil
}

func (ss *SignatureService) resolveUser(userId string) (*directorymodel.Profile, error) {

	profile, err := ss.directoryService.GetUser(userId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.USER_NOT_FOUND.Code,
			Message:     errors.USER_NOT_FOUND.Message,
			Description: fmt.Sprintf("No directory user found for: %s", userId),
		}, http.StatusNotFound)
	}
	return profile, nil
}
