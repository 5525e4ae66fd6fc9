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

// Package service implements the signature audit: per-user classification
// against the default template, the sequential orchestrator over the whole
// directory, and the summary reduction.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/wso2/identity-email-signature-service/internal/audit/model"
	directorymodel "github.com/wso2/identity-email-signature-service/internal/directory/model"
	directoryservice "github.com/wso2/identity-email-signature-service/internal/directory/service"
	mailboxservice "github.com/wso2/identity-email-signature-service/internal/mailbox/service"
	overrideservice "github.com/wso2/identity-email-signature-service/internal/overrides/service"
	"github.com/wso2/identity-email-signature-service/internal/renderer"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	templatemodel "github.com/wso2/identity-email-signature-service/internal/templates/model"
	templateservice "github.com/wso2/identity-email-signature-service/internal/templates/service"
)

// AuditServiceInterface defines the audit operations.
type AuditServiceInterface interface {
	AuditAll(ctx context.Context, progress model.ProgressFunc) ([]model.AuditResult, error)
	AuditOne(idOrEmail string) (model.AuditResult, error)
	ClassifyUser(profile directorymodel.Profile, template templatemodel.TemplateDefinition) model.AuditResult
	Summarize(results []model.AuditResult, duration time.Duration) model.AuditSummary
}

// AuditService is the default implementation of the AuditServiceInterface.
type AuditService struct {
	directoryService directoryservice.DirectoryServiceInterface
	mailboxService   mailboxservice.MailboxServiceInterface
	templateService  templateservice.TemplateServiceInterface
	overrideService  overrideservice.OverrideServiceInterface
}

var (
	instance *AuditService
	once     sync.Once
)

// GetAuditService returns the shared audit service instance.
func GetAuditService() AuditServiceInterface {

	once.Do(func() {
		instance = &AuditService{
			directoryService: directoryservice.GetDirectoryService(),
			mailboxService:   mailboxservice.GetMailboxService(),
			templateService:  templateservice.GetTemplateService(),
			overrideService:  overrideservice.GetOverrideService(),
		}
	})
	return instance
}

// NewAuditService builds an audit service around the given collaborators.
// Test use only.
func NewAuditService(
	directoryService directoryservice.DirectoryServiceInterface,
	mailboxService mailboxservice.MailboxServiceInterface,
	templateService templateservice.TemplateServiceInterface,
	overrideService overrideservice.OverrideServiceInterface,
) *AuditService {

	return &AuditService{
		directoryService: directoryService,
		mailboxService:   mailboxService,
		templateService:  templateService,
		overrideService:  overrideService,
	}
}

// AuditAll classifies every auditable directory user sequentially against
// the default template. The progress callback is invoked after each user.
// Cancellation is cooperative: the context is checked before each user and
// the results collected so far are returned with the context's error.
func (as *AuditService) AuditAll(ctx context.Context, progress model.ProgressFunc) ([]model.AuditResult, error) {

	logger := log.GetLogger()

	template, err := as.templateService.GetDefaultTemplate()
	if err != nil {
		return nil, err
	}
	users, err := as.directoryService.ListUsers()
	if err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Starting signature audit over %d users", len(users)))
	results := make([]model.AuditResult, 0, len(users))
	for i, user := range users {
		select {
		case <-ctx.Done():
			logger.Info(fmt.Sprintf("Signature audit cancelled after %d of %d users", i, len(users)))
			return results, ctx.Err()
		default:
		}

		results = append(results, as.ClassifyUser(user, template))
		if progress != nil {
			progress(i+1, len(users), user.DisplayName)
		}
	}
	logger.Info(fmt.Sprintf("Signature audit completed over %d users", len(users)))
	return results, nil
}

// AuditOne classifies a single user resolved by id or email address. An
// unresolvable user yields an ERROR result carrying a synthetic profile, not
// a failure; storage failures while loading the template are returned as
// errors.
func (as *AuditService) AuditOne(idOrEmail string) (model.AuditResult, error) {

	template, err := as.templateService.GetDefaultTemplate()
	if err != nil {
		return model.AuditResult{}, err
	}

	profile, err := as.directoryService.GetUser(idOrEmail)
	if err != nil {
		return errorResult(syntheticProfile(idOrEmail),
			fmt.Sprintf("Failed to resolve the user in the directory: %s", err.Error())), nil
	}
	if profile == nil {
		return errorResult(syntheticProfile(idOrEmail),
			fmt.Sprintf("No directory user found for: %s", idOrEmail)), nil
	}

	return as.ClassifyUser(*profile, template), nil
}

// ClassifyUser computes the terminal compliance status of one user. Failures
// of individual collaborators are captured in the result and never
// propagated.
func (as *AuditService) ClassifyUser(profile directorymodel.Profile, template templatemodel.TemplateDefinition) model.AuditResult {

	result := model.AuditResult{
		Profile:   profile,
		AuditedAt: time.Now().Unix(),
	}

	if strings.TrimSpace(profile.Mail) == "" {
		result.Status = model.StatusError
		result.ErrorMessage = fmt.Sprintf("User %s has no mail address, the mailbox signature cannot be audited.", profile.DisplayName)
		return result
	}

	override, err := as.overrideService.FindOverride(profile.Id)
	if err != nil {
		result.Status = model.StatusError
		result.ErrorMessage = fmt.Sprintf("Failed to load the signature override: %s", err.Error())
		return result
	}

	result.ExpectedHtml = renderer.RenderSignature(template, profile, override)

	// Completeness is judged on the directory profile itself; overrides and
	// hidden fields are rendering choices and do not mask directory gaps.
	missingJobTitle := strings.TrimSpace(profile.JobTitle) == ""
	missingDepartment := strings.TrimSpace(profile.Department) == ""
	if missingJobTitle {
		result.Discrepancies = append(result.Discrepancies, model.Discrepancy{
			Field:       constants.DiscrepancyJobTitle,
			Description: "The directory profile has no job title.",
		})
	}
	if missingDepartment {
		result.Discrepancies = append(result.Discrepancies, model.Discrepancy{
			Field:       constants.DiscrepancyDepartment,
			Description: "The directory profile has no department.",
		})
	}
	if strings.TrimSpace(profile.BusinessPhone) == "" && strings.TrimSpace(profile.MobilePhone) == "" {
		result.Discrepancies = append(result.Discrepancies, model.Discrepancy{
			Field:       constants.DiscrepancyPhone,
			Description: "The directory profile has neither a business phone nor a mobile phone.",
		})
	}

	signature, err := as.mailboxService.GetSignature(profile.Mail)
	switch {
	case err != nil:
		result.Discrepancies = append(result.Discrepancies, model.Discrepancy{
			Field:       constants.DiscrepancyMailboxAccess,
			Description: fmt.Sprintf("Failed to read the mailbox signature: %s", err.Error()),
		})
	case !signature.Accessible:
		result.Discrepancies = append(result.Discrepancies, model.Discrepancy{
			Field:       constants.DiscrepancyMailboxAccess,
			Description: signature.AccessError,
		})
	default:
		result.ObservedHtml = signature.HTML
		if strings.TrimSpace(result.ObservedHtml) != "" {
			result.Discrepancies = append(result.Discrepancies,
				CompareSignatures(result.ExpectedHtml, result.ObservedHtml)...)
		}
	}

	switch {
	case hasDeniedMailboxAccess(result.Discrepancies):
		result.Status = model.StatusNotAccessible
	case missingJobTitle || missingDepartment:
		result.Status = model.StatusIncomplete
	case strings.TrimSpace(result.ObservedHtml) != "":
		result.Status = model.StatusMatch
	default:
		result.Status = model.StatusReadyToDeploy
	}
	return result
}

// Summarize reduces one run's results to per-status counts and derived
// compliance metrics. Pure; defined for an empty result list.
func (as *AuditService) Summarize(results []model.AuditResult, duration time.Duration) model.AuditSummary {

	summary := model.AuditSummary{
		TotalUsers:      len(results),
		GeneratedAt:     time.Now().Unix(),
		DurationSeconds: duration.Seconds(),
	}
	for _, result := range results {
		switch result.Status {
		case model.StatusMatch:
			summary.MatchCount++
		case model.StatusMissing:
			summary.MissingCount++
		case model.StatusOutdated:
			summary.OutdatedCount++
		case model.StatusInconsistent:
			summary.InconsistentCount++
		case model.StatusError:
			summary.ErrorCount++
		case model.StatusNotAccessible:
			summary.NotAccessibleCount++
		case model.StatusIncomplete:
			summary.IncompleteCount++
		case model.StatusReadyToDeploy:
			summary.ReadyToDeployCount++
		}
	}

	summary.ProfileCompleteCount = summary.MatchCount + summary.ReadyToDeployCount
	if summary.TotalUsers > 0 {
		percentage := float64(summary.ProfileCompleteCount) / float64(summary.TotalUsers) * 100
		summary.ProfileCompliancePercentage = math.Round(percentage*10) / 10
	}
	return summary
}

// hasDeniedMailboxAccess reports whether a mailbox access discrepancy
// indicates the mailbox denied access, as opposed to a transient failure.
func hasDeniedMailboxAccess(discrepancies []model.Discrepancy) bool {

	for _, discrepancy := range discrepancies {
		if discrepancy.Field != constants.DiscrepancyMailboxAccess {
			continue
		}
		if strings.Contains(strings.ToLower(discrepancy.Description), "denied") {
			return true
		}
	}
	return false
}

func syntheticProfile(idOrEmail string) directorymodel.Profile {

	return directorymodel.Profile{
		Id:          idOrEmail,
		DisplayName: idOrEmail,
	}
}

func errorResult(profile directorymodel.Profile, message string) model.AuditResult {

	return model.AuditResult{
		Profile:      profile,
		Status:       model.StatusError,
		ErrorMessage: message,
		AuditedAt:    time.Now().Unix(),
	}
}
