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
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/templates/model"
	"github.com/wso2/identity-email-signature-service/internal/templates/store"
)

// TemplateServiceInterface defines the operations on signature templates.
// Every read path funnels through the load pipeline: schema migration, field
// reconciliation, and persistence of whatever those changed.
type TemplateServiceInterface interface {
	AddTemplate(template model.TemplateDefinition) (model.TemplateDefinition, error)
	GetTemplate(templateId string) (model.TemplateDefinition, error)
	GetDefaultTemplate() (model.TemplateDefinition, error)
	GetTemplates() ([]model.TemplateDefinition, error)
	UpdateTemplate(templateId string, template model.TemplateDefinition) (model.TemplateDefinition, error)
	DeleteTemplate(templateId string) error
	SetDefaultTemplate(templateId string) error
}

// TemplateService is the default implementation of the TemplateServiceInterface.
type TemplateService struct{}

// GetTemplateService creates a new instance of TemplateService.
func GetTemplateService() TemplateServiceInterface {

	return &TemplateService{}
}

// AddTemplate validates and stores a new signature template. New templates
// are never created as the default; designation moves only through
// SetDefaultTemplate.
func (ts *TemplateService) AddTemplate(template model.TemplateDefinition) (model.TemplateDefinition, error) {

	if err := validateTemplate(&template); err != nil {
		return model.TemplateDefinition{}, err
	}

	if template.TemplateId == "" {
		template.TemplateId = uuid.New().String()
	}
	template.SchemaVersion = model.CurrentSchemaVersion
	template.IsDefault = false
	now := time.Now().Unix()
	template.CreatedAt = now
	template.UpdatedAt = now

	if err := store.UpsertTemplate(template); err != nil {
		return model.TemplateDefinition{}, err
	}
	return template, nil
}

// GetTemplate fetches one template by id through the load pipeline.
func (ts *TemplateService) GetTemplate(templateId string) (model.TemplateDefinition, error) {

	stored, err := store.GetTemplateById(templateId)
	if err != nil {
		return model.TemplateDefinition{}, err
	}
	if stored == nil {
		return model.TemplateDefinition{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.TEMPLATE_NOT_FOUND.Code,
			Message:     errors.TEMPLATE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No template found for template_id: %s", templateId),
		}, http.StatusNotFound)
	}
	return ts.loadTemplate(*stored)
}

// GetDefaultTemplate fetches the designated default template. A deployment
// that has never saved one gets the canonical default created on first read
// so audits always have a template to render against.
func (ts *TemplateService) GetDefaultTemplate() (model.TemplateDefinition, error) {

	stored, err := store.GetDefaultTemplate()
	if err != nil {
		return model.TemplateDefinition{}, err
	}
	if stored == nil {
		canonical := model.DefaultTemplateDefinition()
		canonical.TemplateId = uuid.New().String()
		now := time.Now().Unix()
		canonical.CreatedAt = now
		canonical.UpdatedAt = now
		if err := store.UpsertTemplate(canonical); err != nil {
			return model.TemplateDefinition{}, err
		}
		log.GetLogger().Info("Created the canonical default template with template_id: " + canonical.TemplateId)
		return canonical, nil
	}
	return ts.loadTemplate(*stored)
}

// GetTemplates fetches every saved template through the load pipeline.
func (ts *TemplateService) GetTemplates() ([]model.TemplateDefinition, error) {

	stored, err := store.GetAllTemplates()
	if err != nil {
		return nil, err
	}

	templates := make([]model.TemplateDefinition, 0, len(stored))
	for _, t := range stored {
		loaded, err := ts.loadTemplate(t)
		if err != nil {
			return nil, err
		}
		templates = append(templates, loaded)
	}
	return templates, nil
}

// UpdateTemplate replaces a stored template's content. Creation time and the
// default designation survive the update.
func (ts *TemplateService) UpdateTemplate(templateId string, template model.TemplateDefinition) (model.TemplateDefinition, error) {

	existing, err := store.GetTemplateById(templateId)
	if err != nil {
		return model.TemplateDefinition{}, err
	}
	if existing == nil {
		return model.TemplateDefinition{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.TEMPLATE_NOT_FOUND.Code,
			Message:     errors.TEMPLATE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No template found for template_id: %s", templateId),
		}, http.StatusNotFound)
	}

	if err := validateTemplate(&template); err != nil {
		return model.TemplateDefinition{}, err
	}

	template.TemplateId = templateId
	template.SchemaVersion = model.CurrentSchemaVersion
	template.IsDefault = existing.IsDefault
	template.CreatedAt = existing.CreatedAt
	template.UpdatedAt = time.Now().Unix()

	if err := store.UpsertTemplate(template); err != nil {
		return model.TemplateDefinition{}, err
	}
	return template, nil
}

// DeleteTemplate removes a saved template. The designated default can never
// be deleted.
func (ts *TemplateService) DeleteTemplate(templateId string) error {

	existing, err := store.GetTemplateById(templateId)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.TEMPLATE_NOT_FOUND.Code,
			Message:     errors.TEMPLATE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No template found for template_id: %s", templateId),
		}, http.StatusNotFound)
	}
	if existing.IsDefault {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.DEFAULT_TEMPLATE_DELETE.Code,
			Message:     errors.DEFAULT_TEMPLATE_DELETE.Message,
			Description: errors.DEFAULT_TEMPLATE_DELETE.Description,
		}, http.StatusConflict)
	}

	deleted, err := store.DeleteTemplateById(templateId)
	if err != nil {
		return err
	}
	if !deleted {
		// The row existed a moment ago, so it must have become the default
		// concurrently. Surface that instead of a spurious not-found.
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.DEFAULT_TEMPLATE_DELETE.Code,
			Message:     errors.DEFAULT_TEMPLATE_DELETE.Message,
			Description: errors.DEFAULT_TEMPLATE_DELETE.Description,
		}, http.StatusConflict)
	}
	return nil
}

// SetDefaultTemplate moves the default designation to the given template.
func (ts *TemplateService) SetDefaultTemplate(templateId string) error {

	return store.SetDefaultTemplate(templateId)
}

// loadTemplate runs schema migration and field reconciliation over a stored
// template, persisting the result when either changed it.
func (ts *TemplateService) loadTemplate(stored model.TemplateDefinition) (model.TemplateDefinition, error) {

	migrated, migrationChanged, err := MigrateTemplate(stored)
	if err != nil {
		return model.TemplateDefinition{}, err
	}

	reconciled, reconcileChanged := ReconcileFields(migrated)
	if migrationChanged || reconcileChanged {
		reconciled.UpdatedAt = time.Now().Unix()
		if err := store.UpsertTemplate(reconciled); err != nil {
			return model.TemplateDefinition{}, err
		}
		log.GetLogger().Debug("Persisted migrated template with template_id: " + reconciled.TemplateId)
	}
	return reconciled, nil
}

// validateTemplate checks and normalizes a template before it is stored.
// Field ids are lowercased and custom field markers are aligned with the
// canonical field set.
func validateTemplate(template *model.TemplateDefinition) error {

	if strings.TrimSpace(template.Name) == "" {
		return templateValidationError("Template name is required")
	}
	if template.WidthPx < 0 || template.FontSizePx < 0 {
		return templateValidationError("Template width and font size cannot be negative")
	}
	if template.LogoWidthPx < 0 || template.BannerWidthPx < 0 {
		return templateValidationError("Image widths cannot be negative")
	}

	seen := map[string]bool{}
	for i := range template.Fields {
		fieldId := strings.ToLower(strings.TrimSpace(template.Fields[i].FieldId))
		if fieldId == "" {
			return templateValidationError("Every field spec requires a field_id")
		}
		if seen[fieldId] {
			return templateValidationError(fmt.Sprintf("Duplicate field_id: %s", fieldId))
		}
		seen[fieldId] = true
		template.Fields[i].FieldId = fieldId
		template.Fields[i].IsCustomField = !constants.CanonicalFieldIds[fieldId]
		if template.Fields[i].FontSizePx < 0 {
			template.Fields[i].FontSizePx = 0
		}
	}
	return nil
}

func templateValidationError(description string) error {

	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.TEMPLATE_VALIDATION.Code,
		Message:     errors.TEMPLATE_VALIDATION.Message,
		Description: description,
	}, http.StatusBadRequest)
}
