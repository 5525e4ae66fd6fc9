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

	"github.com/wso2/identity-email-signature-service/internal/system/authn"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	esscontext "github.com/wso2/identity-email-signature-service/internal/system/context"
	errors2 "github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/system/security"
	"github.com/wso2/identity-email-signature-service/internal/system/utils"
	"github.com/wso2/identity-email-signature-service/internal/templates/model"
	"github.com/wso2/identity-email-signature-service/internal/templates/provider"
)

// TemplateHandler exposes the signature template management endpoints.
type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {

	return &TemplateHandler{}
}

// AddTemplate handles creating a new signature template.
func (th *TemplateHandler) AddTemplate(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature_template:create")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var templateInRequest model.TemplateDefinition
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&templateInRequest); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "signature template"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	templateProvider := provider.NewTemplateProvider()
	templateService := templateProvider.GetTemplateService()
	addedTemplate, err := templateService.AddTemplate(templateInRequest)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	traceID := esscontext.GetTraceID(r.Context())
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      addedTemplate.TemplateId,
		TargetType:    log.TargetTypeTemplate,
		ActionID:      log.ActionAddTemplate,
		TraceID:       traceID,
		Data: map[string]string{
			"template_name": addedTemplate.Name,
		},
	})

	utils.RespondJSON(w, http.StatusCreated, addedTemplate, constants.TemplateResource)
}

// GetTemplates handles listing every template as metadata without the
// embedded images.
func (th *TemplateHandler) GetTemplates(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature_template:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	templateProvider := provider.NewTemplateProvider()
	templateService := templateProvider.GetTemplateService()
	templates, err := templateService.GetTemplates()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	templatesResponse := make([]model.TemplateMetadata, 0, len(templates))
	for i := range templates {
		templatesResponse = append(templatesResponse, templates[i].Metadata())
	}
	utils.RespondJSON(w, http.StatusOK, templatesResponse, constants.TemplateResource)
}

// GetTemplate handles fetching a single template by id.
func (th *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature_template:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	templateId := r.PathValue("templateId")
	if templateId == "" {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.TEMPLATE_NOT_FOUND.Code,
			Message:     errors2.TEMPLATE_NOT_FOUND.Message,
			Description: "Invalid path for template retrieval",
		}, http.StatusNotFound)
		utils.HandleError(w, clientError)
		return
	}

	templateProvider := provider.NewTemplateProvider()
	templateService := templateProvider.GetTemplateService()
	template, err := templateService.GetTemplate(templateId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, template, constants.TemplateResource)
}

// GetDefaultTemplate handles fetching the default template.
func (th *TemplateHandler) GetDefaultTemplate(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature_template:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	templateProvider := provider.NewTemplateProvider()
	templateService := templateProvider.GetTemplateService()
	template, err := templateService.GetDefaultTemplate()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, template, constants.TemplateResource)
}

// SetDefaultTemplate handles designating a template as the default.
func (th *TemplateHandler) SetDefaultTemplate(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature_template:update")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	templateId := r.PathValue("templateId")
	if templateId == "" {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	templateProvider := provider.NewTemplateProvider()
	templateService := templateProvider.GetTemplateService()
	if err := templateService.SetDefaultTemplate(templateId); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	traceID := esscontext.GetTraceID(r.Context())
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      templateId,
		TargetType:    log.TargetTypeTemplate,
		ActionID:      log.ActionSetDefaultTemplate,
		TraceID:       traceID,
	})

	template, err := templateService.GetTemplate(templateId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, template, constants.TemplateResource)
}

// UpdateTemplate handles replacing a template definition.
func (th *TemplateHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature_template:update")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	templateId := r.PathValue("templateId")
	if templateId == "" {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	var templateInRequest model.TemplateDefinition
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&templateInRequest); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "signature template"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	templateProvider := provider.NewTemplateProvider()
	templateService := templateProvider.GetTemplateService()
	updatedTemplate, err := templateService.UpdateTemplate(templateId, templateInRequest)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	traceID := esscontext.GetTraceID(r.Context())
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      templateId,
		TargetType:    log.TargetTypeTemplate,
		ActionID:      log.ActionUpdateTemplate,
		TraceID:       traceID,
		Data: map[string]string{
			"template_name": updatedTemplate.Name,
		},
	})

	utils.RespondJSON(w, http.StatusOK, updatedTemplate, constants.TemplateResource)
}

// DeleteTemplate handles removing a template. The default template cannot be
// deleted.
func (th *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "signature_template:delete")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	templateId := r.PathValue("templateId")
	if templateId == "" {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	templateProvider := provider.NewTemplateProvider()
	templateService := templateProvider.GetTemplateService()
	if err := templateService.DeleteTemplate(templateId); err != nil {
		utils.HandleError(w, err)
		return
	}

	logger := log.GetLogger()
	traceID := esscontext.GetTraceID(r.Context())
	logger.Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      templateId,
		TargetType:    log.TargetTypeTemplate,
		ActionID:      log.ActionDeleteTemplate,
		TraceID:       traceID,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNoContent)
}
