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

package store

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wso2/identity-email-signature-service/internal/system/database/lock"
	"github.com/wso2/identity-email-signature-service/internal/system/database/provider"
	"github.com/wso2/identity-email-signature-service/internal/system/database/scripts"
	errors2 "github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/templates/model"
)

// UpsertTemplate inserts or replaces a signature template. The write runs in
// a transaction holding the template's advisory lock, so concurrent admin
// saves to the same template resolve last-writer-wins without interleaving.
func UpsertTemplate(template model.TemplateDefinition) error {

	logger := log.GetLogger()

	fieldsJSON, err := json.Marshal(template.Fields)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to marshal field specs for template: %s", template.TemplateId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for saving template: %s", template.TemplateId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := lock.BeginLockedTx(dbClient.BeginTx, "lock:template:"+template.TemplateId)
	if err != nil {
		return err
	}

	query := scripts.UpsertTemplate[provider.NewDBProvider().GetDBType()]
	_, err = tx.Exec(query,
		template.TemplateId, template.Name, template.SchemaVersion, template.WidthPx,
		template.FontFamily, template.FontSizePx, template.PrimaryColor, template.SecondaryColor,
		template.DividerColor, template.LogoImage, template.LogoWidthPx, template.BannerImage,
		template.BannerWidthPx, template.BannerURL, template.AddressLine, template.DisclaimerText,
		template.IsDefault, string(fieldsJSON), template.CreatedAt, template.UpdatedAt)
	if err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to save template: %s", template.TemplateId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit template save: %s", template.TemplateId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info("Successfully saved template with template_id: " + template.TemplateId)
	return nil
}

// GetTemplateById fetches one template. Returns nil when no template matches.
func GetTemplateById(templateId string) (*model.TemplateDefinition, error) {

	logger := log.GetLogger()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching template: %s", templateId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetTemplateById[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, templateId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching template with template_id: %s", templateId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No template found for template_id: %s", templateId))
		return nil, nil
	}

	template, err := buildTemplate(results[0])
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// GetDefaultTemplate fetches the designated default template. Returns nil
// when no template is marked default.
func GetDefaultTemplate() (*model.TemplateDefinition, error) {

	logger := log.GetLogger()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := "Failed to get database client for fetching the default template"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetDefaultTemplate[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed in fetching the default template"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		logger.Debug("No default template designated yet")
		return nil, nil
	}

	template, err := buildTemplate(results[0])
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// GetAllTemplates fetches every saved template ordered by name.
func GetAllTemplates() ([]model.TemplateDefinition, error) {

	logger := log.GetLogger()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := "Failed to get database client for fetching templates"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetAllTemplates[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed in fetching templates"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}

	templates := make([]model.TemplateDefinition, 0, len(results))
	for _, row := range results {
		template, err := buildTemplate(row)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, nil
}

// DeleteTemplateById removes a non-default template. Returns false when no
// row was deleted, either because the id is unknown or because the template
// is the designated default.
func DeleteTemplateById(templateId string) (bool, error) {

	logger := log.GetLogger()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for deleting template: %s", templateId)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := lock.BeginLockedTx(dbClient.BeginTx, "lock:template:"+templateId)
	if err != nil {
		return false, err
	}

	query := scripts.DeleteTemplateById[provider.NewDBProvider().GetDBType()]
	result, err := tx.Exec(query, templateId)
	if err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to delete template: %s", templateId)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}
	affected, _ := result.RowsAffected()

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit template deletion: %s", templateId)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}
	if affected == 0 {
		return false, nil
	}

	logger.Info("Successfully deleted template with template_id: " + templateId)
	return true, nil
}

// SetDefaultTemplate atomically moves the default designation to the given
// template. The clear and mark statements run in one transaction so no state
// with zero or two defaults is ever visible.
func SetDefaultTemplate(templateId string) error {

	logger := log.GetLogger()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for defaulting template: %s", templateId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := lock.BeginLockedTx(dbClient.BeginTx, "lock:template:default")
	if err != nil {
		return err
	}

	dbType := provider.NewDBProvider().GetDBType()
	if _, err := tx.Exec(scripts.ClearDefaultTemplate[dbType]); err != nil {
		_ = tx.Rollback()
		errorMsg := "Failed to clear the current default template"
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}

	result, err := tx.Exec(scripts.MarkDefaultTemplate[dbType], templateId, time.Now().Unix())
	if err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to mark template as default: %s", templateId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		_ = tx.Rollback()
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.TEMPLATE_NOT_FOUND.Code,
			Message:     errors2.TEMPLATE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No template found for template_id: %s", templateId),
		}, http.StatusNotFound)
	}

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit default designation for template: %s", templateId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info("Successfully designated default template with template_id: " + templateId)
	return nil
}

// buildTemplate maps a result row onto a TemplateDefinition.
func buildTemplate(row map[string]interface{}) (model.TemplateDefinition, error) {

	template := model.TemplateDefinition{
		TemplateId:     rowString(row, "template_id"),
		Name:           rowString(row, "name"),
		SchemaVersion:  rowInt(row, "schema_version"),
		WidthPx:        rowInt(row, "width_px"),
		FontFamily:     rowString(row, "font_family"),
		FontSizePx:     rowInt(row, "font_size_px"),
		PrimaryColor:   rowString(row, "primary_color"),
		SecondaryColor: rowString(row, "secondary_color"),
		DividerColor:   rowString(row, "divider_color"),
		LogoImage:      rowString(row, "logo_image"),
		LogoWidthPx:    rowInt(row, "logo_width_px"),
		BannerImage:    rowString(row, "banner_image"),
		BannerWidthPx:  rowInt(row, "banner_width_px"),
		BannerURL:      rowString(row, "banner_url"),
		AddressLine:    rowString(row, "address_line"),
		DisclaimerText: rowString(row, "disclaimer_text"),
		IsDefault:      rowBool(row, "is_default"),
		CreatedAt:      rowInt64(row, "created_at"),
		UpdatedAt:      rowInt64(row, "updated_at"),
	}

	fieldsJSON := rowString(row, "fields")
	if fieldsJSON != "" {
		if err := json.Unmarshal([]byte(fieldsJSON), &template.Fields); err != nil {
			errorMsg := fmt.Sprintf("Failed to unmarshal field specs for template: %s", template.TemplateId)
			log.GetLogger().Debug(errorMsg, log.Error(err))
			return model.TemplateDefinition{}, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UNMARSHAL_JSON.Code,
				Message:     errors2.UNMARSHAL_JSON.Message,
				Description: errorMsg,
			}, err)
		}
	}
	return template, nil
}

func rowString(row map[string]interface{}, key string) string {

	switch v := row[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func rowInt(row map[string]interface{}, key string) int {

	if v, ok := row[key].(int64); ok {
		return int(v)
	}
	return 0
}

func rowInt64(row map[string]interface{}, key string) int64 {

	if v, ok := row[key].(int64); ok {
		return v
	}
	return 0
}

func rowBool(row map[string]interface{}, key string) bool {

	if v, ok := row[key].(bool); ok {
		return v
	}
	return false
}
