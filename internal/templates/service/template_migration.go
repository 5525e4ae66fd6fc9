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

	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	errors2 "github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/templates/model"
)

// templateMigration is one forward schema step. Each step is a pure
// transformation from one schema version to the next.
type templateMigration struct {
	toVersion int
	apply     func(model.TemplateDefinition) (model.TemplateDefinition, error)
}

// Registered migrations, ascending by target version. A stored template at
// version N gets every step with toVersion > N applied exactly once.
var templateMigrations = []templateMigration{
	{toVersion: 2, apply: migrateLayoutWidths},
	{toVersion: 3, apply: migrateFontDefaults},
	{toVersion: 4, apply: migrateExtensionFields},
}

// MigrateTemplate brings a stored template forward to the current schema
// version and reports whether it changed anything. A stored version newer
// than the code supports is a downgrade hazard: it is logged and used as-is,
// never mutated. A failing step aborts the whole migration; the original
// template is returned untouched alongside the error.
func MigrateTemplate(template model.TemplateDefinition) (model.TemplateDefinition, bool, error) {

	logger := log.GetLogger()

	if template.SchemaVersion == model.CurrentSchemaVersion {
		return template, false, nil
	}
	if template.SchemaVersion > model.CurrentSchemaVersion {
		logger.Warn(fmt.Sprintf(
			"Template %s carries schema version %d, newer than the supported version %d. Using it as-is.",
			template.TemplateId, template.SchemaVersion, model.CurrentSchemaVersion))
		return template, false, nil
	}

	migrated := template
	for _, step := range templateMigrations {
		if step.toVersion <= migrated.SchemaVersion {
			continue
		}
		result, err := step.apply(migrated)
		if err != nil {
			errorMsg := fmt.Sprintf("Migration of template %s to schema version %d failed",
				template.TemplateId, step.toVersion)
			logger.Error(errorMsg, log.Error(err))
			return template, false, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.TEMPLATE_MIGRATION.Code,
				Message:     errors2.TEMPLATE_MIGRATION.Message,
				Description: errorMsg,
			}, err)
		}
		migrated = result
		migrated.SchemaVersion = step.toVersion
		logger.Debug(fmt.Sprintf("Migrated template %s to schema version %d", template.TemplateId, step.toVersion))
	}
	return migrated, true, nil
}

// ReconcileFields appends canonical FieldSpecs missing from the template and
// forces the isCustomField marker of shared fields back to the canonical
// value. Matching is case-insensitive on fieldId. Reports whether the
// template changed.
func ReconcileFields(template model.TemplateDefinition) (model.TemplateDefinition, bool) {

	canonical := model.DefaultTemplateDefinition()
	changed := false

	for _, canonicalField := range canonical.Fields {
		idx := template.FindField(canonicalField.FieldId)
		if idx < 0 {
			template.Fields = append(template.Fields, canonicalField)
			changed = true
			continue
		}
		if template.Fields[idx].IsCustomField != canonicalField.IsCustomField {
			template.Fields[idx].IsCustomField = canonicalField.IsCustomField
			changed = true
		}
	}
	return template, changed
}

// Schema v1 templates predate explicit layout widths; zero widths rendered
// at whatever the mail client picked.
func migrateLayoutWidths(template model.TemplateDefinition) (model.TemplateDefinition, error) {

	if template.WidthPx <= 0 {
		template.WidthPx = 600
	}
	if template.BannerImage != "" && template.BannerWidthPx <= 0 {
		template.BannerWidthPx = 520
	}
	return template, nil
}

// Schema v2 allowed blank font settings and negative per-field sizes.
func migrateFontDefaults(template model.TemplateDefinition) (model.TemplateDefinition, error) {

	if template.FontFamily == "" {
		template.FontFamily = "Arial, Helvetica, sans-serif"
	}
	if template.FontSizePx <= 0 {
		template.FontSizePx = 12
	}
	for i := range template.Fields {
		if template.Fields[i].FontSizePx < 0 {
			template.Fields[i].FontSizePx = 0
		}
	}
	return template, nil
}

// Schema v3 templates predate the DECT extension and working-days lines.
func migrateExtensionFields(template model.TemplateDefinition) (model.TemplateDefinition, error) {

	canonical := model.DefaultTemplateDefinition()
	for _, fieldId := range []string{constants.FieldDectPhone, constants.FieldWorkingDays} {
		if template.FindField(fieldId) >= 0 {
			continue
		}
		if idx := canonical.FindField(fieldId); idx >= 0 {
			template.Fields = append(template.Fields, canonical.Fields[idx])
		}
	}
	return template, nil
}
