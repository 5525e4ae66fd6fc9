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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	"github.com/wso2/identity-email-signature-service/internal/templates/model"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func legacyTemplate(version int) model.TemplateDefinition {
	return model.TemplateDefinition{
		TemplateId:    "tpl-legacy",
		Name:          "Legacy",
		SchemaVersion: version,
		Fields: []model.FieldSpec{
			{FieldId: constants.FieldName, Enabled: true, SortOrder: 10, Bold: true},
			{FieldId: constants.FieldEmail, Enabled: true, SortOrder: 20},
		},
	}
}

// ---------------------------------------------------------------------------
// MigrateTemplate
// ---------------------------------------------------------------------------

func TestMigrateTemplate_CurrentVersionIsUntouched(t *testing.T) {
	template := model.DefaultTemplateDefinition()
	template.TemplateId = "tpl-1"

	migrated, changed, err := MigrateTemplate(template)

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, template, migrated)
}

func TestMigrateTemplate_V1GetsAllStepsApplied(t *testing.T) {
	template := legacyTemplate(1)
	template.BannerImage = "YmFubmVy"

	migrated, changed, err := MigrateTemplate(template)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.CurrentSchemaVersion, migrated.SchemaVersion)

	// v2: layout widths
	assert.Equal(t, 600, migrated.WidthPx)
	assert.Equal(t, 520, migrated.BannerWidthPx)
	// v3: font defaults
	assert.Equal(t, "Arial, Helvetica, sans-serif", migrated.FontFamily)
	assert.Equal(t, 12, migrated.FontSizePx)
	// v4: extension fields appended
	assert.GreaterOrEqual(t, migrated.FindField(constants.FieldDectPhone), 0)
	assert.GreaterOrEqual(t, migrated.FindField(constants.FieldWorkingDays), 0)
}

func TestMigrateTemplate_StepsBelowStoredVersionAreSkipped(t *testing.T) {
	template := legacyTemplate(3)
	template.WidthPx = 480
	template.FontFamily = "Georgia, serif"
	template.FontSizePx = 14

	migrated, changed, err := MigrateTemplate(template)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.CurrentSchemaVersion, migrated.SchemaVersion)
	// The v2 and v3 steps did not run again.
	assert.Equal(t, 480, migrated.WidthPx)
	assert.Equal(t, "Georgia, serif", migrated.FontFamily)
	assert.Equal(t, 14, migrated.FontSizePx)
	// Only the v4 step applied.
	assert.GreaterOrEqual(t, migrated.FindField(constants.FieldDectPhone), 0)
}

func TestMigrateTemplate_NegativeFieldFontSizesAreCleared(t *testing.T) {
	template := legacyTemplate(2)
	template.Fields[0].FontSizePx = -4

	migrated, _, err := MigrateTemplate(template)

	require.NoError(t, err)
	assert.Equal(t, 0, migrated.Fields[0].FontSizePx)
}

func TestMigrateTemplate_NewerVersionIsUsedAsIs(t *testing.T) {
	template := legacyTemplate(model.CurrentSchemaVersion + 1)

	migrated, changed, err := MigrateTemplate(template)

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, template, migrated)
}

func TestMigrateTemplate_ExistingExtensionFieldsAreNotDuplicated(t *testing.T) {
	template := legacyTemplate(3)
	template.Fields = append(template.Fields, model.FieldSpec{
		FieldId: constants.FieldDectPhone, Enabled: true, SortOrder: 60,
	})

	migrated, _, err := MigrateTemplate(template)

	require.NoError(t, err)
	count := 0
	for _, field := range migrated.Fields {
		if field.FieldId == constants.FieldDectPhone {
			count++
		}
	}
	assert.Equal(t, 1, count)
	// The pre-existing spec keeps its settings.
	idx := migrated.FindField(constants.FieldDectPhone)
	assert.True(t, migrated.Fields[idx].Enabled)
}

// ---------------------------------------------------------------------------
// ReconcileFields
// ---------------------------------------------------------------------------

func TestReconcileFields_AppendsMissingCanonicalFields(t *testing.T) {
	template := legacyTemplate(model.CurrentSchemaVersion)

	reconciled, changed := ReconcileFields(template)

	assert.True(t, changed)
	for fieldId := range constants.CanonicalFieldIds {
		assert.GreaterOrEqual(t, reconciled.FindField(fieldId), 0, "missing canonical field %s", fieldId)
	}
}

func TestReconcileFields_CompleteTemplateIsUnchanged(t *testing.T) {
	template := model.DefaultTemplateDefinition()

	reconciled, changed := ReconcileFields(template)

	assert.False(t, changed)
	assert.Equal(t, template, reconciled)
}

func TestReconcileFields_ForcesCanonicalCustomFieldMarker(t *testing.T) {
	template := model.DefaultTemplateDefinition()
	idx := template.FindField(constants.FieldEmail)
	require.GreaterOrEqual(t, idx, 0)
	template.Fields[idx].IsCustomField = true

	reconciled, changed := ReconcileFields(template)

	assert.True(t, changed)
	assert.False(t, reconciled.Fields[reconciled.FindField(constants.FieldEmail)].IsCustomField)
}

func TestReconcileFields_KeepsGenuineCustomFields(t *testing.T) {
	template := model.DefaultTemplateDefinition()
	template.Fields = append(template.Fields, model.FieldSpec{
		FieldId: "office-location", Enabled: true, SortOrder: 90, IsCustomField: true, DefaultValue: "HQ",
	})

	reconciled, changed := ReconcileFields(template)

	assert.False(t, changed)
	idx := reconciled.FindField("office-location")
	require.GreaterOrEqual(t, idx, 0)
	assert.True(t, reconciled.Fields[idx].IsCustomField)
}
