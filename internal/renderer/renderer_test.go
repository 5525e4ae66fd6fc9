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

package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	directorymodel "github.com/wso2/identity-email-signature-service/internal/directory/model"
	overridemodel "github.com/wso2/identity-email-signature-service/internal/overrides/model"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	templatemodel "github.com/wso2/identity-email-signature-service/internal/templates/model"
)

func sampleProfile() directorymodel.Profile {
	return directorymodel.Profile{
		Id:             "u-100",
		DisplayName:    "Jane Doe",
		JobTitle:       "Network Engineer",
		Department:     "IT Operations",
		Mail:           "jane.doe@example.org",
		BusinessPhone:  "+41 44 123 45 67",
		MobilePhone:    "+41 79 765 43 21",
		AccountEnabled: true,
	}
}

// ---------------------------------------------------------------------------
// RenderSignature - layout and field resolution
// ---------------------------------------------------------------------------

func TestRenderSignature_IsDeterministic(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	profile := sampleProfile()

	first := RenderSignature(template, profile, nil)
	second := RenderSignature(template, profile, nil)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestRenderSignature_DefaultTemplate_RendersEnabledFields(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	html := RenderSignature(template, sampleProfile(), nil)

	assert.True(t, strings.HasPrefix(html, "<table"))
	assert.True(t, strings.HasSuffix(html, "</table>"))

	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "Network Engineer")
	assert.Contains(t, html, "IT Operations")
	assert.Contains(t, html, "Tel. +41 44 123 45 67")
	assert.Contains(t, html, "Mobile +41 79 765 43 21")
	assert.Contains(t, html, "Email: jane.doe@example.org")

	// The name line is bold and carries the primary color.
	assert.Contains(t, html, "font-weight:bold")
	assert.Contains(t, html, "color:#1F3864")
}

func TestRenderSignature_DisabledFieldIsNotRendered(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	idx := template.FindField(constants.FieldDectPhone)
	require.GreaterOrEqual(t, idx, 0)
	template.Fields[idx].DefaultValue = "1234"

	html := RenderSignature(template, sampleProfile(), nil)

	assert.NotContains(t, html, "DECT")
	assert.NotContains(t, html, "1234")
}

func TestRenderSignature_BlankFieldIsSkippedWithPrefix(t *testing.T) {
	profile := sampleProfile()
	profile.MobilePhone = "   "

	html := RenderSignature(templatemodel.DefaultTemplateDefinition(), profile, nil)

	assert.NotContains(t, html, "Mobile ")
}

func TestRenderSignature_FieldsFollowSortOrder(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	template.Fields = []templatemodel.FieldSpec{
		{FieldId: constants.FieldEmail, Enabled: true, SortOrder: 30},
		{FieldId: constants.FieldName, Enabled: true, SortOrder: 10},
		{FieldId: constants.FieldJobTitle, Enabled: true, SortOrder: 20},
	}

	html := RenderSignature(template, sampleProfile(), nil)

	nameIdx := strings.Index(html, "Jane Doe")
	titleIdx := strings.Index(html, "Network Engineer")
	emailIdx := strings.Index(html, "jane.doe@example.org")
	require.GreaterOrEqual(t, nameIdx, 0)
	require.GreaterOrEqual(t, titleIdx, 0)
	require.GreaterOrEqual(t, emailIdx, 0)

	assert.Less(t, nameIdx, titleIdx)
	assert.Less(t, titleIdx, emailIdx)
}

func TestRenderSignature_StyleCascade(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	template.Fields = []templatemodel.FieldSpec{
		{FieldId: constants.FieldJobTitle, Enabled: true, SortOrder: 10, FontSizePx: 16, Color: "#FF0000"},
		{FieldId: constants.FieldDepartment, Enabled: true, SortOrder: 20},
	}

	html := RenderSignature(template, sampleProfile(), nil)

	// Spec-level style wins over the template level.
	assert.Contains(t, html, "font-size:16px;color:#FF0000")
	// Without a spec color, non-name fields fall back to the secondary color.
	assert.Contains(t, html, "font-size:12px;color:#595959")
}

func TestRenderSignature_EscapesHtmlInValues(t *testing.T) {
	profile := sampleProfile()
	profile.DisplayName = `Jane <script> & "Doe"`

	html := RenderSignature(templatemodel.DefaultTemplateDefinition(), profile, nil)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Jane &lt;script&gt; &amp;")
}

func TestRenderSignature_ZeroValueTemplateFallsBackToDefaults(t *testing.T) {
	html := RenderSignature(templatemodel.TemplateDefinition{}, sampleProfile(), nil)

	require.NotEmpty(t, html)
	assert.Contains(t, html, "font-family:Arial, Helvetica, sans-serif")
	assert.Contains(t, html, "width:600px")
}

// ---------------------------------------------------------------------------
// RenderSignature - logo, disclaimer and banner rows
// ---------------------------------------------------------------------------

func TestRenderSignature_WithoutLogoHasNoDividerColumn(t *testing.T) {
	html := RenderSignature(templatemodel.DefaultTemplateDefinition(), sampleProfile(), nil)

	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "border-left")
	assert.NotContains(t, html, "colspan")
}

func TestRenderSignature_LogoColumnWithDivider(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	template.LogoImage = "iVBORw0KGgo="
	template.LogoWidthPx = 120
	template.DisclaimerText = "Confidential."

	html := RenderSignature(template, sampleProfile(), nil)

	assert.Contains(t, html, `src="data:image/png;base64,iVBORw0KGgo="`)
	assert.Contains(t, html, `width="120"`)
	assert.Contains(t, html, "border-left:1px solid #1F3864")
	// Rows below the two-column block span both columns.
	assert.Contains(t, html, `colspan="2"`)
}

func TestRenderSignature_ImageUrlIsNotWrappedAsDataUri(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	template.LogoImage = "https://cdn.example.org/logo.png"

	html := RenderSignature(template, sampleProfile(), nil)

	assert.Contains(t, html, `src="https://cdn.example.org/logo.png"`)
	assert.NotContains(t, html, "data:image/png")
}

func TestRenderSignature_DisclaimerUsesReducedFontSize(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	template.DisclaimerText = "This message is confidential."

	html := RenderSignature(template, sampleProfile(), nil)

	assert.Contains(t, html, "This message is confidential.")
	assert.Contains(t, html, "font-size:10px")
}

func TestRenderSignature_DisclaimerFontSizeNeverDropsBelowFloor(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	template.FontSizePx = 9
	template.DisclaimerText = "Small print."

	html := RenderSignature(template, sampleProfile(), nil)

	assert.Contains(t, html, "font-size:8px")
	assert.NotContains(t, html, "font-size:7px")
}

func TestRenderSignature_BannerWithAndWithoutLink(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	template.BannerImage = "ZmFrZUJhbm5lcg=="
	template.BannerWidthPx = 600

	html := RenderSignature(template, sampleProfile(), nil)
	assert.Contains(t, html, "data:image/png;base64,ZmFrZUJhbm5lcg==")
	assert.NotContains(t, html, "<a href")

	template.BannerURL = "https://example.org/campaign"
	html = RenderSignature(template, sampleProfile(), nil)
	assert.Contains(t, html, `<a href="https://example.org/campaign">`)
	assert.Contains(t, html, "</a>")
}

// ---------------------------------------------------------------------------
// RenderSignature - override merging
// ---------------------------------------------------------------------------

func TestRenderSignature_OverrideValueWinsOverProfile(t *testing.T) {
	override := &overridemodel.OverrideRecord{
		UserId:   "u-100",
		JobTitle: "Acting Team Lead",
	}

	html := RenderSignature(templatemodel.DefaultTemplateDefinition(), sampleProfile(), override)

	assert.Contains(t, html, "Acting Team Lead")
	assert.NotContains(t, html, "Network Engineer")
}

func TestRenderSignature_HiddenFieldIsSuppressed(t *testing.T) {
	override := &overridemodel.OverrideRecord{
		UserId:       "u-100",
		MobilePhone:  "+41 79 000 00 00",
		HiddenFields: []string{constants.FieldMobilePhone},
	}

	html := RenderSignature(templatemodel.DefaultTemplateDefinition(), sampleProfile(), override)

	// Hidden wins even though both an override and a base value exist.
	assert.NotContains(t, html, "Mobile ")
	assert.NotContains(t, html, "+41 79")
}

func TestRenderSignature_WorkingDaysComeFromOverride(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	idx := template.FindField(constants.FieldWorkingDays)
	require.GreaterOrEqual(t, idx, 0)
	template.Fields[idx].Enabled = true
	template.Fields[idx].DefaultValue = "Monday to Friday"

	// Without an override the field default applies.
	html := RenderSignature(template, sampleProfile(), nil)
	assert.Contains(t, html, "Monday to Friday")

	override := &overridemodel.OverrideRecord{UserId: "u-100", WorkingDays: "Monday to Thursday"}
	html = RenderSignature(template, sampleProfile(), override)
	assert.Contains(t, html, "Monday to Thursday")
	assert.NotContains(t, html, "Monday to Friday")
}

func TestRenderSignature_CustomFieldRendersDefaultValue(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	template.Fields = append(template.Fields, templatemodel.FieldSpec{
		FieldId:       "office-location",
		DisplayLabel:  "Office",
		Enabled:       true,
		SortOrder:     90,
		IsCustomField: true,
		DefaultValue:  "Building C, Floor 2",
	})

	html := RenderSignature(template, sampleProfile(), nil)

	assert.Contains(t, html, "Building C, Floor 2")
}

// ---------------------------------------------------------------------------
// RenderPlainText
// ---------------------------------------------------------------------------

func TestRenderPlainText_JoinsFieldLines(t *testing.T) {
	text := RenderPlainText(templatemodel.DefaultTemplateDefinition(), sampleProfile(), nil)

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Jane Doe", lines[0])
	assert.Equal(t, "Network Engineer", lines[1])
	assert.Equal(t, "IT Operations", lines[2])
	assert.Equal(t, "Tel. +41 44 123 45 67", lines[3])
	assert.Equal(t, "Mobile +41 79 765 43 21", lines[4])
	assert.Equal(t, "Email: jane.doe@example.org", lines[5])
	assert.NotContains(t, text, "<")
}

func TestRenderPlainText_DisclaimerSeparatedByBlankLine(t *testing.T) {
	template := templatemodel.DefaultTemplateDefinition()
	template.DisclaimerText = "Confidential."

	text := RenderPlainText(template, sampleProfile(), nil)

	assert.True(t, strings.HasSuffix(text, "\n\nConfidential."))
}
