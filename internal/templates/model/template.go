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

package model

import (
	"strings"

	"github.com/wso2/identity-email-signature-service/internal/system/constants"
)

// CurrentSchemaVersion is the template schema version this code writes.
// Stored templates with a lower version are migrated forward on load.
const CurrentSchemaVersion = 4

// FieldSpec describes one renderable signature line.
type FieldSpec struct {
	FieldId       string `json:"field_id" bson:"field_id"`
	DisplayLabel  string `json:"display_label" bson:"display_label"`
	Enabled       bool   `json:"enabled" bson:"enabled"`
	SortOrder     int    `json:"sort_order" bson:"sort_order"`
	Prefix        string `json:"prefix,omitempty" bson:"prefix,omitempty"`
	Bold          bool   `json:"bold" bson:"bold"`
	IsCustomField bool   `json:"is_custom_field" bson:"is_custom_field"`
	DefaultValue  string `json:"default_value,omitempty" bson:"default_value,omitempty"`
	FontSizePx    int    `json:"font_size_px,omitempty" bson:"font_size_px,omitempty"`
	Color         string `json:"color,omitempty" bson:"color,omitempty"`
}

// TemplateDefinition is a versioned, declarative signature layout. Logo and
// banner images are carried as base64-encoded opaque blobs.
type TemplateDefinition struct {
	TemplateId     string      `json:"template_id" bson:"template_id"`
	Name           string      `json:"name" bson:"name"`
	SchemaVersion  int         `json:"schema_version" bson:"schema_version"`
	WidthPx        int         `json:"width_px" bson:"width_px"`
	FontFamily     string      `json:"font_family" bson:"font_family"`
	FontSizePx     int         `json:"font_size_px" bson:"font_size_px"`
	PrimaryColor   string      `json:"primary_color" bson:"primary_color"`
	SecondaryColor string      `json:"secondary_color" bson:"secondary_color"`
	DividerColor   string      `json:"divider_color" bson:"divider_color"`
	LogoImage      string      `json:"logo_image,omitempty" bson:"logo_image,omitempty"`
	LogoWidthPx    int         `json:"logo_width_px,omitempty" bson:"logo_width_px,omitempty"`
	BannerImage    string      `json:"banner_image,omitempty" bson:"banner_image,omitempty"`
	BannerWidthPx  int         `json:"banner_width_px,omitempty" bson:"banner_width_px,omitempty"`
	BannerURL      string      `json:"banner_url,omitempty" bson:"banner_url,omitempty"`
	AddressLine    string      `json:"address_line,omitempty" bson:"address_line,omitempty"`
	DisclaimerText string      `json:"disclaimer_text,omitempty" bson:"disclaimer_text,omitempty"`
	IsDefault      bool        `json:"is_default" bson:"is_default"`
	Fields         []FieldSpec `json:"fields" bson:"fields"`
	CreatedAt      int64       `json:"created_at" bson:"created_at"`
	UpdatedAt      int64       `json:"updated_at" bson:"updated_at"`
}

// TemplateMetadata is the list view of a template. The embedded image blobs
// are replaced with presence flags to keep list responses small.
type TemplateMetadata struct {
	TemplateId    string `json:"template_id" bson:"template_id"`
	Name          string `json:"name" bson:"name"`
	SchemaVersion int    `json:"schema_version" bson:"schema_version"`
	IsDefault     bool   `json:"is_default" bson:"is_default"`
	HasLogo       bool   `json:"has_logo" bson:"has_logo"`
	HasBanner     bool   `json:"has_banner" bson:"has_banner"`
	FieldCount    int    `json:"field_count" bson:"field_count"`
	CreatedAt     int64  `json:"created_at" bson:"created_at"`
	UpdatedAt     int64  `json:"updated_at" bson:"updated_at"`
}

// Metadata builds the list view of this template.
func (t *TemplateDefinition) Metadata() TemplateMetadata {

	return TemplateMetadata{
		TemplateId:    t.TemplateId,
		Name:          t.Name,
		SchemaVersion: t.SchemaVersion,
		IsDefault:     t.IsDefault,
		HasLogo:       t.LogoImage != "",
		HasBanner:     t.BannerImage != "",
		FieldCount:    len(t.Fields),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// DefaultTemplateDefinition builds the canonical template every deployment
// starts from. Its field list is also the reconciliation reference: canonical
// FieldSpecs missing from a stored template are appended on load.
func DefaultTemplateDefinition() TemplateDefinition {

	return TemplateDefinition{
		Name:           "Corporate Default",
		SchemaVersion:  CurrentSchemaVersion,
		WidthPx:        600,
		FontFamily:     "Arial, Helvetica, sans-serif",
		FontSizePx:     12,
		PrimaryColor:   "#1F3864",
		SecondaryColor: "#595959",
		DividerColor:   "#D9D9D9",
		IsDefault:      true,
		Fields: []FieldSpec{
			{FieldId: constants.FieldName, DisplayLabel: "Name", Enabled: true, SortOrder: 10, Bold: true},
			{FieldId: constants.FieldJobTitle, DisplayLabel: "Job Title", Enabled: true, SortOrder: 20},
			{FieldId: constants.FieldDepartment, DisplayLabel: "Department", Enabled: true, SortOrder: 30},
			{FieldId: constants.FieldBusinessPhone, DisplayLabel: "Phone", Enabled: true, SortOrder: 40, Prefix: "Tel. "},
			{FieldId: constants.FieldMobilePhone, DisplayLabel: "Mobile", Enabled: true, SortOrder: 50, Prefix: "Mobile "},
			{FieldId: constants.FieldDectPhone, DisplayLabel: "DECT", Enabled: false, SortOrder: 60, Prefix: "DECT "},
			{FieldId: constants.FieldEmail, DisplayLabel: "Email", Enabled: true, SortOrder: 70, Prefix: "Email: "},
			{FieldId: constants.FieldWorkingDays, DisplayLabel: "Working Days", Enabled: false, SortOrder: 80},
		},
	}
}

// FindField returns the index of the FieldSpec matching the given id
// case-insensitively, or -1 when absent.
func (t *TemplateDefinition) FindField(fieldId string) int {

	for i := range t.Fields {
		if strings.EqualFold(t.Fields[i].FieldId, fieldId) {
			return i
		}
	}
	return -1
}
