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

	directorymodel "github.com/wso2/identity-email-signature-service/internal/directory/model"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	templatemodel "github.com/wso2/identity-email-signature-service/internal/templates/model"
)

// FieldKind tags a FieldSpec with the profile attribute it renders. Field ids
// without a fixed profile mapping, including custom fields and dectphone,
// carry KindDefaultValue and render the field's default value.
type FieldKind int

const (
	KindName FieldKind = iota
	KindJobTitle
	KindDepartment
	KindEmail
	KindBusinessPhone
	KindMobilePhone
	KindWorkingDays
	KindDefaultValue
)

// FieldKindOf maps a field id to its kind. Matching is case-insensitive and
// total; unknown ids map to KindDefaultValue.
func FieldKindOf(fieldId string) FieldKind {

	switch strings.ToLower(strings.TrimSpace(fieldId)) {
	case constants.FieldName:
		return KindName
	case constants.FieldJobTitle:
		return KindJobTitle
	case constants.FieldDepartment:
		return KindDepartment
	case constants.FieldEmail:
		return KindEmail
	case constants.FieldBusinessPhone:
		return KindBusinessPhone
	case constants.FieldMobilePhone:
		return KindMobilePhone
	case constants.FieldWorkingDays:
		return KindWorkingDays
	default:
		return KindDefaultValue
	}
}

// resolveFieldValue returns the display value of a field against the
// effective profile. The workingDays value comes from the override record,
// not the profile, and falls back to the field's default value when blank.
func resolveFieldValue(kind FieldKind, field templatemodel.FieldSpec, profile directorymodel.Profile, workingDays string) string {

	switch kind {
	case KindName:
		return profile.DisplayName
	case KindJobTitle:
		return profile.JobTitle
	case KindDepartment:
		return profile.Department
	case KindEmail:
		return profile.Mail
	case KindBusinessPhone:
		return profile.BusinessPhone
	case KindMobilePhone:
		return profile.MobilePhone
	case KindWorkingDays:
		if strings.TrimSpace(workingDays) != "" {
			return workingDays
		}
		return field.DefaultValue
	default:
		return field.DefaultValue
	}
}
