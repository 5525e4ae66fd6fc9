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
	"unicode"

	directorymodel "github.com/wso2/identity-email-signature-service/internal/directory/model"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
)

// OverrideRecord carries per-user field overrides and the set of hidden
// fields, keyed 1:1 to a directory profile by UserId. A field listed in
// HiddenFields is suppressed in rendering regardless of override or base
// value.
type OverrideRecord struct {
	UserId        string   `json:"user_id" bson:"user_id"`
	Name          string   `json:"name,omitempty" bson:"name,omitempty"`
	JobTitle      string   `json:"job_title,omitempty" bson:"job_title,omitempty"`
	Department    string   `json:"department,omitempty" bson:"department,omitempty"`
	BusinessPhone string   `json:"business_phone,omitempty" bson:"business_phone,omitempty"`
	MobilePhone   string   `json:"mobile_phone,omitempty" bson:"mobile_phone,omitempty"`
	WorkingDays   string   `json:"working_days,omitempty" bson:"working_days,omitempty"`
	Pronouns      string   `json:"pronouns,omitempty" bson:"pronouns,omitempty"`
	DectPhone     string   `json:"dect_phone,omitempty" bson:"dect_phone,omitempty"`
	HiddenFields  []string `json:"hidden_fields,omitempty" bson:"hidden_fields,omitempty"`
	LastModified  int64    `json:"last_modified" bson:"last_modified"`
}

// IsHidden reports whether the given fieldId is suppressed by this record.
// Matching is case-insensitive. A nil record hides nothing.
func (o *OverrideRecord) IsHidden(fieldId string) bool {

	if o == nil {
		return false
	}
	for _, hidden := range o.HiddenFields {
		if strings.EqualFold(hidden, fieldId) {
			return true
		}
	}
	return false
}

// ApplyToProfile merges this record onto a base profile and returns the
// effective profile. Hidden fields blank out regardless of any value; a
// non-blank override wins over the base; otherwise the base value stands.
// The merge is total: it never fails and never mutates the base.
func (o *OverrideRecord) ApplyToProfile(base directorymodel.Profile) directorymodel.Profile {

	if o == nil {
		return base
	}

	effective := base
	effective.DisplayName = o.effectiveValue(constants.FieldName, o.Name, base.DisplayName)
	effective.JobTitle = o.effectiveValue(constants.FieldJobTitle, o.JobTitle, base.JobTitle)
	effective.Department = o.effectiveValue(constants.FieldDepartment, o.Department, base.Department)
	effective.BusinessPhone = o.effectiveValue(constants.FieldBusinessPhone, o.BusinessPhone, base.BusinessPhone)
	effective.MobilePhone = o.effectiveValue(constants.FieldMobilePhone, o.MobilePhone, base.MobilePhone)
	return effective
}

func (o *OverrideRecord) effectiveValue(fieldId, override, base string) string {

	if o.IsHidden(fieldId) {
		return ""
	}
	if strings.TrimSpace(override) != "" {
		return override
	}
	return base
}

// NormalizePronouns canonicalizes a pronoun string: whitespace around the
// slash separators is dropped and each part is capitalized. Blank input
// normalizes to the empty string, meaning no pronouns are recorded.
// "  he / him  " becomes "He/Him".
func NormalizePronouns(raw string) string {

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		runes := []rune(strings.ToLower(part))
		runes[0] = unicode.ToUpper(runes[0])
		normalized = append(normalized, string(runes))
	}
	if len(normalized) == 0 {
		return ""
	}
	return strings.Join(normalized, "/")
}
