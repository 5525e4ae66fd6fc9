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

package scripts

var UpsertTemplate = map[string]string{
	"postgres": `
		INSERT INTO signature_template (
			template_id, name, schema_version, width_px, font_family, font_size_px,
			primary_color, secondary_color, divider_color, logo_image, logo_width_px,
			banner_image, banner_width_px, banner_url, address_line, disclaimer_text,
			is_default, fields, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (template_id) DO UPDATE SET
			name = EXCLUDED.name,
			schema_version = EXCLUDED.schema_version,
			width_px = EXCLUDED.width_px,
			font_family = EXCLUDED.font_family,
			font_size_px = EXCLUDED.font_size_px,
			primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color,
			divider_color = EXCLUDED.divider_color,
			logo_image = EXCLUDED.logo_image,
			logo_width_px = EXCLUDED.logo_width_px,
			banner_image = EXCLUDED.banner_image,
			banner_width_px = EXCLUDED.banner_width_px,
			banner_url = EXCLUDED.banner_url,
			address_line = EXCLUDED.address_line,
			disclaimer_text = EXCLUDED.disclaimer_text,
			is_default = EXCLUDED.is_default,
			fields = EXCLUDED.fields,
			updated_at = EXCLUDED.updated_at;`,
}

var GetTemplateById = map[string]string{
	"postgres": `SELECT template_id, name, schema_version, width_px, font_family, font_size_px, primary_color,
       secondary_color, divider_color, logo_image, logo_width_px, banner_image, banner_width_px, banner_url,
       address_line, disclaimer_text, is_default, fields::text, created_at, updated_at
       FROM signature_template WHERE template_id = $1`,
}

var GetDefaultTemplate = map[string]string{
	"postgres": `SELECT template_id, name, schema_version, width_px, font_family, font_size_px, primary_color,
       secondary_color, divider_color, logo_image, logo_width_px, banner_image, banner_width_px, banner_url,
       address_line, disclaimer_text, is_default, fields::text, created_at, updated_at
       FROM signature_template WHERE is_default = true LIMIT 1`,
}

var GetAllTemplates = map[string]string{
	"postgres": `SELECT template_id, name, schema_version, width_px, font_family, font_size_px, primary_color,
       secondary_color, divider_color, logo_image, logo_width_px, banner_image, banner_width_px, banner_url,
       address_line, disclaimer_text, is_default, fields::text, created_at, updated_at
       FROM signature_template ORDER BY name`,
}

var DeleteTemplateById = map[string]string{
	"postgres": `DELETE FROM signature_template WHERE template_id = $1 AND is_default = false`,
}

var ClearDefaultTemplate = map[string]string{
	"postgres": `UPDATE signature_template SET is_default = false WHERE is_default = true`,
}

var MarkDefaultTemplate = map[string]string{
	"postgres": `UPDATE signature_template SET is_default = true, updated_at = $2 WHERE template_id = $1`,
}

var UpsertOverride = map[string]string{
	"postgres": `
		INSERT INTO signature_override (
			user_id, name, job_title, department, business_phone, mobile_phone,
			working_days, pronouns, dect_phone, hidden_fields, last_modified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			job_title = EXCLUDED.job_title,
			department = EXCLUDED.department,
			business_phone = EXCLUDED.business_phone,
			mobile_phone = EXCLUDED.mobile_phone,
			working_days = EXCLUDED.working_days,
			pronouns = EXCLUDED.pronouns,
			dect_phone = EXCLUDED.dect_phone,
			hidden_fields = EXCLUDED.hidden_fields,
			last_modified = EXCLUDED.last_modified;`,
}

var GetOverrideByUserId = map[string]string{
	"postgres": `SELECT user_id, name, job_title, department, business_phone, mobile_phone, working_days,
       pronouns, dect_phone, hidden_fields::text, last_modified
       FROM signature_override WHERE user_id = $1`,
}

var GetAllOverrides = map[string]string{
	"postgres": `SELECT user_id, name, job_title, department, business_phone, mobile_phone, working_days,
       pronouns, dect_phone, hidden_fields::text, last_modified
       FROM signature_override ORDER BY user_id`,
}

var DeleteOverrideByUserId = map[string]string{
	"postgres": `DELETE FROM signature_override WHERE user_id = $1`,
}
