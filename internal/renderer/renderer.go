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

// Package renderer turns a template definition and a directory profile into
// email signature markup. Rendering is a pure transformation: deterministic
// for identical inputs, no network or storage access, and it never fails.
// Missing style data falls back to the canonical defaults.
package renderer

import (
	"fmt"
	"html"
	"sort"
	"strings"

	directorymodel "github.com/wso2/identity-email-signature-service/internal/directory/model"
	overridemodel "github.com/wso2/identity-email-signature-service/internal/overrides/model"
	templatemodel "github.com/wso2/identity-email-signature-service/internal/templates/model"
)

// renderedField is one resolved signature line with its computed style.
type renderedField struct {
	value      string
	bold       bool
	fontSizePx int
	color      string
}

// RenderSignature renders the HTML signature of a profile. When an override
// record is supplied its values are merged into the profile first; hidden
// fields resolve to blank and are skipped.
func RenderSignature(template templatemodel.TemplateDefinition, profile directorymodel.Profile, override *overridemodel.OverrideRecord) string {

	template = withRenderDefaults(template)
	fields := resolveFields(template, profile, override)

	hasLogo := strings.TrimSpace(template.LogoImage) != ""

	var b strings.Builder
	fmt.Fprintf(&b,
		`<table cellpadding="0" cellspacing="0" border="0" style="border-collapse:collapse;font-family:%s;font-size:%dpx;width:%dpx;">`,
		html.EscapeString(template.FontFamily), template.FontSizePx, template.WidthPx)
	b.WriteString("<tr>")

	if hasLogo {
		fmt.Fprintf(&b,
			`<td style="vertical-align:top;padding-right:12px;"><img src="%s" width="%d" alt=""/></td>`,
			imageSrc(template.LogoImage), template.LogoWidthPx)
		fmt.Fprintf(&b,
			`<td style="vertical-align:top;border-left:1px solid %s;padding-left:12px;">`,
			html.EscapeString(template.PrimaryColor))
	} else {
		b.WriteString(`<td style="vertical-align:top;">`)
	}

	for _, field := range fields {
		b.WriteString(`<div style="`)
		if field.bold {
			b.WriteString("font-weight:bold;")
		}
		fmt.Fprintf(&b, `font-size:%dpx;color:%s;">`, field.fontSizePx, html.EscapeString(field.color))
		b.WriteString(html.EscapeString(field.value))
		b.WriteString("</div>")
	}

	b.WriteString("</td></tr>")

	colspan := ""
	if hasLogo {
		colspan = ` colspan="2"`
	}

	if strings.TrimSpace(template.DisclaimerText) != "" {
		fmt.Fprintf(&b,
			`<tr><td%s style="padding-top:8px;font-size:%dpx;color:%s;">%s</td></tr>`,
			colspan, disclaimerFontPx(template.FontSizePx),
			html.EscapeString(template.SecondaryColor), html.EscapeString(template.DisclaimerText))
	}

	if strings.TrimSpace(template.BannerImage) != "" {
		fmt.Fprintf(&b, `<tr><td%s style="padding-top:8px;">`, colspan)
		if template.BannerURL != "" {
			fmt.Fprintf(&b, `<a href="%s">`, html.EscapeString(template.BannerURL))
		}
		fmt.Fprintf(&b, `<img src="%s" width="%d" alt=""/>`, imageSrc(template.BannerImage), template.BannerWidthPx)
		if template.BannerURL != "" {
			b.WriteString("</a>")
		}
		b.WriteString("</td></tr>")
	}

	b.WriteString("</table>")
	return b.String()
}

// RenderPlainText renders the text alternative of a signature: the same
// resolved field lines without markup, followed by the disclaimer when set.
func RenderPlainText(template templatemodel.TemplateDefinition, profile directorymodel.Profile, override *overridemodel.OverrideRecord) string {

	template = withRenderDefaults(template)
	fields := resolveFields(template, profile, override)

	lines := make([]string, 0, len(fields)+2)
	for _, field := range fields {
		lines = append(lines, field.value)
	}
	if strings.TrimSpace(template.DisclaimerText) != "" {
		lines = append(lines, "", template.DisclaimerText)
	}
	return strings.Join(lines, "\n")
}

// resolveFields computes the ordered, styled signature lines. Enabled fields
// are sorted ascending by sort order with stable ties, resolved against the
// effective profile, and dropped entirely when the value is blank.
func resolveFields(template templatemodel.TemplateDefinition, profile directorymodel.Profile, override *overridemodel.OverrideRecord) []renderedField {

	effective := profile
	workingDays := ""
	if override != nil {
		effective = override.ApplyToProfile(profile)
		workingDays = override.WorkingDays
	}

	specs := make([]templatemodel.FieldSpec, 0, len(template.Fields))
	for _, field := range template.Fields {
		if field.Enabled {
			specs = append(specs, field)
		}
	}
	sort.SliceStable(specs, func(i, j int) bool {
		return specs[i].SortOrder < specs[j].SortOrder
	})

	fields := make([]renderedField, 0, len(specs))
	for _, spec := range specs {
		kind := FieldKindOf(spec.FieldId)
		value := resolveFieldValue(kind, spec, effective, workingDays)
		if strings.TrimSpace(value) == "" {
			continue
		}
		if spec.Prefix != "" {
			value = spec.Prefix + value
		}

		fontSize := template.FontSizePx
		if spec.FontSizePx > 0 {
			fontSize = spec.FontSizePx
		}
		color := template.SecondaryColor
		if spec.Color != "" {
			color = spec.Color
		} else if kind == KindName {
			color = template.PrimaryColor
		}

		fields = append(fields, renderedField{
			value:      value,
			bold:       spec.Bold,
			fontSizePx: fontSize,
			color:      color,
		})
	}
	return fields
}

// withRenderDefaults fills blank style attributes from the canonical default
// template so rendering cannot fail on malformed template data.
func withRenderDefaults(template templatemodel.TemplateDefinition) templatemodel.TemplateDefinition {

	defaults := templatemodel.DefaultTemplateDefinition()
	if strings.TrimSpace(template.FontFamily) == "" {
		template.FontFamily = defaults.FontFamily
	}
	if template.FontSizePx <= 0 {
		template.FontSizePx = defaults.FontSizePx
	}
	if template.WidthPx <= 0 {
		template.WidthPx = defaults.WidthPx
	}
	if strings.TrimSpace(template.PrimaryColor) == "" {
		template.PrimaryColor = defaults.PrimaryColor
	}
	if strings.TrimSpace(template.SecondaryColor) == "" {
		template.SecondaryColor = defaults.SecondaryColor
	}
	if template.LogoImage != "" && template.LogoWidthPx <= 0 {
		template.LogoWidthPx = 100
	}
	if template.BannerImage != "" && template.BannerWidthPx <= 0 {
		template.BannerWidthPx = template.WidthPx
	}
	return template
}

// imageSrc wraps a stored image blob as an inline data URI unless it already
// carries a scheme.
func imageSrc(image string) string {

	image = strings.TrimSpace(image)
	if strings.HasPrefix(image, "data:") || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return html.EscapeString(image)
	}
	return "data:image/png;base64," + html.EscapeString(image)
}

// disclaimerFontPx derives the small print size from the template base size.
func disclaimerFontPx(baseFontPx int) int {

	size := baseFontPx - 2
	if size < 8 {
		size = 8
	}
	return size
}
