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

package benchmark

import (
	"fmt"
	"testing"

	auditService "github.com/wso2/identity-email-signature-service/internal/audit/service"
	directoryModel "github.com/wso2/identity-email-signature-service/internal/directory/model"
	overrideModel "github.com/wso2/identity-email-signature-service/internal/overrides/model"
	overrideService "github.com/wso2/identity-email-signature-service/internal/overrides/service"
	"github.com/wso2/identity-email-signature-service/internal/renderer"
	templateModel "github.com/wso2/identity-email-signature-service/internal/templates/model"
	templateService "github.com/wso2/identity-email-signature-service/internal/templates/service"
)

// benchmarkProfile returns a fully populated directory profile.
func benchmarkProfile() directoryModel.Profile {
	return directoryModel.Profile{
		Id:             "bench-user",
		DisplayName:    "Jane Doe",
		JobTitle:       "Network Engineer",
		Department:     "IT Operations",
		Mail:           "jane.doe@example.org",
		BusinessPhone:  "+41 44 123 45 67",
		MobilePhone:    "+41 79 765 43 21",
		AccountEnabled: true,
	}
}

// benchmarkTemplateWithImages returns the canonical template carrying logo
// and banner blobs, the heaviest layout the renderer produces.
func benchmarkTemplateWithImages() templateModel.TemplateDefinition {
	template := templateModel.DefaultTemplateDefinition()
	template.LogoImage = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
	template.LogoWidthPx = 120
	template.BannerImage = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
	template.BannerURL = "https://example.org/campaign"
	template.DisclaimerText = "This message is confidential."
	return template
}

// Benchmark_RenderSignature benchmarks rendering the canonical template.
func Benchmark_RenderSignature(b *testing.B) {
	template := templateModel.DefaultTemplateDefinition()
	profile := benchmarkProfile()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = renderer.RenderSignature(template, profile, nil)
	}
}

// Benchmark_RenderSignature_WithImages benchmarks rendering with logo and
// banner columns.
func Benchmark_RenderSignature_WithImages(b *testing.B) {
	template := benchmarkTemplateWithImages()
	profile := benchmarkProfile()
	override := &overrideModel.OverrideRecord{
		UserId:       "bench-user",
		Pronouns:     "She/Her",
		HiddenFields: []string{"mobilephone"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = renderer.RenderSignature(template, profile, override)
	}
}

// Benchmark_RenderPlainText benchmarks the plain text rendition.
func Benchmark_RenderPlainText(b *testing.B) {
	template := templateModel.DefaultTemplateDefinition()
	profile := benchmarkProfile()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = renderer.RenderPlainText(template, profile, nil)
	}
}

// Benchmark_CompareSignatures_Match benchmarks comparing a signature that
// differs only in formatting.
func Benchmark_CompareSignatures_Match(b *testing.B) {
	template := templateModel.DefaultTemplateDefinition()
	profile := benchmarkProfile()
	expected := renderer.RenderSignature(template, profile, nil)
	observed := "  " + expected + "\n"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = auditService.CompareSignatures(expected, observed)
	}
}

// Benchmark_CompareSignatures_Divergent benchmarks comparing against a stale
// signature with a different name and address.
func Benchmark_CompareSignatures_Divergent(b *testing.B) {
	template := templateModel.DefaultTemplateDefinition()
	expected := renderer.RenderSignature(template, benchmarkProfile(), nil)

	stale := benchmarkProfile()
	stale.DisplayName = "Jane Miller"
	stale.Mail = "jane.miller@example.org"
	observed := renderer.RenderSignature(template, stale, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = auditService.CompareSignatures(expected, observed)
	}
}

// Benchmark_SaveOverride benchmarks the override write path.
func Benchmark_SaveOverride(b *testing.B) {
	overrideSvc := overrideService.GetOverrideService()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := overrideSvc.SaveOverride(overrideModel.OverrideRecord{
			UserId:   fmt.Sprintf("bench-override-%d", i),
			JobTitle: "Network Engineer",
			Pronouns: "she/her",
		})
		if err != nil {
			b.Fatalf("Failed to save override: %v", err)
		}
	}
}

// Benchmark_GetDefaultTemplate benchmarks the template read path including
// the load pipeline.
func Benchmark_GetDefaultTemplate(b *testing.B) {
	templateSvc := templateService.GetTemplateService()

	// First read seeds the canonical default.
	if _, err := templateSvc.GetDefaultTemplate(); err != nil {
		b.Fatalf("Failed to seed the default template: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := templateSvc.GetDefaultTemplate()
		if err != nil {
			b.Fatalf("Failed to get the default template: %v", err)
		}
	}
}
