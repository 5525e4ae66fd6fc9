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
	"regexp"
	"strings"

	"github.com/wso2/identity-email-signature-service/internal/audit/model"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	emailRegex      = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// boldMarkers are matched against normalized (lowercased) HTML. The text
	// content following the first marker is treated as the signature's name
	// line. First match wins when several markers are present.
	boldMarkers = []string{"font-weight:bold", "font-weight: bold", "<b>", "<strong>"}
)

// CompareSignatures compares the expected signature HTML against what was
// observed in the mailbox. This is a heuristic, field-extraction comparison
// aimed at the legacy signature format, not a structural HTML diff.
func CompareSignatures(expectedHtml, observedHtml string) []model.Discrepancy {

	if strings.TrimSpace(observedHtml) == "" {
		return []model.Discrepancy{{
			Field:       constants.DiscrepancySignature,
			Description: "No signature is set on the mailbox.",
		}}
	}

	expected := normalizeHtml(expectedHtml)
	observed := normalizeHtml(observedHtml)
	if expected == observed {
		return nil
	}

	var discrepancies []model.Discrepancy

	expectedName := extractBoldFragment(expected)
	observedName := extractBoldFragment(observed)
	if expectedName != "" && observedName != "" && expectedName != observedName {
		discrepancies = append(discrepancies, model.Discrepancy{
			Field:       constants.DiscrepancyName,
			Expected:    expectedName,
			Actual:      observedName,
			Description: "The name line of the mailbox signature does not match the directory profile.",
		})
	}

	expectedEmail := emailRegex.FindString(expected)
	observedEmail := emailRegex.FindString(observed)
	if expectedEmail != "" && observedEmail != "" && expectedEmail != observedEmail {
		discrepancies = append(discrepancies, model.Discrepancy{
			Field:       constants.DiscrepancyEmail,
			Expected:    expectedEmail,
			Actual:      observedEmail,
			Description: "The email address in the mailbox signature does not match the directory profile.",
		})
	}

	if len(discrepancies) == 0 {
		discrepancies = append(discrepancies, model.Discrepancy{
			Field:       constants.DiscrepancyContent,
			Description: "The mailbox signature content differs from the expected rendering.",
		})
	}
	return discrepancies
}

// normalizeHtml collapses whitespace runs to single spaces, trims and
// lowercases, so formatting-only differences do not register as mismatches.
func normalizeHtml(html string) string {

	return strings.ToLower(strings.TrimSpace(whitespaceRegex.ReplaceAllString(html, " ")))
}

// extractBoldFragment returns the text content immediately following the
// first bold-style marker in normalized HTML, or an empty string when no
// fragment can be located.
func extractBoldFragment(normalizedHtml string) string {

	markerIdx := -1
	matched := ""
	for _, marker := range boldMarkers {
		if idx := strings.Index(normalizedHtml, marker); idx >= 0 && (markerIdx < 0 || idx < markerIdx) {
			markerIdx = idx
			matched = marker
		}
	}
	if markerIdx < 0 {
		return ""
	}

	rest := normalizedHtml[markerIdx+len(matched):]
	// Style markers sit inside a tag attribute; skip past the enclosing tag
	// before taking the text. Tag markers already end on the closing bracket.
	if !strings.HasSuffix(matched, ">") {
		if closeIdx := strings.Index(rest, ">"); closeIdx >= 0 {
			rest = rest[closeIdx+1:]
		}
	}
	if openIdx := strings.Index(rest, "<"); openIdx >= 0 {
		rest = rest[:openIdx]
	}
	return strings.TrimSpace(rest)
}
