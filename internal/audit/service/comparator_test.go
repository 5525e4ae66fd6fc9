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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-email-signature-service/internal/system/constants"
)

func signatureHtml(name, email string) string {
	return `<table><tr><td>` +
		`<div style="font-weight:bold;font-size:12px;color:#1F3864;">` + name + `</div>` +
		`<div style="font-size:12px;color:#595959;">Email: ` + email + `</div>` +
		`</td></tr></table>`
}

// ---------------------------------------------------------------------------
// CompareSignatures
// ---------------------------------------------------------------------------

func TestCompareSignatures_BlankObservedReportsMissingSignature(t *testing.T) {
	discrepancies := CompareSignatures(signatureHtml("Jane Doe", "jane@example.org"), "   ")

	require.Len(t, discrepancies, 1)
	assert.Equal(t, constants.DiscrepancySignature, discrepancies[0].Field)
}

func TestCompareSignatures_IdenticalHtmlHasNoDiscrepancies(t *testing.T) {
	html := signatureHtml("Jane Doe", "jane@example.org")

	assert.Nil(t, CompareSignatures(html, html))
}

func TestCompareSignatures_FormattingOnlyDifferencesAreIgnored(t *testing.T) {
	expected := signatureHtml("Jane Doe", "jane@example.org")
	observed := "  <TABLE><TR><TD>" +
		"<DIV style=\"font-weight:bold;font-size:12px;color:#1F3864;\">Jane   Doe</DIV>" +
		"<DIV style=\"font-size:12px;color:#595959;\">Email:\n jane@example.org</DIV>" +
		"</TD></TR></TABLE>  "

	assert.Nil(t, CompareSignatures(expected, observed))
}

func TestCompareSignatures_NameMismatchIsReported(t *testing.T) {
	expected := signatureHtml("Jane Doe", "jane@example.org")
	observed := signatureHtml("John Smith", "jane@example.org")

	discrepancies := CompareSignatures(expected, observed)

	require.Len(t, discrepancies, 1)
	assert.Equal(t, constants.DiscrepancyName, discrepancies[0].Field)
	assert.Equal(t, "jane doe", discrepancies[0].Expected)
	assert.Equal(t, "john smith", discrepancies[0].Actual)
}

func TestCompareSignatures_LegacyBoldTagsAreRecognized(t *testing.T) {
	expected := signatureHtml("Jane Doe", "jane@example.org")
	observed := `<b>John Smith</b><br>Email: jane@example.org`

	discrepancies := CompareSignatures(expected, observed)

	require.Len(t, discrepancies, 1)
	assert.Equal(t, constants.DiscrepancyName, discrepancies[0].Field)
	assert.Equal(t, "john smith", discrepancies[0].Actual)
}

func TestCompareSignatures_EmailMismatchIsReported(t *testing.T) {
	expected := signatureHtml("Jane Doe", "jane.doe@example.org")
	observed := signatureHtml("Jane Doe", "jdoe@old-domain.example")

	discrepancies := CompareSignatures(expected, observed)

	require.Len(t, discrepancies, 1)
	assert.Equal(t, constants.DiscrepancyEmail, discrepancies[0].Field)
	assert.Equal(t, "jane.doe@example.org", discrepancies[0].Expected)
	assert.Equal(t, "jdoe@old-domain.example", discrepancies[0].Actual)
}

func TestCompareSignatures_NameAndEmailMismatchesAreBothReported(t *testing.T) {
	expected := signatureHtml("Jane Doe", "jane@example.org")
	observed := signatureHtml("John Smith", "john@example.org")

	discrepancies := CompareSignatures(expected, observed)

	require.Len(t, discrepancies, 2)
	fields := []string{discrepancies[0].Field, discrepancies[1].Field}
	assert.Contains(t, fields, constants.DiscrepancyName)
	assert.Contains(t, fields, constants.DiscrepancyEmail)
}

func TestCompareSignatures_UnattributableDifferenceFallsBackToContent(t *testing.T) {
	expected := signatureHtml("Jane Doe", "jane@example.org")
	observed := signatureHtml("Jane Doe", "jane@example.org") + "<div>Sent from my phone</div>"

	discrepancies := CompareSignatures(expected, observed)

	require.Len(t, discrepancies, 1)
	assert.Equal(t, constants.DiscrepancyContent, discrepancies[0].Field)
	assert.Empty(t, discrepancies[0].Expected)
}

func TestCompareSignatures_FirstBoldFragmentWins(t *testing.T) {
	expected := `<b>Jane Doe</b><div style="font-weight:bold">Platform Team</div>jane@example.org`
	observed := `<b>John Smith</b><div style="font-weight:bold">Platform Team</div>jane@example.org`

	discrepancies := CompareSignatures(expected, observed)

	require.Len(t, discrepancies, 1)
	assert.Equal(t, constants.DiscrepancyName, discrepancies[0].Field)
	assert.Equal(t, "jane doe", discrepancies[0].Expected)
}
