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
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditmodel "github.com/wso2/identity-email-signature-service/internal/audit/model"
	directorymodel "github.com/wso2/identity-email-signature-service/internal/directory/model"
	historymodel "github.com/wso2/identity-email-signature-service/internal/history/model"
	mailboxmodel "github.com/wso2/identity-email-signature-service/internal/mailbox/model"
	overridemodel "github.com/wso2/identity-email-signature-service/internal/overrides/model"
	"github.com/wso2/identity-email-signature-service/internal/signatures/model"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
	templatemodel "github.com/wso2/identity-email-signature-service/internal/templates/model"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// Stub collaborators
// ---------------------------------------------------------------------------

type fakeDirectory struct {
	users []directorymodel.Profile
}

func (f *fakeDirectory) ListUsers() ([]directorymodel.Profile, error) { return f.users, nil }

func (f *fakeDirectory) GetUser(idOrEmail string) (*directorymodel.Profile, error) {
	for i := range f.users {
		if f.users[i].Id == idOrEmail || f.users[i].Mail == idOrEmail {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) GetUserByEmail(email string) (*directorymodel.Profile, error) {
	return f.GetUser(email)
}

func (f *fakeDirectory) UpdateUser(string, directorymodel.ProfilePatch) (bool, error) {
	return false, nil
}

func (f *fakeDirectory) GetCurrentUser() (*directorymodel.Profile, error) { return nil, nil }

func (f *fakeDirectory) FlushCache() {}

type signatureWrite struct {
	mail, html, text string
}

type recordingMailbox struct {
	current map[string]mailboxmodel.SignatureData
	failSet map[string]bool
	writes  []signatureWrite
}

func (r *recordingMailbox) GetSignature(mail string) (mailboxmodel.SignatureData, error) {
	if signature, ok := r.current[mail]; ok {
		return signature, nil
	}
	return mailboxmodel.SignatureData{Accessible: true}, nil
}

func (r *recordingMailbox) SetSignature(mail, html, text string) (bool, error) {
	if r.failSet[mail] {
		return false, stderrors.New("mailbox write refused")
	}
	r.writes = append(r.writes, signatureWrite{mail: mail, html: html, text: text})
	return true, nil
}

type fixedTemplates struct {
	template templatemodel.TemplateDefinition
	err      error
}

func (f *fixedTemplates) AddTemplate(template templatemodel.TemplateDefinition) (templatemodel.TemplateDefinition, error) {
	return template, f.err
}

func (f *fixedTemplates) GetTemplate(string) (templatemodel.TemplateDefinition, error) {
	return f.template, f.err
}

func (f *fixedTemplates) GetDefaultTemplate() (templatemodel.TemplateDefinition, error) {
	return f.template, f.err
}

func (f *fixedTemplates) GetTemplates() ([]templatemodel.TemplateDefinition, error) {
	return []templatemodel.TemplateDefinition{f.template}, f.err
}

func (f *fixedTemplates) UpdateTemplate(_ string, template templatemodel.TemplateDefinition) (templatemodel.TemplateDefinition, error) {
	return template, f.err
}

func (f *fixedTemplates) DeleteTemplate(string) error { return f.err }

func (f *fixedTemplates) SetDefaultTemplate(string) error { return f.err }

type emptyOverrides struct{}

func (emptyOverrides) SaveOverride(record overridemodel.OverrideRecord) (*overridemodel.OverrideRecord, error) {
	return &record, nil
}

func (emptyOverrides) GetOverride(string) (*overridemodel.OverrideRecord, error) { return nil, nil }

func (emptyOverrides) FindOverride(string) (*overridemodel.OverrideRecord, error) { return nil, nil }

func (emptyOverrides) ListOverrides() ([]overridemodel.OverrideRecord, error) { return nil, nil }

func (emptyOverrides) DeleteOverride(string) error { return nil }

type recordingHistory struct {
	latest   map[string]*historymodel.SignatureSnapshot
	recorded []historymodel.SignatureSnapshot
}

func (r *recordingHistory) RecordSnapshot(userId, mail, html, plainText, source string) (*historymodel.SignatureSnapshot, error) {
	snapshot := historymodel.SignatureSnapshot{
		SnapshotId: "snap-recorded",
		UserId:     userId,
		Mail:       mail,
		Html:       html,
		PlainText:  plainText,
		Source:     source,
	}
	r.recorded = append(r.recorded, snapshot)
	return &snapshot, nil
}

func (r *recordingHistory) GetHistory(string, int) ([]historymodel.SignatureSnapshot, error) {
	return r.recorded, nil
}

func (r *recordingHistory) GetLatestSnapshot(userId string) (*historymodel.SignatureSnapshot, error) {
	return r.latest[userId], nil
}

type scriptedAudit struct {
	one    auditmodel.AuditResult
	oneErr error
	all    []auditmodel.AuditResult
	allErr error
}

func (s *scriptedAudit) AuditAll(context.Context, auditmodel.ProgressFunc) ([]auditmodel.AuditResult, error) {
	return s.all, s.allErr
}

func (s *scriptedAudit) AuditOne(string) (auditmodel.AuditResult, error) {
	return s.one, s.oneErr
}

func (s *scriptedAudit) ClassifyUser(profile directorymodel.Profile, _ templatemodel.TemplateDefinition) auditmodel.AuditResult {
	return auditmodel.AuditResult{Profile: profile}
}

func (s *scriptedAudit) Summarize([]auditmodel.AuditResult, time.Duration) auditmodel.AuditSummary {
	return auditmodel.AuditSummary{}
}

type signatureFixture struct {
	svc     *SignatureService
	mailbox *recordingMailbox
	history *recordingHistory
	audit   *scriptedAudit
}

func newSignatureFixture(users ...directorymodel.Profile) *signatureFixture {
	mailbox := &recordingMailbox{current: map[string]mailboxmodel.SignatureData{}, failSet: map[string]bool{}}
	history := &recordingHistory{latest: map[string]*historymodel.SignatureSnapshot{}}
	audit := &scriptedAudit{}
	svc := NewSignatureService(
		&fakeDirectory{users: users},
		mailbox,
		&fixedTemplates{template: templatemodel.DefaultTemplateDefinition()},
		emptyOverrides{},
		history,
		audit,
	)
	return &signatureFixture{svc: svc, mailbox: mailbox, history: history, audit: audit}
}

func deployableUser() directorymodel.Profile {
	return directorymodel.Profile{
		Id:            "u-1",
		DisplayName:   "Jane Doe",
		JobTitle:      "Engineer",
		Department:    "Platform",
		Mail:          "jane@example.org",
		BusinessPhone: "+41 44 111 22 33",
	}
}

func expectClientError(t *testing.T, err error, statusCode int) {
	t.Helper()
	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, statusCode, clientErr.StatusCode)
}

// ---------------------------------------------------------------------------
// Preview
// ---------------------------------------------------------------------------

func TestPreview_BlankUserIdRejected(t *testing.T) {
	fixture := newSignatureFixture()

	_, err := fixture.svc.Preview(model.PreviewRequest{UserId: "  "})

	expectClientError(t, err, http.StatusBadRequest)
}

func TestPreview_UnknownUserNotFound(t *testing.T) {
	fixture := newSignatureFixture()

	_, err := fixture.svc.Preview(model.PreviewRequest{UserId: "ghost"})

	expectClientError(t, err, http.StatusNotFound)
}

func TestPreview_RendersWithoutTouchingTheMailbox(t *testing.T) {
	fixture := newSignatureFixture(deployableUser())

	result, err := fixture.svc.Preview(model.PreviewRequest{UserId: "jane@example.org"})

	require.NoError(t, err)
	assert.Equal(t, "u-1", result.UserId)
	assert.Contains(t, result.Html, "Jane Doe")
	assert.Contains(t, result.PlainText, "Jane Doe")
	assert.NotContains(t, result.PlainText, "<")
	assert.Empty(t, fixture.mailbox.writes)
	assert.Empty(t, fixture.history.recorded)
}

// ---------------------------------------------------------------------------
// DeployUser
// ---------------------------------------------------------------------------

func TestDeployUser_RefusedOutsideDeployableStatuses(t *testing.T) {
	fixture := newSignatureFixture(deployableUser())
	fixture.audit.one = auditmodel.AuditResult{
		Profile: deployableUser(),
		Status:  auditmodel.StatusIncomplete,
	}

	_, err := fixture.svc.DeployUser("u-1")

	expectClientError(t, err, http.StatusConflict)
	assert.Empty(t, fixture.mailbox.writes)
}

func TestDeployUser_SnapshotsTheOldSignatureBeforeWriting(t *testing.T) {
	fixture := newSignatureFixture(deployableUser())
	fixture.audit.one = auditmodel.AuditResult{
		Profile:      deployableUser(),
		Status:       auditmodel.StatusReadyToDeploy,
		ExpectedHtml: "<table>new</table>",
	}
	fixture.mailbox.current["jane@example.org"] = mailboxmodel.SignatureData{
		HTML: "<table>old</table>", Text: "old", Accessible: true,
	}

	result, err := fixture.svc.DeployUser("u-1")

	require.NoError(t, err)
	assert.Equal(t, auditmodel.StatusReadyToDeploy, result.Status)

	require.Len(t, fixture.history.recorded, 1)
	assert.Equal(t, "<table>old</table>", fixture.history.recorded[0].Html)
	assert.Equal(t, constants.SnapshotSourceDeploy, fixture.history.recorded[0].Source)

	require.Len(t, fixture.mailbox.writes, 1)
	assert.Equal(t, "<table>new</table>", fixture.mailbox.writes[0].html)
	assert.NotEmpty(t, fixture.mailbox.writes[0].text)
}

func TestDeployUser_EmptyMailboxNeedsNoSnapshot(t *testing.T) {
	fixture := newSignatureFixture(deployableUser())
	fixture.audit.one = auditmodel.AuditResult{
		Profile:      deployableUser(),
		Status:       auditmodel.StatusReadyToDeploy,
		ExpectedHtml: "<table>new</table>",
	}

	_, err := fixture.svc.DeployUser("u-1")

	require.NoError(t, err)
	assert.Empty(t, fixture.history.recorded)
	assert.Len(t, fixture.mailbox.writes, 1)
}

func TestDeployUser_InaccessibleMailboxFails(t *testing.T) {
	fixture := newSignatureFixture(deployableUser())
	fixture.audit.one = auditmodel.AuditResult{
		Profile:      deployableUser(),
		Status:       auditmodel.StatusMatch,
		ExpectedHtml: "<table>new</table>",
	}
	fixture.mailbox.current["jane@example.org"] = mailboxmodel.SignatureData{
		Accessible: false, AccessError: "Mailbox access denied.",
	}

	_, err := fixture.svc.DeployUser("u-1")

	require.Error(t, err)
	serverErr, ok := err.(*errors.ServerError)
	require.True(t, ok, "expected a ServerError")
	assert.Contains(t, serverErr.Err.Error(), "denied")
	assert.Empty(t, fixture.mailbox.writes)
	assert.Empty(t, fixture.history.recorded)
}

// ---------------------------------------------------------------------------
// DeployAll
// ---------------------------------------------------------------------------

func sweepResult(id, mail string, status auditmodel.SignatureStatus) auditmodel.AuditResult {
	return auditmodel.AuditResult{
		Profile:      directorymodel.Profile{Id: id, DisplayName: id, Mail: mail},
		Status:       status,
		ExpectedHtml: "<table>" + id + "</table>",
	}
}

func TestDeployAll_SweepsOnlyUsersReadyToDeploy(t *testing.T) {
	fixture := newSignatureFixture()
	fixture.audit.all = []auditmodel.AuditResult{
		sweepResult("u-1", "a@example.org", auditmodel.StatusReadyToDeploy),
		sweepResult("u-2", "b@example.org", auditmodel.StatusMatch),
		sweepResult("u-3", "c@example.org", auditmodel.StatusIncomplete),
		sweepResult("u-4", "d@example.org", auditmodel.StatusReadyToDeploy),
	}

	sweep, err := fixture.svc.DeployAll()

	require.NoError(t, err)
	assert.Equal(t, 2, sweep.Attempted)
	assert.Equal(t, 2, sweep.Deployed)
	assert.Equal(t, 0, sweep.Failed)
	require.Len(t, sweep.Outcomes, 2)
	assert.Equal(t, "u-1", sweep.Outcomes[0].UserId)
	assert.Equal(t, "u-4", sweep.Outcomes[1].UserId)
	assert.Len(t, fixture.mailbox.writes, 2)
}

func TestDeployAll_IndividualFailuresDoNotAbortTheSweep(t *testing.T) {
	fixture := newSignatureFixture()
	fixture.audit.all = []auditmodel.AuditResult{
		sweepResult("u-1", "a@example.org", auditmodel.StatusReadyToDeploy),
		sweepResult("u-2", "b@example.org", auditmodel.StatusReadyToDeploy),
	}
	fixture.mailbox.failSet["a@example.org"] = true

	sweep, err := fixture.svc.DeployAll()

	require.NoError(t, err)
	assert.Equal(t, 2, sweep.Attempted)
	assert.Equal(t, 1, sweep.Deployed)
	assert.Equal(t, 1, sweep.Failed)
	assert.False(t, sweep.Outcomes[0].Deployed)
	assert.NotEmpty(t, sweep.Outcomes[0].Error)
	assert.True(t, sweep.Outcomes[1].Deployed)
}

// ---------------------------------------------------------------------------
// Rollback
// ---------------------------------------------------------------------------

func TestRollback_BlankUserIdRejected(t *testing.T) {
	fixture := newSignatureFixture()

	_, err := fixture.svc.Rollback("")

	expectClientError(t, err, http.StatusBadRequest)
}

func TestRollback_WithoutSnapshotIsNotFound(t *testing.T) {
	fixture := newSignatureFixture(deployableUser())

	_, err := fixture.svc.Rollback("u-1")

	expectClientError(t, err, http.StatusNotFound)
}

func TestRollback_RestoresTheLatestSnapshot(t *testing.T) {
	fixture := newSignatureFixture(deployableUser())
	fixture.history.latest["u-1"] = &historymodel.SignatureSnapshot{
		SnapshotId: "snap-1",
		UserId:     "u-1",
		Html:       "<table>previous</table>",
		PlainText:  "previous",
		Source:     constants.SnapshotSourceDeploy,
	}
	fixture.mailbox.current["jane@example.org"] = mailboxmodel.SignatureData{
		HTML: "<table>current</table>", Text: "current", Accessible: true,
	}

	snapshot, err := fixture.svc.Rollback("u-1")

	require.NoError(t, err)
	assert.Equal(t, "snap-1", snapshot.SnapshotId)

	// The replaced value is preserved before the restore is written.
	require.Len(t, fixture.history.recorded, 1)
	assert.Equal(t, "<table>current</table>", fixture.history.recorded[0].Html)
	assert.Equal(t, constants.SnapshotSourceRollback, fixture.history.recorded[0].Source)

	require.Len(t, fixture.mailbox.writes, 1)
	assert.Equal(t, "<table>previous</table>", fixture.mailbox.writes[0].html)
	assert.Equal(t, "previous", fixture.mailbox.writes[0].text)
}

func TestRollback_InaccessibleMailboxFails(t *testing.T) {
	fixture := newSignatureFixture(deployableUser())
	fixture.history.latest["u-1"] = &historymodel.SignatureSnapshot{SnapshotId: "snap-1", UserId: "u-1"}
	fixture.mailbox.current["jane@example.org"] = mailboxmodel.SignatureData{
		Accessible: false, AccessError: "Mailbox locked.",
	}

	_, err := fixture.svc.Rollback("u-1")

	require.Error(t, err)
	assert.Empty(t, fixture.history.recorded)
	assert.Empty(t, fixture.mailbox.writes)
}
