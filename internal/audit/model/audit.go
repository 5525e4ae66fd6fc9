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
	directorymodel "github.com/wso2/identity-email-signature-service/internal/directory/model"
)

// SignatureStatus is the terminal compliance status of one user in one audit
// run. MISSING, OUTDATED and INCONSISTENT are reserved for the legacy
// comparator branch and are not produced by the completeness priority chain.
type SignatureStatus string

const (
	StatusMatch         SignatureStatus = "MATCH"
	StatusMissing       SignatureStatus = "MISSING"
	StatusOutdated      SignatureStatus = "OUTDATED"
	StatusInconsistent  SignatureStatus = "INCONSISTENT"
	StatusError         SignatureStatus = "ERROR"
	StatusNotAccessible SignatureStatus = "NOT_ACCESSIBLE"
	StatusIncomplete    SignatureStatus = "INCOMPLETE"
	StatusReadyToDeploy SignatureStatus = "READY_TO_DEPLOY"
)

// Discrepancy is one detected mismatch between the expected signature or
// profile data and what was observed.
type Discrepancy struct {
	Field       string `json:"field" bson:"field"`
	Expected    string `json:"expected,omitempty" bson:"expected,omitempty"`
	Actual      string `json:"actual,omitempty" bson:"actual,omitempty"`
	Description string `json:"description" bson:"description"`
}

// AuditResult is the outcome of classifying one user. Results are produced
// fresh per run and never mutated afterwards.
type AuditResult struct {
	Profile       directorymodel.Profile `json:"profile" bson:"profile"`
	Status        SignatureStatus        `json:"status" bson:"status"`
	ExpectedHtml  string                 `json:"expected_html,omitempty" bson:"expected_html,omitempty"`
	ObservedHtml  string                 `json:"observed_html,omitempty" bson:"observed_html,omitempty"`
	Discrepancies []Discrepancy          `json:"discrepancies" bson:"discrepancies"`
	ErrorMessage  string                 `json:"error_message,omitempty" bson:"error_message,omitempty"`
	AuditedAt     int64                  `json:"audited_at" bson:"audited_at"`
}

// AuditSummary aggregates one run's results per status bucket.
type AuditSummary struct {
	TotalUsers                  int     `json:"total_users"`
	MatchCount                  int     `json:"match_count"`
	MissingCount                int     `json:"missing_count"`
	OutdatedCount               int     `json:"outdated_count"`
	InconsistentCount           int     `json:"inconsistent_count"`
	ErrorCount                  int     `json:"error_count"`
	NotAccessibleCount          int     `json:"not_accessible_count"`
	IncompleteCount             int     `json:"incomplete_count"`
	ReadyToDeployCount          int     `json:"ready_to_deploy_count"`
	ProfileCompleteCount        int     `json:"profile_complete_count"`
	ProfileCompliancePercentage float64 `json:"profile_compliance_percentage"`
	GeneratedAt                 int64   `json:"generated_at"`
	DurationSeconds             float64 `json:"duration_seconds"`
}

// RunProgress reports how far a running audit has come.
type RunProgress struct {
	Processed   int    `json:"processed"`
	Total       int    `json:"total"`
	CurrentUser string `json:"current_user,omitempty"`
}

// AuditRun is one registry entry for a triggered audit run.
type AuditRun struct {
	RunId       string        `json:"run_id"`
	Status      string        `json:"status"`
	StartedAt   int64         `json:"started_at"`
	CompletedAt int64         `json:"completed_at,omitempty"`
	Progress    RunProgress   `json:"progress"`
	Results     []AuditResult `json:"results,omitempty"`
	Summary     *AuditSummary `json:"summary,omitempty"`
	ErrorMsg    string        `json:"error_message,omitempty"`
}

// ProgressFunc receives a progress report after each classified user.
type ProgressFunc func(processed, total int, currentUser string)
