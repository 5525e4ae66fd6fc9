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

// Package model defines the request and response types of the signature
// deployment endpoints.
package model

// PreviewRequest asks for a rendering of a user's signature. A blank
// template id previews against the default template.
type PreviewRequest struct {
	UserId     string `json:"user_id"`
	TemplateId string `json:"template_id,omitempty"`
}

// PreviewResult carries a rendered signature without touching the mailbox.
type PreviewResult struct {
	UserId     string `json:"user_id"`
	TemplateId string `json:"template_id"`
	Html       string `json:"html"`
	PlainText  string `json:"plain_text"`
}

// DeployRequest deploys the standard signature to one user, or to every
// ready user when All is set.
type DeployRequest struct {
	UserId string `json:"user_id,omitempty"`
	All    bool   `json:"all,omitempty"`
}

// RollbackRequest restores the most recent snapshot of a user's signature.
type RollbackRequest struct {
	UserId string `json:"user_id"`
}

// DeployOutcome is the per-user outcome of a deployment sweep.
type DeployOutcome struct {
	UserId      string `json:"user_id"`
	Mail        string `json:"mail"`
	DisplayName string `json:"display_name"`
	Deployed    bool   `json:"deployed"`
	Error       string `json:"error,omitempty"`
}

// DeploySweepResult aggregates a full deployment sweep.
type DeploySweepResult struct {
	Attempted int             `json:"attempted"`
	Deployed  int             `json:"deployed"`
	Failed    int             `json:"failed"`
	Outcomes  []DeployOutcome `json:"outcomes"`
}
