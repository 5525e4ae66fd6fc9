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

// Profile is a read-only identity record sourced from the cloud directory.
// The audit core never mutates a Profile it received; override merging
// returns a fresh copy instead.
type Profile struct {
	Id             string `json:"id" bson:"id"`
	DisplayName    string `json:"display_name" bson:"display_name"`
	JobTitle       string `json:"job_title,omitempty" bson:"job_title,omitempty"`
	Department     string `json:"department,omitempty" bson:"department,omitempty"`
	Mail           string `json:"mail,omitempty" bson:"mail,omitempty"`
	BusinessPhone  string `json:"business_phone,omitempty" bson:"business_phone,omitempty"`
	MobilePhone    string `json:"mobile_phone,omitempty" bson:"mobile_phone,omitempty"`
	AccountEnabled bool   `json:"account_enabled" bson:"account_enabled"`
}

// ProfilePatch carries the directory attributes an admin is allowed to update
// through the remediation endpoint. Nil fields are left untouched.
type ProfilePatch struct {
	JobTitle      *string `json:"job_title,omitempty"`
	Department    *string `json:"department,omitempty"`
	BusinessPhone *string `json:"business_phone,omitempty"`
	MobilePhone   *string `json:"mobile_phone,omitempty"`
}

// IsEmpty reports whether the patch carries no attribute at all.
func (p ProfilePatch) IsEmpty() bool {

	return p.JobTitle == nil && p.Department == nil && p.BusinessPhone == nil && p.MobilePhone == nil
}
