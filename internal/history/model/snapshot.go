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

// Package model defines the signature history types.
package model

// SignatureSnapshot preserves the mailbox signature of a user as it was
// right before this service replaced it. Source records which operation
// captured the snapshot.
type SignatureSnapshot struct {
	SnapshotId string `json:"snapshot_id" bson:"snapshot_id"`
	UserId     string `json:"user_id" bson:"user_id"`
	Mail       string `json:"mail" bson:"mail"`
	Html       string `json:"html" bson:"html"`
	PlainText  string `json:"plain_text,omitempty" bson:"plain_text,omitempty"`
	CapturedAt int64  `json:"captured_at" bson:"captured_at"`
	Source     string `json:"source" bson:"source"`
}
