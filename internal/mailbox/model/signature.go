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

// SignatureData is the outcome of reading a user's mailbox signature.
// Accessible=true with empty HTML and Text is a legitimate state: the mailbox
// stores its signature in a format the gateway cannot read back.
type SignatureData struct {
	HTML        string `json:"html,omitempty"`
	Text        string `json:"text,omitempty"`
	Accessible  bool   `json:"accessible"`
	AccessError string `json:"access_error,omitempty"`
}
