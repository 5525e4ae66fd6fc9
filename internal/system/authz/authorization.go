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

package authz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wso2/identity-email-signature-service/internal/system/config"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
)

// defaultRequiredScopes maps each operation to the scopes a token must carry
// for it. Deployment configuration can override individual operations via
// auth_server.required_scopes.
var defaultRequiredScopes = map[string][]string{
	"signature_template:view":   {"signature_view"},
	"signature_template:create": {"signature_admin"},
	"signature_template:update": {"signature_admin"},
	"signature_template:delete": {"signature_admin"},

	"signature_override:view":   {"signature_view"},
	"signature_override:update": {"signature_admin"},
	"signature_override:delete": {"signature_admin"},

	"signature:preview":  {"signature_view"},
	"signature:deploy":   {"signature_admin"},
	"signature:rollback": {"signature_admin"},
	"signature:history":  {"signature_view"},

	"audit_run:create": {"signature_admin"},
	"audit_run:view":   {"signature_view"},
	"audit_run:cancel": {"signature_admin"},

	"directory_profile:update": {"signature_admin"},
}

// ValidatePermission checks if the provided scopes satisfy the scope
// requirements of an operation.
func ValidatePermission(scopeStr string, operation string) bool {

	logger := log.GetLogger()
	if scopeStr == "" {
		logger.Debug(fmt.Sprintf("No scopes provided for operation: %s", operation))
		return false
	}

	expectedScopes, ok := requiredScopesFor(operation)
	if !ok {
		logger.Debug(fmt.Sprintf("No scope requirement registered for operation: %s", operation))
		return false
	}

	grantedScopes := strings.Split(scopeStr, " ")
	for _, expected := range expectedScopes {
		if !slices.Contains(grantedScopes, expected) {
			logger.Debug(fmt.Sprintf("Missing scope %s for operation: %s", expected, operation))
			return false
		}
	}
	return true
}

func requiredScopesFor(operation string) ([]string, bool) {

	configured := config.GetESSRuntime().Config.AuthServer.RequiredScopes
	if scopes, ok := configured[operation]; ok {
		return scopes, true
	}
	scopes, ok := defaultRequiredScopes[operation]
	return scopes, ok
}
