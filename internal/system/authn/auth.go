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

package authn

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wso2/identity-email-signature-service/internal/system/client"
	"github.com/wso2/identity-email-signature-service/internal/system/config"
	errors2 "github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
)

var (
	expectedAudience = "signature-service"
)

// ValidateAuthenticationAndReturnClaims validates a bearer token and returns
// its claims. JWT tokens are additionally introspected against the
// authorization server; opaque tokens are rejected.
func ValidateAuthenticationAndReturnClaims(token string) (map[string]interface{}, error) {

	var claims map[string]interface{}
	var err error
	logger := log.GetLogger()

	// Detect if token is JWT or opaque
	if strings.Count(token, ".") == 2 {
		claims, err = ParseJWTClaims(token)
		if err != nil {
			return claims, unauthorizedError()
		}
		cfg := config.GetESSRuntime().Config
		authServerClient := client.NewAuthServerClient(cfg)
		introspectionClaims, err := authServerClient.IntrospectToken(token)
		if err != nil {
			return claims, unauthorizedError()
		}
		active, ok := introspectionClaims["active"].(bool)
		if !ok || !active {
			logger.Debug("JWT token is not active according to introspection.")
			return nil, unauthorizedError()
		}
	} else {
		logger.Debug("Expecting a JWT token but received an opaque token.")
		return claims, unauthorizedError()
	}

	if !validateClaims(claims) {
		return claims, unauthorizedError()
	}

	return claims, nil
}

// ParseJWTClaims parses claims from a JWT without verifying the signature
func ParseJWTClaims(tokenString string) (map[string]interface{}, error) {

	logger := log.GetLogger()
	claims := jwt.MapClaims{}
	_, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims)
	if err != nil {
		errMsg := "Error occurred when parsing claims from JWT token."
		logger.Debug(errMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PARSING_ERROR.Code,
			Message:     errors2.PARSING_ERROR.Message,
			Description: errMsg,
		}, err)
		return nil, serverError
	}
	return claims, nil
}

// GetUserIDFromRequest extracts the subject of the bearer token on the
// request. Returns an empty string when no subject can be determined, so it
// is only suitable for audit logging, never for access decisions.
func GetUserIDFromRequest(r *http.Request) string {

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if strings.Count(token, ".") != 2 {
		return ""
	}
	claims, err := ParseJWTClaims(token)
	if err != nil {
		return ""
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

// validateClaims ensures the token has not expired and carries the expected
// audience.
func validateClaims(claims map[string]interface{}) bool {

	logger := log.GetLogger()

	expRaw, ok := claims["exp"]
	if !ok {
		logger.Debug("Token does not have an expiration time.")
		return false
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		logger.Debug("Token does not have a valid expiration time.", log.Any("exp", expRaw))
		return false
	}
	expUnix := int64(expFloat)
	currentTime := time.Now().Unix()
	if expUnix < currentTime {
		logger.Debug("Token has expired.", log.String("exp", time.Unix(expUnix, 0).String()))
		return false
	}

	audRaw, ok := claims["aud"]
	if !ok {
		logger.Debug("Token does not have an audience claim.")
		return false
	}

	var audList []string
	switch aud := audRaw.(type) {
	case []interface{}:
		for _, a := range aud {
			if s, ok := a.(string); ok {
				audList = append(audList, s)
			}
		}
	case string:
		audList = append(audList, aud)
	}

	for _, aud := range audList {
		if aud == expectedAudience {
			return true
		}
	}
	logger.Debug("Token audience does not match expected audience.")
	return false
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UN_AUTHORIZED.Code,
		Message:     errors2.UN_AUTHORIZED.Message,
		Description: errors2.UN_AUTHORIZED.Description,
	}, http.StatusUnauthorized)
}
