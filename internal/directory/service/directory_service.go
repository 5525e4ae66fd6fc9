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
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/wso2/identity-email-signature-service/internal/directory/model"
	"github.com/wso2/identity-email-signature-service/internal/system/cache"
	"github.com/wso2/identity-email-signature-service/internal/system/client"
	"github.com/wso2/identity-email-signature-service/internal/system/config"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
)

const userListCacheKey = "directory:users"

// DirectoryClientInterface is the outbound surface of the directory API used
// by this service. Kept narrow so tests can substitute a stub.
type DirectoryClientInterface interface {
	GetUsers() ([]model.Profile, error)
	GetUser(idOrMail string) (*model.Profile, error)
	UpdateUser(id string, patch model.ProfilePatch) error
}

// DirectoryServiceInterface exposes directory user lookups to the rest of
// the service.
type DirectoryServiceInterface interface {
	ListUsers() ([]model.Profile, error)
	GetUser(idOrEmail string) (*model.Profile, error)
	GetUserByEmail(email string) (*model.Profile, error)
	UpdateUser(id string, patch model.ProfilePatch) (bool, error)
	GetCurrentUser() (*model.Profile, error)
	FlushCache()
}

// DirectoryService is the default implementation of the
// DirectoryServiceInterface.
type DirectoryService struct {
	client    DirectoryClientInterface
	userCache *cache.Cache
}

var (
	instance *DirectoryService
	once     sync.Once
)

// GetDirectoryService returns the shared directory service instance.
func GetDirectoryService() DirectoryServiceInterface {

	once.Do(func() {
		cfg := config.GetESSRuntime().Config
		ttl := time.Duration(cfg.Audit.UserCacheTTLSeconds) * time.Second
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		instance = &DirectoryService{
			client:    client.NewDirectoryClient(cfg),
			userCache: cache.NewCache(ttl),
		}
	})
	return instance
}

// NewDirectoryService builds a directory service around the given client.
// Test use only.
func NewDirectoryService(dirClient DirectoryClientInterface, ttl time.Duration) *DirectoryService {

	return &DirectoryService{
		client:    dirClient,
		userCache: cache.NewCache(ttl),
	}
}

// ListUsers returns the auditable user population: enabled accounts that
// carry a mailbox address. The list is cached with a TTL to bound outbound
// directory calls during repeated audit activity.
func (ds *DirectoryService) ListUsers() ([]model.Profile, error) {

	if cached, found := ds.userCache.Get(userListCacheKey); found {
		if users, ok := cached.([]model.Profile); ok {
			return users, nil
		}
	}

	allUsers, err := ds.client.GetUsers()
	if err != nil {
		return nil, err
	}

	users := make([]model.Profile, 0, len(allUsers))
	for _, user := range allUsers {
		if !user.AccountEnabled || strings.TrimSpace(user.Mail) == "" {
			continue
		}
		users = append(users, user)
	}
	log.GetLogger().Debug(fmt.Sprintf("Directory returned %d users, %d auditable", len(allUsers), len(users)))

	ds.userCache.Set(userListCacheKey, users)
	return users, nil
}

// GetUser resolves a user by directory id, falling back to an email lookup
// when the identifier contains '@'. Returns nil when no user matches.
func (ds *DirectoryService) GetUser(idOrEmail string) (*model.Profile, error) {

	profile, err := ds.client.GetUser(idOrEmail)
	if err != nil {
		return nil, err
	}
	if profile == nil && strings.Contains(idOrEmail, "@") {
		return ds.GetUserByEmail(idOrEmail)
	}
	return profile, nil
}

// GetUserByEmail resolves a user by mail address, case-insensitively.
func (ds *DirectoryService) GetUserByEmail(email string) (*model.Profile, error) {

	profile, err := ds.client.GetUser(email)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	// The directory may not index the mail attribute for lookups; fall back
	// to scanning the user list.
	users, err := ds.ListUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Mail, email) {
			user := users[i]
			return &user, nil
		}
	}
	return nil, nil
}

// UpdateUser patches the allowed directory attributes on a user record and
// invalidates the cached user list.
func (ds *DirectoryService) UpdateUser(id string, patch model.ProfilePatch) (bool, error) {

	if patch.IsEmpty() {
		return false, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.PROFILE_UPDATE_FAILED.Code,
			Message:     errors.PROFILE_UPDATE_FAILED.Message,
			Description: "No updatable attribute supplied. Allowed attributes: jobTitle, department, businessPhone, mobilePhone",
		}, http.StatusBadRequest)
	}

	if err := ds.client.UpdateUser(id, patch); err != nil {
		return false, err
	}
	ds.userCache.Delete(userListCacheKey)

	log.GetLogger().Info("Updated directory profile", log.String("user_id", id))
	return true, nil
}

// GetCurrentUser resolves the operator account configured for this
// deployment. Returns nil when no admin username is configured.
func (ds *DirectoryService) GetCurrentUser() (*model.Profile, error) {

	adminUsername := config.GetESSRuntime().Config.AuthServer.AdminUsername
	if strings.TrimSpace(adminUsername) == "" {
		return nil, nil
	}
	return ds.GetUser(adminUsername)
}

// FlushCache drops the cached user list.
func (ds *DirectoryService) FlushCache() {

	ds.userCache.Flush()
}
