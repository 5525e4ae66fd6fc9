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
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-email-signature-service/internal/directory/model"
	"github.com/wso2/identity-email-signature-service/internal/system/config"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
)

func TestMain(m *testing.M) {
	config.OverrideESSRuntime(config.Config{})
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// stubDirectoryClient resolves users by id only, so email lookups exercise
// the list-scan fallback.
type stubDirectoryClient struct {
	users         []model.Profile
	getUsersCalls int
	updateCalls   int
}

func (c *stubDirectoryClient) GetUsers() ([]model.Profile, error) {
	c.getUsersCalls++
	return c.users, nil
}

func (c *stubDirectoryClient) GetUser(idOrMail string) (*model.Profile, error) {
	for i := range c.users {
		if c.users[i].Id == idOrMail {
			return &c.users[i], nil
		}
	}
	return nil, nil
}

func (c *stubDirectoryClient) UpdateUser(string, model.ProfilePatch) error {
	c.updateCalls++
	return nil
}

func directoryUsers() []model.Profile {
	return []model.Profile{
		{Id: "u-1", DisplayName: "Alice", Mail: "alice@example.org", AccountEnabled: true},
		{Id: "u-2", DisplayName: "Bob", Mail: "bob@example.org", AccountEnabled: true},
		{Id: "u-3", DisplayName: "Disabled", Mail: "gone@example.org", AccountEnabled: false},
		{Id: "u-4", DisplayName: "Shared Device", Mail: "", AccountEnabled: true},
	}
}

// ---------------------------------------------------------------------------
// ListUsers - auditable population and caching
// ---------------------------------------------------------------------------

func TestListUsers_FiltersDisabledAndMailboxlessAccounts(t *testing.T) {
	dirClient := &stubDirectoryClient{users: directoryUsers()}
	svc := NewDirectoryService(dirClient, time.Minute)

	users, err := svc.ListUsers()

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u-1", users[0].Id)
	assert.Equal(t, "u-2", users[1].Id)
}

func TestListUsers_SecondCallIsServedFromCache(t *testing.T) {
	dirClient := &stubDirectoryClient{users: directoryUsers()}
	svc := NewDirectoryService(dirClient, time.Minute)

	_, err := svc.ListUsers()
	require.NoError(t, err)
	_, err = svc.ListUsers()
	require.NoError(t, err)

	assert.Equal(t, 1, dirClient.getUsersCalls)
}

func TestFlushCache_ForcesAFreshDirectoryRead(t *testing.T) {
	dirClient := &stubDirectoryClient{users: directoryUsers()}
	svc := NewDirectoryService(dirClient, time.Minute)

	_, err := svc.ListUsers()
	require.NoError(t, err)
	svc.FlushCache()
	_, err = svc.ListUsers()
	require.NoError(t, err)

	assert.Equal(t, 2, dirClient.getUsersCalls)
}

// ---------------------------------------------------------------------------
// GetUser - id lookup with email fallback
// ---------------------------------------------------------------------------

func TestGetUser_ResolvesById(t *testing.T) {
	svc := NewDirectoryService(&stubDirectoryClient{users: directoryUsers()}, time.Minute)

	profile, err := svc.GetUser("u-2")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Bob", profile.DisplayName)
}

func TestGetUser_FallsBackToEmailScan(t *testing.T) {
	svc := NewDirectoryService(&stubDirectoryClient{users: directoryUsers()}, time.Minute)

	profile, err := svc.GetUser("ALICE@example.org")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "u-1", profile.Id)
}

func TestGetUser_UnknownIdWithoutAtSignDoesNotScan(t *testing.T) {
	dirClient := &stubDirectoryClient{users: directoryUsers()}
	svc := NewDirectoryService(dirClient, time.Minute)

	profile, err := svc.GetUser("u-99")

	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.Equal(t, 0, dirClient.getUsersCalls)
}

func TestGetUserByEmail_UnknownAddressReturnsNil(t *testing.T) {
	svc := NewDirectoryService(&stubDirectoryClient{users: directoryUsers()}, time.Minute)

	profile, err := svc.GetUserByEmail("nobody@example.org")

	require.NoError(t, err)
	assert.Nil(t, profile)
}

// ---------------------------------------------------------------------------
// UpdateUser
// ---------------------------------------------------------------------------

func TestUpdateUser_EmptyPatchRejected(t *testing.T) {
	dirClient := &stubDirectoryClient{users: directoryUsers()}
	svc := NewDirectoryService(dirClient, time.Minute)

	_, err := svc.UpdateUser("u-1", model.ProfilePatch{})

	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, 0, dirClient.updateCalls)
}

func TestUpdateUser_InvalidatesTheUserListCache(t *testing.T) {
	dirClient := &stubDirectoryClient{users: directoryUsers()}
	svc := NewDirectoryService(dirClient, time.Minute)

	_, err := svc.ListUsers()
	require.NoError(t, err)

	jobTitle := "Principal Engineer"
	updated, err := svc.UpdateUser("u-1", model.ProfilePatch{JobTitle: &jobTitle})
	require.NoError(t, err)
	assert.True(t, updated)

	_, err = svc.ListUsers()
	require.NoError(t, err)
	assert.Equal(t, 2, dirClient.getUsersCalls)
}
