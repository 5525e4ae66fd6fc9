package integration

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-email-signature-service/internal/overrides/model"
	"github.com/wso2/identity-email-signature-service/internal/overrides/service"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
)

func Test_SignatureOverride(t *testing.T) {

	overrideService := service.GetOverrideService()
	userId := uuid.New().String()

	t.Run("Save_override_normalizes_input", func(t *testing.T) {
		saved, err := overrideService.SaveOverride(model.OverrideRecord{
			UserId:       userId,
			JobTitle:     "Acting Team Lead",
			Pronouns:     "  she / her  ",
			HiddenFields: []string{" MobilePhone ", "JOBTITLE", "mobilephone"},
		})
		require.NoError(t, err, "Failed to save override")
		require.Equal(t, "She/Her", saved.Pronouns)
		require.Equal(t, []string{"mobilephone", "jobtitle"}, saved.HiddenFields)
		require.NotZero(t, saved.LastModified)
	})

	t.Run("Get_override", func(t *testing.T) {
		fetched, err := overrideService.GetOverride(userId)
		require.NoError(t, err, "Failed to fetch override")
		require.Equal(t, "Acting Team Lead", fetched.JobTitle)
		require.Equal(t, "She/Her", fetched.Pronouns)
		require.Equal(t, []string{"mobilephone", "jobtitle"}, fetched.HiddenFields)
	})

	t.Run("Save_again_replaces", func(t *testing.T) {
		_, err := overrideService.SaveOverride(model.OverrideRecord{
			UserId:   userId,
			JobTitle: "Team Lead",
		})
		require.NoError(t, err, "Failed to replace override")

		fetched, err := overrideService.GetOverride(userId)
		require.NoError(t, err, "Failed to fetch replaced override")
		require.Equal(t, "Team Lead", fetched.JobTitle)
		require.Empty(t, fetched.HiddenFields, "Replaced override must not keep earlier hidden fields")
	})

	t.Run("List_overrides", func(t *testing.T) {
		records, err := overrideService.ListOverrides()
		require.NoError(t, err, "Failed to list overrides")
		require.NotEmpty(t, records, "Override list is empty")
	})

	t.Run("Find_without_override_returns_nil", func(t *testing.T) {
		record, err := overrideService.FindOverride(uuid.New().String())
		require.NoError(t, err, "Lookup of an absent override must not fail")
		require.Nil(t, record)
	})

	t.Run("Delete_override", func(t *testing.T) {
		err := overrideService.DeleteOverride(userId)
		require.NoError(t, err, "Failed to delete override")

		_, err = overrideService.GetOverride(userId)
		clientErr, ok := err.(*errors.ClientError)
		require.True(t, ok, "expected a ClientError")
		require.Equal(t, http.StatusNotFound, clientErr.StatusCode)

		err = overrideService.DeleteOverride(userId)
		clientErr, ok = err.(*errors.ClientError)
		require.True(t, ok, "expected a ClientError")
		require.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	})
}
