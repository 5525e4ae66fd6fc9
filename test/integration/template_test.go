package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/templates/model"
	"github.com/wso2/identity-email-signature-service/internal/templates/service"
	"github.com/wso2/identity-email-signature-service/internal/templates/store"
)

func Test_SignatureTemplate(t *testing.T) {

	templateService := service.GetTemplateService()

	template := model.TemplateDefinition{
		Name:           fmt.Sprintf("Branch Template %d", time.Now().UnixNano()),
		WidthPx:        560,
		FontFamily:     "Verdana, sans-serif",
		FontSizePx:     11,
		PrimaryColor:   "#003366",
		SecondaryColor: "#666666",
		Fields: []model.FieldSpec{
			{FieldId: "Name", DisplayLabel: "Name", Enabled: true, SortOrder: 10, Bold: true},
			{FieldId: "email", DisplayLabel: "Email", Enabled: true, SortOrder: 20, Prefix: "Email: "},
		},
	}

	var created model.TemplateDefinition

	t.Run("Add_template", func(t *testing.T) {
		var err error
		created, err = templateService.AddTemplate(template)
		require.NoError(t, err, "Failed to add template")
		require.NotEmpty(t, created.TemplateId, "Expected a generated template id")
		require.Equal(t, model.CurrentSchemaVersion, created.SchemaVersion)
		require.False(t, created.IsDefault, "New templates must not claim the default designation")
	})

	t.Run("Get_template_reconciles_fields", func(t *testing.T) {
		fetched, err := templateService.GetTemplate(created.TemplateId)
		require.NoError(t, err, "Failed to fetch template")
		require.Equal(t, created.Name, fetched.Name)
		require.GreaterOrEqual(t, fetched.FindField("name"), 0, "Field ids are stored lowercased")
		for fieldId := range constants.CanonicalFieldIds {
			require.GreaterOrEqualf(t, fetched.FindField(fieldId), 0,
				"Expected canonical field %s to be appended on load", fieldId)
		}
	})

	t.Run("Update_template", func(t *testing.T) {
		updated := created
		updated.Name = created.Name + " v2"
		updated.FontSizePx = 13

		result, err := templateService.UpdateTemplate(created.TemplateId, updated)
		require.NoError(t, err, "Failed to update template")
		require.Equal(t, created.Name+" v2", result.Name)
		require.Equal(t, 13, result.FontSizePx)
		require.Equal(t, created.CreatedAt, result.CreatedAt, "Creation time must survive updates")
	})

	t.Run("List_templates", func(t *testing.T) {
		templates, err := templateService.GetTemplates()
		require.NoError(t, err, "Failed to list templates")
		require.NotEmpty(t, templates, "Template list is empty")
	})

	t.Run("Delete_template", func(t *testing.T) {
		err := templateService.DeleteTemplate(created.TemplateId)
		require.NoError(t, err, "Failed to delete template")

		_, err = templateService.GetTemplate(created.TemplateId)
		clientErr, ok := err.(*errors.ClientError)
		require.True(t, ok, "expected a ClientError")
		require.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	})
}

func Test_DefaultTemplateLifecycle(t *testing.T) {

	templateService := service.GetTemplateService()

	var current model.TemplateDefinition

	t.Run("Read_designated_default", func(t *testing.T) {
		var err error
		current, err = templateService.GetDefaultTemplate()
		require.NoError(t, err, "Failed to fetch the default template")
		require.True(t, current.IsDefault)
		require.NotEmpty(t, current.TemplateId, "A deployment without a default gets the canonical one seeded")
	})

	t.Run("Default_cannot_be_deleted", func(t *testing.T) {
		err := templateService.DeleteTemplate(current.TemplateId)
		clientErr, ok := err.(*errors.ClientError)
		require.True(t, ok, "expected a ClientError")
		require.Equal(t, http.StatusConflict, clientErr.StatusCode)
	})

	t.Run("Move_default_designation", func(t *testing.T) {
		second, err := templateService.AddTemplate(model.TemplateDefinition{
			Name: fmt.Sprintf("Campaign Template %d", time.Now().UnixNano()),
		})
		require.NoError(t, err, "Failed to add replacement template")

		err = templateService.SetDefaultTemplate(second.TemplateId)
		require.NoError(t, err, "Failed to move the default designation")

		refreshed, err := templateService.GetDefaultTemplate()
		require.NoError(t, err, "Failed to fetch the new default")
		require.Equal(t, second.TemplateId, refreshed.TemplateId)

		// The demoted template is an ordinary one again and may be deleted.
		err = templateService.DeleteTemplate(current.TemplateId)
		require.NoError(t, err, "Failed to delete the demoted template")
	})

	t.Run("Defaulting_unknown_template_fails", func(t *testing.T) {
		err := templateService.SetDefaultTemplate(uuid.New().String())
		clientErr, ok := err.(*errors.ClientError)
		require.True(t, ok, "expected a ClientError")
		require.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	})
}

func Test_TemplateMigrationOnLoad(t *testing.T) {

	templateService := service.GetTemplateService()

	legacyId := uuid.New().String()
	legacy := model.TemplateDefinition{
		TemplateId:    legacyId,
		Name:          "Legacy Layout",
		SchemaVersion: 1,
		BannerImage:   "YmFubmVy",
		Fields: []model.FieldSpec{
			{FieldId: constants.FieldName, DisplayLabel: "Name", Enabled: true, SortOrder: 10, Bold: true, FontSizePx: -2},
		},
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}

	t.Run("Store_legacy_schema_version", func(t *testing.T) {
		err := store.UpsertTemplate(legacy)
		require.NoError(t, err, "Failed to store the legacy template")
	})

	t.Run("Load_migrates_and_persists", func(t *testing.T) {
		loaded, err := templateService.GetTemplate(legacyId)
		require.NoError(t, err, "Failed to load the legacy template")
		require.Equal(t, model.CurrentSchemaVersion, loaded.SchemaVersion)
		require.Equal(t, 600, loaded.WidthPx)
		require.Equal(t, 520, loaded.BannerWidthPx)
		require.Equal(t, "Arial, Helvetica, sans-serif", loaded.FontFamily)
		require.Equal(t, 12, loaded.FontSizePx)

		nameIdx := loaded.FindField(constants.FieldName)
		require.GreaterOrEqual(t, nameIdx, 0)
		require.Equal(t, 0, loaded.Fields[nameIdx].FontSizePx, "Negative field font sizes are cleared")
		require.GreaterOrEqual(t, loaded.FindField(constants.FieldDectPhone), 0, "Extension fields are appended")

		stored, err := store.GetTemplateById(legacyId)
		require.NoError(t, err, "Failed to re-read the migrated template")
		require.NotNil(t, stored)
		require.Equal(t, model.CurrentSchemaVersion, stored.SchemaVersion, "The migrated form is written back")
	})

	t.Cleanup(func() {
		_, _ = store.DeleteTemplateById(legacyId)
	})
}
