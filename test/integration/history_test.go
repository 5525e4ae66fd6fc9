package integration

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-email-signature-service/internal/history/model"
	"github.com/wso2/identity-email-signature-service/internal/history/service"
	"github.com/wso2/identity-email-signature-service/internal/history/store"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
)

func Test_SignatureHistory(t *testing.T) {

	historyService := service.GetHistoryService()
	userId := uuid.New().String()

	// Seed two older snapshots with explicit capture times so the ordering
	// assertions stay deterministic, then record a fresh one through the
	// service.
	base := time.Now().Unix()
	older := []model.SignatureSnapshot{
		{
			SnapshotId: uuid.New().String(),
			UserId:     userId,
			Mail:       "history@example.org",
			Html:       "<table>first</table>",
			PlainText:  "first",
			CapturedAt: base - 120,
			Source:     constants.SnapshotSourceDeploy,
		},
		{
			SnapshotId: uuid.New().String(),
			UserId:     userId,
			Mail:       "history@example.org",
			Html:       "<table>second</table>",
			PlainText:  "second",
			CapturedAt: base - 60,
			Source:     constants.SnapshotSourceDeploy,
		},
	}

	t.Run("Record_snapshots", func(t *testing.T) {
		for _, snapshot := range older {
			err := store.InsertSnapshot(snapshot)
			require.NoError(t, err, "Failed to insert snapshot")
		}

		recorded, err := historyService.RecordSnapshot(userId, "history@example.org",
			"<table>third</table>", "third", constants.SnapshotSourceRollback)
		require.NoError(t, err, "Failed to record snapshot")
		require.NotEmpty(t, recorded.SnapshotId, "Expected a generated snapshot id")
		require.Equal(t, constants.SnapshotSourceRollback, recorded.Source)
	})

	t.Run("History_is_newest_first", func(t *testing.T) {
		history, err := historyService.GetHistory(userId, 10)
		require.NoError(t, err, "Failed to fetch history")
		require.Len(t, history, 3)
		require.Equal(t, "<table>third</table>", history[0].Html)
		require.Equal(t, "<table>first</table>", history[2].Html)
	})

	t.Run("History_limit_applies", func(t *testing.T) {
		history, err := historyService.GetHistory(userId, 2)
		require.NoError(t, err, "Failed to fetch limited history")
		require.Len(t, history, 2)
		require.Equal(t, "<table>third</table>", history[0].Html)
	})

	t.Run("Latest_snapshot", func(t *testing.T) {
		latest, err := historyService.GetLatestSnapshot(userId)
		require.NoError(t, err, "Failed to fetch the latest snapshot")
		require.NotNil(t, latest)
		require.Equal(t, "<table>third</table>", latest.Html)
	})

	t.Run("Unknown_user_has_no_history", func(t *testing.T) {
		history, err := historyService.GetHistory(uuid.New().String(), 10)
		require.NoError(t, err, "History of an unknown user must not fail")
		require.Empty(t, history)

		latest, err := historyService.GetLatestSnapshot(uuid.New().String())
		require.NoError(t, err, "Latest snapshot of an unknown user must not fail")
		require.Nil(t, latest)
	})
}
