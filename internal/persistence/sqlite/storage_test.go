package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aflondonor-afk/horario-app/internal/persistence"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := Open("file:" + filepath.Join(t.TempDir(), "horario_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })
	require.NoError(t, storage.Migrate(context.Background()))
	return storage
}

func TestStorageRoundTrips(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	user := persistence.User{ID: "u1", Username: "ana", CreatedAt: now}
	require.NoError(t, storage.CreateUser(ctx, user))

	t.Run("users", func(t *testing.T) {
		found, err := storage.GetUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "ana", found.Username)
		assert.True(t, found.CreatedAt.Equal(now))

		found, err = storage.GetUserByUsername(ctx, "ana")
		require.NoError(t, err)
		assert.Equal(t, "u1", found.ID)

		// Username matching is byte-exact.
		_, err = storage.GetUserByUsername(ctx, "Ana")
		assert.ErrorIs(t, err, persistence.ErrNotFound)

		assert.ErrorIs(t, storage.CreateUser(ctx, persistence.User{ID: "u2", Username: "ana"}), persistence.ErrDuplicate)
	})

	t.Run("shifts", func(t *testing.T) {
		shift := persistence.Shift{
			ID: "s1", UserID: "u1", Block: "33", Floor: 2, Day: "LUNES",
			StartTime: "07:00", EndTime: "13:00", Temporal: true, CreatedAt: now,
		}
		require.NoError(t, storage.CreateShift(ctx, shift))

		found, err := storage.GetShift(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 2, found.Floor)
		assert.True(t, found.Temporal)

		byUser, err := storage.ListShiftsByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, byUser, 1)

		all, err := storage.ListShifts(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		require.NoError(t, storage.DeleteShift(ctx, "s1"))
		assert.ErrorIs(t, storage.DeleteShift(ctx, "s1"), persistence.ErrNotFound)
	})

	t.Run("logs", func(t *testing.T) {
		log := persistence.OperationalLog{
			ID: "l1", EventID: "evt-0", Date: "2026-03-02",
			Status: persistence.StatusInUse, UpdatedBy: "u1", Timestamp: now,
		}
		require.NoError(t, storage.CreateLog(ctx, log))

		// One record per (event, date).
		dup := log
		dup.ID = "l2"
		assert.ErrorIs(t, storage.CreateLog(ctx, dup), persistence.ErrDuplicate)

		log.Status = persistence.StatusFree
		require.NoError(t, storage.UpdateLog(ctx, log))

		found, err := storage.GetLogByEventAndDate(ctx, "evt-0", "2026-03-02")
		require.NoError(t, err)
		assert.Equal(t, persistence.StatusFree, found.Status)
		assert.Equal(t, "l1", found.ID)

		logs, err := storage.ListLogsByDate(ctx, "2026-03-02")
		require.NoError(t, err)
		assert.Len(t, logs, 1)

		logs, err = storage.ListLogsByDate(ctx, "2026-03-03")
		require.NoError(t, err)
		assert.Empty(t, logs)
	})

	t.Run("sessions", func(t *testing.T) {
		session := persistence.Session{Token: "t1", UserID: "u1", CreatedAt: now}
		require.NoError(t, storage.CreateSession(ctx, session))

		found, err := storage.GetSession(ctx, "t1")
		require.NoError(t, err)
		assert.Nil(t, found.RevokedAt)

		revokedAt := now.Add(time.Hour)
		require.NoError(t, storage.RevokeSession(ctx, "t1", revokedAt))

		found, err = storage.GetSession(ctx, "t1")
		require.NoError(t, err)
		require.NotNil(t, found.RevokedAt)
		assert.True(t, found.RevokedAt.Equal(revokedAt))

		assert.ErrorIs(t, storage.RevokeSession(ctx, "t1", revokedAt), persistence.ErrNotFound)
		assert.ErrorIs(t, storage.RevokeSession(ctx, "missing", revokedAt), persistence.ErrNotFound)
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	storage := newTestStorage(t)
	require.NoError(t, storage.Migrate(context.Background()))
}
