package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aflondonor-afk/horario-app/internal/persistence"
)

func TestStorageUsers(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateUser(ctx, persistence.User{ID: "u1", Username: "ana", CreatedAt: now}))

	t.Run("duplicate id and username are rejected", func(t *testing.T) {
		assert.ErrorIs(t, store.CreateUser(ctx, persistence.User{ID: "u1", Username: "otra"}), persistence.ErrDuplicate)
		assert.ErrorIs(t, store.CreateUser(ctx, persistence.User{ID: "u2", Username: "ana"}), persistence.ErrDuplicate)
	})

	t.Run("lookup by username is exact", func(t *testing.T) {
		user, err := store.GetUserByUsername(ctx, "ana")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)

		_, err = store.GetUserByUsername(ctx, "Ana")
		assert.ErrorIs(t, err, persistence.ErrNotFound)
	})

	t.Run("lookup by id", func(t *testing.T) {
		user, err := store.GetUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "ana", user.Username)

		_, err = store.GetUser(ctx, "missing")
		assert.ErrorIs(t, err, persistence.ErrNotFound)
	})
}

func TestStorageShifts(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	base := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	shift := func(id, userID string, createdAt time.Time) persistence.Shift {
		return persistence.Shift{
			ID: id, UserID: userID, Block: "33", Floor: 1, Day: "LUNES",
			StartTime: "07:00", EndTime: "13:00", CreatedAt: createdAt,
		}
	}

	require.NoError(t, store.CreateShift(ctx, shift("s2", "ana", base.Add(time.Hour))))
	require.NoError(t, store.CreateShift(ctx, shift("s1", "ana", base)))
	require.NoError(t, store.CreateShift(ctx, shift("s3", "beto", base.Add(2*time.Hour))))

	t.Run("list is ordered by creation time", func(t *testing.T) {
		shifts, err := store.ListShifts(ctx)
		require.NoError(t, err)
		require.Len(t, shifts, 3)
		assert.Equal(t, []string{"s1", "s2", "s3"}, []string{shifts[0].ID, shifts[1].ID, shifts[2].ID})
	})

	t.Run("list by user filters ownership", func(t *testing.T) {
		shifts, err := store.ListShiftsByUser(ctx, "ana")
		require.NoError(t, err)
		assert.Len(t, shifts, 2)
	})

	t.Run("delete removes and reports absence", func(t *testing.T) {
		require.NoError(t, store.DeleteShift(ctx, "s3"))
		assert.ErrorIs(t, store.DeleteShift(ctx, "s3"), persistence.ErrNotFound)
		_, err := store.GetShift(ctx, "s3")
		assert.ErrorIs(t, err, persistence.ErrNotFound)
	})
}

func TestStorageLogs(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	log := persistence.OperationalLog{
		ID: "l1", EventID: "evt-0", Date: "2026-03-02",
		Status: persistence.StatusInUse, UpdatedBy: "ana", Timestamp: now,
	}
	require.NoError(t, store.CreateLog(ctx, log))

	t.Run("one log per event and date", func(t *testing.T) {
		dup := log
		dup.ID = "l2"
		assert.ErrorIs(t, store.CreateLog(ctx, dup), persistence.ErrDuplicate)
	})

	t.Run("update overwrites in place", func(t *testing.T) {
		changed := log
		changed.Status = persistence.StatusFree
		require.NoError(t, store.UpdateLog(ctx, changed))

		found, err := store.GetLogByEventAndDate(ctx, "evt-0", "2026-03-02")
		require.NoError(t, err)
		assert.Equal(t, persistence.StatusFree, found.Status)
		assert.Equal(t, "l1", found.ID)
	})

	t.Run("update of an absent log fails", func(t *testing.T) {
		missing := log
		missing.ID = "zz"
		assert.ErrorIs(t, store.UpdateLog(ctx, missing), persistence.ErrNotFound)
	})

	t.Run("list by date excludes other days", func(t *testing.T) {
		other := persistence.OperationalLog{
			ID: "l3", EventID: "evt-0", Date: "2026-03-03",
			Status: persistence.StatusInUse, UpdatedBy: "ana", Timestamp: now.Add(24 * time.Hour),
		}
		require.NoError(t, store.CreateLog(ctx, other))

		logs, err := store.ListLogsByDate(ctx, "2026-03-02")
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "l1", logs[0].ID)
	})
}

func TestStorageSessions(t *testing.T) {
	ctx := context.Background()
	store := NewStorage()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateSession(ctx, persistence.Session{Token: "t1", UserID: "u1", CreatedAt: now}))

	t.Run("duplicate token is rejected", func(t *testing.T) {
		assert.ErrorIs(t, store.CreateSession(ctx, persistence.Session{Token: "t1"}), persistence.ErrDuplicate)
	})

	t.Run("revoke marks the session once", func(t *testing.T) {
		require.NoError(t, store.RevokeSession(ctx, "t1", now.Add(time.Hour)))

		session, err := store.GetSession(ctx, "t1")
		require.NoError(t, err)
		require.NotNil(t, session.RevokedAt)
		assert.True(t, session.RevokedAt.Equal(now.Add(time.Hour)))

		assert.ErrorIs(t, store.RevokeSession(ctx, "t1", now.Add(2*time.Hour)), persistence.ErrNotFound)
	})

	t.Run("revoke of an absent token fails", func(t *testing.T) {
		assert.ErrorIs(t, store.RevokeSession(ctx, "missing", now), persistence.ErrNotFound)
	})
}
