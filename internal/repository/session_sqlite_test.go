package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/guessbot-backend/internal/apperror"
	"github.com/rocketscienceinc/guessbot-backend/internal/repository/storage"
)

func newSQLiteRepo(t *testing.T, ttl time.Duration) (context.Context, *sqliteSession) {
	t.Helper()

	ctx := context.Background()

	db, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, db.Init(ctx))

	repo, ok := NewSQLiteSessionRepository(db.Connection, ttl).(*sqliteSession)
	require.True(t, ok)

	return ctx, repo
}

func TestSQLiteSessionRepository(t *testing.T) {
	t.Run("Round trip and update", func(t *testing.T) {
		ctx, repo := newSQLiteRepo(t, time.Hour)

		// Given: a stored session
		session := newStartedSession("abc", 6)
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		// When: it is updated and read back
		session.Attempts = 3
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		retrieved, err := repo.GetByID(ctx, "abc")

		// Then: the latest version is returned
		require.NoError(t, err)
		assert.Equal(t, 6, *retrieved.Secret)
		assert.Equal(t, 3, retrieved.Attempts)
	})

	t.Run("Expired sessions read as missing", func(t *testing.T) {
		ctx, repo := newSQLiteRepo(t, time.Minute)

		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		repo.now = func() time.Time { return now }

		require.NoError(t, repo.CreateOrUpdate(ctx, newStartedSession("abc", 2)))

		// When: the idle window passes
		now = now.Add(2 * time.Minute)

		// Then: the session is gone
		_, err := repo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Zero ttl never expires", func(t *testing.T) {
		ctx, repo := newSQLiteRepo(t, 0)

		require.NoError(t, repo.CreateOrUpdate(ctx, newStartedSession("abc", 2)))

		_, err := repo.GetByID(ctx, "abc")
		require.NoError(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		ctx, repo := newSQLiteRepo(t, time.Hour)

		require.NoError(t, repo.CreateOrUpdate(ctx, newStartedSession("abc", 2)))
		require.NoError(t, repo.DeleteByID(ctx, "abc"))

		_, err := repo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		require.ErrorIs(t, repo.DeleteByID(ctx, "abc"), apperror.ErrSessionNotFound)
	})
}
