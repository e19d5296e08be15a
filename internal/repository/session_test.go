package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/guessbot-backend/internal/apperror"
	"github.com/rocketscienceinc/guessbot-backend/internal/entity"
	"github.com/rocketscienceinc/guessbot-backend/testing/suite"
)

func newStartedSession(id string, secret int) *entity.Session {
	session := entity.NewSession(id)
	session.Restart(secret)
	return session
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, time.Minute)

	// Given: a started session
	session := newStartedSession("123", 4)

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned and the key carries the idle expiry
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "game:123").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// Given: a stored session
		session := newStartedSession("123", 9)
		session.Attempts = 2
		session.LastVerdict = entity.VerdictTooLow

		err := sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrieved, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: the retrieved session should match the saved session
		require.NoError(t, err)
		require.Equal(t, session.ID, retrieved.ID)
		require.Equal(t, 9, *retrieved.Secret)
		require.Equal(t, entity.StateAwaitingGuess, retrieved.State)
		require.Equal(t, 2, retrieved.Attempts)
		require.Equal(t, entity.VerdictTooLow, retrieved.LastVerdict)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		// When: GetByID is called with non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		session := newStartedSession("123", 1)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: DeleteByID is called with existing ID
		err := sessionRepo.DeleteByID(ctx, session.ID)

		// Then: the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, 0)

		err := sessionRepo.DeleteByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
