package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("Opens and initializes the sessions table", func(t *testing.T) {
		// Given: a writable path
		db, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "sessions.db"))
		require.NoError(t, err)

		// When: the schema is created twice
		require.NoError(t, db.Init(context.Background()))
		require.NoError(t, db.Init(context.Background()))

		// Then: the storage closes cleanly
		require.NoError(t, db.Close())
	})

	t.Run("Unreachable path fails without a handle", func(t *testing.T) {
		// Given: a path inside a directory that does not exist
		path := filepath.Join(t.TempDir(), "missing", "sessions.db")

		// When: the storage is opened
		db, err := NewSQLiteStorage(path)

		// Then: an error is returned and no storage leaks out
		require.Error(t, err)
		assert.Nil(t, db)
	})
}
