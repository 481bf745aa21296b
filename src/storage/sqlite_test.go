package storage_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"diary-app/src/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "storage.db")
	store, err := storage.NewSQLiteStore(path, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_GetMissingKey(t *testing.T) {
	store := newTestStore(t)

	value, found, err := store.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
}

func TestSQLiteStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "rj_diaries", []byte(`[{"id":"a"}]`)))

	value, found, err := store.Get(ctx, "rj_diaries")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"a"}]`, string(value))
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", []byte("first")))
	require.NoError(t, store.Set(ctx, "key", []byte("second")))

	value, found, err := store.Get(ctx, "key")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", string(value))
}

func TestSQLiteStore_Remove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", []byte("value")))
	require.NoError(t, store.Remove(ctx, "key"))

	_, found, err := store.Get(ctx, "key")
	assert.NoError(t, err)
	assert.False(t, found)

	// 存在しないキーの削除もエラーにならない
	assert.NoError(t, store.Remove(ctx, "key"))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")
	ctx := context.Background()

	store, err := storage.NewSQLiteStore(path, newTestLogger())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "key", []byte("durable")))
	require.NoError(t, store.Close())

	reopened, err := storage.NewSQLiteStore(path, newTestLogger())
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get(ctx, "key")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "durable", string(value))
}
