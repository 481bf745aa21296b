package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"diary-app/src/domain"
	"diary-app/src/infrastructure/repository"
	"diary-app/src/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreatesProfileOnFirstAccess(t *testing.T) {
	repo := repository.NewUserRepository(newTestStore(t), newTestLogger())

	user, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.DefaultNickname, user.Nickname)
	assert.False(t, user.RegisterDate.IsZero())
}

func TestUserRepository_ProfileIsStable(t *testing.T) {
	repo := repository.NewUserRepository(newTestStore(t), newTestLogger())
	ctx := context.Background()

	first, err := repo.Get(ctx)
	require.NoError(t, err)

	second, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.RegisterDate.Unix(), second.RegisterDate.Unix())
}

func TestUserRepository_UpdateNickname(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")
	ctx := context.Background()

	store, err := storage.NewSQLiteStore(path, newTestLogger())
	require.NoError(t, err)

	repo := repository.NewUserRepository(store, newTestLogger())
	original, err := repo.Get(ctx)
	require.NoError(t, err)

	updated, err := repo.UpdateNickname(ctx, "ポチ")
	require.NoError(t, err)
	assert.Equal(t, "ポチ", updated.Nickname)
	assert.Equal(t, original.ID, updated.ID)
	require.NoError(t, store.Close())

	// 再起動後も新しいニックネームが残る
	reopened, err := storage.NewSQLiteStore(path, newTestLogger())
	require.NoError(t, err)
	defer reopened.Close()

	fresh := repository.NewUserRepository(reopened, newTestLogger())
	user, err := fresh.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ポチ", user.Nickname)
	assert.Equal(t, original.ID, user.ID)
}
