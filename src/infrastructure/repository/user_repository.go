package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"diary-app/src/config"
	"diary-app/src/domain"
	"diary-app/src/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UserRepository implements domain.UserRepository over the key-value store.
type UserRepository struct {
	store  storage.Store
	logger *logrus.Logger

	mu   sync.Mutex
	user *domain.User
}

// NewUserRepository creates a new user repository
func NewUserRepository(store storage.Store, logger *logrus.Logger) *UserRepository {
	return &UserRepository{
		store:  store,
		logger: logger,
	}
}

// Get returns the profile, creating it lazily on first access.
func (r *UserRepository) Get(ctx context.Context) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.user != nil {
		user := *r.user
		return &user, nil
	}

	raw, found, err := r.store.Get(ctx, config.StorageKeyUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if found {
		var user domain.User
		if err := json.Unmarshal(raw, &user); err == nil {
			r.user = &user
			result := user
			return &result, nil
		}
		r.logger.Error("ユーザーデータの解析に失敗、新規プロフィールを作成します")
	}

	// 初回アクセス時にプロフィールを作成してすぐ永続化する
	user := &domain.User{
		ID:           uuid.New().String(),
		Nickname:     domain.DefaultNickname,
		RegisterDate: time.Now(),
	}
	if err := r.persist(ctx, user); err != nil {
		return nil, err
	}

	r.user = user
	r.logger.WithField("user_id", user.ID).Info("新規ユーザーを作成しました")
	result := *user
	return &result, nil
}

// UpdateNickname updates and persists the nickname.
func (r *UserRepository) UpdateNickname(ctx context.Context, nickname string) (*domain.User, error) {
	user, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := *user
	updated.Nickname = nickname
	if err := r.persist(ctx, &updated); err != nil {
		return nil, err
	}

	r.user = &updated
	r.logger.WithField("user_id", updated.ID).Info("ニックネームを更新しました")
	result := updated
	return &result, nil
}

func (r *UserRepository) persist(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := r.store.Set(ctx, config.StorageKeyUser, raw); err != nil {
		r.logger.WithError(err).Error("ユーザーの保存に失敗")
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}
