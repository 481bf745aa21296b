package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"diary-app/src/config"
	"diary-app/src/domain"
	"diary-app/src/storage"

	"github.com/sirupsen/logrus"
)

// DraftRepository implements domain.DraftRepository over the key-value
// store. 下書きは常に1スロットで、保存のたびに上書きされる。
type DraftRepository struct {
	store  storage.Store
	logger *logrus.Logger
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(store storage.Store, logger *logrus.Logger) *DraftRepository {
	return &DraftRepository{
		store:  store,
		logger: logger,
	}
}

// Save overwrites the draft slot.
func (r *DraftRepository) Save(ctx context.Context, draft *domain.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := r.store.Set(ctx, config.StorageKeyDraft, raw); err != nil {
		r.logger.WithError(err).Error("下書きの保存に失敗")
		return fmt.Errorf("failed to persist draft: %w", err)
	}
	return nil
}

// Load returns the stored draft, or nil when absent.
func (r *DraftRepository) Load(ctx context.Context) (*domain.Draft, error) {
	raw, found, err := r.store.Get(ctx, config.StorageKeyDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if !found {
		return nil, nil
	}

	var draft domain.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		r.logger.WithError(err).Error("下書きデータの解析に失敗")
		return nil, nil
	}
	return &draft, nil
}

// Clear removes the draft slot.
func (r *DraftRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, config.StorageKeyDraft); err != nil {
		r.logger.WithError(err).Error("下書きの破棄に失敗")
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
