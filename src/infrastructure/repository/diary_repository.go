package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"diary-app/src/config"
	"diary-app/src/domain"
	"diary-app/src/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DiaryRepository implements domain.DiaryRepository over the key-value store.
// コレクション全体を1つのブロブとして保存し、セッション中はメモリ上に
// キャッシュする。書き込みに失敗した場合キャッシュは変更されない。
type DiaryRepository struct {
	store  storage.Store
	logger *logrus.Logger

	mu      sync.RWMutex
	diaries []domain.Diary
	loaded  bool
}

// NewDiaryRepository creates a new diary repository
func NewDiaryRepository(store storage.Store, logger *logrus.Logger) *DiaryRepository {
	return &DiaryRepository{
		store:  store,
		logger: logger,
	}
}

// Load reads the full collection into the in-memory cache.
// 初回起動などでキーが存在しない場合は空のコレクションになる。
func (r *DiaryRepository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked(ctx)
}

func (r *DiaryRepository) loadLocked(ctx context.Context) error {
	raw, found, err := r.store.Get(ctx, config.StorageKeyDiaries)
	if err != nil {
		return fmt.Errorf("failed to load diaries: %w", err)
	}

	diaries := []domain.Diary{}
	if found {
		if err := json.Unmarshal(raw, &diaries); err != nil {
			// 壊れたデータは「存在しない」として扱う
			r.logger.WithError(err).Error("日記データの解析に失敗、空のコレクションとして扱います")
			diaries = []domain.Diary{}
		}
	}

	r.diaries = diaries
	r.loaded = true
	return nil
}

// ensureLoaded lazily loads the collection once per session.
func (r *DiaryRepository) ensureLoaded(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	return r.loadLocked(ctx)
}

// List returns the cached collection, newest first.
func (r *DiaryRepository) List(ctx context.Context) ([]domain.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	result := make([]domain.Diary, len(r.diaries))
	copy(result, r.diaries)
	return result, nil
}

// GetByID retrieves a diary by ID.
func (r *DiaryRepository) GetByID(ctx context.Context, id string) (*domain.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	for i := range r.diaries {
		if r.diaries[i].ID == id {
			diary := r.diaries[i]
			return &diary, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByShareID retrieves a public diary by its share ID.
// 非公開に戻した日記は古い共有リンクでは解決できない。
func (r *DiaryRepository) GetByShareID(ctx context.Context, shareID string) (*domain.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	for i := range r.diaries {
		if r.diaries[i].ShareID == shareID && r.diaries[i].IsPublic {
			diary := r.diaries[i]
			return &diary, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create prepends the diary to the collection and persists it.
func (r *DiaryRepository) Create(ctx context.Context, diary *domain.Diary) (*domain.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	// 新しい日記は先頭に追加する（日付での並べ替えはしない）
	updated := make([]domain.Diary, 0, len(r.diaries)+1)
	updated = append(updated, *diary)
	updated = append(updated, r.diaries...)

	if err := r.persist(ctx, updated); err != nil {
		return nil, err
	}

	r.diaries = updated
	r.logger.WithField("diary_id", diary.ID).Info("日記を作成しました")
	return diary, nil
}

// Update applies the patch to the diary with the given ID and persists the
// collection. Nil patch fields retain the prior value.
func (r *DiaryRepository) Update(ctx context.Context, id string, patch domain.DiaryPatch) (*domain.Diary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	index := -1
	for i := range r.diaries {
		if r.diaries[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, domain.ErrNotFound
	}

	updated := make([]domain.Diary, len(r.diaries))
	copy(updated, r.diaries)

	diary := updated[index]
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			diary.Title = domain.DefaultTitle
		} else {
			diary.Title = *patch.Title
		}
	}
	if patch.Content != nil {
		diary.Content = *patch.Content
	}
	if patch.IsPublic != nil {
		diary.IsPublic = *patch.IsPublic
	}
	if patch.Mood != nil {
		diary.Mood = *patch.Mood
	}
	if patch.Tags != nil {
		diary.Tags = patch.Tags
	}

	// 公開状態に応じて共有IDを生成／破棄する
	if diary.IsPublic && diary.ShareID == "" {
		diary.ShareID = uuid.New().String()
	} else if !diary.IsPublic {
		diary.ShareID = ""
	}

	diary.UpdatedAt = time.Now()
	updated[index] = diary

	if err := r.persist(ctx, updated); err != nil {
		return nil, err
	}

	r.diaries = updated
	r.logger.WithField("diary_id", id).Info("日記を更新しました")
	return &diary, nil
}

// Delete removes the diary with the given ID. The bool result reports
// whether a removal actually occurred.
func (r *DiaryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return false, err
	}

	filtered := make([]domain.Diary, 0, len(r.diaries))
	for i := range r.diaries {
		if r.diaries[i].ID != id {
			filtered = append(filtered, r.diaries[i])
		}
	}

	if len(filtered) == len(r.diaries) {
		return false, nil
	}

	if err := r.persist(ctx, filtered); err != nil {
		return false, err
	}

	r.diaries = filtered
	r.logger.WithField("diary_id", id).Info("日記を削除しました")
	return true, nil
}

// Search performs a case-insensitive substring match over title, content
// and tags. An empty or whitespace-only query returns the full collection.
func (r *DiaryRepository) Search(ctx context.Context, query string) ([]domain.Diary, error) {
	diaries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return diaries, nil
	}

	result := []domain.Diary{}
	for _, diary := range diaries {
		if strings.Contains(strings.ToLower(diary.Title), term) ||
			strings.Contains(strings.ToLower(diary.Content), term) {
			result = append(result, diary)
			continue
		}
		for _, tag := range diary.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				result = append(result, diary)
				break
			}
		}
	}
	return result, nil
}

// ByDate returns all diaries created on the same local calendar day.
func (r *DiaryRepository) ByDate(ctx context.Context, date time.Time) ([]domain.Diary, error) {
	diaries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	y, m, d := date.Local().Date()
	result := []domain.Diary{}
	for _, diary := range diaries {
		dy, dm, dd := diary.CreatedAt.Local().Date()
		if dy == y && dm == m && dd == d {
			result = append(result, diary)
		}
	}
	return result, nil
}

// persist writes the whole collection back to the store.
// 失敗した場合は呼び出し側がキャッシュを差し替えないこと。
func (r *DiaryRepository) persist(ctx context.Context, diaries []domain.Diary) error {
	raw, err := json.Marshal(diaries)
	if err != nil {
		return fmt.Errorf("failed to marshal diaries: %w", err)
	}
	if err := r.store.Set(ctx, config.StorageKeyDiaries, raw); err != nil {
		r.logger.WithError(err).Error("日記コレクションの保存に失敗")
		return fmt.Errorf("failed to persist diaries: %w", err)
	}
	return nil
}
