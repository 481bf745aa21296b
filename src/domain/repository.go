package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced diary does not resolve.
var ErrNotFound = errors.New("diary not found")

// DiaryRepository defines the interface for diary data operations.
// 変更系は毎回コレクション全体を書き戻す（差分保存はしない）。
type DiaryRepository interface {
	Load(ctx context.Context) error
	List(ctx context.Context) ([]Diary, error)
	GetByID(ctx context.Context, id string) (*Diary, error)
	GetByShareID(ctx context.Context, shareID string) (*Diary, error)
	Create(ctx context.Context, diary *Diary) (*Diary, error)
	Update(ctx context.Context, id string, patch DiaryPatch) (*Diary, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, query string) ([]Diary, error)
	ByDate(ctx context.Context, date time.Time) ([]Diary, error)
}

// UserRepository defines the interface for the local profile.
type UserRepository interface {
	// Get returns the profile, creating and persisting it on first access.
	Get(ctx context.Context) (*User, error)
	UpdateNickname(ctx context.Context, nickname string) (*User, error)
}

// DraftRepository defines the interface for the single-slot draft buffer.
type DraftRepository interface {
	Save(ctx context.Context, draft *Draft) error
	Load(ctx context.Context) (*Draft, error)
	Clear(ctx context.Context) error
}
