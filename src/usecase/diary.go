package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"diary-app/src/domain"

	"github.com/google/uuid"
)

var (
	ErrDiaryNotFound     = errors.New("diary not found")
	ErrInvalidContent    = errors.New("content is required")
	ErrInvalidMood       = errors.New("mood must be one of happy, neutral, sad, angry, sleepy, love")
	ErrInvalidVisibility = errors.New("filter must be all, public, or private")
)

// CreateDiaryRequest represents input for creating a diary entry
type CreateDiaryRequest struct {
	Title    string
	Content  string
	IsPublic bool
	Mood     string
	Tags     []string
}

// UpdateDiaryRequest represents input for updating a diary entry.
// nil のフィールドは「変更しない」を意味する。
type UpdateDiaryRequest struct {
	Title    *string
	Content  *string
	IsPublic *bool
	Mood     *string
	Tags     []string
}

// DiaryUsecase defines the interface for diary business logic
type DiaryUsecase interface {
	CreateDiary(ctx context.Context, req CreateDiaryRequest) (*domain.Diary, error)
	GetDiary(ctx context.Context, id string) (*domain.Diary, error)
	ListDiaries(ctx context.Context) ([]domain.Diary, error)
	SearchDiaries(ctx context.Context, query string) ([]domain.Diary, error)
	FilterByVisibility(diaries []domain.Diary, mode domain.Visibility) []domain.Diary
	DiariesByDate(ctx context.Context, date time.Time) ([]domain.Diary, error)
	UpdateDiary(ctx context.Context, id string, req UpdateDiaryRequest) (*domain.Diary, error)
	DeleteDiary(ctx context.Context, id string) error
}

type diaryUsecase struct {
	diaryRepo domain.DiaryRepository
	drafts    *DraftAutosaver
}

// NewDiaryUsecase creates a new diary usecase. drafts may be nil when no
// autosave buffer is attached.
func NewDiaryUsecase(diaryRepo domain.DiaryRepository, drafts *DraftAutosaver) DiaryUsecase {
	return &diaryUsecase{
		diaryRepo: diaryRepo,
		drafts:    drafts,
	}
}

// CreateDiary creates a new diary entry and clears any pending draft.
func (u *diaryUsecase) CreateDiary(ctx context.Context, req CreateDiaryRequest) (*domain.Diary, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrInvalidContent
	}

	mood, err := parseMood(req.Mood)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = domain.DefaultTitle
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	diary := &domain.Diary{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   req.Content,
		IsPublic:  req.IsPublic,
		Mood:      mood,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if diary.IsPublic {
		diary.ShareID = uuid.New().String()
	}

	created, err := u.diaryRepo.Create(ctx, diary)
	if err != nil {
		return nil, err
	}

	// 保存に成功したら下書きを破棄する
	if u.drafts != nil {
		u.drafts.Discard(ctx)
	}

	return created, nil
}

// GetDiary retrieves a diary entry by ID
func (u *diaryUsecase) GetDiary(ctx context.Context, id string) (*domain.Diary, error) {
	diary, err := u.diaryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrDiaryNotFound
		}
		return nil, err
	}
	return diary, nil
}

// ListDiaries returns the full collection, newest first.
func (u *diaryUsecase) ListDiaries(ctx context.Context) ([]domain.Diary, error) {
	return u.diaryRepo.List(ctx)
}

// SearchDiaries performs substring search over title, content and tags.
func (u *diaryUsecase) SearchDiaries(ctx context.Context, query string) ([]domain.Diary, error) {
	return u.diaryRepo.Search(ctx, query)
}

// FilterByVisibility is a pure, order-preserving filter.
func (u *diaryUsecase) FilterByVisibility(diaries []domain.Diary, mode domain.Visibility) []domain.Diary {
	if mode == domain.VisibilityAll || mode == "" {
		return diaries
	}

	result := []domain.Diary{}
	for _, diary := range diaries {
		switch mode {
		case domain.VisibilityPublic:
			if diary.IsPublic {
				result = append(result, diary)
			}
		case domain.VisibilityPrivate:
			if !diary.IsPublic {
				result = append(result, diary)
			}
		}
	}
	return result
}

// DiariesByDate returns entries created on the given local calendar day.
func (u *diaryUsecase) DiariesByDate(ctx context.Context, date time.Time) ([]domain.Diary, error) {
	return u.diaryRepo.ByDate(ctx, date)
}

// UpdateDiary applies a partial patch to an existing diary entry.
func (u *diaryUsecase) UpdateDiary(ctx context.Context, id string, req UpdateDiaryRequest) (*domain.Diary, error) {
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, ErrInvalidContent
	}

	patch := domain.DiaryPatch{
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
		Tags:     req.Tags,
	}

	if req.Mood != nil {
		mood, err := parseMood(*req.Mood)
		if err != nil {
			return nil, err
		}
		patch.Mood = &mood
	}

	diary, err := u.diaryRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrDiaryNotFound
		}
		return nil, err
	}
	return diary, nil
}

// DeleteDiary removes a diary entry. A missing ID yields ErrDiaryNotFound
// so the caller can tell "already gone" from "deleted".
func (u *diaryUsecase) DeleteDiary(ctx context.Context, id string) error {
	removed, err := u.diaryRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrDiaryNotFound
	}
	return nil
}

// parseMood validates the mood value. Empty means no mood.
func parseMood(value string) (domain.Mood, error) {
	if value == "" {
		return "", nil
	}
	mood := domain.Mood(value)
	if !mood.IsValid() {
		return "", ErrInvalidMood
	}
	return mood, nil
}
