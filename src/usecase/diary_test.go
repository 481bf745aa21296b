package usecase_test

import (
	"context"
	"io"
	"testing"
	"time"

	"diary-app/src/domain"
	"diary-app/src/usecase"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDiaryRepository は domain.DiaryRepository のモック実装
type MockDiaryRepository struct {
	mock.Mock
}

func (m *MockDiaryRepository) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDiaryRepository) List(ctx context.Context) ([]domain.Diary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Diary), args.Error(1)
}

func (m *MockDiaryRepository) GetByID(ctx context.Context, id string) (*domain.Diary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Diary), args.Error(1)
}

func (m *MockDiaryRepository) GetByShareID(ctx context.Context, shareID string) (*domain.Diary, error) {
	args := m.Called(ctx, shareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Diary), args.Error(1)
}

func (m *MockDiaryRepository) Create(ctx context.Context, diary *domain.Diary) (*domain.Diary, error) {
	args := m.Called(ctx, diary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Diary), args.Error(1)
}

func (m *MockDiaryRepository) Update(ctx context.Context, id string, patch domain.DiaryPatch) (*domain.Diary, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Diary), args.Error(1)
}

func (m *MockDiaryRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDiaryRepository) Search(ctx context.Context, query string) ([]domain.Diary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Diary), args.Error(1)
}

func (m *MockDiaryRepository) ByDate(ctx context.Context, date time.Time) ([]domain.Diary, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Diary), args.Error(1)
}

// MockDraftRepository は domain.DraftRepository のモック実装
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) Save(ctx context.Context, draft *domain.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) Load(ctx context.Context) (*domain.Draft, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Draft), args.Error(1)
}

func (m *MockDraftRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestDiaryUsecase_CreateDiary(t *testing.T) {
	tests := []struct {
		name          string
		request       usecase.CreateDiaryRequest
		expectedError error
		check         func(*testing.T, *domain.Diary)
	}{
		{
			name: "successful creation",
			request: usecase.CreateDiaryRequest{
				Title:   "今日の日記",
				Content: "いい一日だった",
				Mood:    "happy",
				Tags:    []string{"日常"},
			},
			check: func(t *testing.T, diary *domain.Diary) {
				assert.NotEmpty(t, diary.ID)
				assert.Equal(t, "今日の日記", diary.Title)
				assert.Equal(t, domain.MoodHappy, diary.Mood)
				assert.Empty(t, diary.ShareID)
			},
		},
		{
			name: "blank title falls back to placeholder",
			request: usecase.CreateDiaryRequest{
				Title:   "   ",
				Content: "内容",
			},
			check: func(t *testing.T, diary *domain.Diary) {
				assert.Equal(t, domain.DefaultTitle, diary.Title)
			},
		},
		{
			name: "public entry gets a share ID",
			request: usecase.CreateDiaryRequest{
				Content:  "公開する日記",
				IsPublic: true,
			},
			check: func(t *testing.T, diary *domain.Diary) {
				assert.True(t, diary.IsPublic)
				assert.NotEmpty(t, diary.ShareID)
			},
		},
		{
			name: "nil tags become empty slice",
			request: usecase.CreateDiaryRequest{
				Content: "タグなし",
			},
			check: func(t *testing.T, diary *domain.Diary) {
				assert.NotNil(t, diary.Tags)
				assert.Empty(t, diary.Tags)
			},
		},
		{
			name: "empty content rejected",
			request: usecase.CreateDiaryRequest{
				Title:   "タイトルだけ",
				Content: "",
			},
			expectedError: usecase.ErrInvalidContent,
		},
		{
			name: "whitespace content rejected",
			request: usecase.CreateDiaryRequest{
				Content: "   \n\t  ",
			},
			expectedError: usecase.ErrInvalidContent,
		},
		{
			name: "invalid mood rejected",
			request: usecase.CreateDiaryRequest{
				Content: "内容",
				Mood:    "ecstatic",
			},
			expectedError: usecase.ErrInvalidMood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDiaryRepository)

			// リポジトリに渡された日記をそのまま捕捉する
			var captured *domain.Diary
			if tt.expectedError == nil {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Diary")).
					Run(func(args mock.Arguments) {
						captured = args.Get(1).(*domain.Diary)
					}).
					Return(&domain.Diary{}, nil)
			}

			u := usecase.NewDiaryUsecase(mockRepo, nil)
			_, err := u.CreateDiary(context.Background(), tt.request)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				require.NotNil(t, captured)
				tt.check(t, captured)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDiaryUsecase_CreateDiaryDiscardsDraft(t *testing.T) {
	mockRepo := new(MockDiaryRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Diary")).Return(&domain.Diary{}, nil)

	mockDrafts := new(MockDraftRepository)
	mockDrafts.On("Clear", mock.Anything).Return(nil)

	autosaver := usecase.NewDraftAutosaver(mockDrafts, newTestLogger(), time.Hour)
	autosaver.Queue(domain.Draft{Title: "書きかけ", Content: "途中まで"})

	u := usecase.NewDiaryUsecase(mockRepo, autosaver)
	_, err := u.CreateDiary(context.Background(), usecase.CreateDiaryRequest{Content: "完成した日記"})
	require.NoError(t, err)

	// 保存成功で下書きスロットが破棄される
	mockDrafts.AssertCalled(t, "Clear", mock.Anything)
	mockDrafts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDiaryUsecase_UpdateDiary(t *testing.T) {
	existing := &domain.Diary{ID: "d1", Title: "更新済み", Content: "新しい内容"}

	tests := []struct {
		name          string
		request       usecase.UpdateDiaryRequest
		mockSetup     func(*MockDiaryRepository)
		expectedError error
	}{
		{
			name:    "successful partial update",
			request: usecase.UpdateDiaryRequest{Title: strPtr("更新済み")},
			mockSetup: func(m *MockDiaryRepository) {
				m.On("Update", mock.Anything, "d1", mock.AnythingOfType("domain.DiaryPatch")).Return(existing, nil)
			},
		},
		{
			name:          "present but empty content rejected",
			request:       usecase.UpdateDiaryRequest{Content: strPtr("  ")},
			mockSetup:     func(m *MockDiaryRepository) {},
			expectedError: usecase.ErrInvalidContent,
		},
		{
			name:          "invalid mood rejected",
			request:       usecase.UpdateDiaryRequest{Mood: strPtr("bored")},
			mockSetup:     func(m *MockDiaryRepository) {},
			expectedError: usecase.ErrInvalidMood,
		},
		{
			name:    "unknown diary",
			request: usecase.UpdateDiaryRequest{Title: strPtr("t")},
			mockSetup: func(m *MockDiaryRepository) {
				m.On("Update", mock.Anything, "d1", mock.AnythingOfType("domain.DiaryPatch")).Return(nil, domain.ErrNotFound)
			},
			expectedError: usecase.ErrDiaryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDiaryRepository)
			tt.mockSetup(mockRepo)

			u := usecase.NewDiaryUsecase(mockRepo, nil)
			diary, err := u.UpdateDiary(context.Background(), "d1", tt.request)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, diary)
			} else {
				require.NoError(t, err)
				assert.Equal(t, existing, diary)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDiaryUsecase_DeleteDiary(t *testing.T) {
	mockRepo := new(MockDiaryRepository)
	mockRepo.On("Delete", mock.Anything, "known").Return(true, nil)
	mockRepo.On("Delete", mock.Anything, "unknown").Return(false, nil)

	u := usecase.NewDiaryUsecase(mockRepo, nil)

	assert.NoError(t, u.DeleteDiary(context.Background(), "known"))
	assert.ErrorIs(t, u.DeleteDiary(context.Background(), "unknown"), usecase.ErrDiaryNotFound)
}

func TestDiaryUsecase_GetDiaryNotFound(t *testing.T) {
	mockRepo := new(MockDiaryRepository)
	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	u := usecase.NewDiaryUsecase(mockRepo, nil)
	_, err := u.GetDiary(context.Background(), "missing")
	assert.ErrorIs(t, err, usecase.ErrDiaryNotFound)
}

func TestDiaryUsecase_FilterByVisibility(t *testing.T) {
	diaries := []domain.Diary{
		{ID: "a", IsPublic: true},
		{ID: "b", IsPublic: false},
		{ID: "c", IsPublic: true},
	}

	u := usecase.NewDiaryUsecase(new(MockDiaryRepository), nil)

	tests := []struct {
		name     string
		mode     domain.Visibility
		expected []string
	}{
		{name: "all keeps everything", mode: domain.VisibilityAll, expected: []string{"a", "b", "c"}},
		{name: "public keeps order", mode: domain.VisibilityPublic, expected: []string{"a", "c"}},
		{name: "private", mode: domain.VisibilityPrivate, expected: []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := u.FilterByVisibility(diaries, tt.mode)

			ids := make([]string, 0, len(result))
			for _, diary := range result {
				ids = append(ids, diary.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func strPtr(s string) *string { return &s }
