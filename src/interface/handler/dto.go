package handler

import (
	"time"

	"diary-app/src/domain"
	"diary-app/src/usecase"
)

// CreateDiaryRequestDTO represents HTTP request for creating a diary entry
type CreateDiaryRequestDTO struct {
	Title    string   `json:"title" binding:"max=200" validate:"max=200"`
	Content  string   `json:"content" binding:"required" validate:"required"`
	IsPublic bool     `json:"isPublic"`
	Mood     string   `json:"mood" validate:"mood"`
	Tags     []string `json:"tags" validate:"omitempty,dive,max=30"`
}

// UpdateDiaryRequestDTO represents HTTP request for a partial update.
// 省略されたフィールドは変更されない。
type UpdateDiaryRequestDTO struct {
	Title    *string  `json:"title,omitempty" binding:"omitempty,max=200" validate:"omitempty,max=200"`
	Content  *string  `json:"content,omitempty"`
	IsPublic *bool    `json:"isPublic,omitempty"`
	Mood     *string  `json:"mood,omitempty" validate:"omitempty,mood"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,dive,max=30"`
}

// DiaryResponseDTO represents HTTP response for a diary entry
type DiaryResponseDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPublic  bool      `json:"isPublic"`
	ShareID   string    `json:"shareId,omitempty"`
	Mood      string    `json:"mood,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DiaryListResponseDTO represents HTTP response for a diary list
type DiaryListResponseDTO struct {
	Diaries []DiaryResponseDTO `json:"diaries"`
	Total   int                `json:"total"`
}

// SharedDiaryResponseDTO is the renderable view of a shared diary
type SharedDiaryResponseDTO struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ShareValuesResponseDTO carries both share link parameter values
type ShareValuesResponseDTO struct {
	ShareID string `json:"shareId"`
	Payload string `json:"payload"`
}

// StatsResponseDTO represents HTTP response for the stats summary
type StatsResponseDTO struct {
	TotalCount      int               `json:"totalCount"`
	MonthlyCount    int               `json:"monthlyCount"`
	CurrentStreak   int               `json:"currentStreak"`
	LongestStreak   int               `json:"longestStreak"`
	WeeklyWordCount int               `json:"weeklyWordCount"`
	PeakHours       usecase.PeakHours `json:"peakHours"`
}

// CalendarResponseDTO represents per-day counts for one month
type CalendarResponseDTO struct {
	Year  int                     `json:"year"`
	Month int                     `json:"month"`
	Days  map[int]domain.DayCount `json:"days"`
}

// UserResponseDTO represents HTTP response for the profile
type UserResponseDTO struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	RegisterDate time.Time `json:"registerDate"`
}

// UpdateUserRequestDTO represents HTTP request for updating the profile
type UpdateUserRequestDTO struct {
	Nickname string `json:"nickname" binding:"required,max=20" validate:"required,max=20"`
}

// DraftDTO represents the autosave buffer in both directions
type DraftDTO struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	IsPublic bool     `json:"isPublic"`
	Mood     string   `json:"mood,omitempty" validate:"mood"`
	Tags     []string `json:"tags"`
}

// DraftResponseDTO represents HTTP response for the stored draft
type DraftResponseDTO struct {
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	IsPublic bool      `json:"isPublic"`
	Mood     string    `json:"mood,omitempty"`
	Tags     []string  `json:"tags"`
	SavedAt  time.Time `json:"savedAt"`
}

// ClientConfigResponseDTO exposes the fixed client-side constants
type ClientConfigResponseDTO struct {
	AutoSaveDelayMs int64 `json:"autoSaveDelayMs"`
	ToastDurationMs int64 `json:"toastDurationMs"`
}

// ErrorResponseDTO represents HTTP error response
type ErrorResponseDTO struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// toDiaryResponseDTO converts a domain diary to its response DTO
func toDiaryResponseDTO(diary *domain.Diary) DiaryResponseDTO {
	return DiaryResponseDTO{
		ID:        diary.ID,
		Title:     diary.Title,
		Content:   diary.Content,
		IsPublic:  diary.IsPublic,
		ShareID:   diary.ShareID,
		Mood:      diary.Mood.String(),
		Tags:      diary.Tags,
		CreatedAt: diary.CreatedAt,
		UpdatedAt: diary.UpdatedAt,
	}
}

// toDiaryResponseDTOs converts a list of domain diaries
func toDiaryResponseDTOs(diaries []domain.Diary) []DiaryResponseDTO {
	result := make([]DiaryResponseDTO, 0, len(diaries))
	for i := range diaries {
		result = append(result, toDiaryResponseDTO(&diaries[i]))
	}
	return result
}
