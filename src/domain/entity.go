package domain

import (
	"time"
)

// DefaultTitle 無題の日記に付けるプレースホルダー
const DefaultTitle = "無題の日記"

// DefaultNickname 初回利用時のニックネーム
const DefaultNickname = "ユーザー"

// Diary represents a single diary entry.
// JSONフィールド名は localStorage 時代の保存形式に合わせてある。
type Diary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPublic  bool      `json:"isPublic"`
	ShareID   string    `json:"shareId,omitempty"`
	Mood      Mood      `json:"mood,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Mood represents the mood tag of a diary entry. Empty means no mood.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodSleepy  Mood = "sleepy"
	MoodLove    Mood = "love"
)

// IsValid validates if the mood is one of the known values.
func (m Mood) IsValid() bool {
	switch m {
	case MoodHappy, MoodNeutral, MoodSad, MoodAngry, MoodSleepy, MoodLove:
		return true
	default:
		return false
	}
}

// String returns string representation of Mood
func (m Mood) String() string {
	return string(m)
}

// Visibility represents the visibility filter over diary lists.
type Visibility string

const (
	VisibilityAll     Visibility = "all"
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// IsValid validates if the visibility is valid
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityAll, VisibilityPublic, VisibilityPrivate:
		return true
	default:
		return false
	}
}

// String returns string representation of Visibility
func (v Visibility) String() string {
	return string(v)
}

// User represents the single local profile.
type User struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	RegisterDate time.Time `json:"registerDate"`
}

// Draft represents the single-slot autosave buffer for a new entry.
type Draft struct {
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	IsPublic bool      `json:"isPublic"`
	Mood     Mood      `json:"mood,omitempty"`
	Tags     []string  `json:"tags"`
	SavedAt  time.Time `json:"savedAt"`
}

// DiaryPatch represents a partial update: nil fields are left unchanged.
type DiaryPatch struct {
	Title    *string
	Content  *string
	IsPublic *bool
	Mood     *Mood
	Tags     []string
}

// DayCount is the per-day calendar aggregate: entry count plus the mood
// of the first entry encountered for that day.
type DayCount struct {
	Count int  `json:"count"`
	Mood  Mood `json:"mood,omitempty"`
}
