package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"diary-app/src/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMood_IsValid(t *testing.T) {
	valid := []domain.Mood{
		domain.MoodHappy, domain.MoodNeutral, domain.MoodSad,
		domain.MoodAngry, domain.MoodSleepy, domain.MoodLove,
	}
	for _, mood := range valid {
		assert.True(t, mood.IsValid(), "mood %q", mood)
	}

	assert.False(t, domain.Mood("").IsValid())
	assert.False(t, domain.Mood("excited").IsValid())
	assert.False(t, domain.Mood("HAPPY").IsValid())
}

func TestVisibility_IsValid(t *testing.T) {
	assert.True(t, domain.VisibilityAll.IsValid())
	assert.True(t, domain.VisibilityPublic.IsValid())
	assert.True(t, domain.VisibilityPrivate.IsValid())
	assert.False(t, domain.Visibility("").IsValid())
	assert.False(t, domain.Visibility("friends").IsValid())
}

func TestDiary_JSONFieldNames(t *testing.T) {
	// 保存形式のフィールド名は既存データとの互換のため固定
	diary := domain.Diary{
		ID:        "d1",
		Title:     "t",
		Content:   "c",
		IsPublic:  true,
		ShareID:   "s1",
		Mood:      domain.MoodHappy,
		Tags:      []string{"tag"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	raw, err := json.Marshal(diary)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"id", "title", "content", "isPublic", "shareId", "mood", "tags", "createdAt", "updatedAt"} {
		assert.Contains(t, fields, key)
	}
}

func TestDiary_OmitsEmptyShareID(t *testing.T) {
	raw, err := json.Marshal(domain.Diary{ID: "d1", Title: "t", Content: "c"})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "shareId")
	assert.NotContains(t, fields, "mood")
}
