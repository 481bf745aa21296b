package validator_test

import (
	"testing"

	"diary-app/src/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type diaryForm struct {
	Title   string `validate:"max=100"`
	Content string `validate:"required"`
	Mood    string `validate:"mood"`
	Filter  string `validate:"visibility"`
}

func TestCustomValidator_Validate(t *testing.T) {
	cv := validator.NewCustomValidator()

	tests := []struct {
		name        string
		form        diaryForm
		expectError bool
		failedField string
	}{
		{
			name: "valid form",
			form: diaryForm{Title: "今日", Content: "内容", Mood: "happy", Filter: "all"},
		},
		{
			name: "empty mood is valid",
			form: diaryForm{Content: "内容"},
		},
		{
			name:        "missing content",
			form:        diaryForm{Title: "タイトルのみ"},
			expectError: true,
			failedField: "Content",
		},
		{
			name:        "unknown mood",
			form:        diaryForm{Content: "内容", Mood: "ecstatic"},
			expectError: true,
			failedField: "Mood",
		},
		{
			name:        "unknown visibility filter",
			form:        diaryForm{Content: "内容", Filter: "friends"},
			expectError: true,
			failedField: "Filter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(tt.form)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ve, ok := err.(validator.ValidationErrors)
			require.True(t, ok)
			require.NotEmpty(t, ve.Errors)
			assert.Equal(t, tt.failedField, ve.Errors[0].Field)
			assert.NotEmpty(t, ve.Errors[0].Message)
		})
	}
}

func TestCustomValidator_AllMoodsAccepted(t *testing.T) {
	cv := validator.NewCustomValidator()

	for _, mood := range []string{"happy", "neutral", "sad", "angry", "sleepy", "love"} {
		err := cv.Validate(diaryForm{Content: "内容", Mood: mood})
		assert.NoError(t, err, "mood %q", mood)
	}
}
