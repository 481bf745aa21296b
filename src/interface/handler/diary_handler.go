package handler

import (
	"net/http"
	"time"

	"diary-app/src/domain"
	"diary-app/src/usecase"
	"diary-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DiaryHandler handles HTTP requests for diary operations
type DiaryHandler struct {
	diaryUsecase usecase.DiaryUsecase
	validator    *validator.CustomValidator
	logger       *logrus.Logger
}

// NewDiaryHandler creates a new diary handler
func NewDiaryHandler(diaryUsecase usecase.DiaryUsecase, cv *validator.CustomValidator, logger *logrus.Logger) *DiaryHandler {
	return &DiaryHandler{
		diaryUsecase: diaryUsecase,
		validator:    cv,
		logger:       logger,
	}
}

// CreateDiary creates a new diary entry
func (h *DiaryHandler) CreateDiary(c *gin.Context) {
	var req CreateDiaryRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	diary, err := h.diaryUsecase.CreateDiary(c.Request.Context(), usecase.CreateDiaryRequest{
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
		Mood:     req.Mood,
		Tags:     req.Tags,
	})
	if err != nil {
		h.logger.WithError(err).Error("日記の作成に失敗")

		status := http.StatusInternalServerError
		if err == usecase.ErrInvalidContent || err == usecase.ErrInvalidMood {
			status = http.StatusBadRequest
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to create diary",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, toDiaryResponseDTO(diary))
}

// ListDiaries returns the collection, optionally searched by q, filtered
// by visibility and restricted to one local calendar day.
func (h *DiaryHandler) ListDiaries(c *gin.Context) {
	mode := domain.Visibility(c.DefaultQuery("filter", "all"))
	if !mode.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid filter",
			Message: usecase.ErrInvalidVisibility.Error(),
		})
		return
	}

	var diaries []domain.Diary
	var err error

	if dateStr := c.Query("date"); dateStr != "" {
		date, parseErr := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, ErrorResponseDTO{
				Error:   "Invalid date",
				Message: "date must be formatted as YYYY-MM-DD",
			})
			return
		}
		diaries, err = h.diaryUsecase.DiariesByDate(c.Request.Context(), date)
	} else if query := c.Query("q"); query != "" {
		diaries, err = h.diaryUsecase.SearchDiaries(c.Request.Context(), query)
	} else {
		diaries, err = h.diaryUsecase.ListDiaries(c.Request.Context())
	}

	if err != nil {
		h.logger.WithError(err).Error("日記リストの取得に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to get diaries",
		})
		return
	}

	diaries = h.diaryUsecase.FilterByVisibility(diaries, mode)

	c.JSON(http.StatusOK, DiaryListResponseDTO{
		Diaries: toDiaryResponseDTOs(diaries),
		Total:   len(diaries),
	})
}

// GetDiary retrieves a diary entry by ID
func (h *DiaryHandler) GetDiary(c *gin.Context) {
	id := c.Param("id")

	diary, err := h.diaryUsecase.GetDiary(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("diary_id", id).Warn("日記の取得に失敗")

		status := http.StatusInternalServerError
		if err == usecase.ErrDiaryNotFound {
			status = http.StatusNotFound
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to get diary",
		})
		return
	}

	c.JSON(http.StatusOK, toDiaryResponseDTO(diary))
}

// UpdateDiary applies a partial patch to an existing diary entry
func (h *DiaryHandler) UpdateDiary(c *gin.Context) {
	id := c.Param("id")

	var req UpdateDiaryRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	diary, err := h.diaryUsecase.UpdateDiary(c.Request.Context(), id, usecase.UpdateDiaryRequest{
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
		Mood:     req.Mood,
		Tags:     req.Tags,
	})
	if err != nil {
		h.logger.WithError(err).WithField("diary_id", id).Error("日記の更新に失敗")

		status := http.StatusInternalServerError
		switch err {
		case usecase.ErrDiaryNotFound:
			status = http.StatusNotFound
		case usecase.ErrInvalidContent, usecase.ErrInvalidMood:
			status = http.StatusBadRequest
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to update diary",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toDiaryResponseDTO(diary))
}

// DeleteDiary removes a diary entry
func (h *DiaryHandler) DeleteDiary(c *gin.Context) {
	id := c.Param("id")

	if err := h.diaryUsecase.DeleteDiary(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).WithField("diary_id", id).Warn("日記の削除に失敗")

		status := http.StatusInternalServerError
		if err == usecase.ErrDiaryNotFound {
			status = http.StatusNotFound
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to delete diary",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
