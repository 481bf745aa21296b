package handler

import (
	"net/http"

	"diary-app/src/domain"
	"diary-app/src/usecase"
	"diary-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DraftHandler handles HTTP requests for the autosave buffer
type DraftHandler struct {
	autosaver *usecase.DraftAutosaver
	validator *validator.CustomValidator
	logger    *logrus.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(autosaver *usecase.DraftAutosaver, cv *validator.CustomValidator, logger *logrus.Logger) *DraftHandler {
	return &DraftHandler{
		autosaver: autosaver,
		validator: cv,
		logger:    logger,
	}
}

// GetDraft returns the stored draft
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft, err := h.autosaver.Load(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("下書きの読み込みに失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to load draft",
		})
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, ErrorResponseDTO{
			Error: "No draft",
		})
		return
	}

	c.JSON(http.StatusOK, DraftResponseDTO{
		Title:    draft.Title,
		Content:  draft.Content,
		IsPublic: draft.IsPublic,
		Mood:     draft.Mood.String(),
		Tags:     draft.Tags,
		SavedAt:  draft.SavedAt,
	})
}

// QueueDraft accepts an edit and schedules the debounced autosave.
// 実際の永続化はデバウンス遅延の経過後に行われる。
func (h *DraftHandler) QueueDraft(c *gin.Context) {
	var req DraftDTO
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

	h.autosaver.Queue(domain.Draft{
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
		Mood:     domain.Mood(req.Mood),
		Tags:     req.Tags,
	})

	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}

// FlushDraft persists the pending draft immediately.
// ページ非表示・アンロード時のベストエフォート保存に使う。
func (h *DraftHandler) FlushDraft(c *gin.Context) {
	if err := h.autosaver.Flush(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("下書きのフラッシュに失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to flush draft",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// DiscardDraft drops the pending draft and clears the stored slot
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	h.autosaver.Discard(c.Request.Context())
	c.Status(http.StatusNoContent)
}
