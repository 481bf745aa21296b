package handler

import (
	"net/http"

	"diary-app/src/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ShareHandler handles HTTP requests for the sharing flows
type ShareHandler struct {
	shareUsecase usecase.ShareUsecase
	logger       *logrus.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareUsecase usecase.ShareUsecase, logger *logrus.Logger) *ShareHandler {
	return &ShareHandler{
		shareUsecase: shareUsecase,
		logger:       logger,
	}
}

// ResolveShare resolves a shared diary from either link scheme.
// ?data= が優先され、なければ ?share= を試す（share.js と同じ順序）。
func (h *ShareHandler) ResolveShare(c *gin.Context) {
	var ref usecase.ShareRef
	if payload := c.Query("data"); payload != "" {
		ref = usecase.ByPayload(payload)
	} else if shareID := c.Query("share"); shareID != "" {
		ref = usecase.ByShareID(shareID)
	} else {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Missing share reference",
			Message: "either the share or the data query parameter is required",
		})
		return
	}

	shared, err := h.shareUsecase.Resolve(c.Request.Context(), ref)
	if err != nil {
		// デコード失敗と未発見は診断のため別々に記録する
		status := http.StatusInternalServerError
		switch err {
		case usecase.ErrInvalidPayload:
			h.logger.WithError(err).Warn("共有ペイロードが不正")
			status = http.StatusBadRequest
		case usecase.ErrShareNotFound:
			h.logger.Warn("共有リンクが解決できません")
			status = http.StatusNotFound
		default:
			h.logger.WithError(err).Error("共有日記の解決に失敗")
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to resolve shared diary",
		})
		return
	}

	c.JSON(http.StatusOK, SharedDiaryResponseDTO{
		Title:     shared.Title,
		Content:   shared.Content,
		CreatedAt: shared.CreatedAt,
	})
}

// GetShareValues returns both link parameter values for a public diary
func (h *ShareHandler) GetShareValues(c *gin.Context) {
	id := c.Param("id")

	values, err := h.shareUsecase.ShareDiary(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("diary_id", id).Warn("共有リンクの生成に失敗")

		status := http.StatusInternalServerError
		switch err {
		case usecase.ErrDiaryNotFound:
			status = http.StatusNotFound
		case usecase.ErrDiaryNotPublic:
			status = http.StatusForbidden
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to share diary",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ShareValuesResponseDTO{
		ShareID: values.ShareID,
		Payload: values.Payload,
	})
}
