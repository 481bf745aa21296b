package handler

import (
	"net/http"

	"diary-app/src/usecase"
	"diary-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests for the local profile
type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
	logger      *logrus.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase usecase.UserUsecase, cv *validator.CustomValidator, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   cv,
		logger:      logger,
	}
}

// GetUser returns the profile, creating it on first access
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.GetUser(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ユーザーの取得に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to get user",
		})
		return
	}

	c.JSON(http.StatusOK, UserResponseDTO{
		ID:           user.ID,
		Nickname:     user.Nickname,
		RegisterDate: user.RegisterDate,
	})
}

// UpdateUser updates the nickname
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequestDTO
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

	user, err := h.userUsecase.UpdateNickname(c.Request.Context(), req.Nickname)
	if err != nil {
		h.logger.WithError(err).Error("プロフィールの更新に失敗")

		status := http.StatusInternalServerError
		if err == usecase.ErrInvalidNickname {
			status = http.StatusBadRequest
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to update user",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, UserResponseDTO{
		ID:           user.ID,
		Nickname:     user.Nickname,
		RegisterDate: user.RegisterDate,
	})
}
