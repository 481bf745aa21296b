package handler

import (
	"net/http"
	"strconv"
	"time"

	"diary-app/src/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsHandler handles HTTP requests for statistics
type StatsHandler struct {
	statsUsecase usecase.StatsUsecase
	logger       *logrus.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsUsecase usecase.StatsUsecase, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		statsUsecase: statsUsecase,
		logger:       logger,
	}
}

// GetStats returns the headline counters, the weekly character count and
// the peak-writing-hour analysis in one response.
func (h *StatsHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.statsUsecase.Summary(ctx)
	if err != nil {
		h.logger.WithError(err).Error("統計の計算に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to compute stats",
		})
		return
	}

	weeklyWords, err := h.statsUsecase.WeeklyWordCount(ctx)
	if err != nil {
		h.logger.WithError(err).Error("週間字数の計算に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to compute stats",
		})
		return
	}

	peaks, err := h.statsUsecase.PeakWritingHours(ctx)
	if err != nil {
		h.logger.WithError(err).Error("ピーク時間帯の計算に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to compute stats",
		})
		return
	}

	c.JSON(http.StatusOK, StatsResponseDTO{
		TotalCount:      summary.TotalCount,
		MonthlyCount:    summary.MonthlyCount,
		CurrentStreak:   summary.CurrentStreak,
		LongestStreak:   summary.LongestStreak,
		WeeklyWordCount: weeklyWords,
		PeakHours:       *peaks,
	})
}

// GetCalendar returns the per-day counts for one month.
// month は 1〜12 で指定する。
func (h *StatsHandler) GetCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid year",
			Message: "year must be a number",
		})
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid month",
			Message: "month must be a number between 1 and 12",
		})
		return
	}

	days, err := h.statsUsecase.CountsByMonth(c.Request.Context(), year, time.Month(month))
	if err != nil {
		h.logger.WithError(err).Error("カレンダー集計に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to compute calendar",
		})
		return
	}

	c.JSON(http.StatusOK, CalendarResponseDTO{
		Year:  year,
		Month: month,
		Days:  days,
	})
}
