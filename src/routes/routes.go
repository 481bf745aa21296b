package routes

import (
	"net/http"

	"diary-app/src/config"
	"diary-app/src/interface/handler"
	"diary-app/src/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes wires up.
type Handlers struct {
	Diary *handler.DiaryHandler
	Stats *handler.StatsHandler
	Share *handler.ShareHandler
	User  *handler.UserHandler
	Draft *handler.DraftHandler
}

// SetupRoutes sets up all API routes
func SetupRoutes(r *gin.Engine, h *Handlers, cfg *config.Config) {
	api := r.Group("/api")
	api.Use(middleware.LoggerMiddleware())
	api.Use(middleware.CORSMiddleware())

	// 日記のCRUDと検索・絞り込み
	diaries := api.Group("/diaries")
	{
		diaries.POST("", h.Diary.CreateDiary)      // POST /api/diaries
		diaries.GET("", h.Diary.ListDiaries)       // GET /api/diaries?filter=&q=&date=
		diaries.GET("/:id", h.Diary.GetDiary)      // GET /api/diaries/:id
		diaries.PUT("/:id", h.Diary.UpdateDiary)   // PUT /api/diaries/:id
		diaries.DELETE("/:id", h.Diary.DeleteDiary) // DELETE /api/diaries/:id

		// 共有リンクの生成
		diaries.GET("/:id/share-link", h.Share.GetShareValues)
	}

	// 共有リンクの解決（?share= と ?data= の両形式）
	api.GET("/share", h.Share.ResolveShare)

	// 統計とカレンダー
	stats := api.Group("/stats")
	{
		stats.GET("", h.Stats.GetStats)              // GET /api/stats
		stats.GET("/calendar", h.Stats.GetCalendar)  // GET /api/stats/calendar?year=&month=
	}

	// プロフィール
	api.GET("/user", h.User.GetUser)
	api.PUT("/user", h.User.UpdateUser)

	// 下書きの自動保存
	draft := api.Group("/draft")
	{
		draft.GET("", h.Draft.GetDraft)
		draft.PUT("", h.Draft.QueueDraft)
		draft.POST("/flush", h.Draft.FlushDraft)
		draft.DELETE("", h.Draft.DiscardDraft)
	}

	// フロントエンドが参照する固定値
	api.GET("/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, handler.ClientConfigResponseDTO{
			AutoSaveDelayMs: cfg.Diary.AutoSaveDelay.Milliseconds(),
			ToastDurationMs: cfg.Diary.ToastDuration.Milliseconds(),
		})
	})
}
